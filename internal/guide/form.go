package guide

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"grammarguide/internal/apiclient"
	"grammarguide/internal/logger"
	"grammarguide/internal/model"
)

const (
	MaxTitleLength      = 100
	MaxDefinitionLength = 500

	MsgFieldsRequired = "Please fill in Category, Title, and Definition."
	MsgAdded          = "Content added successfully!"
	MsgAddFailed      = "Failed to add content."
)

var (
	// ErrSubmitInFlight is returned while an earlier submission is pending.
	ErrSubmitInFlight = errors.New("submission already in progress")
	// ErrInvalidDraft is returned when the draft fails client-side checks.
	ErrInvalidDraft = errors.New("invalid draft")
)

// Creator submits new entries to the Content API.
type Creator interface {
	Create(ctx context.Context, req model.NewEntry) (model.Entry, error)
}

type Field string

const (
	FieldCategory   Field = "category"
	FieldTitle      Field = "title"
	FieldDefinition Field = "definition"
	FieldExamples   Field = "examples"
	FieldNotes      Field = "notes"
)

// Draft is the unsubmitted form. Examples holds one example per line.
type Draft struct {
	Category   string
	Title      string
	Definition string
	Examples   string
	Notes      string
}

type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusSuccess
	StatusError
)

type Status struct {
	Kind    StatusKind
	Message string
}

// Form is the creation form state. At most one submission runs at a time.
type Form struct {
	mu         sync.Mutex
	draft      Draft
	status     Status
	submitting bool
}

func NewForm() *Form {
	return &Form{}
}

func (f *Form) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Submitting reports whether a submission is pending.
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Set edits one field. Editing clears a previous error status.
func (f *Form) Set(field Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch field {
	case FieldCategory:
		f.draft.Category = value
	case FieldTitle:
		f.draft.Title = value
	case FieldDefinition:
		f.draft.Definition = value
	case FieldExamples:
		f.draft.Examples = value
	case FieldNotes:
		f.draft.Notes = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	if f.status.Kind == StatusError {
		f.status = Status{}
	}
	return nil
}

// Reset clears the draft and status.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = Draft{}
	f.status = Status{}
}

// Submit validates the draft and sends it through creator. On success the
// draft is cleared; on failure it is kept and the status carries the reason.
func (f *Form) Submit(ctx context.Context, creator Creator) (model.Entry, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return model.Entry{}, ErrSubmitInFlight
	}
	f.submitting = true
	f.status = Status{}
	draft := f.draft
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	if msg := checkDraft(draft); msg != "" {
		f.setStatus(Status{Kind: StatusError, Message: msg})
		return model.Entry{}, fmt.Errorf("%w: %s", ErrInvalidDraft, msg)
	}

	entry, err := creator.Create(ctx, draft.toNewEntry())
	if err != nil {
		message := MsgAddFailed
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			message = apiErr.Message
		}
		logger.Warn("entry submit failed", "module", "guide", "action", "create", "resource", "entry", "result", "failed", "error", err)
		f.setStatus(Status{Kind: StatusError, Message: message})
		return model.Entry{}, err
	}

	f.mu.Lock()
	f.draft = Draft{}
	f.status = Status{Kind: StatusSuccess, Message: MsgAdded}
	f.mu.Unlock()
	return entry, nil
}

func (f *Form) setStatus(s Status) {
	f.mu.Lock()
	f.status = s
	f.mu.Unlock()
}

func checkDraft(d Draft) string {
	if isBlank(d.Category) || isBlank(d.Title) || isBlank(d.Definition) {
		return MsgFieldsRequired
	}
	if utf8.RuneCountInString(d.Title) > MaxTitleLength {
		return fmt.Sprintf("Title must be at most %d characters.", MaxTitleLength)
	}
	if utf8.RuneCountInString(d.Definition) > MaxDefinitionLength {
		return fmt.Sprintf("Definition must be at most %d characters.", MaxDefinitionLength)
	}
	return ""
}

func (d Draft) toNewEntry() model.NewEntry {
	req := model.NewEntry{
		Category:   model.Category(strings.TrimSpace(d.Category)),
		Title:      d.Title,
		Definition: d.Definition,
		Examples:   SplitExamples(d.Examples),
	}
	if notes := strings.TrimSpace(d.Notes); notes != "" {
		req.Notes = &d.Notes
	}
	return req
}

// SplitExamples turns multiline text into examples, dropping blank lines.
func SplitExamples(text string) []string {
	examples := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			examples = append(examples, line)
		}
	}
	return examples
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
