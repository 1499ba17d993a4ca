package guide_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"grammarguide/internal/apiclient"
	"grammarguide/internal/guide"
	"grammarguide/internal/model"
)

func fillForm(t *testing.T, f *guide.Form, d guide.Draft) {
	t.Helper()
	require.NoError(t, f.Set(guide.FieldCategory, d.Category))
	require.NoError(t, f.Set(guide.FieldTitle, d.Title))
	require.NoError(t, f.Set(guide.FieldDefinition, d.Definition))
	require.NoError(t, f.Set(guide.FieldExamples, d.Examples))
	require.NoError(t, f.Set(guide.FieldNotes, d.Notes))
}

func TestForm_SubmitSuccess(t *testing.T) {
	creator := &stubCreator{}
	f := guide.NewForm()
	fillForm(t, f, guide.Draft{
		Category:   "tense",
		Title:      "Past Perfect",
		Definition: "Completed before another past action.",
		Examples:   "Ex1\n\n  \nEx2\n",
	})

	entry, err := f.Submit(context.Background(), creator)
	require.NoError(t, err)
	require.Equal(t, "Past Perfect", entry.Title)

	require.Len(t, creator.requests, 1)
	req := creator.requests[0]
	require.Equal(t, model.CategoryTense, req.Category)
	require.Equal(t, []string{"Ex1", "Ex2"}, req.Examples)
	require.Nil(t, req.Notes)

	require.Equal(t, guide.Draft{}, f.Draft())
	require.Equal(t, guide.Status{Kind: guide.StatusSuccess, Message: "Content added successfully!"}, f.Status())
	require.False(t, f.Submitting())
}

func TestForm_MissingFieldsNeverCallCreator(t *testing.T) {
	drafts := []guide.Draft{
		{Title: "T", Definition: "D"},
		{Category: "tense", Definition: "D"},
		{Category: "tense", Title: "T"},
		{Category: "tense", Title: " ", Definition: "D"},
	}
	for _, d := range drafts {
		creator := &stubCreator{}
		f := guide.NewForm()
		fillForm(t, f, d)

		_, err := f.Submit(context.Background(), creator)
		require.ErrorIs(t, err, guide.ErrInvalidDraft)
		require.Empty(t, creator.requests)
		require.Equal(t, guide.Status{Kind: guide.StatusError, Message: "Please fill in Category, Title, and Definition."}, f.Status())
		require.Equal(t, d, f.Draft())
	}
}

func TestForm_LengthLimits(t *testing.T) {
	f := guide.NewForm()
	fillForm(t, f, guide.Draft{Category: "tense", Title: strings.Repeat("a", 101), Definition: "D"})
	_, err := f.Submit(context.Background(), &stubCreator{})
	require.ErrorIs(t, err, guide.ErrInvalidDraft)
	require.Contains(t, f.Status().Message, "100")

	require.NoError(t, f.Set(guide.FieldTitle, strings.Repeat("a", 100)))
	require.NoError(t, f.Set(guide.FieldDefinition, strings.Repeat("é", 501)))
	_, err = f.Submit(context.Background(), &stubCreator{})
	require.ErrorIs(t, err, guide.ErrInvalidDraft)
	require.Contains(t, f.Status().Message, "500")
}

func TestForm_FailureKeepsDraftAndUsesAPIMessage(t *testing.T) {
	creator := &stubCreator{err: &apiclient.APIError{Status: 400, Message: "Failed to save new content. Title may already exist."}}
	f := guide.NewForm()
	draft := guide.Draft{Category: "tense", Title: "Simple Present", Definition: "Habits.", Notes: "note"}
	fillForm(t, f, draft)

	_, err := f.Submit(context.Background(), creator)
	require.Error(t, err)
	require.Equal(t, draft, f.Draft())
	require.Equal(t, guide.Status{Kind: guide.StatusError, Message: "Failed to save new content. Title may already exist."}, f.Status())
	require.Equal(t, "note", *creator.requests[0].Notes)
}

func TestForm_FailureFallsBackToGenericMessage(t *testing.T) {
	for _, err := range []error{
		errors.Join(apiclient.ErrTransport, errors.New("dial tcp: connection refused")),
		&apiclient.APIError{Status: 502},
	} {
		f := guide.NewForm()
		fillForm(t, f, guide.Draft{Category: "tense", Title: "T", Definition: "D"})

		_, submitErr := f.Submit(context.Background(), &stubCreator{err: err})
		require.Error(t, submitErr)
		require.Equal(t, "Failed to add content.", f.Status().Message)
	}
}

func TestForm_EditingClearsError(t *testing.T) {
	f := guide.NewForm()
	_, err := f.Submit(context.Background(), &stubCreator{})
	require.Error(t, err)
	require.Equal(t, guide.StatusError, f.Status().Kind)

	require.NoError(t, f.Set(guide.FieldTitle, "T"))
	require.Equal(t, guide.StatusNone, f.Status().Kind)
}

func TestForm_EditingKeepsSuccess(t *testing.T) {
	f := guide.NewForm()
	fillForm(t, f, guide.Draft{Category: "tense", Title: "T", Definition: "D"})
	_, err := f.Submit(context.Background(), &stubCreator{})
	require.NoError(t, err)

	require.NoError(t, f.Set(guide.FieldTitle, "Next"))
	require.Equal(t, guide.StatusSuccess, f.Status().Kind)
}

func TestForm_UnknownField(t *testing.T) {
	require.Error(t, guide.NewForm().Set("author", "x"))
}

func TestForm_OneSubmissionInFlight(t *testing.T) {
	creator := &stubCreator{release: make(chan struct{}), started: make(chan struct{}, 1)}
	f := guide.NewForm()
	fillForm(t, f, guide.Draft{Category: "tense", Title: "T", Definition: "D"})

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background(), creator)
		done <- err
	}()
	<-creator.started

	require.True(t, f.Submitting())
	_, err := f.Submit(context.Background(), creator)
	require.ErrorIs(t, err, guide.ErrSubmitInFlight)

	close(creator.release)
	require.NoError(t, <-done)
	require.False(t, f.Submitting())
	require.Len(t, creator.requests, 1)
}

func TestSplitExamples(t *testing.T) {
	require.Equal(t, []string{"Ex1", "Ex2"}, guide.SplitExamples("Ex1\nEx2\n"))
	require.Equal(t, []string{"a", "b"}, guide.SplitExamples("\r\n a \r\n\r\nb"))
	require.Equal(t, []string{}, guide.SplitExamples(""))
}
