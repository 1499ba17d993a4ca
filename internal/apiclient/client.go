package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"grammarguide/internal/config"
	"grammarguide/internal/logger"
	"grammarguide/internal/model"
)

// ErrTransport wraps failures that happen before a response is received.
var ErrTransport = errors.New("transport error")

// APIError is a non-2xx response from the Content API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// Client talks to the Content API mounted at baseURL (e.g. http://host:5000/api/grammar).
type Client struct {
	http *resty.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	rc := resty.NewWithClient(httpClient).
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", config.UserAgent)
	return &Client{http: rc}
}

type entryPayload struct {
	ID         string   `json:"id"`
	Category   string   `json:"category"`
	Title      string   `json:"title"`
	Definition string   `json:"definition"`
	Examples   []string `json:"examples"`
	Notes      *string  `json:"notes,omitempty"`
}

type createPayload struct {
	Category   string   `json:"category"`
	Title      string   `json:"title"`
	Definition string   `json:"definition"`
	Examples   []string `json:"examples"`
	Notes      *string  `json:"notes,omitempty"`
}

type errorPayload struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// List fetches every entry.
func (c *Client) List(ctx context.Context) ([]model.Entry, error) {
	var result []entryPayload
	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&errorPayload{}).
		Get("")
	if err != nil {
		return nil, fmt.Errorf("list entries: %w: %w", ErrTransport, err)
	}
	if res.IsError() {
		return nil, toAPIError(res)
	}

	entries := make([]model.Entry, 0, len(result))
	for _, p := range result {
		entry, err := p.toModel()
		if err != nil {
			return nil, fmt.Errorf("list entries: %w", err)
		}
		entries = append(entries, entry)
	}
	logger.Debug("entries fetched", "module", "apiclient", "action", "list", "resource", "entry", "result", "ok", "count", len(entries))
	return entries, nil
}

// Create submits a new entry and returns it as stored.
func (c *Client) Create(ctx context.Context, req model.NewEntry) (model.Entry, error) {
	examples := req.Examples
	if examples == nil {
		examples = []string{}
	}

	var result entryPayload
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(createPayload{
			Category:   string(req.Category),
			Title:      req.Title,
			Definition: req.Definition,
			Examples:   examples,
			Notes:      req.Notes,
		}).
		SetResult(&result).
		SetError(&errorPayload{}).
		Post("")
	if err != nil {
		return model.Entry{}, fmt.Errorf("create entry: %w: %w", ErrTransport, err)
	}
	if res.IsError() {
		return model.Entry{}, toAPIError(res)
	}

	entry, err := result.toModel()
	if err != nil {
		return model.Entry{}, fmt.Errorf("create entry: %w", err)
	}
	logger.Debug("entry submitted", "module", "apiclient", "action", "create", "resource", "entry", "result", "ok", "entry_id", entry.ID)
	return entry, nil
}

func toAPIError(res *resty.Response) error {
	apiErr := &APIError{Status: res.StatusCode()}
	if payload, ok := res.Error().(*errorPayload); ok && payload != nil {
		apiErr.Message = payload.Message
	}
	return apiErr
}

func (p entryPayload) toModel() (model.Entry, error) {
	id, err := strconv.ParseInt(p.ID, 10, 64)
	if err != nil {
		return model.Entry{}, fmt.Errorf("parse entry id %q: %w", p.ID, err)
	}
	entry := model.Entry{
		ID:         id,
		Category:   model.Category(p.Category),
		Title:      p.Title,
		Definition: p.Definition,
		Examples:   p.Examples,
		Notes:      p.Notes,
	}
	if entry.Examples == nil {
		entry.Examples = []string{}
	}
	return entry, nil
}
