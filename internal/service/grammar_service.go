package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"grammarguide/internal/logger"
	"grammarguide/internal/model"
	"grammarguide/internal/repository"
)

//go:generate mockgen -source=grammar_service.go -destination=mock/mock_grammar_service.go -package=mock

// CreateEntryParams is the caller's candidate entry. Examples are expected
// to be split into lines already; blank items are dropped.
type CreateEntryParams struct {
	Category   string   `json:"category" validate:"required,oneof=tense part-of-speech be-verb preposition either-neither"`
	Title      string   `json:"title" validate:"required,max=255"`
	Definition string   `json:"definition" validate:"required"`
	Examples   []string `json:"examples" validate:"dive,required"`
	Notes      *string  `json:"notes"`
}

type GrammarService interface {
	List(ctx context.Context) ([]model.Entry, error)
	Create(ctx context.Context, params CreateEntryParams) (model.Entry, error)
	Ping(ctx context.Context) error
}

type grammarService struct {
	entries   repository.EntryRepository
	validator *entryValidator
}

func NewGrammarService(entries repository.EntryRepository) (GrammarService, error) {
	v, err := newEntryValidator()
	if err != nil {
		return nil, err
	}
	return &grammarService{entries: entries, validator: v}, nil
}

func (s *grammarService) List(ctx context.Context) ([]model.Entry, error) {
	entries, err := s.entries.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	return entries, nil
}

func (s *grammarService) Create(ctx context.Context, params CreateEntryParams) (model.Entry, error) {
	params = normalize(params)
	if err := s.validator.check(params); err != nil {
		logger.Debug("entry rejected", "module", "service", "action", "create", "resource", "entry", "result", "failed", "error", err)
		return model.Entry{}, err
	}

	entry, err := s.entries.Insert(ctx, model.Entry{
		Category:   model.Category(params.Category),
		Title:      params.Title,
		Definition: params.Definition,
		Examples:   params.Examples,
		Notes:      params.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateTitle):
			logger.Info("entry rejected", "module", "service", "action", "create", "resource", "entry", "result", "failed", "reason", "duplicate_title", "title", params.Title)
			return model.Entry{}, &TitleConflictError{Title: params.Title}
		case errors.Is(err, repository.ErrInvalidEntry):
			return model.Entry{}, fmt.Errorf("%w: %w", ErrInvalid, err)
		default:
			return model.Entry{}, fmt.Errorf("create entry: %w", err)
		}
	}

	logger.Info("entry created", "module", "service", "action", "create", "resource", "entry", "result", "ok", "entry_id", entry.ID, "category", string(entry.Category))
	return entry, nil
}

func (s *grammarService) Ping(ctx context.Context) error {
	return s.entries.Ping(ctx)
}

func normalize(params CreateEntryParams) CreateEntryParams {
	params.Category = strings.TrimSpace(params.Category)
	params.Title = strings.TrimSpace(params.Title)
	params.Definition = strings.TrimSpace(params.Definition)

	examples := make([]string, 0, len(params.Examples))
	for _, example := range params.Examples {
		if trimmed := strings.TrimSpace(example); trimmed != "" {
			examples = append(examples, trimmed)
		}
	}
	params.Examples = examples

	if params.Notes != nil {
		notes := strings.TrimSpace(*params.Notes)
		if notes == "" {
			params.Notes = nil
		} else {
			params.Notes = &notes
		}
	}
	return params
}
