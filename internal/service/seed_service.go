package service

import (
	"context"
	"fmt"

	"grammarguide/internal/logger"
	"grammarguide/internal/model"
	"grammarguide/internal/repository"
)

// SeedService replaces the whole store with a bundled entry set. Seed
// returns the number of entries the store holds afterwards.
type SeedService interface {
	Seed(ctx context.Context, candidates []CreateEntryParams) (int, error)
}

type seedService struct {
	entries   repository.EntryRepository
	validator *entryValidator
}

func NewSeedService(entries repository.EntryRepository) (SeedService, error) {
	v, err := newEntryValidator()
	if err != nil {
		return nil, err
	}
	return &seedService{entries: entries, validator: v}, nil
}

// Seed validates every candidate before touching the store, so a bad seed
// file leaves existing data alone.
func (s *seedService) Seed(ctx context.Context, candidates []CreateEntryParams) (int, error) {
	entries := make([]model.Entry, 0, len(candidates))
	for i, candidate := range candidates {
		candidate = normalize(candidate)
		if err := s.validator.check(candidate); err != nil {
			return 0, fmt.Errorf("seed entry %d (%q): %w", i, candidate.Title, err)
		}
		entries = append(entries, model.Entry{
			Category:   model.Category(candidate.Category),
			Title:      candidate.Title,
			Definition: candidate.Definition,
			Examples:   candidate.Examples,
			Notes:      candidate.Notes,
		})
	}

	logger.Info("clearing existing data", "module", "service", "action", "seed", "resource", "entry", "result", "ok")
	inserted, err := s.entries.ReplaceAll(ctx, entries)
	if err != nil {
		logger.Error("seeding failed", "module", "service", "action", "seed", "resource", "entry", "result", "failed", "error", err)
		return 0, err
	}

	stored, err := s.entries.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count seeded entries: %w", err)
	}
	if stored != inserted {
		return 0, fmt.Errorf("seed: store holds %d entries after inserting %d", stored, inserted)
	}
	logger.Info("database seeded", "module", "service", "action", "seed", "resource", "entry", "result", "ok", "count", stored)
	return stored, nil
}
