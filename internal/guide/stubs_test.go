package guide_test

import (
	"context"
	"sync"

	"grammarguide/internal/guide"
	"grammarguide/internal/model"
)

type stubLister struct {
	entries []model.Entry
	err     error
	calls   int
}

func (s *stubLister) List(context.Context) ([]model.Entry, error) {
	s.calls++
	return s.entries, s.err
}

type stubCreator struct {
	mu       sync.Mutex
	requests []model.NewEntry
	nextID   int64
	err      error
	release  chan struct{}
	started  chan struct{}
}

func (s *stubCreator) Create(ctx context.Context, req model.NewEntry) (model.Entry, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.nextID++
	id := s.nextID
	s.mu.Unlock()

	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	if s.err != nil {
		return model.Entry{}, s.err
	}
	return model.Entry{
		ID:         id,
		Category:   req.Category,
		Title:      req.Title,
		Definition: req.Definition,
		Examples:   req.Examples,
		Notes:      req.Notes,
	}, nil
}

type memoryThemes struct {
	theme   guide.Theme
	loadErr error
	saveErr error
	saves   []guide.Theme
}

func (m *memoryThemes) LoadTheme(context.Context) (guide.Theme, error) {
	return m.theme, m.loadErr
}

func (m *memoryThemes) SaveTheme(_ context.Context, theme guide.Theme) error {
	m.saves = append(m.saves, theme)
	if m.saveErr != nil {
		return m.saveErr
	}
	m.theme = theme
	return nil
}
