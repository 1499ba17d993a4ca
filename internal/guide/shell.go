package guide

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"grammarguide/internal/logger"
	"grammarguide/internal/model"
)

// ErrUnknownSection is returned when selecting a key not in Sections.
var ErrUnknownSection = errors.New("unknown section")

// Shell is the presentation state machine: active section, search text,
// theme and the creation form. Rendering lives elsewhere.
type Shell struct {
	cache   *Cache
	creator Creator
	themes  ThemeStore
	form    *Form

	mu     sync.RWMutex
	active string
	search string
	theme  Theme
}

// NewShell starts on the tenses section. The theme is read from themes
// once; a read failure falls back to DefaultTheme.
func NewShell(ctx context.Context, cache *Cache, creator Creator, themes ThemeStore) *Shell {
	s := &Shell{
		cache:   cache,
		creator: creator,
		themes:  themes,
		form:    NewForm(),
		active:  SectionTenses,
		theme:   DefaultTheme,
	}
	if themes != nil {
		theme, err := themes.LoadTheme(ctx)
		if err != nil {
			logger.Warn("theme load failed", "module", "guide", "action", "load", "resource", "theme", "result", "failed", "error", err)
		} else if theme != "" {
			s.theme = theme
		}
	}
	return s
}

func (s *Shell) Cache() *Cache { return s.cache }

func (s *Shell) Form() *Form { return s.form }

// Active returns the active section.
func (s *Shell) Active() Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sec, _ := LookupSection(s.active)
	return sec
}

// Select makes key the active section.
func (s *Shell) Select(key string) error {
	if _, ok := LookupSection(key); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSection, key)
	}
	s.mu.Lock()
	s.active = key
	s.mu.Unlock()
	return nil
}

func (s *Shell) SetSearch(text string) {
	s.mu.Lock()
	s.search = text
	s.mu.Unlock()
}

func (s *Shell) Search() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.search
}

// SearchPlaceholder is the prompt shown in the search box.
func (s *Shell) SearchPlaceholder() string {
	return fmt.Sprintf("Search in %s...", s.Active().Title)
}

// Visible returns the entries the active section shows for the current search.
func (s *Shell) Visible() []model.Entry {
	s.mu.RLock()
	active, search := s.active, s.search
	s.mu.RUnlock()
	return Filter(s.cache.Entries(), active, search)
}

// NoResults reports whether a list section currently shows nothing.
func (s *Shell) NoResults() bool {
	if s.Active().IsForm() {
		return false
	}
	return len(s.Visible()) == 0
}

func (s *Shell) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// ToggleTheme flips the theme and writes it through to the store. The
// in-memory theme changes even if the write fails.
func (s *Shell) ToggleTheme(ctx context.Context) (Theme, error) {
	s.mu.Lock()
	s.theme = s.theme.Toggle()
	theme := s.theme
	s.mu.Unlock()

	if s.themes == nil {
		return theme, nil
	}
	if err := s.themes.SaveTheme(ctx, theme); err != nil {
		return theme, fmt.Errorf("save theme: %w", err)
	}
	return theme, nil
}

// Submit sends the form draft. On success the entry joins the cache and the
// section listing its category becomes active.
func (s *Shell) Submit(ctx context.Context) (model.Entry, error) {
	entry, err := s.form.Submit(ctx, s.creator)
	if err != nil {
		return model.Entry{}, err
	}

	s.cache.Add(entry)
	if key := SectionForCategory(entry.Category); key != "" {
		s.mu.Lock()
		s.active = key
		s.mu.Unlock()
	}
	logger.Info("entry added", "module", "guide", "action", "create", "resource", "entry", "result", "ok", "entry_id", entry.ID, "section", s.Active().Key)
	return entry, nil
}
