package preference

import (
	"context"
	"fmt"

	"grammarguide/internal/guide"
	"grammarguide/internal/logger"
	"grammarguide/internal/repository"
)

const themeKey = "theme"

// ThemeStore keeps the theme preference in the client's settings table.
type ThemeStore struct {
	settings repository.SettingsRepository
}

func NewThemeStore(settings repository.SettingsRepository) *ThemeStore {
	return &ThemeStore{settings: settings}
}

// LoadTheme returns the saved theme, or guide.DefaultTheme when nothing
// valid has been saved.
func (s *ThemeStore) LoadTheme(ctx context.Context) (guide.Theme, error) {
	setting, err := s.settings.Get(ctx, themeKey)
	if err != nil {
		return guide.DefaultTheme, fmt.Errorf("load theme: %w", err)
	}
	if setting == nil {
		return guide.DefaultTheme, nil
	}
	theme, err := guide.ParseTheme(setting.Value)
	if err != nil {
		logger.Warn("ignoring saved theme", "module", "preference", "action", "load", "resource", "theme", "result", "failed", "value", setting.Value)
		return guide.DefaultTheme, nil
	}
	return theme, nil
}

func (s *ThemeStore) SaveTheme(ctx context.Context, theme guide.Theme) error {
	if _, err := guide.ParseTheme(string(theme)); err != nil {
		return err
	}
	if err := s.settings.Set(ctx, themeKey, string(theme)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	logger.Debug("theme saved", "module", "preference", "action", "save", "resource", "theme", "result", "ok", "theme", string(theme))
	return nil
}
