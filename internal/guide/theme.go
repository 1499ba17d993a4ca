package guide

import (
	"context"
	"fmt"
	"strings"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"

	DefaultTheme = ThemeDark
)

// ParseTheme accepts "dark" or "light" in any case.
func ParseTheme(raw string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(raw))); t {
	case ThemeDark, ThemeLight:
		return t, nil
	default:
		return "", fmt.Errorf("unknown theme %q", raw)
	}
}

func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// ThemeStore persists the theme preference across sessions.
type ThemeStore interface {
	LoadTheme(ctx context.Context) (Theme, error)
	SaveTheme(ctx context.Context, theme Theme) error
}
