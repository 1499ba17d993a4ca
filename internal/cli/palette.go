package cli

import (
	"github.com/fatih/color"

	"grammarguide/internal/guide"
)

// Palette is the set of styles used for one theme.
type Palette struct {
	Heading *color.Color
	Title   *color.Color
	Text    *color.Color
	Muted   *color.Color
	Active  *color.Color
	Success *color.Color
	Error   *color.Color
}

var darkPalette = Palette{
	Heading: color.New(color.FgHiCyan, color.Bold),
	Title:   color.New(color.FgHiWhite, color.Bold),
	Text:    color.New(color.FgWhite),
	Muted:   color.New(color.FgHiBlack),
	Active:  color.New(color.FgHiMagenta, color.Bold),
	Success: color.New(color.FgHiGreen),
	Error:   color.New(color.FgHiRed),
}

var lightPalette = Palette{
	Heading: color.New(color.FgBlue, color.Bold),
	Title:   color.New(color.FgBlack, color.Bold),
	Text:    color.New(color.FgBlack),
	Muted:   color.New(color.FgHiBlack, color.Italic),
	Active:  color.New(color.FgMagenta, color.Bold),
	Success: color.New(color.FgGreen),
	Error:   color.New(color.FgRed),
}

func PaletteFor(theme guide.Theme) Palette {
	if theme == guide.ThemeLight {
		return lightPalette
	}
	return darkPalette
}
