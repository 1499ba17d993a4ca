package cli

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"grammarguide/internal/guide"
	"grammarguide/internal/model"
)

const defaultWidth = 80

// getSize is a test seam for term.GetSize.
var getSize = term.GetSize

// TerminalWidth returns the width of the terminal on fd, or 80 when fd is
// not a terminal.
func TerminalWidth(fd int) int {
	width, _, err := getSize(fd)
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// Renderer draws shell state as text.
type Renderer struct {
	w     io.Writer
	width int
}

func NewRenderer(w io.Writer, width int) *Renderer {
	if width <= 0 {
		width = defaultWidth
	}
	return &Renderer{w: w, width: width}
}

// Nav lists every section, marking the active one.
func (r *Renderer) Nav(shell *guide.Shell) {
	p := PaletteFor(shell.Theme())
	active := shell.Active().Key
	for _, s := range guide.Sections {
		if s.Key == active {
			p.Active.Fprintf(r.w, "> %-16s %s\n", s.Key, s.Title)
			continue
		}
		p.Muted.Fprintf(r.w, "  %-16s %s\n", s.Key, s.Title)
	}
	p.Muted.Fprintf(r.w, "%d entries loaded.\n", shell.Cache().Len())
}

// Section draws the active section: its entries, or the form status when
// the creation form is active.
func (r *Renderer) Section(shell *guide.Shell) {
	p := PaletteFor(shell.Theme())
	active := shell.Active()
	p.Heading.Fprintln(r.w, active.Title)
	p.Heading.Fprintln(r.w, strings.Repeat("=", min(len(active.Title), r.width)))

	if active.IsForm() {
		if shell.Form().Submitting() {
			p.Muted.Fprintln(r.w, "Submitting...")
			return
		}
		r.Status(shell.Theme(), shell.Form().Status())
		return
	}

	if search := shell.Search(); search != "" {
		p.Muted.Fprintf(r.w, "%s %s\n", shell.SearchPlaceholder(), search)
	}
	if err := shell.Cache().LoadErr(); err != nil {
		p.Error.Fprintln(r.w, "Could not load entries from the server.")
	}

	entries := shell.Visible()
	if len(entries) == 0 {
		p.Muted.Fprintln(r.w, "No results found.")
		return
	}
	for _, e := range entries {
		fmt.Fprintln(r.w)
		r.Entry(shell.Theme(), e)
	}
}

// Entry draws one entry card.
func (r *Renderer) Entry(theme guide.Theme, e model.Entry) {
	p := PaletteFor(theme)
	p.Title.Fprintln(r.w, e.Title)
	for _, line := range wrap(e.Definition, r.width) {
		p.Text.Fprintln(r.w, line)
	}
	if len(e.Examples) > 0 {
		p.Heading.Fprintln(r.w, "Examples:")
		for _, ex := range e.Examples {
			for i, line := range wrap(ex, r.width-4) {
				prefix := "    "
				if i == 0 {
					prefix = "  - "
				}
				p.Text.Fprintln(r.w, prefix+line)
			}
		}
	}
	if e.Notes != nil && *e.Notes != "" {
		for i, line := range wrap(*e.Notes, r.width-7) {
			prefix := "       "
			if i == 0 {
				prefix = "Notes: "
			}
			p.Muted.Fprintln(r.w, prefix+line)
		}
	}
}

// Status draws a form status message, if any.
func (r *Renderer) Status(theme guide.Theme, s guide.Status) {
	p := PaletteFor(theme)
	switch s.Kind {
	case guide.StatusSuccess:
		p.Success.Fprintln(r.w, s.Message)
	case guide.StatusError:
		p.Error.Fprintln(r.w, s.Message)
	}
}

// wrap breaks text into lines no wider than width, splitting on spaces.
func wrap(text string, width int) []string {
	if width < 20 {
		width = 20
	}
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if len([]rune(line))+1+len([]rune(word)) > width {
				lines = append(lines, line)
				line = word
				continue
			}
			line += " " + word
		}
		lines = append(lines, line)
	}
	return lines
}
