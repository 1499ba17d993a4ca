package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"grammarguide/internal/guide"
)

const helpText = `Commands:
  help               show this help
  sections           list sections
  nav <section>      switch section
  search <text>      filter the current section
  clear              clear the search
  list               show the current section
  add                add a new entry
  discard            drop the unsaved add-form draft
  theme              toggle dark/light theme
  exit | quit        leave`

// RunShell is the interactive loop. It reads commands from reader until EOF
// or exit, rendering to w. Command errors are reported and the loop goes on.
func RunShell(ctx context.Context, shell *guide.Shell, reader *bufio.Reader, w io.Writer, width int) {
	r := NewRenderer(w, width)
	r.Section(shell)

	for {
		line, err := readLine(reader, w, fmt.Sprintf("\ngrammar [%s]> ", shell.Active().Key))
		if err != nil {
			return
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "":
			continue

		case "help":
			fmt.Fprintln(w, helpText)

		case "sections":
			r.Nav(shell)

		case "nav":
			if arg == "" {
				r.Nav(shell)
				continue
			}
			if err := shell.Select(arg); err != nil {
				PaletteFor(shell.Theme()).Error.Fprintf(w, "Unknown section %q. Type 'sections' to see them.\n", arg)
				continue
			}
			r.Section(shell)

		case "search":
			shell.SetSearch(arg)
			r.Section(shell)

		case "clear":
			shell.SetSearch("")
			r.Section(shell)

		case "l", "list":
			r.Section(shell)

		case "add":
			addEntry(ctx, shell, reader, w, r)

		case "discard":
			shell.Form().Reset()
			fmt.Fprintln(w, "Draft discarded.")

		case "theme":
			theme, err := shell.ToggleTheme(ctx)
			if err != nil {
				PaletteFor(theme).Error.Fprintln(w, "Theme changed but could not be saved.")
			}
			PaletteFor(theme).Success.Fprintf(w, "Theme: %s\n", theme)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}

func addEntry(ctx context.Context, shell *guide.Shell, reader *bufio.Reader, w io.Writer, r *Renderer) {
	_ = shell.Select(guide.SectionAddContent)
	r.Section(shell)

	form := shell.Form()
	if err := promptDraft(reader, w, form); err != nil {
		return
	}

	_, err := shell.Submit(ctx)
	r.Status(shell.Theme(), form.Status())
	if err != nil {
		if errors.Is(err, guide.ErrSubmitInFlight) {
			fmt.Fprintln(w, "A submission is already in progress.")
		}
		return
	}
	r.Section(shell)
}
