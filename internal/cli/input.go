package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"grammarguide/internal/guide"
	"grammarguide/internal/model"
)

// readLine prints prompt to w and reads one trimmed line. A partial line
// before EOF is returned without error.
func readLine(reader *bufio.Reader, w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readMultiline reads lines until an empty one and joins them with '\n'.
func readMultiline(reader *bufio.Reader, w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt+" (empty line to finish)\n"); err != nil {
		return "", err
	}
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}
	return strings.Join(lines, "\n"), nil
}

// parseCategory accepts a category value or its 1-based position in
// model.Categories. Anything else is passed through for the form to reject.
func parseCategory(raw string) string {
	if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= len(model.Categories) {
		return string(model.Categories[n-1])
	}
	return raw
}

// promptDraft fills the form from reader. Fields already in the draft are
// offered as defaults so a failed submission can be corrected.
func promptDraft(reader *bufio.Reader, w io.Writer, form *guide.Form) error {
	draft := form.Draft()

	fmt.Fprintln(w, "Categories:")
	for i, c := range model.Categories {
		fmt.Fprintf(w, "  %d) %s\n", i+1, c)
	}

	fields := []struct {
		field   guide.Field
		label   string
		current string
	}{
		{guide.FieldCategory, "Category", draft.Category},
		{guide.FieldTitle, fmt.Sprintf("Title (max %d)", guide.MaxTitleLength), draft.Title},
		{guide.FieldDefinition, fmt.Sprintf("Definition (max %d)", guide.MaxDefinitionLength), draft.Definition},
	}
	for _, f := range fields {
		prompt := f.label + ": "
		if f.current != "" {
			prompt = fmt.Sprintf("%s [%s]: ", f.label, f.current)
		}
		value, err := readLine(reader, w, prompt)
		if err != nil {
			return err
		}
		if value == "" {
			value = f.current
		}
		if f.field == guide.FieldCategory {
			value = parseCategory(value)
		}
		if err := form.Set(f.field, value); err != nil {
			return err
		}
	}

	examples, err := readMultiline(reader, w, "Examples, one per line")
	if err != nil {
		return err
	}
	if examples == "" {
		examples = draft.Examples
	}
	if err := form.Set(guide.FieldExamples, examples); err != nil {
		return err
	}

	notes, err := readLine(reader, w, "Notes (optional): ")
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if notes == "" {
		notes = draft.Notes
	}
	return form.Set(guide.FieldNotes, notes)
}
