package guide

import (
	"strings"

	"grammarguide/internal/model"
)

// Filter returns the entries shown in section for search, in input order.
// The form section and unknown keys show nothing. Search matches title or
// definition as a case-insensitive substring; empty search matches all.
func Filter(entries []model.Entry, section, search string) []model.Entry {
	out := []model.Entry{}
	s, ok := LookupSection(section)
	if !ok || s.IsForm() {
		return out
	}

	needle := strings.ToLower(search)
	for _, e := range entries {
		if e.Category != s.Category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(e.Title), needle) &&
			!strings.Contains(strings.ToLower(e.Definition), needle) {
			continue
		}
		out = append(out, e)
	}
	return out
}
