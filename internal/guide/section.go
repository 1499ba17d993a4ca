package guide

import (
	"regexp"
	"strings"

	"grammarguide/internal/model"
)

const (
	SectionTenses        = "tenses"
	SectionPartsOfSpeech = "parts-of-speech"
	SectionBeVerbs       = "be-verbs"
	SectionPrepositions  = "prepositions"
	SectionEitherNeither = "either-neither"
	// SectionAddContent is the creation form. It never lists entries.
	SectionAddContent = "add-content"
)

// Section is a navigation target. List sections carry the category they show.
type Section struct {
	Key      string
	Title    string
	Category model.Category
}

// IsForm reports whether the section is the creation form.
func (s Section) IsForm() bool {
	return s.Key == SectionAddContent
}

// Sections is the navigation table in display order.
var Sections = []Section{
	{Key: SectionTenses, Title: "English Tenses", Category: model.CategoryTense},
	{Key: SectionPartsOfSpeech, Title: "Parts of Speech", Category: model.CategoryPartOfSpeech},
	{Key: SectionBeVerbs, Title: "Be Verbs", Category: model.CategoryBeVerb},
	{Key: SectionPrepositions, Title: "Prepositions", Category: model.CategoryPreposition},
	{Key: SectionEitherNeither, Title: "Either/Neither", Category: model.CategoryEitherNeither},
	{Key: SectionAddContent, Title: "Add New Content"},
}

func LookupSection(key string) (Section, bool) {
	for _, s := range Sections {
		if s.Key == key {
			return s, true
		}
	}
	return Section{}, false
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// SectionForCategory returns the key of the section that lists category.
// The category with whitespace runs replaced by hyphens is tried as a key
// first, then the table is searched by category. Returns "" if neither matches.
func SectionForCategory(category model.Category) string {
	key := whitespaceRun.ReplaceAllString(strings.TrimSpace(string(category)), "-")
	if s, ok := LookupSection(key); ok && !s.IsForm() {
		return s.Key
	}
	for _, s := range Sections {
		if s.Category != "" && s.Category == model.Category(key) {
			return s.Key
		}
	}
	return ""
}
