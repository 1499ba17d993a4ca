package model

import (
	"strings"
	"time"
)

// Category classifies an Entry's grammatical topic.
type Category string

const (
	CategoryTense         Category = "tense"
	CategoryPartOfSpeech  Category = "part-of-speech"
	CategoryBeVerb        Category = "be-verb"
	CategoryPreposition   Category = "preposition"
	CategoryEitherNeither Category = "either-neither"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryTense,
	CategoryPartOfSpeech,
	CategoryBeVerb,
	CategoryPreposition,
	CategoryEitherNeither,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Entry struct {
	ID         int64
	Category   Category
	Title      string
	Definition string
	Examples   []string
	Notes      *string
	CreatedAt  time.Time
}

// CompareTitles orders titles case-insensitively and breaks ties on the raw
// bytes, so the order is total.
func CompareTitles(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func CompareEntries(a, b Entry) int {
	return CompareTitles(a.Title, b.Title)
}

// NewEntry is a candidate entry before the store assigns an id.
type NewEntry struct {
	Category   Category
	Title      string
	Definition string
	Examples   []string
	Notes      *string
}
