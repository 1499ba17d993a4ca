package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid")
)

// TitleConflictError is returned when an entry with the same title exists.
type TitleConflictError struct {
	Title string
}

func (e *TitleConflictError) Error() string {
	return fmt.Sprintf("entry %q already exists", e.Title)
}

func (e *TitleConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ValidationError carries one human-readable message per rejected field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	messages := make([]string, 0, len(names))
	for _, name := range names {
		messages = append(messages, e.Fields[name])
	}
	return "validation failed: " + strings.Join(messages, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}
