package model

import "time"

// Setting is a key-value pair in the client's local state database.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
