package seed

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"grammarguide/internal/service"
)

//go:embed grammar.yaml
var bundled []byte

type file struct {
	Entries []entry `yaml:"entries"`
}

type entry struct {
	Category   string   `yaml:"category"`
	Title      string   `yaml:"title"`
	Definition string   `yaml:"definition"`
	Examples   []string `yaml:"examples"`
	Notes      *string  `yaml:"notes"`
}

// Bundled returns the entries shipped with the binary.
func Bundled() ([]service.CreateEntryParams, error) {
	return parse(bundled)
}

// LoadFile reads entries from a YAML file at path.
func LoadFile(path string) ([]service.CreateEntryParams, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses entries from YAML in r.
func Read(r io.Reader) ([]service.CreateEntryParams, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read seed data: %w", err)
	}
	return parse(data)
}

func parse(data []byte) ([]service.CreateEntryParams, error) {
	var doc file
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode seed data: %w", err)
	}
	out := make([]service.CreateEntryParams, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		out = append(out, service.CreateEntryParams{
			Category:   e.Category,
			Title:      e.Title,
			Definition: e.Definition,
			Examples:   e.Examples,
			Notes:      e.Notes,
		})
	}
	return out, nil
}
