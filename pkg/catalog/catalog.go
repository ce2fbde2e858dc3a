package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Entry is a single card in the catalog. Entries are static content loaded
// once at startup and never mutated.
type Entry struct {
	Title               string   `json:"title" yaml:"title"`
	Principles          []string `json:"principles" yaml:"principles"`
	WeAdopt             []string `json:"we_adopt" yaml:"weAdopt"`
	NotConfuseWith      []string `json:"not_confuse_with" yaml:"notConfuseWith"`
	ReflectionQuestions []string `json:"reflection_questions" yaml:"reflectionQuestions"`
}

// ErrEmptyCatalog is returned when a catalog file contains no entries
var ErrEmptyCatalog = errors.New("catalog must contain at least one entry")

// Load reads a catalog from a YAML file
func Load(path string) ([]*Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var entries []*Entry
	if err := yaml.NewDecoder(file).Decode(&entries); err != nil {
		return nil, fmt.Errorf("could not parse catalog: %w", err)
	}

	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}

	for i, entry := range entries {
		if entry.Title == "" {
			return nil, fmt.Errorf("catalog entry %d is missing a title", i)
		}
	}

	return entries, nil
}
