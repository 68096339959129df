package tsonicbackend

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// LoadOptions reads an Options document from a YAML file (ambient
// configuration convenience, SPEC_FULL.md §1A): a driver embedding this
// engine keeps its own options file on disk instead of constructing Options
// as a Go literal. Mirrors the teacher corpus's own file-read-then-unmarshal
// config loader shape (aiseeq-glint/pkg/core.LoadConfig).
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("tsonicbackend: reading options file: %w", err)
	}

	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("tsonicbackend: parsing options file: %w", err)
	}
	return opts, nil
}
