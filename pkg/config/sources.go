// ABOUTME: Source definitions for the feed registry
// ABOUTME: Combines the built-in sources with an optional YAML sources file

package config

import (
	"fmt"
	"os"
	"time"

	"rssgen-api/core/domain"

	"gopkg.in/yaml.v3"
)

// sourcesFile is the YAML layout of SOURCES_FILE
type sourcesFile struct {
	Sources []domain.SourceConfig `yaml:"sources"`
}

// DefaultSources returns the sources served without any configuration
func DefaultSources() []domain.SourceConfig {
	return []domain.SourceConfig{
		{
			ID:       "emagazine",
			Kind:     domain.SourceKindOPDS,
			URL:      "https://emagazine.link/opds/new",
			BaseHost: "emagazine.link",
			// OPDS catalogs change slowly
			TTL: 2 * time.Hour,
		},
	}
}

// LoadSources parses a YAML sources file
func LoadSources(path string) ([]domain.SourceConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sources file %s: %w", path, err)
	}

	for i := range file.Sources {
		if file.Sources[i].Kind == "" {
			file.Sources[i].Kind = domain.SourceKindOPDS
		}
		if err := file.Sources[i].Validate(); err != nil {
			return nil, fmt.Errorf("source %d (%q): %w", i, file.Sources[i].ID, err)
		}
	}

	return file.Sources, nil
}

// Sources returns the built-in sources overlaid with SourcesFile, if set.
// A file entry replaces a built-in source with the same id.
func (c *Config) Sources() ([]domain.SourceConfig, error) {
	sources := DefaultSources()
	if c.SourcesFile == "" {
		return sources, nil
	}

	extra, err := LoadSources(c.SourcesFile)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(sources))
	for i, s := range sources {
		index[s.ID] = i
	}
	for _, s := range extra {
		if i, ok := index[s.ID]; ok {
			sources[i] = s
			continue
		}
		index[s.ID] = len(sources)
		sources = append(sources, s)
	}

	return sources, nil
}
