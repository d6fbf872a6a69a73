// Package examples loads the curated dataset of pre-computed results that
// ships with the repository. The dataset is read-only and loaded once; it
// lets the results be browsed without any provider credentials.
package examples

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

const (
	CategoryImages = "images"
	CategoryAudios = "audios"
)

// Entry is one curated result. The JSON field names are the ones the dataset
// was originally produced with and are kept verbatim.
type Entry struct {
	SourceText     string  `json:"texto_original"`
	TranslatedText string  `json:"texto_traducido"`
	Score          float64 `json:"puntuacion"`
}

// Dataset maps category -> provider -> file name -> entry.
type Dataset struct {
	Images map[string]map[string]Entry `json:"images"`
	Audios map[string]map[string]Entry `json:"audios"`
}

func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}

	return &ds, nil
}

func (d *Dataset) category(name string) map[string]map[string]Entry {
	switch name {
	case CategoryImages:
		return d.Images
	case CategoryAudios:
		return d.Audios
	default:
		return nil
	}
}

// Lookup returns the entry for (category, provider, fileName).
func (d *Dataset) Lookup(category, provider, fileName string) (Entry, bool) {
	byProvider := d.category(category)
	if byProvider == nil {
		return Entry{}, false
	}
	entries, ok := byProvider[provider]
	if !ok {
		return Entry{}, false
	}
	entry, ok := entries[fileName]
	return entry, ok
}

// Providers lists the providers present in a category, sorted.
func (d *Dataset) Providers(category string) []string {
	byProvider := d.category(category)

	providers := make([]string, 0, len(byProvider))
	for name := range byProvider {
		providers = append(providers, name)
	}
	sort.Strings(providers)
	return providers
}

// Files lists the file names present in a category across all of its
// providers, sorted and deduplicated.
func (d *Dataset) Files(category string) []string {
	byProvider := d.category(category)

	seen := make(map[string]bool)
	for _, entries := range byProvider {
		for name := range entries {
			seen[name] = true
		}
	}

	files := make([]string, 0, len(seen))
	for name := range seen {
		files = append(files, name)
	}
	sort.Strings(files)
	return files
}
