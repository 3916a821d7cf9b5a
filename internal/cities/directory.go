// Package cities provides the static city directory backing the search
// autocomplete.
package cities

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Matching thresholds for autocomplete queries.
const (
	minQueryLength = 2
	maxResults     = 10
)

// Directory is the read-only city list used for autocomplete. It is built
// once at startup and never mutated afterwards.
type Directory struct {
	names []string
	log   *slog.Logger
}

// NewDirectory builds a directory from the compiled-in city list,
// deduplicating entries while preserving order of first appearance.
func NewDirectory(log *slog.Logger) *Directory {
	return newDirectory(log, rawCityNames)
}

// NewDirectoryFromFile builds a directory from a newline-separated city list
// file, applying the same deduplication as the compiled-in list. Blank lines
// are skipped.
func NewDirectoryFromFile(log *slog.Logger, path string) (*Directory, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open city list: %w", err)
	}
	defer file.Close()

	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" {
			names = append(names, name)
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read city list: %w", err)
	}

	return newDirectory(log, names), nil
}

func newDirectory(log *slog.Logger, names []string) *Directory {
	seen := make(map[string]bool, len(names))
	deduped := make([]string, 0, len(names))
	for _, name := range names {
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, name)
	}

	if dropped := len(names) - len(deduped); dropped > 0 {
		log.Debug("Dropped duplicate city entries from directory", "count", dropped)
	}

	return &Directory{names: deduped, log: log}
}

// Filter returns up to 10 city names matching the query, in directory order.
// Queries shorter than two characters return no matches; matching is
// case-insensitive substring containment.
func (d *Directory) Filter(query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if len(query) < minQueryLength {
		return nil
	}

	matches := make([]string, 0, maxResults)
	for _, name := range d.names {
		if strings.Contains(strings.ToLower(name), query) {
			matches = append(matches, name)
			if len(matches) == maxResults {
				break
			}
		}
	}

	return matches
}

// Len reports the number of unique cities in the directory.
func (d *Directory) Len() int {
	return len(d.names)
}
