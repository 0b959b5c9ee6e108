package filesystem

import (
	"bufio"
	"os"
	"strings"

	"launchtree/internal/domain"
)

// DropImporter turns dropped paths and URLs into node candidates
type DropImporter struct{}

// NewDropImporter creates a new DropImporter
func NewDropImporter() *DropImporter {
	return &DropImporter{}
}

// BuildDropEntries classifies each non-blank value: web URLs and .url
// shortcut files pointing at one become url entries, anything else a path
// entry named after its last path element.
func (d *DropImporter) BuildDropEntries(values []string) []domain.DropEntry {
	var entries []domain.DropEntry
	for _, raw := range values {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}

		if isWebURL(value) {
			entries = append(entries, domain.DropEntry{Type: domain.NodeTypeURL, Name: value, Target: value})
			continue
		}

		if link := parseURLShortcut(value); link != "" && isWebURL(link) {
			entries = append(entries, domain.DropEntry{Type: domain.NodeTypeURL, Name: link, Target: link})
			continue
		}

		name := baseName(value)
		if name == "" {
			name = value
		}
		entries = append(entries, domain.DropEntry{Type: domain.NodeTypePath, Name: name, Target: value})
	}
	return entries
}

func isWebURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// baseName returns the last element of a path using either separator,
// so Windows paths are named the same on every platform
func baseName(path string) string {
	path = strings.TrimRight(path, `/\`)
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// parseURLShortcut reads the URL= line of an Internet Shortcut file.
// Returns "" for anything that is not a readable .url file.
func parseURLShortcut(path string) string {
	if !strings.EqualFold(fileExt(path), ".url") || !fileExists(path) {
		return ""
	}

	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) >= 4 && strings.EqualFold(line[:4], "URL=") {
			return strings.TrimSpace(line[4:])
		}
	}
	return ""
}

func fileExt(path string) string {
	name := baseName(path)
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[i:]
	}
	return ""
}
