package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/abhisek/vokabel/internal/vocab"
)

const defaultRelPath = "vokabel/vocabulary.json"

// DefaultPath resolves the vocabulary file path in priority order:
// 1. VOKABEL_FILE environment variable
// 2. $XDG_DATA_HOME/vokabel/vocabulary.json
func DefaultPath() (string, error) {
	if p := os.Getenv("VOKABEL_FILE"); p != "" {
		return p, EnsureDir(p)
	}

	p, err := xdg.DataFile(defaultRelPath)
	if err != nil {
		return "", fmt.Errorf("resolve data file: %w", err)
	}
	return p, nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// IndexOf returns the index of the first entry whose word matches
// case-insensitively, or -1.
func IndexOf(entries []vocab.Entry, word string) int {
	word = strings.TrimSpace(word)
	for i, e := range entries {
		if strings.EqualFold(e.Word, word) {
			return i
		}
	}
	return -1
}
