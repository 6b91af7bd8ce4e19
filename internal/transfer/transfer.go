// Package transfer imports and exports vocabulary as JSON or YAML.
package transfer

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/abhisek/vokabel/internal/store"
	"github.com/abhisek/vokabel/internal/vocab"
)

// Format is a serialization format.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat parses a format name. An empty name falls back to the
// extension of path, then to JSON.
func ParseFormat(name, path string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "":
	default:
		return "", fmt.Errorf("unknown format %q (want json or yaml)", name)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	}
	return JSON, nil
}

// Decode reads a list of entries.
func Decode(r io.Reader, f Format) ([]vocab.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	var entries []vocab.Entry
	switch f {
	case YAML:
		err = yaml.Unmarshal(data, &entries)
	default:
		err = json.Unmarshal(data, &entries)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f, err)
	}
	return entries, nil
}

// Encode writes entries in the given format.
func Encode(w io.Writer, f Format, entries []vocab.Entry) error {
	if entries == nil {
		entries = []vocab.Entry{}
	}
	switch f {
	case YAML:
		data, err := yaml.Marshal(entries)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(entries)
	}
}

// Result reports what Merge did.
type Result struct {
	Added   int
	Skipped []string // words already present
	Invalid []string // words whose fields failed validation
}

// Merge appends incoming entries whose word is not yet in existing. Each
// entry is rebuilt through vocab.NewEntry so its learning history starts
// fresh, unless keepProgress is set, in which case the tracking fields are
// kept and only normalized.
func Merge(existing, incoming []vocab.Entry, keepProgress bool) ([]vocab.Entry, Result) {
	out := append([]vocab.Entry(nil), existing...)
	var res Result

	for _, in := range incoming {
		if store.IndexOf(out, in.Word) >= 0 {
			res.Skipped = append(res.Skipped, in.Word)
			continue
		}

		fresh, err := vocab.NewEntry(vocab.FieldsOf(in))
		if err != nil {
			res.Invalid = append(res.Invalid, in.Word)
			continue
		}
		if keepProgress {
			kept := vocab.Normalize(in)
			kept.Word, kept.PartOfSpeech, kept.Gender = fresh.Word, fresh.PartOfSpeech, fresh.Gender
			kept.Definition, kept.Example = fresh.Definition, fresh.Example
			fresh = kept
		}

		out = append(out, fresh)
		res.Added++
	}
	return out, res
}
