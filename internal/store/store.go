package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/abhisek/vokabel/internal/vocab"
)

// ErrIndexOutOfRange is returned when an entry index does not exist.
var ErrIndexOutOfRange = errors.New("entry index out of range")

// Store persists the whole vocabulary as one JSON array in a single file.
// There is no locking; concurrent writers race and the last write wins.
type Store struct {
	fs   afero.Fs
	path string
	log  logrus.FieldLogger
}

// Option configures a Store.
type Option func(*Store)

// WithFs sets the filesystem the store reads and writes. Defaults to the OS.
func WithFs(fs afero.Fs) Option {
	return func(s *Store) { s.fs = fs }
}

// WithLogger sets the logger used for recoverable problems such as a
// malformed vocabulary file.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Store) { s.log = l }
}

// Open returns a Store for the file at path, creating its parent directory.
// The file itself is created lazily by the first Load.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		fs:   afero.NewOsFs(),
		path: path,
		log:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create vocabulary directory: %w", err)
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads and normalizes the vocabulary. A missing file is created
// empty. Malformed content is logged and treated as an empty vocabulary.
func (s *Store) Load(ctx context.Context) ([]vocab.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", s.path, err)
	}
	if !exists {
		if err := s.Save(ctx, nil); err != nil {
			return nil, fmt.Errorf("create empty vocabulary: %w", err)
		}
		return []vocab.Entry{}, nil
	}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var entries []vocab.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.log.WithError(err).WithField("path", s.path).
			Warn("vocabulary file is malformed, starting with an empty vocabulary")
		return []vocab.Entry{}, nil
	}

	for _, e := range entries {
		if e.Gender == nil || !e.IsNoun() {
			continue
		}
		if _, err := vocab.ParseGender(string(*e.Gender)); err != nil {
			s.log.WithFields(logrus.Fields{
				"path":   s.path,
				"word":   e.Word,
				"gender": string(*e.Gender),
			}).Warn("dropping unrecognized gender")
		}
	}

	return vocab.NormalizeAll(entries), nil
}

// Save replaces the file with the given entries. The data is written to a
// temporary file in the same directory and renamed over the target.
func (s *Store) Save(ctx context.Context, entries []vocab.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entries == nil {
		entries = []vocab.Entry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode vocabulary: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := afero.TempFile(s.fs, dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		s.fs.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := s.fs.Rename(tmpName, s.path); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// Add appends an entry and persists the vocabulary.
func (s *Store) Add(ctx context.Context, e vocab.Entry) ([]vocab.Entry, error) {
	entries, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	entries = append(entries, e)
	if err := s.Save(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Replace overwrites the entry at index i and persists the vocabulary.
func (s *Store) Replace(ctx context.Context, i int, e vocab.Entry) ([]vocab.Entry, error) {
	entries, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(entries) {
		return nil, fmt.Errorf("replace entry %d: %w", i, ErrIndexOutOfRange)
	}
	entries[i] = e
	if err := s.Save(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Delete removes the entry at index i, persists the vocabulary, and returns
// the removed entry.
func (s *Store) Delete(ctx context.Context, i int) (vocab.Entry, error) {
	entries, err := s.Load(ctx)
	if err != nil {
		return vocab.Entry{}, err
	}
	if i < 0 || i >= len(entries) {
		return vocab.Entry{}, fmt.Errorf("delete entry %d: %w", i, ErrIndexOutOfRange)
	}
	removed := entries[i]
	entries = append(entries[:i], entries[i+1:]...)
	if err := s.Save(ctx, entries); err != nil {
		return vocab.Entry{}, err
	}
	return removed, nil
}
