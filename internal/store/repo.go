package store

import (
	"context"

	"github.com/abhisek/vokabel/internal/vocab"
)

// Repository is the vocabulary persistence surface used by the screens and
// commands. *Store is the only production implementation.
type Repository interface {
	// Load returns the normalized vocabulary. A missing file yields an
	// empty vocabulary.
	Load(ctx context.Context) ([]vocab.Entry, error)

	// Save replaces the whole vocabulary.
	Save(ctx context.Context, entries []vocab.Entry) error

	// Add appends an entry and returns the updated vocabulary.
	Add(ctx context.Context, e vocab.Entry) ([]vocab.Entry, error)

	// Replace overwrites the entry at index i.
	Replace(ctx context.Context, i int, e vocab.Entry) ([]vocab.Entry, error)

	// Delete removes the entry at index i and returns it.
	Delete(ctx context.Context, i int) (vocab.Entry, error)
}

var _ Repository = (*Store)(nil)
