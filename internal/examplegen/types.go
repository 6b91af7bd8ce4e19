// Package examplegen produces fresh German example sentences for
// vocabulary entries.
package examplegen

import (
	"context"
	"errors"

	"github.com/abhisek/vokabel/internal/vocab"
)

// ErrEmptySentence is returned when the model produced no usable sentence.
var ErrEmptySentence = errors.New("generated sentence is empty")

// Generator produces example sentences.
type Generator interface {
	Generate(ctx context.Context, input Input) (string, error)
}

// Input is everything the generator is told about a word.
type Input struct {
	Word         string
	PartOfSpeech vocab.PartOfSpeech
	Gender       string // display label, empty for non-nouns
	Definition   string

	// Avoid lists sentences already used for this word, current first.
	Avoid []string
}

// InputFor builds the generator input for an entry. The avoid list is the
// current example, the previous example, then the history, without repeats.
func InputFor(e vocab.Entry) Input {
	in := Input{
		Word:         e.Word,
		PartOfSpeech: e.PartOfSpeech,
		Definition:   e.Definition,
	}
	if e.IsNoun() {
		in.Gender = string(e.GenderValue())
	}

	seen := make(map[string]bool)
	add := func(s string) {
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		in.Avoid = append(in.Avoid, s)
	}
	add(e.Example)
	add(e.PreviousExampleValue())
	for _, h := range e.ExampleHistory {
		add(h)
	}
	return in
}
