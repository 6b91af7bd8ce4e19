package vocab

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidFields is returned when user-supplied entry fields fail validation.
var ErrInvalidFields = errors.New("invalid entry fields")

var validate = validator.New()

// Fields holds the user-editable parts of an entry.
type Fields struct {
	Word         string       `validate:"required"`
	PartOfSpeech PartOfSpeech `validate:"required,oneof=noun verb adjective adverb preposition conjunction other phrase"`

	// Gender is required for nouns and ignored for everything else. Any
	// form accepted by ParseGender is allowed.
	Gender string `validate:"required_if=PartOfSpeech noun"`

	Definition string `validate:"required"`
	Example    string `validate:"required"`
}

func (f Fields) clean() Fields {
	f.Word = strings.TrimSpace(f.Word)
	f.PartOfSpeech = PartOfSpeech(strings.ToLower(strings.TrimSpace(string(f.PartOfSpeech))))
	f.Gender = strings.TrimSpace(f.Gender)
	f.Definition = strings.TrimSpace(f.Definition)
	f.Example = strings.TrimSpace(f.Example)
	return f
}

// Validate checks the fields and returns ErrInvalidFields on failure.
func (f Fields) Validate() error {
	f = f.clean()
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFields, err)
	}
	return nil
}

// gender resolves the gender to attach, or nil for non-nouns.
func (f Fields) gender() (*Gender, error) {
	if f.PartOfSpeech != Noun || f.Gender == "" {
		return nil, nil
	}
	g, err := ParseGender(f.Gender)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFields, err)
	}
	return &g, nil
}

// NewEntry creates a fresh entry with all tracking fields zeroed.
func NewEntry(f Fields) (Entry, error) {
	f = f.clean()
	if err := f.Validate(); err != nil {
		return Entry{}, err
	}
	g, err := f.gender()
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Word:               f.Word,
		PartOfSpeech:       f.PartOfSpeech,
		Gender:             g,
		Definition:         f.Definition,
		Example:            f.Example,
		PreviousExample:    nil,
		ExampleHistory:     []string{},
		Category:           CategoryNew,
		TimesAsked:         0,
		LastAsked:          0,
		LastExampleRefresh: 0,
	}, nil
}

// Update overwrites the user-editable fields of existing and preserves its
// tracking fields verbatim. The gender is replaced when provided for a noun
// and removed otherwise.
func Update(existing Entry, f Fields) (Entry, error) {
	f = f.clean()
	if err := f.Validate(); err != nil {
		return Entry{}, err
	}
	g, err := f.gender()
	if err != nil {
		return Entry{}, err
	}

	out := existing.Clone()
	out.Word = f.Word
	out.PartOfSpeech = f.PartOfSpeech
	out.Definition = f.Definition
	out.Example = f.Example
	out.Gender = g
	return out, nil
}

// FieldsOf extracts the editable fields from an entry, e.g. to prefill an
// edit form.
func FieldsOf(e Entry) Fields {
	return Fields{
		Word:         e.Word,
		PartOfSpeech: e.PartOfSpeech,
		Gender:       string(e.GenderValue()),
		Definition:   e.Definition,
		Example:      e.Example,
	}
}
