package vocab

import (
	"fmt"
	"strings"
)

// PartOfSpeech is the grammatical class of a vocabulary word.
type PartOfSpeech string

const (
	Noun        PartOfSpeech = "noun"
	Verb        PartOfSpeech = "verb"
	Adjective   PartOfSpeech = "adjective"
	Adverb      PartOfSpeech = "adverb"
	Preposition PartOfSpeech = "preposition"
	Conjunction PartOfSpeech = "conjunction"
	Other       PartOfSpeech = "other"
	Phrase      PartOfSpeech = "phrase"
)

// PartsOfSpeech lists every part of speech in display order.
var PartsOfSpeech = []PartOfSpeech{
	Noun, Verb, Adjective, Adverb, Preposition, Conjunction, Other, Phrase,
}

// Valid reports whether p is a known part of speech.
func (p PartOfSpeech) Valid() bool {
	for _, known := range PartsOfSpeech {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePartOfSpeech parses a part of speech case-insensitively.
func ParsePartOfSpeech(s string) (PartOfSpeech, error) {
	p := PartOfSpeech(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown part of speech %q", s)
	}
	return p, nil
}

// Gender is the grammatical gender of a noun. Values are stored in the
// same labelled form the vocabulary file has always used.
type Gender string

const (
	Masculine Gender = "der (masculine)"
	Feminine  Gender = "die (feminine)"
	Neutral   Gender = "das (neutral)"
)

// Genders lists every gender in display order.
var Genders = []Gender{Masculine, Feminine, Neutral}

// Article returns the definite article for the gender ("der", "die", "das").
func (g Gender) Article() string {
	if i := strings.IndexByte(string(g), ' '); i > 0 {
		return string(g)[:i]
	}
	return string(g)
}

// Valid reports whether g is one of the canonical genders.
func (g Gender) Valid() bool {
	for _, known := range Genders {
		if g == known {
			return true
		}
	}
	return false
}

// ParseGender accepts the stored label, the bare article, or the English
// name of a gender, case-insensitively.
func ParseGender(s string) (Gender, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "der (masculine)", "der", "masculine", "m":
		return Masculine, nil
	case "die (feminine)", "die", "feminine", "f":
		return Feminine, nil
	case "das (neutral)", "das", "neutral", "neuter", "n":
		return Neutral, nil
	}
	return "", fmt.Errorf("unknown gender %q", s)
}

// Category is the learning state of an entry. It drives selection priority
// and is only changed by grading.
type Category string

const (
	CategoryNew       Category = "new"
	CategoryCorrect   Category = "correct"
	CategoryIncorrect Category = "incorrect"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryNew, CategoryCorrect, CategoryIncorrect:
		return true
	}
	return false
}
