package vocab

import "slices"

// MaxExampleHistory is the number of prior example sentences kept per entry.
const MaxExampleHistory = 5

// Entry is a single vocabulary record together with its learning metadata.
// The JSON layout matches the on-disk vocabulary file.
type Entry struct {
	Word         string       `json:"word" yaml:"word"`
	PartOfSpeech PartOfSpeech `json:"part_of_speech" yaml:"part_of_speech"`

	// Gender is set only for nouns.
	Gender *Gender `json:"gender,omitempty" yaml:"gender,omitempty"`

	Definition string `json:"definition" yaml:"definition"`
	Example    string `json:"example" yaml:"example"`

	PreviousExample *string  `json:"previous_example" yaml:"previous_example,omitempty"`
	ExampleHistory  []string `json:"example_history" yaml:"example_history,omitempty"`

	Category   Category `json:"category" yaml:"category,omitempty"`
	TimesAsked int      `json:"times_asked" yaml:"times_asked,omitempty"`

	// LastAsked is a Unix timestamp in seconds; 0 means never asked.
	LastAsked int64 `json:"last_asked" yaml:"last_asked,omitempty"`

	// LastExampleRefresh is the value of TimesAsked when the example was
	// last replaced.
	LastExampleRefresh int `json:"last_example_refresh" yaml:"last_example_refresh,omitempty"`
}

// IsNoun reports whether the entry is a noun.
func (e *Entry) IsNoun() bool {
	return e.PartOfSpeech == Noun
}

// GenderValue returns the gender or "" when none is set.
func (e *Entry) GenderValue() Gender {
	if e.Gender == nil {
		return ""
	}
	return *e.Gender
}

// PreviousExampleValue returns the previous example or "" when none is set.
func (e *Entry) PreviousExampleValue() string {
	if e.PreviousExample == nil {
		return ""
	}
	return *e.PreviousExample
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	out := e
	if e.Gender != nil {
		g := *e.Gender
		out.Gender = &g
	}
	if e.PreviousExample != nil {
		p := *e.PreviousExample
		out.PreviousExample = &p
	}
	if e.ExampleHistory != nil {
		out.ExampleHistory = slices.Clone(e.ExampleHistory)
	}
	return out
}

// Normalize backfills missing or out-of-range tracking fields so that
// callers never observe a partially shaped entry, whatever schema version
// wrote the file. It is idempotent.
func Normalize(e Entry) Entry {
	e = e.Clone()

	if !e.Category.Valid() {
		e.Category = CategoryNew
	}
	if e.TimesAsked < 0 {
		e.TimesAsked = 0
	}
	if e.LastAsked < 0 {
		e.LastAsked = 0
	}
	if e.LastExampleRefresh < 0 {
		e.LastExampleRefresh = 0
	}
	if e.ExampleHistory == nil {
		e.ExampleHistory = []string{}
	}
	if len(e.ExampleHistory) > MaxExampleHistory {
		e.ExampleHistory = e.ExampleHistory[len(e.ExampleHistory)-MaxExampleHistory:]
	}

	// Only nouns keep a gender, and only one that parses.
	if raw := e.Gender; raw != nil {
		e.Gender = nil
		if g, err := ParseGender(string(*raw)); err == nil && e.IsNoun() {
			e.Gender = &g
		}
	}

	return e
}

// NormalizeAll applies Normalize to every entry.
func NormalizeAll(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = Normalize(e)
	}
	return out
}
