package vocab

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func genderPtr(g Gender) *Gender { return &g }

func TestNormalize_BackfillsMissingFields(t *testing.T) {
	var e Entry
	raw := `{"word":"Haus","part_of_speech":"noun","gender":"das (neutral)","definition":"house","example":"Das Haus ist groß."}`
	require.NoError(t, json.Unmarshal([]byte(raw), &e))

	n := Normalize(e)

	assert.Equal(t, CategoryNew, n.Category)
	assert.Equal(t, 0, n.TimesAsked)
	assert.Equal(t, int64(0), n.LastAsked)
	assert.Nil(t, n.PreviousExample)
	assert.Equal(t, 0, n.LastExampleRefresh)
	assert.NotNil(t, n.ExampleHistory)
	assert.Empty(t, n.ExampleHistory)
	require.NotNil(t, n.Gender)
	assert.Equal(t, Neutral, *n.Gender)
}

func TestNormalize_PreservesPresentFields(t *testing.T) {
	e := Entry{
		Word:               "laufen",
		PartOfSpeech:       Verb,
		Definition:         "to run",
		Example:            "Ich laufe.",
		PreviousExample:    strPtr("Er läuft."),
		ExampleHistory:     []string{"Er läuft."},
		Category:           CategoryIncorrect,
		TimesAsked:         7,
		LastAsked:          1700000000,
		LastExampleRefresh: 6,
	}

	assert.Equal(t, e, Normalize(e))
}

func TestNormalize_InvalidCategoryBecomesNew(t *testing.T) {
	n := Normalize(Entry{Word: "x", PartOfSpeech: Other, Category: "mastered"})
	assert.Equal(t, CategoryNew, n.Category)
}

func TestNormalize_DropsGenderOnNonNoun(t *testing.T) {
	n := Normalize(Entry{Word: "schnell", PartOfSpeech: Adjective, Gender: genderPtr(Masculine)})
	assert.Nil(t, n.Gender)
}

func TestNormalize_CanonicalizesGender(t *testing.T) {
	n := Normalize(Entry{Word: "Tisch", PartOfSpeech: Noun, Gender: genderPtr("der")})
	require.NotNil(t, n.Gender)
	assert.Equal(t, Masculine, *n.Gender)

	for _, bad := range []string{"", "xyz", "der die"} {
		n := Normalize(Entry{Word: "Tisch", PartOfSpeech: Noun, Gender: genderPtr(Gender(bad))})
		assert.Nil(t, n.Gender, "gender %q should be dropped", bad)
	}

	n = Normalize(Entry{Word: "schnell", PartOfSpeech: Adjective, Gender: genderPtr("das")})
	assert.Nil(t, n.Gender, "only nouns keep a gender")
}

func TestNormalize_CapsHistory(t *testing.T) {
	n := Normalize(Entry{
		Word:           "x",
		PartOfSpeech:   Other,
		ExampleHistory: []string{"1", "2", "3", "4", "5", "6", "7"},
	})
	assert.Equal(t, []string{"3", "4", "5", "6", "7"}, n.ExampleHistory)
}

func TestNormalize_Idempotent(t *testing.T) {
	e := Entry{Word: "x", PartOfSpeech: Noun, Gender: genderPtr("die"), Category: ""}
	once := Normalize(e)
	assert.Equal(t, once, Normalize(once))
}

func TestNormalize_DoesNotAliasInput(t *testing.T) {
	e := Entry{Word: "x", PartOfSpeech: Other, ExampleHistory: []string{"a"}}
	n := Normalize(e)
	n.ExampleHistory[0] = "changed"
	assert.Equal(t, "a", e.ExampleHistory[0])
}

func TestEntry_JSONPreviousExampleNull(t *testing.T) {
	e, err := NewEntry(Fields{Word: "gehen", PartOfSpeech: Verb, Definition: "to go", Example: "Wir gehen."})
	require.NoError(t, err)

	b, err := json.Marshal(e)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	v, ok := m["previous_example"]
	assert.True(t, ok, "previous_example key should be present")
	assert.Nil(t, v)
	_, hasGender := m["gender"]
	assert.False(t, hasGender, "gender must be omitted for non-nouns")
}

func TestGender_ParseAndArticle(t *testing.T) {
	tests := []struct {
		in      string
		want    Gender
		article string
		wantErr bool
	}{
		{"der (masculine)", Masculine, "der", false},
		{"DIE", Feminine, "die", false},
		{"neutral", Neutral, "das", false},
		{"  das ", Neutral, "das", false},
		{"plural", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGender(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.article, got.Article())
		})
	}
}

func TestStats(t *testing.T) {
	e := Entry{
		Word:               "x",
		PartOfSpeech:       Other,
		ExampleHistory:     []string{"a", "b"},
		Category:           CategoryCorrect,
		TimesAsked:         4,
		LastAsked:          1700000000,
		LastExampleRefresh: 3,
	}
	s := Stats(e)
	assert.Equal(t, 4, s.TimesAsked)
	assert.Equal(t, CategoryCorrect, s.Category)
	assert.Equal(t, 3, s.ExampleCount)
	assert.Equal(t, 3, s.RefreshedAtAsk)
	assert.Equal(t, time.Unix(1700000000, 0), s.LastAsked)

	assert.True(t, Stats(Entry{}).LastAsked.IsZero())
}
