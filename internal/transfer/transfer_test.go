package transfer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vokabel/internal/vocab"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name, path string
		want       Format
		wantErr    bool
	}{
		{"", "words.yaml", YAML, false},
		{"", "words.YML", YAML, false},
		{"", "words.json", JSON, false},
		{"", "-", JSON, false},
		{"yaml", "words.json", YAML, false},
		{"JSON", "", JSON, false},
		{"csv", "", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.name, tt.path)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "ParseFormat(%q, %q)", tt.name, tt.path)
	}
}

func TestDecodeYAML(t *testing.T) {
	in := `
- word: Hund
  part_of_speech: noun
  gender: der
  definition: dog
  example: Der Hund bellt.
- word: laufen
  part_of_speech: verb
  definition: to run
  example: Ich laufe.
`
	entries, err := Decode(strings.NewReader(in), YAML)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Hund", entries[0].Word)
	assert.Equal(t, vocab.Gender("der"), entries[0].GenderValue())
	assert.Equal(t, vocab.Verb, entries[1].PartOfSpeech)
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode(strings.NewReader("{"), JSON)
	assert.Error(t, err)
}

func TestEncodeJSONKeepsUmlauts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, JSON, []vocab.Entry{{Word: "Bär", Example: "Der Bär & ich."}}))
	assert.Contains(t, buf.String(), `"word": "Bär"`)
	assert.Contains(t, buf.String(), "Der Bär & ich.")

	buf.Reset()
	require.NoError(t, Encode(&buf, JSON, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestEncodeYAMLDecodes(t *testing.T) {
	g := vocab.Feminine
	src := []vocab.Entry{{Word: "Katze", PartOfSpeech: vocab.Noun, Gender: &g, Definition: "cat", Example: "Die Katze schläft."}}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, YAML, src))
	assert.Contains(t, buf.String(), "part_of_speech: noun")

	got, err := Decode(&buf, YAML)
	require.NoError(t, err)
	assert.Equal(t, "Katze", got[0].Word)
	assert.Equal(t, vocab.Feminine, got[0].GenderValue())
}

func TestMerge(t *testing.T) {
	existing := []vocab.Entry{{Word: "Hund", PartOfSpeech: vocab.Other, Definition: "dog", Example: "x"}}
	g := vocab.Gender("die")
	incoming := []vocab.Entry{
		{Word: "hund", PartOfSpeech: vocab.Other, Definition: "dog", Example: "y"},
		{Word: "Katze", PartOfSpeech: vocab.Noun, Gender: &g, Definition: "cat", Example: "z",
			Category: vocab.CategoryCorrect, TimesAsked: 7},
		{Word: "kaputt", PartOfSpeech: vocab.Adjective},
	}

	merged, res := Merge(existing, incoming, false)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, []string{"hund"}, res.Skipped)
	assert.Equal(t, []string{"kaputt"}, res.Invalid)
	require.Len(t, merged, 2)
	assert.Equal(t, vocab.CategoryNew, merged[1].Category)
	assert.Zero(t, merged[1].TimesAsked)
	assert.Equal(t, vocab.Feminine, merged[1].GenderValue())
	assert.Len(t, existing, 1, "existing must not be modified")
}

func TestMergeKeepProgress(t *testing.T) {
	incoming := []vocab.Entry{
		{Word: " Katze ", PartOfSpeech: vocab.Other, Definition: "cat", Example: "z",
			Category: vocab.CategoryCorrect, TimesAsked: 7, LastExampleRefresh: 6},
	}
	merged, res := Merge(nil, incoming, true)
	require.Equal(t, 1, res.Added)
	assert.Equal(t, "Katze", merged[0].Word)
	assert.Equal(t, vocab.CategoryCorrect, merged[0].Category)
	assert.Equal(t, 7, merged[0].TimesAsked)
	assert.Equal(t, 6, merged[0].LastExampleRefresh)
}
