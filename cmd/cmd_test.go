package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default between executions, since
// the command tree is package state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

type harness struct {
	t      *testing.T
	dir    string
	file   string
	config string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	config := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(config, []byte("log:\n  level: error\n"), 0o644))
	return &harness{t: t, dir: dir, file: filepath.Join(dir, "vocabulary.json"), config: config}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(append(args, "--file", h.file, "--config", h.config, "--log-stderr"))
	err := rootCmd.Execute()
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, out)
	return out
}

func TestAddListStats(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("add", "Hund", "--pos", "noun", "--gender", "der", "--definition", "dog", "--example", "Der Hund bellt.")
	assert.Contains(t, out, `Added "Hund".`)
	h.mustRun("add", "laufen", "-p", "verb", "-d", "to run", "-e", "Ich laufe.")

	out = h.mustRun("list")
	assert.Contains(t, out, "WORD")
	assert.Contains(t, out, "Hund")
	assert.Contains(t, out, "der")
	assert.Contains(t, out, "laufen")

	out = h.mustRun("list", "--rank")
	assert.Contains(t, out, "PRIORITY")

	out = h.mustRun("stats", "hund")
	assert.Contains(t, out, "der (masculine)")
	assert.Contains(t, out, "Times asked:")
	assert.Contains(t, out, "never")
}

func TestAddValidation(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("add", "Hund", "--pos", "noun", "--definition", "dog", "--example", "x")
	assert.Error(t, err, "nouns need a gender")

	_, err = h.run("add", "schnell", "--pos", "adjective")
	assert.Error(t, err)
}

func TestAddDuplicateWarns(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "gut", "-p", "adjective", "-d", "good", "-e", "Das ist gut.")
	out := h.mustRun("add", "Gut", "-p", "adjective", "-d", "good", "-e", "Sehr gut.")
	assert.Contains(t, out, "already in the vocabulary")
}

func TestEditKeepsUnchangedFields(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "Hund", "-p", "noun", "-g", "der", "-d", "dog", "-e", "Der Hund bellt.")

	out := h.mustRun("edit", "hund", "--definition", "hound")
	assert.Contains(t, out, `Updated "Hund".`)

	out = h.mustRun("stats", "Hund")
	assert.Contains(t, out, "hound")
	assert.Contains(t, out, "Der Hund bellt.")
	assert.Contains(t, out, "der (masculine)")

	_, err := h.run("edit", "Katze", "-d", "cat")
	assert.ErrorContains(t, err, "not found")
}

func TestRemove(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "gut", "-p", "adjective", "-d", "good", "-e", "Das ist gut.")
	out := h.mustRun("rm", "GUT")
	assert.Contains(t, out, `Removed "gut".`)

	out = h.mustRun("list")
	assert.Contains(t, out, "No words yet")

	_, err := h.run("rm", "gut")
	assert.Error(t, err)
}

func TestListCategoryFilter(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "gut", "-p", "adjective", "-d", "good", "-e", "Das ist gut.")

	out := h.mustRun("list", "--category", "correct")
	assert.NotContains(t, out, "gut")

	_, err := h.run("list", "--category", "bogus")
	assert.Error(t, err)
}

func TestImportExport(t *testing.T) {
	h := newHarness(t)
	src := filepath.Join(h.dir, "words.yaml")
	require.NoError(t, os.WriteFile(src, []byte(`
- word: Katze
  part_of_speech: noun
  gender: die
  definition: cat
  example: Die Katze schläft.
  category: correct
  times_asked: 5
- word: laufen
  part_of_speech: verb
  definition: to run
  example: Ich laufe.
- word: kaputt
  part_of_speech: adjective
`), 0o644))

	out := h.mustRun("import", src)
	assert.Contains(t, out, "Imported 2 word(s).")
	assert.Contains(t, out, "missing fields: kaputt")

	out = h.mustRun("import", src)
	assert.Contains(t, out, "Imported 0 word(s).")
	assert.Contains(t, out, "already present: Katze, laufen")

	out = h.mustRun("stats", "Katze")
	assert.Regexp(t, `Category:\s+new`, out, "import starts a fresh history")

	out = h.mustRun("export", "--format", "yaml")
	assert.Contains(t, out, "word: Katze")
	assert.Contains(t, out, "gender: die (feminine)")

	dst := filepath.Join(h.dir, "out.json")
	h.mustRun("export", dst)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"word": "laufen"`)
}

func TestImportKeepProgress(t *testing.T) {
	h := newHarness(t)
	src := filepath.Join(h.dir, "words.json")
	require.NoError(t, os.WriteFile(src, []byte(`[{"word":"Katze","part_of_speech":"noun","gender":"die","definition":"cat","example":"Die Katze schläft.","category":"correct","times_asked":5}]`), 0o644))

	h.mustRun("import", "--keep-progress", src)
	out := h.mustRun("stats", "Katze")
	assert.Regexp(t, `Category:\s+correct`, out)
	assert.Regexp(t, `Times asked:\s+5`, out)
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	assert.Contains(t, h.mustRun("version"), "vokabel")
}

func TestLLMCheckWithoutProvider(t *testing.T) {
	for _, k := range []string{"GROQ_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY", "VOKABEL_LLM_PROVIDER", "VOKABEL_LLM_GROQ_API_KEY"} {
		t.Setenv(k, "")
	}
	h := newHarness(t)
	_, err := h.run("llm", "check")
	assert.ErrorContains(t, err, "provider not usable")
}

func TestListAndStatsTables(t *testing.T) {
	t.Setenv("CLICOLOR_FORCE", "")
	h := newHarness(t)
	h.mustRun("add", "Hund", "-p", "noun", "-g", "der", "-d", "dog", "-e", "Der Hund bellt.")
	h.mustRun("add", "schnell", "-p", "adjective", "-d", "fast", "-e", "Das Auto ist schnell.")

	out := h.mustRun("list")
	assert.NotContains(t, out, "\x1b[", "piped output carries no color")
	assert.NotContains(t, out, "\t")
	assert.Regexp(t, `(?m)^WORD\s+TYPE\s+GENDER\s+DEFINITION\s+CATEGORY\s+ASKED\s*$`, out)
	assert.Regexp(t, `(?m)^Hund\s+noun\s+der\s+dog\s+new\s+0\s*$`, out)
	assert.Regexp(t, `(?m)^schnell\s+adjective\s+-\s+fast\s+new\s+0\s*$`, out)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	col := strings.Index(lines[0], "TYPE")
	assert.Equal(t, "noun", lines[1][col:col+4], "columns line up")

	out = h.mustRun("stats", "schnell")
	assert.NotContains(t, out, "Gender:")
	assert.Regexp(t, `(?m)^Word:\s+schnell\s*$`, out)
	assert.Regexp(t, `(?m)^Last asked:\s+never\s*$`, out)
}
