// Package grading asks a language model whether a learner's answer matches
// a vocabulary entry and turns the verdict into a category.
package grading

import (
	"bytes"
	"context"
	"strings"
	"text/template"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/vokabel/internal/llm"
	"github.com/abhisek/vokabel/internal/vocab"
)

// Fallback is the verdict shown when the model cannot be reached. It
// categorizes as incorrect.
const Fallback = "Error evaluating answer. Please try again."

// Config holds configuration for the grader.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   300,
		Temperature: 0.2,
	}
}

// Grader evaluates free-text answers. It holds no per-answer state.
type Grader struct {
	provider llm.Provider
	cfg      Config
	log      logrus.FieldLogger
}

// New creates a Grader. A nil provider makes every Grade return Fallback.
func New(provider llm.Provider, cfg Config, log logrus.FieldLogger) *Grader {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Grader{provider: provider, cfg: cfg, log: log}
}

const gradingSystemPrompt = `You check answers in a German vocabulary trainer.

Instructions:
- Evaluate if the user's answer matches the correct definition.
- The answer is correct if the meaning is accurately conveyed, even if the exact wording is different.
- For nouns, also check that the user identified the gender correctly. A wrong gender makes the answer incorrect.
- Start the response exactly like this: "Your answer is correct!" or "Your answer is incorrect!"
- Then explain briefly, in English, and give the correct answer when the user was wrong.`

var gradingUserTemplate = template.Must(template.New("grading").Parse(`German Word: {{.Word}}
Correct Definition: {{.Definition}}
{{- if .Gender}}
Correct Gender: {{.Gender}}
{{- end}}
User's Answer: {{.Answer}}`))

type promptData struct {
	Word       string
	Definition string
	Gender     string
	Answer     string
}

func buildGradingMessage(e vocab.Entry, answer string) (string, error) {
	data := promptData{
		Word:       e.Word,
		Definition: e.Definition,
		Answer:     answer,
	}
	if e.IsNoun() {
		data.Gender = string(e.GenderValue())
	}

	var buf bytes.Buffer
	if err := gradingUserTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Grade returns the model's verdict on answer. Any failure is logged and
// yields Fallback, so callers always get displayable text.
func (g *Grader) Grade(ctx context.Context, e vocab.Entry, answer string) string {
	log := g.log.WithField("word", e.Word)
	if g.provider == nil {
		log.Warn("no LLM provider configured, cannot grade")
		return Fallback
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeGrading)

	userMsg, err := buildGradingMessage(e, answer)
	if err != nil {
		log.WithError(err).Error("build grading prompt")
		return Fallback
	}

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: gradingSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		log.WithError(err).Warn("grading failed")
		return Fallback
	}

	verdict := resp.Text()
	if verdict == "" {
		log.Warn("grading returned an empty verdict")
		return Fallback
	}
	return verdict
}

// Categorize maps a verdict to a category. The opening sentence decides
// when it mentions correctness at all, otherwise the whole text does.
// "incorrect" and "not correct" win over the "correct" they contain; text
// mentioning neither is incorrect.
func Categorize(verdict string) vocab.Category {
	text := strings.ToLower(verdict)
	if cat, ok := judge(openingSentence(text)); ok {
		return cat
	}
	if cat, ok := judge(text); ok {
		return cat
	}
	return vocab.CategoryIncorrect
}

func judge(s string) (vocab.Category, bool) {
	switch {
	case strings.Contains(s, "incorrect"), strings.Contains(s, "not correct"):
		return vocab.CategoryIncorrect, true
	case strings.Contains(s, "correct"):
		return vocab.CategoryCorrect, true
	}
	return "", false
}

func openingSentence(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "!.\n"); i >= 0 {
		return s[:i]
	}
	return s
}

// ComposeAnswer builds the text submitted for grading. Nouns carry the
// chosen gender on its own line.
func ComposeAnswer(e vocab.Entry, gender, definition string) string {
	definition = strings.TrimSpace(definition)
	if !e.IsNoun() {
		return definition
	}
	return "Gender: " + strings.TrimSpace(gender) + "\nDefinition: " + definition
}
