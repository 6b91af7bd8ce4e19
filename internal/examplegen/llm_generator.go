package examplegen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/vokabel/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

type sentenceOutput struct {
	Sentence string `json:"sentence"`
}

// Generate asks the model for one new sentence.
func (g *LLMGenerator) Generate(ctx context.Context, in Input) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeExample)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(in, g.config)},
		},
		Schema:      SentenceSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("LLM generation failed: %w", err)
	}

	var out sentenceOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("failed to parse LLM response: %w", err)
	}

	sentence := cleanSentence(out.Sentence)
	if sentence == "" {
		return "", ErrEmptySentence
	}
	return sentence, nil
}

// cleanSentence trims whitespace and surrounding quotes the model may add.
func cleanSentence(s string) string {
	s = strings.TrimSpace(s)
	for _, q := range []string{`"`, "„", "“", "”", "'"} {
		s = strings.TrimPrefix(s, q)
		s = strings.TrimSuffix(s, q)
	}
	return strings.TrimSpace(s)
}
