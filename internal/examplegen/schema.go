package examplegen

import "github.com/abhisek/vokabel/internal/llm"

// SentenceSchema defines the JSON schema for example sentence responses.
var SentenceSchema = &llm.Schema{
	Name:        "example-sentence",
	Description: "One new German example sentence for a vocabulary word",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sentence": map[string]any{
				"type":        "string",
				"description": "The example sentence in German, without translation or explanation",
			},
		},
		"required":             []any{"sentence"},
		"additionalProperties": false,
	},
}
