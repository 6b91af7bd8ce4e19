package examplegen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write example sentences for a German vocabulary learner.

Rules:
- Write one new, simple example sentence in German that uses the given word.
- Make it practical for learning and use common vocabulary.
- Keep the sentence length moderate.
- For nouns, use the article that matches the given gender.
- Do not explain or translate, just provide the sentence.
- The sentence must differ from every sentence in the "previous examples" list.`

// buildUserMessage describes the word and the sentences to avoid.
func buildUserMessage(in Input, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Word: %s\n", in.Word)
	fmt.Fprintf(&b, "Type: %s\n", in.PartOfSpeech)
	if in.Gender != "" {
		fmt.Fprintf(&b, "Gender: %s\n", in.Gender)
	}
	fmt.Fprintf(&b, "Definition: %s\n", in.Definition)

	b.WriteString("\nPrevious examples (create something different):\n")
	b.WriteString(buildAvoid(in.Avoid, cfg.MaxAvoid))

	return b.String()
}

// buildAvoid formats prior sentences for the prompt, respecting the max
// limit. Returns "None" if there are none.
func buildAvoid(sentences []string, max int) string {
	if len(sentences) == 0 {
		return "None"
	}
	if max > 0 && len(sentences) > max {
		sentences = sentences[:max]
	}

	var b strings.Builder
	for i, s := range sentences {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return strings.TrimRight(b.String(), "\n")
}
