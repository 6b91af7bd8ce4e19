package llm

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

// groqModels maps friendly names to Groq model IDs. The llama3-8b-8192 ID
// was retired by Groq; its friendly names resolve to the replacement.
var groqModels = map[string]string{
	"llama3-8b":      "llama-3.1-8b-instant",
	"llama3-8b-8192": "llama-3.1-8b-instant",
	"llama3-70b":     "llama-3.3-70b-versatile",
}

// GroqProvider talks to Groq's OpenAI-compatible endpoint. Groq does not
// accept strict json_schema output for every model, so structured requests
// use JSON object mode with the schema described in the prompt.
type GroqProvider struct {
	*OpenAIProvider
}

// NewGroqProvider creates a provider targeting the Groq API.
func NewGroqProvider(cfg CompatConfig) (*GroqProvider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultGroqBaseURL
	}

	inner, err := newCompatProvider(ProviderGroq, cfg, groqModels, false)
	if err != nil {
		return nil, err
	}
	return &GroqProvider{OpenAIProvider: inner}, nil
}
