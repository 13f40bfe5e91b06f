package factory

import (
	"fmt"

	"nestquest-be/pkg/llm"
	"nestquest-be/pkg/llm/ollama"
	"nestquest-be/pkg/llm/openai"
)

// NewProvider selects the completion backend by name. "openai" also covers
// any OpenAI-compatible gateway via baseURL.
func NewProvider(provider, model, baseURL, apiKey string) (llm.Provider, error) {
	switch provider {
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.New(apiKey, baseURL, model), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", provider)
	}
}
