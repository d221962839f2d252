package factory

import (
	"errors"
	"fmt"

	"vetscribe-be/pkg/llm"
	"vetscribe-be/pkg/llm/ollama"
	"vetscribe-be/pkg/llm/openai"
)

// ErrMissingAPIKey means the selected provider needs a key that is not set.
// Callers run in stub-only mode.
var ErrMissingAPIKey = errors.New("llm provider api key is not configured")

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "openai", "":
		if apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		return openai.NewProvider(apiKey, baseURL, modelName), nil
	case "ollama":
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
