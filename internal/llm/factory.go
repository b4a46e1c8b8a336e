package llm

import (
	"fmt"
	"strings"
)

// NewClient builds a Client for the named provider. Ollama is served
// through the OpenAI-compatible API its server exposes.
func NewClient(provider, apiKey, model, baseURL string) (Client, error) {
	switch strings.ToLower(provider) {
	case "claude", "anthropic":
		if apiKey == "" {
			return nil, fmt.Errorf("anthropic provider requires an API key")
		}
		return NewClaudeClient(apiKey, model), nil
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return NewOpenAIClient(apiKey, model, baseURL), nil
	case "gemini", "google":
		if apiKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return NewGeminiClient(apiKey, model), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434/v1"
		} else if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = strings.TrimSuffix(baseURL, "/") + "/v1"
		}
		// Ollama ignores the key but the client requires one.
		return NewOpenAIClient("ollama", model, baseURL), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", provider)
	}
}
