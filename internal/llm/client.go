package llm

import "context"

// Client is the minimal surface the agent needs from a language model
// provider. Implementations must be safe for concurrent use.
type Client interface {
	// Generate produces a completion for a single user prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// GenerateWithSystem produces a completion with an explicit system
	// prompt steering the model's behavior.
	GenerateWithSystem(ctx context.Context, system, prompt string) (string, error)
}
