package llm

import "context"

// LLM is a language model that can produce a single, non-streaming response.
type LLM interface {
	// Name of the provider, e.g. "openai".
	Name() string

	// ModelName is the model identifier requests are sent to.
	ModelName() string

	// Generate a response from the configured messages.
	Generate(ctx context.Context, opts ...Option) (*Response, error)
}
