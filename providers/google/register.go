package google

import (
	"github.com/deepnoodle-ai/structure/llm"
	"github.com/deepnoodle-ai/structure/providers"
)

func init() {
	providers.Register(providers.ProviderEntry{
		Name:             ProviderName,
		Match:            providers.GlobMatcher("gemini-*"),
		Factory:          factory,
		StructuredOutput: providers.GlobMatcher("gemini-1.5*", "gemini-2*", "gemini-3*"),
		Models:           models,
	})
}

func factory(model string, settings providers.Settings) (llm.LLM, error) {
	opts := []Option{WithModel(model)}
	if settings.APIKey != "" {
		opts = append(opts, WithAPIKey(settings.APIKey))
	}
	if settings.Endpoint != "" {
		opts = append(opts, WithEndpoint(settings.Endpoint))
	}
	if settings.HTTPClient != nil {
		opts = append(opts, WithClient(settings.HTTPClient))
	}
	if settings.Timeout > 0 {
		opts = append(opts, WithTimeout(settings.Timeout))
	}
	if settings.Logger != nil {
		opts = append(opts, WithLogger(settings.Logger))
	}
	return New(opts...), nil
}
