package structure

import (
	"context"
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/structure/llm"
	"github.com/deepnoodle-ai/structure/log"
	"github.com/deepnoodle-ai/structure/providers"
	"github.com/deepnoodle-ai/structure/schema"
)

// DefaultModel is used when no model identifier is given. It does not
// support structured output, so callers normally pass a model explicitly.
const DefaultModel = "gpt-4"

// SupportFunc reports whether a model identifier can be asked for
// structured output.
type SupportFunc func(modelID string) bool

// Options configure a Structurer.
type Options struct {
	// Registry resolves model identifiers to providers. Defaults to
	// providers.DefaultRegistry().
	Registry *providers.Registry

	// Supports decides structured output support. Defaults to the
	// registry's per-provider capability matchers.
	Supports SupportFunc

	// Settings are passed to the provider factory, keyed by provider name.
	Settings map[string]providers.Settings

	// Override is applied to the settings of the provider that serves the
	// requested model. Empty fields leave the provider's settings as is.
	Override providers.Settings

	Logger      log.Logger
	MaxTokens   int
	Temperature *float64
}

// Request is a single structure invocation.
type Request struct {
	Prompt     string
	SchemaPath string
	Model      string
}

// Structurer issues structured completion requests.
type Structurer struct {
	registry    *providers.Registry
	supports    SupportFunc
	settings    map[string]providers.Settings
	override    providers.Settings
	logger      log.Logger
	maxTokens   int
	temperature *float64
}

// New returns a Structurer.
func New(opts Options) *Structurer {
	if opts.Registry == nil {
		opts.Registry = providers.DefaultRegistry()
	}
	if opts.Supports == nil {
		opts.Supports = opts.Registry.SupportsStructuredOutput
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNullLogger()
	}
	return &Structurer{
		registry:    opts.Registry,
		supports:    opts.Supports,
		settings:    opts.Settings,
		override:    opts.Override,
		logger:      opts.Logger,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
	}
}

// Run loads the schema file and generates structured output for the prompt.
// Schema errors are returned before any model is resolved.
func (s *Structurer) Run(ctx context.Context, req Request) (string, error) {
	m, err := schema.LoadFile(req.SchemaPath)
	if err != nil {
		return "", err
	}
	return s.Generate(ctx, m, req.Prompt, req.Model)
}

// Generate makes one structured completion request constrained to the
// model's schema and returns the raw JSON content. An empty modelID selects
// DefaultModel.
func (s *Structurer) Generate(ctx context.Context, m *schema.Model, prompt, modelID string) (string, error) {
	if modelID == "" {
		modelID = DefaultModel
	}
	if strings.TrimSpace(prompt) == "" {
		return "", ErrNoPrompt
	}
	if !s.supports(modelID) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedModel, modelID)
	}

	entry, err := s.registry.Resolve(modelID)
	if err != nil {
		return "", err
	}
	model, err := entry.Factory(modelID, s.providerSettings(entry.Name))
	if err != nil {
		return "", fmt.Errorf("failed to create %s model: %w", entry.Name, err)
	}

	jsonSchema, strict := m.StrictJSONSchema()
	opts := []llm.Option{
		llm.WithUserTextMessage(prompt),
		llm.WithResponseFormat(&llm.ResponseFormat{
			Type:   llm.ResponseFormatTypeJSONSchema,
			Name:   m.Name,
			Schema: jsonSchema,
			Strict: strict,
		}),
	}
	if s.maxTokens > 0 {
		opts = append(opts, llm.WithMaxTokens(s.maxTokens))
	}
	if s.temperature != nil {
		opts = append(opts, llm.WithTemperature(*s.temperature))
	}

	s.logger.Debug("requesting structured output",
		"provider", entry.Name,
		"model", modelID,
		"schema", m.Name,
		"fields", len(m.Fields),
		"strict", strict)

	response, err := model.Generate(log.WithLogger(ctx, s.logger), opts...)
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", entry.Name, err)
	}
	if response != nil && response.Refusal != "" {
		s.logger.Warn("model refused the request", "model", modelID, "refusal", response.Refusal)
		return "", ErrEmptyResponse
	}
	if response.Empty() {
		return "", ErrEmptyResponse
	}

	s.logger.Info("received structured output",
		"model", response.Model,
		"input_tokens", response.Usage.InputTokens,
		"output_tokens", response.Usage.OutputTokens)

	if err := m.Validate([]byte(response.Text)); err != nil {
		return "", fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return response.Text, nil
}

func (s *Structurer) providerSettings(name string) providers.Settings {
	settings := s.settings[name]
	if s.override.APIKey != "" {
		settings.APIKey = s.override.APIKey
	}
	if s.override.Endpoint != "" {
		settings.Endpoint = s.override.Endpoint
	}
	if s.override.Timeout > 0 {
		settings.Timeout = s.override.Timeout
	}
	if s.override.HTTPClient != nil {
		settings.HTTPClient = s.override.HTTPClient
	}
	if s.override.Logger != nil {
		settings.Logger = s.override.Logger
	}
	return settings
}
