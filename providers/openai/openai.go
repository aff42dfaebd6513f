// Package openai requests structured output through the OpenAI Chat
// Completions API.
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/deepnoodle-ai/structure/llm"
	"github.com/deepnoodle-ai/structure/log"
	"github.com/deepnoodle-ai/structure/providers"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const ProviderName = "openai"

var (
	DefaultModel      = ModelGPT4o
	DefaultMaxRetries = 0
)

var _ llm.LLM = &Provider{}

type Provider struct {
	client    openai.Client
	options   []option.RequestOption
	model     string
	maxTokens int
	logger    log.Logger
}

// New returns a provider. The API key and base URL default to the
// OPENAI_API_KEY and OPENAI_BASE_URL environment variables.
func New(opts ...Option) *Provider {
	p := &Provider{
		options: []option.RequestOption{option.WithMaxRetries(DefaultMaxRetries)},
		model:   DefaultModel,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.client = openai.NewClient(p.options...)
	return p
}

func (p *Provider) Name() string {
	return ProviderName
}

func (p *Provider) ModelName() string {
	return p.model
}

func (p *Provider) Generate(ctx context.Context, opts ...llm.Option) (*llm.Response, error) {
	config := &llm.Config{}
	config.Apply(opts...)

	logger := p.logger
	if logger == nil {
		logger = log.Ctx(ctx)
	}

	params, err := p.buildParams(config)
	if err != nil {
		return nil, err
	}

	logger.Debug("sending chat completion request",
		"model", p.model,
		"messages", len(params.Messages),
		"response_format", formatName(config.ResponseFormat))

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, providers.NewError(apiErr.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("error making request: %w", err)
	}
	return convertResponse(completion), nil
}

func (p *Provider) buildParams(config *llm.Config) (openai.ChatCompletionNewParams, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
	}
	if len(config.Messages) == 0 {
		return params, fmt.Errorf("no messages provided")
	}
	if config.SystemPrompt != "" {
		params.Messages = append(params.Messages, openai.SystemMessage(config.SystemPrompt))
	}
	for i, msg := range config.Messages {
		text := msg.Text()
		if text == "" {
			return params, fmt.Errorf("empty message detected (index %d)", i)
		}
		switch msg.Role {
		case llm.User:
			params.Messages = append(params.Messages, openai.UserMessage(text))
		case llm.Assistant:
			params.Messages = append(params.Messages, openai.AssistantMessage(text))
		case llm.System:
			params.Messages = append(params.Messages, openai.SystemMessage(text))
		default:
			return params, fmt.Errorf("unsupported message role %q", msg.Role)
		}
	}

	maxTokens := p.maxTokens
	if config.MaxTokens != nil {
		maxTokens = *config.MaxTokens
	}
	if maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(maxTokens))
	}
	if config.Temperature != nil {
		params.Temperature = openai.Float(*config.Temperature)
	}

	if format := config.ResponseFormat; format != nil {
		switch format.Type {
		case llm.ResponseFormatTypeJSONSchema:
			if format.Schema == nil {
				return params, fmt.Errorf("json_schema response format requires a schema")
			}
			jsonSchema := openai.ResponseFormatJSONSchemaJSONSchemaParam{
				Name:   schemaName(format.Name),
				Schema: format.Schema,
				Strict: openai.Bool(format.Strict),
			}
			if format.Description != "" {
				jsonSchema.Description = openai.String(format.Description)
			}
			params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: jsonSchema},
			}
		case llm.ResponseFormatTypeJSON:
			params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
			}
		}
	}
	return params, nil
}

func convertResponse(completion *openai.ChatCompletion) *llm.Response {
	response := &llm.Response{
		ID:    completion.ID,
		Model: completion.Model,
		Role:  llm.Assistant,
		Usage: llm.Usage{
			InputTokens:  int(completion.Usage.PromptTokens),
			OutputTokens: int(completion.Usage.CompletionTokens),
		},
	}
	if len(completion.Choices) > 0 {
		choice := completion.Choices[0]
		response.Text = choice.Message.Content
		response.Refusal = choice.Message.Refusal
		response.StopReason = choice.FinishReason
	}
	return response
}

func formatName(format *llm.ResponseFormat) string {
	if format == nil {
		return "text"
	}
	return string(format.Type)
}
