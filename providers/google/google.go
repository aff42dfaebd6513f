// Package google requests structured output from Gemini models through the
// Google GenAI SDK.
package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/deepnoodle-ai/structure/llm"
	"github.com/deepnoodle-ai/structure/log"
	"github.com/deepnoodle-ai/structure/providers"
	"google.golang.org/genai"
)

const ProviderName = "google"

var DefaultModel = ModelGemini25Flash

var _ llm.LLM = &Provider{}

type Provider struct {
	apiKey     string
	endpoint   string
	version    string
	model      string
	maxTokens  int
	timeout    time.Duration
	httpClient *http.Client
	logger     log.Logger

	mu     sync.Mutex
	client *genai.Client
}

// New returns a provider. The API key defaults to GEMINI_API_KEY, then
// GOOGLE_API_KEY. The client is created on the first request.
func New(opts ...Option) *Provider {
	p := &Provider{
		model: DefaultModel,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.apiKey == "" {
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			p.apiKey = key
		} else {
			p.apiKey = os.Getenv("GOOGLE_API_KEY")
		}
	}
	return p
}

func (p *Provider) Name() string {
	return ProviderName
}

func (p *Provider) ModelName() string {
	return p.model
}

func (p *Provider) initClient(ctx context.Context) (*genai.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}
	config := &genai.ClientConfig{
		APIKey:     p.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: p.httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    p.endpoint,
			APIVersion: p.version,
		},
	}
	if p.timeout > 0 {
		timeout := p.timeout
		config.HTTPOptions.Timeout = &timeout
	}
	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	p.client = client
	return client, nil
}

func (p *Provider) Generate(ctx context.Context, opts ...llm.Option) (*llm.Response, error) {
	config := &llm.Config{}
	config.Apply(opts...)

	logger := p.logger
	if logger == nil {
		logger = log.Ctx(ctx)
	}

	contents, err := messagesToContents(config.Messages)
	if err != nil {
		return nil, err
	}
	genConfig, err := p.buildConfig(config)
	if err != nil {
		return nil, err
	}

	client, err := p.initClient(ctx)
	if err != nil {
		return nil, err
	}

	logger.Debug("sending generate content request",
		"model", p.model,
		"contents", len(contents),
		"response_mime_type", genConfig.ResponseMIMEType)

	resp, err := client.Models.GenerateContent(ctx, p.model, contents, genConfig)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, providers.NewError(apiErr.Code, apiErr.Message)
		}
		return nil, fmt.Errorf("error making request: %w", err)
	}
	return convertResponse(resp, p.model), nil
}

func (p *Provider) buildConfig(config *llm.Config) (*genai.GenerateContentConfig, error) {
	genConfig := &genai.GenerateContentConfig{}

	maxTokens := p.maxTokens
	if config.MaxTokens != nil {
		maxTokens = *config.MaxTokens
	}
	if maxTokens > 0 {
		genConfig.MaxOutputTokens = int32(maxTokens)
	}
	if config.Temperature != nil {
		temp := float32(*config.Temperature)
		genConfig.Temperature = &temp
	}
	if config.SystemPrompt != "" {
		genConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(config.SystemPrompt)},
		}
	}

	if format := config.ResponseFormat; format != nil {
		switch format.Type {
		case llm.ResponseFormatTypeJSONSchema:
			if format.Schema == nil {
				return nil, fmt.Errorf("json_schema response format requires a schema")
			}
			genConfig.ResponseMIMEType = "application/json"
			if expressible(format.Schema) {
				genConfig.ResponseSchema = convertSchema(format.Schema)
			} else {
				genConfig.ResponseJsonSchema = format.Schema
			}
		case llm.ResponseFormatTypeJSON:
			genConfig.ResponseMIMEType = "application/json"
		}
	}
	return genConfig, nil
}

// messagesToContents converts messages to genai contents. System messages
// are not part of the conversation and are rejected; use the system prompt.
func messagesToContents(messages []*llm.Message) ([]*genai.Content, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("no messages provided")
	}
	contents := make([]*genai.Content, 0, len(messages))
	for i, message := range messages {
		text := message.Text()
		if text == "" {
			return nil, fmt.Errorf("empty message detected (index %d)", i)
		}
		var role genai.Role
		switch message.Role {
		case llm.User:
			role = genai.RoleUser
		case llm.Assistant:
			role = genai.RoleModel
		default:
			return nil, fmt.Errorf("unsupported message role %q", message.Role)
		}
		contents = append(contents, genai.NewContentFromText(text, role))
	}
	return contents, nil
}

func convertResponse(resp *genai.GenerateContentResponse, model string) *llm.Response {
	response := &llm.Response{
		ID:    resp.ResponseID,
		Model: model,
		Role:  llm.Assistant,
		Text:  resp.Text(),
	}
	if resp.ModelVersion != "" {
		response.Model = resp.ModelVersion
	}
	if resp.UsageMetadata != nil {
		response.Usage = llm.Usage{
			InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		}
	}
	if len(resp.Candidates) > 0 {
		switch resp.Candidates[0].FinishReason {
		case genai.FinishReasonStop:
			response.StopReason = "stop"
		case genai.FinishReasonMaxTokens:
			response.StopReason = "max_tokens"
		case genai.FinishReasonSafety:
			response.StopReason = "safety"
			response.Refusal = resp.Candidates[0].FinishMessage
		default:
			response.StopReason = "other"
		}
	}
	return response
}
