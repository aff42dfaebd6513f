package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/deepnoodle-ai/structure/llm"
	"github.com/deepnoodle-ai/structure/log"
	"github.com/deepnoodle-ai/structure/providers"
	"github.com/deepnoodle-ai/structure/schema"
	"github.com/deepnoodle-ai/wonton/assert"
)

const completionBody = `{
	"id": "chatcmpl-123",
	"object": "chat.completion",
	"created": 1727000000,
	"model": "gpt-4o-2024-08-06",
	"choices": [{
		"index": 0,
		"message": {"role": "assistant", "content": "{\"name\":\"Ada\",\"age\":36}", "refusal": null},
		"finish_reason": "stop",
		"logprobs": null
	}],
	"usage": {"prompt_tokens": 12, "completion_tokens": 9, "total_tokens": 21}
}`

type recordedRequest struct {
	path string
	auth string
	body map[string]any
}

func newTestServer(t *testing.T, status int, body string, calls *int32, recorded *recordedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		data, _ := io.ReadAll(r.Body)
		if recorded != nil {
			recorded.path = r.URL.Path
			recorded.auth = r.Header.Get("Authorization")
			_ = json.Unmarshal(data, &recorded.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func personFormat() *llm.ResponseFormat {
	m := &schema.Model{Name: "Person", Fields: []schema.Field{
		{Name: "name", Type: schema.TypeString, Required: true},
		{Name: "age", Type: schema.TypeInteger, Required: true},
	}}
	s, strict := m.StrictJSONSchema()
	return &llm.ResponseFormat{
		Type:   llm.ResponseFormatTypeJSONSchema,
		Name:   m.Name,
		Schema: s,
		Strict: strict,
	}
}

func TestGenerateStructuredOutput(t *testing.T) {
	var calls int32
	var recorded recordedRequest
	srv := newTestServer(t, http.StatusOK, completionBody, &calls, &recorded)

	provider := New(
		WithModel(ModelGPT4o),
		WithAPIKey("test-key"),
		WithEndpoint(srv.URL+"/v1"),
	)
	response, err := provider.Generate(context.Background(),
		llm.WithUserTextMessage("Ada Lovelace, 36"),
		llm.WithResponseFormat(personFormat()),
	)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), calls)

	assert.Equal(t, "chatcmpl-123", response.ID)
	assert.Equal(t, "gpt-4o-2024-08-06", response.Model)
	assert.Equal(t, llm.Assistant, response.Role)
	assert.Equal(t, `{"name":"Ada","age":36}`, response.Text)
	assert.Equal(t, "stop", response.StopReason)
	assert.Equal(t, 12, response.Usage.InputTokens)
	assert.Equal(t, 9, response.Usage.OutputTokens)

	assert.Equal(t, "/v1/chat/completions", recorded.path)
	assert.Equal(t, "Bearer test-key", recorded.auth)
	assert.Equal(t, "gpt-4o", recorded.body["model"])

	messages, ok := recorded.body["messages"].([]any)
	assert.True(t, ok)
	assert.Len(t, messages, 1)
	message := messages[0].(map[string]any)
	assert.Equal(t, "user", message["role"])
	assert.Equal(t, "Ada Lovelace, 36", message["content"])

	format := recorded.body["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	jsonSchema := format["json_schema"].(map[string]any)
	assert.Equal(t, "Person", jsonSchema["name"])
	assert.Equal(t, true, jsonSchema["strict"])
	properties := jsonSchema["schema"].(map[string]any)["properties"].(map[string]any)
	assert.Len(t, properties, 2)
}

func TestGenerateUsesContextLogger(t *testing.T) {
	var calls int32
	srv := newTestServer(t, http.StatusOK, completionBody, &calls, nil)

	var logs bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.NewWithWriter(&logs, log.LevelDebug, true))

	provider := New(WithModel(ModelGPT4o), WithAPIKey("test-key"), WithEndpoint(srv.URL+"/v1"))
	_, err := provider.Generate(ctx,
		llm.WithUserTextMessage("Ada Lovelace, 36"),
		llm.WithResponseFormat(personFormat()),
	)
	assert.NoError(t, err)
	assert.Contains(t, logs.String(), "sending chat completion request")

	// A logger given to the provider wins over the context.
	logs.Reset()
	var own bytes.Buffer
	provider = New(WithModel(ModelGPT4o), WithAPIKey("test-key"), WithEndpoint(srv.URL+"/v1"),
		WithLogger(log.NewWithWriter(&own, log.LevelDebug, true)))
	_, err = provider.Generate(ctx,
		llm.WithUserTextMessage("Ada Lovelace, 36"),
		llm.WithResponseFormat(personFormat()),
	)
	assert.NoError(t, err)
	assert.Contains(t, own.String(), "sending chat completion request")
	assert.Equal(t, "", logs.String())
}

func TestGenerateDoesNotRetry(t *testing.T) {
	var calls int32
	srv := newTestServer(t, http.StatusInternalServerError,
		`{"error": {"message": "server exploded", "type": "server_error", "param": null, "code": null}}`,
		&calls, nil)

	provider := New(WithModel(ModelGPT4o), WithAPIKey("test-key"), WithEndpoint(srv.URL+"/v1"))
	_, err := provider.Generate(context.Background(),
		llm.WithUserTextMessage("hello"),
		llm.WithResponseFormat(personFormat()),
	)
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls)

	var perr *providers.ProviderError
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusInternalServerError, perr.StatusCode())
}

func TestGenerateNoChoices(t *testing.T) {
	var calls int32
	srv := newTestServer(t, http.StatusOK,
		`{"id": "chatcmpl-empty", "object": "chat.completion", "created": 1, "model": "gpt-4o", "choices": []}`,
		&calls, nil)

	provider := New(WithModel(ModelGPT4o), WithAPIKey("test-key"), WithEndpoint(srv.URL+"/v1"))
	response, err := provider.Generate(context.Background(), llm.WithUserTextMessage("hello"))
	assert.NoError(t, err)
	assert.True(t, response.Empty())
}

func TestBuildParams(t *testing.T) {
	provider := New(WithModel(ModelO1Mini), WithMaxTokens(100))

	config := &llm.Config{}
	config.Apply(
		llm.WithSystemPrompt("be terse"),
		llm.WithUserTextMessage("hi"),
		llm.WithTemperature(0.5),
	)
	params, err := provider.buildParams(config)
	assert.NoError(t, err)
	assert.Len(t, params.Messages, 2)
	assert.Equal(t, int64(100), params.MaxCompletionTokens.Value)
	assert.Equal(t, 0.5, params.Temperature.Value)

	_, err = provider.buildParams(&llm.Config{})
	assert.ErrorContains(t, err, "no messages provided")

	config = &llm.Config{}
	config.Apply(llm.WithUserTextMessage(""))
	_, err = provider.buildParams(config)
	assert.ErrorContains(t, err, "empty message detected")

	config = &llm.Config{}
	config.Apply(
		llm.WithUserTextMessage("hi"),
		llm.WithResponseFormat(&llm.ResponseFormat{Type: llm.ResponseFormatTypeJSONSchema}),
	)
	_, err = provider.buildParams(config)
	assert.ErrorContains(t, err, "requires a schema")
}

func TestSchemaName(t *testing.T) {
	assert.Equal(t, "Person", schemaName("Person"))
	assert.Equal(t, "My_Model_v2", schemaName("My Model.v2"))
	assert.Equal(t, "response", schemaName(""))
	long := schemaName(string(make([]byte, 100)))
	assert.Equal(t, 64, len(long))
}

func TestRegistered(t *testing.T) {
	registry := providers.DefaultRegistry()

	entry, err := registry.Resolve("gpt-4o-mini")
	assert.NoError(t, err)
	assert.Equal(t, ProviderName, entry.Name)

	assert.True(t, registry.SupportsStructuredOutput("gpt-4o"))
	assert.True(t, registry.SupportsStructuredOutput("o1-mini"))
	assert.False(t, registry.SupportsStructuredOutput("gpt-4"))

	entry, err = registry.Resolve("gpt-4")
	assert.NoError(t, err)
	assert.Contains(t, entry.Models, ModelGPT4o)
	model, err := entry.Factory("gpt-4", providers.Settings{APIKey: "k"})
	assert.NoError(t, err)
	assert.Equal(t, "gpt-4", model.ModelName())
	assert.Equal(t, ProviderName, model.Name())
}
