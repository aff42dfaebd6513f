package llm

import "github.com/invopop/jsonschema"

// ResponseFormatType specifies the expected format of the LLM's response.
type ResponseFormatType string

const (
	ResponseFormatTypeText       ResponseFormatType = "text"
	ResponseFormatTypeJSON       ResponseFormatType = "json_object"
	ResponseFormatTypeJSONSchema ResponseFormatType = "json_schema"
)

// ResponseFormat guides an LLM's response format.
type ResponseFormat struct {
	// Type indicates the format type ("text", "json_object", or "json_schema")
	Type ResponseFormatType `json:"type"`

	// Schema the response must conform to when Type is json_schema
	Schema *jsonschema.Schema `json:"schema,omitempty"`

	// Name identifies the schema to the provider
	Name string `json:"name,omitempty"`

	// Description provides additional context to guide the model
	Description string `json:"description,omitempty"`

	// Strict asks the provider to enforce the schema exactly
	Strict bool `json:"strict,omitempty"`
}
