package openai

const (
	ModelGPT4o         = "gpt-4o"
	ModelGPT4oMini     = "gpt-4o-mini"
	ModelGPT4o20240806 = "gpt-4o-2024-08-06"
	ModelO1            = "o1"
	ModelO1Mini        = "o1-mini"

	// These are resolved by this provider but do not support structured
	// output.
	ModelGPT4      = "gpt-4"
	ModelGPT4Turbo = "gpt-4-turbo"
	ModelGPT35     = "gpt-3.5-turbo"
	ModelO3Mini    = "o3-mini"
)

// models are the identifiers shown by "llm models".
var models = []string{
	ModelGPT4,
	ModelGPT4Turbo,
	ModelGPT4o,
	ModelGPT4oMini,
	ModelGPT35,
	ModelO1,
	ModelO1Mini,
	ModelO3Mini,
}
