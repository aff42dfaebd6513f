package google

const (
	// Gemini 3 models (preview)
	ModelGemini3ProPreview   = "gemini-3-pro-preview"
	ModelGemini3FlashPreview = "gemini-3-flash-preview"

	// Gemini 2.5 models
	ModelGemini25Pro       = "gemini-2.5-pro"
	ModelGemini25Flash     = "gemini-2.5-flash"
	ModelGemini25FlashLite = "gemini-2.5-flash-lite"

	ModelGemini20Flash = "gemini-2.0-flash"
	ModelGemini15Pro   = "gemini-1.5-pro"
)

// models are the identifiers shown by "llm models".
var models = []string{
	ModelGemini15Pro,
	ModelGemini20Flash,
	ModelGemini25Flash,
	ModelGemini25FlashLite,
	ModelGemini25Pro,
	ModelGemini3FlashPreview,
	ModelGemini3ProPreview,
}
