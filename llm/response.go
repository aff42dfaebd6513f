package llm

// Response is the result of a Generate call.
type Response struct {
	ID         string `json:"id"`
	Model      string `json:"model"`
	Role       Role   `json:"role"`
	Text       string `json:"text"`
	Refusal    string `json:"refusal,omitempty"`
	StopReason string `json:"stop_reason,omitempty"`
	Usage      Usage  `json:"usage"`
}

// Empty reports whether the response carries no text.
func (r *Response) Empty() bool {
	return r == nil || r.Text == ""
}

// Usage contains token usage information for an LLM response.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}
