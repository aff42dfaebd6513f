package llm

// Option is a function that configures LLM calls.
type Option func(*Config)

// Config holds the settings of a single Generate call.
type Config struct {
	Messages       []*Message
	SystemPrompt   string
	ResponseFormat *ResponseFormat
	MaxTokens      *int
	Temperature    *float64
}

// Apply applies the options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// WithMessages sets the messages for the interaction.
func WithMessages(messages ...*Message) Option {
	return func(config *Config) {
		config.Messages = messages
	}
}

// WithUserTextMessage sets a single user text message.
func WithUserTextMessage(text string) Option {
	return func(config *Config) {
		config.Messages = []*Message{NewUserTextMessage(text)}
	}
}

// WithSystemPrompt sets the system prompt.
func WithSystemPrompt(systemPrompt string) Option {
	return func(config *Config) {
		config.SystemPrompt = systemPrompt
	}
}

// WithResponseFormat constrains the response format.
func WithResponseFormat(format *ResponseFormat) Option {
	return func(config *Config) {
		config.ResponseFormat = format
	}
}

// WithMaxTokens sets the max tokens.
func WithMaxTokens(maxTokens int) Option {
	return func(config *Config) {
		config.MaxTokens = &maxTokens
	}
}

// WithTemperature sets the temperature.
func WithTemperature(temperature float64) Option {
	return func(config *Config) {
		config.Temperature = &temperature
	}
}
