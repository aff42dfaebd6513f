// Package llm defines the provider-neutral request and response types used to
// ask a language model for structured output.
//
//   - [LLM] is the provider interface.
//   - [Message] carries a role and text content to the model.
//   - [Option] functions configure a request (messages, response format,
//     token limit, temperature).
//   - [ResponseFormat] constrains the model to a JSON schema.
package llm
