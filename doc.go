// Package structure requests schema-constrained output from language models.
//
// A schema file is translated into a [schema.Model], the model identifier is
// checked for structured output support, and a single completion request is
// made with the model's JSON Schema as the response format. The returned
// payload is validated against the model before it is handed back.
//
// # Quick Start
//
//	s := structure.New(structure.Options{})
//	out, err := s.Run(ctx, structure.Request{
//	    Prompt:     "Ada Lovelace was born in 1815",
//	    SchemaPath: "person.yaml",
//	    Model:      "gpt-4o",
//	})
//
// Providers register themselves with [providers.DefaultRegistry] when their
// packages are imported. The OpenAI provider is in
// [github.com/deepnoodle-ai/structure/providers/openai] and the Gemini
// provider in [github.com/deepnoodle-ai/structure/providers/google].
package structure
