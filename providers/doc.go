// Package providers contains the model registry and shared error types.
//
// Providers self-register via init() functions using [Register]. Each entry
// pairs a matcher that claims model identifiers with a second matcher that
// decides whether a claimed model supports structured output. Matchers are
// built from [PrefixMatcher], [ContainsAnyMatcher], [GlobMatcher] and the
// [Except] and [AnyOf] combinators.
//
// Providers live in subpackages:
//
//   - [github.com/deepnoodle-ai/structure/providers/openai] - Chat Completions structured output
//   - [github.com/deepnoodle-ai/structure/providers/google] - Gemini response schemas
package providers
