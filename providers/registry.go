package providers

import (
	"fmt"
	"strings"
	"sync"

	"github.com/deepnoodle-ai/structure/llm"
	"github.com/gobwas/glob"
)

// ProviderFactory creates an LLM for a model identifier.
type ProviderFactory func(model string, settings Settings) (llm.LLM, error)

// ModelMatcher determines if a model identifier matches.
type ModelMatcher func(model string) bool

// ProviderEntry pairs a matcher with its factory.
type ProviderEntry struct {
	Name    string
	Match   ModelMatcher
	Factory ProviderFactory

	// StructuredOutput decides whether a matched model can be asked for
	// schema-constrained output. A nil matcher means never.
	StructuredOutput ModelMatcher

	// Models lists well-known identifiers served by the provider.
	Models []string
}

// SupportsStructuredOutput reports whether the entry allows structured
// output for the model.
func (e ProviderEntry) SupportsStructuredOutput(model string) bool {
	return e.StructuredOutput != nil && e.StructuredOutput(model)
}

// Registry manages model-to-provider mappings.
// Providers register themselves during init() and the registry
// is used to create providers based on model names.
type Registry struct {
	mu      sync.RWMutex
	entries []ProviderEntry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a provider entry to the registry.
// Entries are checked in registration order, so register more specific
// matchers before more general ones.
func (r *Registry) Register(entry ProviderEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

// Resolve returns the first entry matching the model.
func (r *Registry) Resolve(model string) (ProviderEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.entries {
		if entry.Match(model) {
			return entry, nil
		}
	}
	return ProviderEntry{}, fmt.Errorf("%w: %q", ErrUnknownModel, model)
}

// SupportsStructuredOutput reports whether the provider that claims the
// model allows structured output for it. Unknown models are unsupported.
func (r *Registry) SupportsStructuredOutput(model string) bool {
	entry, err := r.Resolve(model)
	if err != nil {
		return false
	}
	return entry.SupportsStructuredOutput(model)
}

// Entries returns a copy of all registered provider entries.
func (r *Registry) Entries() []ProviderEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]ProviderEntry, len(r.entries))
	copy(result, r.entries)
	return result
}

// Matcher helpers

// PrefixesMatcher returns a matcher that checks for any of the given prefixes (case-insensitive).
func PrefixesMatcher(prefixes ...string) ModelMatcher {
	lowered := make([]string, len(prefixes))
	for i, p := range prefixes {
		lowered[i] = strings.ToLower(p)
	}
	return func(model string) bool {
		lower := strings.ToLower(model)
		for _, prefix := range lowered {
			if strings.HasPrefix(lower, prefix) {
				return true
			}
		}
		return false
	}
}

// ContainsAnyMatcher matches models containing any of the substrings.
func ContainsAnyMatcher(substrs ...string) ModelMatcher {
	return func(model string) bool {
		for _, s := range substrs {
			if strings.Contains(model, s) {
				return true
			}
		}
		return false
	}
}

// ExactMatcher matches one of the given identifiers exactly.
func ExactMatcher(models ...string) ModelMatcher {
	return func(model string) bool {
		for _, m := range models {
			if model == m {
				return true
			}
		}
		return false
	}
}

// GlobMatcher matches models against glob patterns such as "gemini-2*".
// It panics if a pattern does not compile.
func GlobMatcher(patterns ...string) ModelMatcher {
	globs := make([]glob.Glob, len(patterns))
	for i, p := range patterns {
		globs[i] = glob.MustCompile(strings.ToLower(p))
	}
	return func(model string) bool {
		lower := strings.ToLower(model)
		for _, g := range globs {
			if g.Match(lower) {
				return true
			}
		}
		return false
	}
}

// Except matches what inner matches, minus what excluded matches.
func Except(inner, excluded ModelMatcher) ModelMatcher {
	return func(model string) bool {
		return inner(model) && !excluded(model)
	}
}

// OpenAIStructuredOutput is the capability heuristic for OpenAI models:
// identifiers containing "o1" or "gpt-4o" support structured output, and
// the baseline "gpt-4" is rejected by exact match.
var OpenAIStructuredOutput = Except(
	ContainsAnyMatcher("o1", "gpt-4o"),
	ExactMatcher("gpt-4"),
)

// Global default registry
var defaultRegistry = NewRegistry()

// Register adds a provider entry to the default registry.
// This is typically called from provider init() functions.
func Register(entry ProviderEntry) {
	defaultRegistry.Register(entry)
}

// DefaultRegistry returns the default global registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
