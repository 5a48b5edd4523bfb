// Package llm provides a pluggable language-model provider abstraction with a
// lazy name-keyed registry. Providers are only constructed when requested.
package llm

import (
	"context"
	"fmt"
	"sort"
)

// Provider is the single capability the pipeline needs from a language model.
// model may be empty to use the provider's default; system may be empty for no
// system instruction.
type Provider interface {
	// Complete sends a prompt and returns the raw response text.
	Complete(ctx context.Context, prompt, model, system string) (string, error)
	// Name returns the registry key of this provider.
	Name() string
}

// Factory constructs a Provider. Construction may fail, e.g. on a missing
// API key.
type Factory func(ctx context.Context) (Provider, error)

var registry = map[string]Factory{
	"gemini":    NewGeminiProvider,
	"anthropic": NewClaudeProvider,
}

// Get instantiates the provider registered under name.
func Get(ctx context.Context, name string) (Provider, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown LLM provider %q, available: %v", name, Available())
	}
	return factory(ctx)
}

// Available returns the sorted registry keys.
func Available() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
