// Package llm provides language-model completion clients for statement
// extraction.
package llm

import (
	"context"

	"fintrack/internal/config"
)

// Completer defines the interface for LLM completion providers.
type Completer interface {
	// Name returns the provider's registry name.
	Name() string
	// Complete sends a system message and prompt and returns the raw
	// textual completion. One attempt, no internal retry.
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Registry holds the configured completion providers. Availability is
// decided once at construction from config, never from the environment
// at call time.
type Registry struct {
	providers map[string]Completer
}

// NewRegistry builds a registry from the configured credentials. Providers
// without a credential are not registered.
func NewRegistry(cfg *config.Config) *Registry {
	r := &Registry{providers: make(map[string]Completer)}
	if cfg.HasProvider("openai") {
		r.Register(NewOpenAIClient(cfg.Credentials.OpenAI.APIKey, cfg.Extraction.OpenAIModel))
	}
	if cfg.HasProvider("gemini") {
		r.Register(NewGeminiClient(cfg.Credentials.Gemini.APIKey, cfg.Extraction.GeminiModel))
	}
	return r
}

// Register adds a provider to the registry.
func (r *Registry) Register(c Completer) {
	r.providers[c.Name()] = c
}

// Has reports whether the named provider is configured.
func (r *Registry) Has(name string) bool {
	_, ok := r.providers[name]
	return ok
}

// Get returns the named provider.
func (r *Registry) Get(name string) (Completer, bool) {
	c, ok := r.providers[name]
	return c, ok
}
