package summary

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"

	"bookstore-catalog/internal/config"

	"github.com/rs/zerolog/log"
)

const (
	ProviderClaude   = "claude"
	ProviderOpenAI   = "openai"
	ProviderOllama   = "ollama"
	ProviderTemplate = "template"
)

// Registry maps provider names to generators.
type Registry struct {
	mu         sync.RWMutex
	generators map[string]Generator
	def        string
}

func NewRegistry(defaultProvider string) *Registry {
	return &Registry{
		generators: make(map[string]Generator),
		def:        strings.ToLower(defaultProvider),
	}
}

func (r *Registry) Register(name string, g Generator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generators[strings.ToLower(name)] = g
}

// Get resolves name (case-insensitive). An empty name selects the default.
func (r *Registry) Get(name string) (string, Generator, error) {
	if name == "" {
		name = r.Default()
	}
	name = strings.ToLower(name)

	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.generators[name]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return name, g, nil
}

// Default is the configured default if registered, otherwise the template provider.
func (r *Registry) Default() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.generators[r.def]; ok {
		return r.def
	}
	return ProviderTemplate
}

// Providers returns the registered names in sorted order.
func (r *Registry) Providers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// NewRegistryFromConfig registers every provider the configuration has
// credentials for, plus the template provider.
func NewRegistryFromConfig(cfg config.AIConfig) *Registry {
	client := &http.Client{Timeout: cfg.Timeout}
	opts := Options{MaxTokens: cfg.MaxTokens, Temperature: cfg.Temperature}

	r := NewRegistry(cfg.DefaultProvider)
	r.Register(ProviderTemplate, TemplateGenerator{})

	if cfg.AnthropicAPIKey != "" {
		o := opts
		o.Model = cfg.AnthropicModel
		if g, err := NewClaudeGenerator(ClaudeConfig{BaseURL: cfg.AnthropicURL, APIKey: cfg.AnthropicAPIKey, Options: o, HTTPClient: client}); err == nil {
			r.Register(ProviderClaude, g)
		}
	}
	if cfg.OpenAIAPIKey != "" {
		o := opts
		o.Model = cfg.OpenAIModel
		if g, err := NewOpenAIGenerator(OpenAIConfig{BaseURL: cfg.OpenAIURL, APIKey: cfg.OpenAIAPIKey, Options: o, HTTPClient: client}); err == nil {
			r.Register(ProviderOpenAI, g)
		}
	}
	if cfg.OllamaURL != "" {
		o := opts
		o.Model = cfg.OllamaModel
		if g, err := NewOllamaGenerator(OllamaConfig{BaseURL: cfg.OllamaURL, Options: o, HTTPClient: client}); err == nil {
			r.Register(ProviderOllama, g)
		}
	}

	log.Info().
		Strs("providers", r.Providers()).
		Str("default", r.Default()).
		Msg("summary providers registered")
	return r
}
