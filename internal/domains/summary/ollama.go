package summary

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

const DefaultOllamaModel = "llama3.1"

type OllamaConfig struct {
	BaseURL    string
	Options    Options
	HTTPClient *http.Client
}

type ollamaGenerator struct {
	url    string
	opts   Options
	client *http.Client
}

// NewOllamaGenerator targets a local Ollama server's /api/generate endpoint.
func NewOllamaGenerator(cfg OllamaConfig) (Generator, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, errors.New("ollama: base url is required")
	}
	return &ollamaGenerator{
		url:    base + "/api/generate",
		opts:   cfg.Options.withDefaults(DefaultOllamaModel),
		client: httpClient(cfg.HTTPClient),
	}, nil
}

func (g *ollamaGenerator) GenerateSummary(ctx context.Context, title, author, description string) (string, error) {
	doc, err := postJSON(ctx, g.client, g.url, nil, map[string]any{
		"model":  g.opts.Model,
		"prompt": Prompt(title, author, description),
		"stream": false,
		"options": map[string]any{
			"temperature": g.opts.Temperature,
			"num_predict": g.opts.MaxTokens,
		},
	})
	if err != nil {
		return "", err
	}
	return textAt(doc, "response")
}
