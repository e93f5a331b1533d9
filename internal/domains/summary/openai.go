package summary

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

const DefaultOpenAIModel = "gpt-4o-mini"

type OpenAIConfig struct {
	BaseURL    string
	APIKey     string
	Options    Options
	HTTPClient *http.Client
}

type openAIGenerator struct {
	url    string
	apiKey string
	opts   Options
	client *http.Client
}

// NewOpenAIGenerator builds a chat completions provider.
func NewOpenAIGenerator(cfg OpenAIConfig) (Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("openai: api key is required")
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = "https://api.openai.com"
	}
	return &openAIGenerator{
		url:    base + "/v1/chat/completions",
		apiKey: cfg.APIKey,
		opts:   cfg.Options.withDefaults(DefaultOpenAIModel),
		client: httpClient(cfg.HTTPClient),
	}, nil
}

func (g *openAIGenerator) GenerateSummary(ctx context.Context, title, author, description string) (string, error) {
	doc, err := postJSON(ctx, g.client, g.url, map[string]string{
		"Authorization": "Bearer " + g.apiKey,
	}, map[string]any{
		"model":       g.opts.Model,
		"max_tokens":  g.opts.MaxTokens,
		"temperature": g.opts.Temperature,
		"messages": []map[string]string{
			{"role": "user", "content": Prompt(title, author, description)},
		},
	})
	if err != nil {
		return "", err
	}
	return textAt(doc, "choices.0.message.content")
}
