package summary

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

const (
	DefaultClaudeModel = "claude-3-5-sonnet-20241022"
	anthropicVersion   = "2023-06-01"
)

// ClaudeConfig configures the Anthropic Messages API provider.
type ClaudeConfig struct {
	BaseURL    string
	APIKey     string
	Options    Options
	HTTPClient *http.Client
}

type claudeGenerator struct {
	url    string
	apiKey string
	opts   Options
	client *http.Client
}

func NewClaudeGenerator(cfg ClaudeConfig) (Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("claude: api key is required")
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = "https://api.anthropic.com"
	}
	return &claudeGenerator{
		url:    base + "/v1/messages",
		apiKey: cfg.APIKey,
		opts:   cfg.Options.withDefaults(DefaultClaudeModel),
		client: httpClient(cfg.HTTPClient),
	}, nil
}

func (g *claudeGenerator) GenerateSummary(ctx context.Context, title, author, description string) (string, error) {
	doc, err := postJSON(ctx, g.client, g.url, map[string]string{
		"x-api-key":         g.apiKey,
		"anthropic-version": anthropicVersion,
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
	// First text block of the response content.
	return textAt(doc, `content.#(type=="text").text`)
}
