// Package summary generates short marketing summaries for books through
// pluggable language model providers.
package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultMaxTokens   = 500
	DefaultTemperature = 0.7
)

var (
	ErrUnknownProvider = errors.New("unknown summary provider")
	ErrEmptySummary    = errors.New("provider returned an empty summary")
)

// Generator produces a summary for one book.
type Generator interface {
	GenerateSummary(ctx context.Context, title, author, description string) (string, error)
}

// Options are the sampling settings shared by the HTTP providers.
type Options struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

func (o Options) withDefaults(model string) Options {
	if o.Model == "" {
		o.Model = model
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = DefaultMaxTokens
	}
	if o.Temperature <= 0 {
		o.Temperature = DefaultTemperature
	}
	return o
}

// Prompt is the instruction sent to every provider.
func Prompt(title, author, description string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a concise, engaging 2-3 sentence summary for a book titled \"%s\" by %s.", title, author)
	if d := strings.TrimSpace(description); d != "" {
		b.WriteString(" Here's some context about the book: ")
		b.WriteString(d)
	}
	b.WriteString(" Focus on what makes this book interesting and worth reading.")
	return b.String()
}
