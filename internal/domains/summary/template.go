package summary

import (
	"context"
	"fmt"
	"strings"
)

// TemplateGenerator builds a summary locally without calling a model. It is
// always registered so the endpoint works offline.
type TemplateGenerator struct{}

func (TemplateGenerator) GenerateSummary(ctx context.Context, title, author, description string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(author) == "" {
		author = "an unknown author"
	}

	s := fmt.Sprintf("\"%s\" by %s.", title, author)
	if first := firstSentence(description); first != "" {
		s += " " + first
	}
	return s + " A title worth adding to your reading list.", nil
}

func firstSentence(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexAny(text, ".!?"); i >= 0 {
		return text[:i+1]
	}
	if text != "" {
		return text + "."
	}
	return ""
}
