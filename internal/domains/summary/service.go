package summary

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookmodel "bookstore-catalog/internal/domains/book/model"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("bookstore-catalog/summary")

// ErrProviderFailed wraps any error returned by a generator.
var ErrProviderFailed = errors.New("summary provider failed")

// BookReader is the part of the book service the summary service needs.
type BookReader interface {
	GetByID(ctx context.Context, id string) (*bookmodel.Book, error)
}

// Result is the response body of a generated summary.
type Result struct {
	BookID             string `json:"bookId"`
	Title              string `json:"title"`
	Author             string `json:"author"`
	Provider           string `json:"provider"`
	AIGeneratedSummary string `json:"aiGeneratedSummary"`
}

type Service struct {
	books    BookReader
	registry *Registry
}

func NewService(books BookReader, registry *Registry) *Service {
	return &Service{books: books, registry: registry}
}

func (s *Service) Registry() *Registry {
	return s.registry
}

// Generate reads the book (through its cache) and asks provider for a summary.
// Summaries are returned to the caller only; nothing is stored.
func (s *Service) Generate(ctx context.Context, bookID, provider string) (*Result, error) {
	name, gen, err := s.registry.Get(provider)
	if err != nil {
		return nil, err
	}

	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "summary.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("book.id", bookID),
		attribute.String("llm.provider", name),
	)

	start := time.Now()
	text, err := gen.GenerateSummary(ctx, book.Title, book.Author, book.Description)
	latency := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		log.Error().Err(err).Str("book_id", bookID).Str("provider", name).Msg("summary generation failed")
		return nil, fmt.Errorf("%w: %s: %w", ErrProviderFailed, name, err)
	}

	span.SetAttributes(attribute.Int("llm.summary_length", len(text)))
	log.Info().
		Str("book_id", bookID).
		Str("provider", name).
		Dur("latency", latency).
		Msg("generated book summary")

	return &Result{
		BookID:             book.ID,
		Title:              book.Title,
		Author:             book.Author,
		Provider:           name,
		AIGeneratedSummary: text,
	}, nil
}
