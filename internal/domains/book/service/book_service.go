package service

import (
	"context"
	"time"

	"bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/internal/domains/book/repository"
	"bookstore-catalog/internal/domains/catalog"
	"bookstore-catalog/internal/infrastructure/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTTL applies to every cached book entry and list page.
const DefaultTTL = 10 * time.Minute

var tracer = otel.Tracer("bookstore-catalog/book")

type BookService struct {
	repo    repository.RepositoryInterface
	cache   *catalog.Policy
	metrics *telemetry.Metrics
	now     func() time.Time
}

func NewBookService(repo repository.RepositoryInterface, policy *catalog.Policy) *BookService {
	return &BookService{
		repo:    repo,
		cache:   policy,
		metrics: policy.Metrics,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *BookService) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, "BookService."+op, trace.WithAttributes(attrs...))
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// ═══════════════════════════════════════════════════════════════════
// READS
// ═══════════════════════════════════════════════════════════════════

func (s *BookService) List(ctx context.Context, filter model.BookFilter, page, pageSize int) (books []model.Book, err error) {
	ctx, span := s.start(ctx, "List",
		attribute.String("filter.genre", filter.Genre),
		attribute.String("filter.author", filter.Author),
		attribute.Int("page", page),
		attribute.Int("page_size", pageSize))
	defer func() { finish(span, err) }()

	if err := catalog.ValidatePage(page, pageSize); err != nil {
		return nil, err
	}

	key := s.cache.ListKey(page, pageSize, filter.Values()...)
	return catalog.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]model.Book, error) {
		defer s.metrics.ObserveStore(model.EntityName, "find_page", time.Now())
		return s.repo.FindPage(ctx, filter, page, pageSize)
	})
}

// Count is not cached.
func (s *BookService) Count(ctx context.Context, filter model.BookFilter) (int64, error) {
	defer s.metrics.ObserveStore(model.EntityName, "count", time.Now())
	return s.repo.Count(ctx, filter)
}

func (s *BookService) GetByID(ctx context.Context, id string) (b *model.Book, err error) {
	ctx, span := s.start(ctx, "GetByID", attribute.String("book.id", id))
	defer func() { finish(span, err) }()

	return catalog.Fetch(ctx, s.cache, s.cache.Key(id), func(ctx context.Context) (*model.Book, error) {
		defer s.metrics.ObserveStore(model.EntityName, "find_by_id", time.Now())
		return s.repo.FindByID(ctx, id)
	})
}

// Search goes straight to the store; result sets are capped and never cached.
func (s *BookService) Search(ctx context.Context, query string) (books []model.Book, err error) {
	ctx, span := s.start(ctx, "Search", attribute.String("query", query))
	defer func() { finish(span, err) }()

	defer s.metrics.ObserveStore(model.EntityName, "search", time.Now())
	return s.repo.Search(ctx, query, catalog.MaxSearchResults)
}

// ═══════════════════════════════════════════════════════════════════
// WRITES
// ═══════════════════════════════════════════════════════════════════

func (s *BookService) Create(ctx context.Context, b *model.Book) (created *model.Book, err error) {
	ctx, span := s.start(ctx, "Create")
	defer func() { finish(span, err) }()

	if err := b.Validate(); err != nil {
		return nil, catalog.NewValidationError(err)
	}

	in := *b
	now := s.now()
	in.CreatedAt, in.UpdatedAt = now, now

	start := time.Now()
	created, err = s.repo.Insert(ctx, &in)
	s.metrics.ObserveStore(model.EntityName, "insert", start)
	if err != nil {
		return nil, err
	}

	s.cache.ListsWritten(ctx)
	return created, nil
}

func (s *BookService) Update(ctx context.Context, id string, b *model.Book) (updated *model.Book, err error) {
	ctx, span := s.start(ctx, "Update", attribute.String("book.id", id))
	defer func() { finish(span, err) }()

	if err := b.Validate(); err != nil {
		return nil, catalog.NewValidationError(err)
	}

	in := *b
	in.ID = id
	in.UpdatedAt = s.now()

	start := time.Now()
	updated, err = s.repo.Replace(ctx, id, &in)
	s.metrics.ObserveStore(model.EntityName, "replace", start)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, id)
	s.cache.ListsWritten(ctx)
	return updated, nil
}

// Patch applies the set fields of patch. An empty patch writes nothing and
// returns the current book.
func (s *BookService) Patch(ctx context.Context, id string, patch model.BookPatch) (b *model.Book, err error) {
	ctx, span := s.start(ctx, "Patch", attribute.String("book.id", id))
	defer func() { finish(span, err) }()

	if patch.IsEmpty() {
		return s.GetByID(ctx, id)
	}
	if err := patch.Validate(); err != nil {
		return nil, catalog.NewValidationError(err)
	}

	start := time.Now()
	err = s.repo.UpdateFields(ctx, id, patch, s.now())
	s.metrics.ObserveStore(model.EntityName, "update_fields", start)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, id)
	s.cache.ListsWritten(ctx)
	return s.GetByID(ctx, id)
}

func (s *BookService) Delete(ctx context.Context, id string) (err error) {
	ctx, span := s.start(ctx, "Delete", attribute.String("book.id", id))
	defer func() { finish(span, err) }()

	start := time.Now()
	err = s.repo.Delete(ctx, id)
	s.metrics.ObserveStore(model.EntityName, "delete", start)
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, id)
	s.cache.ListsWritten(ctx)
	return nil
}
