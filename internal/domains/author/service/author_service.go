package service

import (
	"context"
	"time"

	"bookstore-catalog/internal/domains/author/model"
	"bookstore-catalog/internal/domains/author/repository"
	"bookstore-catalog/internal/domains/catalog"
	"bookstore-catalog/internal/infrastructure/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTTL applies to every cached author entry and list page.
const DefaultTTL = 15 * time.Minute

var tracer = otel.Tracer("bookstore-catalog/author")

type AuthorService struct {
	repo    repository.RepositoryInterface
	cache   *catalog.Policy
	metrics *telemetry.Metrics
	now     func() time.Time
}

func NewAuthorService(repo repository.RepositoryInterface, policy *catalog.Policy) *AuthorService {
	return &AuthorService{
		repo:    repo,
		cache:   policy,
		metrics: policy.Metrics,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *AuthorService) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, "AuthorService."+op, trace.WithAttributes(attrs...))
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *AuthorService) List(ctx context.Context, filter model.AuthorFilter, page, pageSize int) (authors []model.Author, err error) {
	ctx, span := s.start(ctx, "List",
		attribute.String("filter.nationality", filter.Nationality),
		attribute.Int("page", page),
		attribute.Int("page_size", pageSize))
	defer func() { finish(span, err) }()

	if err := catalog.ValidatePage(page, pageSize); err != nil {
		return nil, err
	}

	key := s.cache.ListKey(page, pageSize, filter.Values()...)
	return catalog.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]model.Author, error) {
		defer s.metrics.ObserveStore(model.EntityName, "find_page", time.Now())
		return s.repo.FindPage(ctx, filter, page, pageSize)
	})
}

func (s *AuthorService) GetByID(ctx context.Context, id string) (a *model.Author, err error) {
	ctx, span := s.start(ctx, "GetByID", attribute.String("author.id", id))
	defer func() { finish(span, err) }()

	return catalog.Fetch(ctx, s.cache, s.cache.Key(id), func(ctx context.Context) (*model.Author, error) {
		defer s.metrics.ObserveStore(model.EntityName, "find_by_id", time.Now())
		return s.repo.FindByID(ctx, id)
	})
}

// Search is uncached.
func (s *AuthorService) Search(ctx context.Context, query string) (authors []model.Author, err error) {
	ctx, span := s.start(ctx, "Search", attribute.String("query", query))
	defer func() { finish(span, err) }()

	defer s.metrics.ObserveStore(model.EntityName, "search", time.Now())
	return s.repo.Search(ctx, query, catalog.MaxSearchResults)
}

func (s *AuthorService) Create(ctx context.Context, a *model.Author) (created *model.Author, err error) {
	ctx, span := s.start(ctx, "Create")
	defer func() { finish(span, err) }()

	if err := a.Validate(); err != nil {
		return nil, catalog.NewValidationError(err)
	}

	in := *a
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

func (s *AuthorService) Update(ctx context.Context, id string, a *model.Author) (updated *model.Author, err error) {
	ctx, span := s.start(ctx, "Update", attribute.String("author.id", id))
	defer func() { finish(span, err) }()

	if err := a.Validate(); err != nil {
		return nil, catalog.NewValidationError(err)
	}

	in := *a
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

func (s *AuthorService) Patch(ctx context.Context, id string, patch model.AuthorPatch) (a *model.Author, err error) {
	ctx, span := s.start(ctx, "Patch", attribute.String("author.id", id))
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

func (s *AuthorService) Delete(ctx context.Context, id string) (err error) {
	ctx, span := s.start(ctx, "Delete", attribute.String("author.id", id))
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
