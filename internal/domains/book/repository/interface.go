package repository

import (
	"context"
	"time"

	"bookstore-catalog/internal/domains/book/model"
)

// RepositoryInterface is the durable book collection. Id-scoped operations
// return model.ErrBookNotFound when the book does not exist; any other
// error is a store failure.
type RepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*model.Book, error)
	// FindPage returns the page-th window of pageSize books matching every
	// set filter, in insertion order.
	FindPage(ctx context.Context, filter model.BookFilter, page, pageSize int) ([]model.Book, error)
	Count(ctx context.Context, filter model.BookFilter) (int64, error)
	// Search matches text as a case-insensitive substring of title, author
	// or description, returning at most limit books.
	Search(ctx context.Context, text string, limit int) ([]model.Book, error)
	// Insert assigns a new id and stores b.
	Insert(ctx context.Context, b *model.Book) (*model.Book, error)
	// Replace overwrites every field except id and createdAt.
	Replace(ctx context.Context, id string, b *model.Book) (*model.Book, error)
	UpdateFields(ctx context.Context, id string, patch model.BookPatch, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

var searchColumns = []string{"title", "author", "description"}

func offset(page, pageSize int) int {
	return (page - 1) * pageSize
}
