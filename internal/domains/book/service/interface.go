package service

import (
	"context"

	"bookstore-catalog/internal/domains/book/model"
)

type ServiceInterface interface {
	List(ctx context.Context, filter model.BookFilter, page, pageSize int) ([]model.Book, error)
	Count(ctx context.Context, filter model.BookFilter) (int64, error)
	GetByID(ctx context.Context, id string) (*model.Book, error)
	Create(ctx context.Context, b *model.Book) (*model.Book, error)
	Update(ctx context.Context, id string, b *model.Book) (*model.Book, error)
	Patch(ctx context.Context, id string, patch model.BookPatch) (*model.Book, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]model.Book, error)
}
