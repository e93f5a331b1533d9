package service

import (
	"context"

	"bookstore-catalog/internal/domains/author/model"
)

type ServiceInterface interface {
	List(ctx context.Context, filter model.AuthorFilter, page, pageSize int) ([]model.Author, error)
	GetByID(ctx context.Context, id string) (*model.Author, error)
	Search(ctx context.Context, query string) ([]model.Author, error)
	Create(ctx context.Context, a *model.Author) (*model.Author, error)
	Update(ctx context.Context, id string, a *model.Author) (*model.Author, error)
	Patch(ctx context.Context, id string, patch model.AuthorPatch) (*model.Author, error)
	Delete(ctx context.Context, id string) error
}
