package repository

import (
	"context"
	"time"

	"bookstore-catalog/internal/domains/author/model"
)

// RepositoryInterface is the durable author collection. Id-scoped operations
// return model.ErrAuthorNotFound when the author does not exist.
type RepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*model.Author, error)
	FindPage(ctx context.Context, filter model.AuthorFilter, page, pageSize int) ([]model.Author, error)
	// Search matches name, bio or nationality case-insensitively.
	Search(ctx context.Context, text string, limit int) ([]model.Author, error)
	Insert(ctx context.Context, a *model.Author) (*model.Author, error)
	Replace(ctx context.Context, id string, a *model.Author) (*model.Author, error)
	UpdateFields(ctx context.Context, id string, patch model.AuthorPatch, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

const authorColumns = `id, name, bio, birth_date, nationality, website, created_at, updated_at`

var searchColumns = []string{"name", "bio", "nationality"}

func offset(page, pageSize int) int {
	return (page - 1) * pageSize
}
