package job

import (
	"context"
	"errors"
	"testing"

	authormodel "bookstore-catalog/internal/domains/author/model"
	bookmodel "bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/internal/domains/seed"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingBooks struct{ n int }

func (c *countingBooks) Create(_ context.Context, b *bookmodel.Book) (*bookmodel.Book, error) {
	c.n++
	return b, nil
}

type countingAuthors struct{ n int }

func (c *countingAuthors) Create(_ context.Context, a *authormodel.Author) (*authormodel.Author, error) {
	c.n++
	return a, nil
}

func TestProcessSeedTask(t *testing.T) {
	books, authors := &countingBooks{}, &countingAuthors{}
	h := NewSeedCatalogHandler(seed.NewSeeder(books, authors))

	task, err := NewSeedTask(seed.Payload{Books: 5, Authors: 2, Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, seed.TypeSeedCatalog, task.Type())

	require.NoError(t, h.ProcessTask(context.Background(), task))
	assert.Equal(t, 5, books.n)
	assert.Equal(t, 2, authors.n)
}

func TestProcessSeedTaskRejectsBadPayloads(t *testing.T) {
	h := NewSeedCatalogHandler(seed.NewSeeder(&countingBooks{}, &countingAuthors{}))

	err := h.ProcessTask(context.Background(), asynq.NewTask(seed.TypeSeedCatalog, []byte("nope")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))

	err = h.ProcessTask(context.Background(), asynq.NewTask(seed.TypeSeedCatalog, []byte(`{"books":0,"authors":0}`)))
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}
