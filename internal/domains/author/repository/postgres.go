package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookstore-catalog/internal/domains/author/model"
	"bookstore-catalog/internal/shared/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func scanAuthor(row pgx.Row) (*model.Author, error) {
	var (
		a  model.Author
		id uuid.UUID
	)
	if err := row.Scan(&id, &a.Name, &a.Bio, &a.BirthDate, &a.Nationality, &a.Website, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.ID = id.String()
	return &a, nil
}

func (r *postgresRepository) list(ctx context.Context, query string, args ...any) ([]model.Author, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	authors := make([]model.Author, 0)
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	return authors, rows.Err()
}

func (r *postgresRepository) FindByID(ctx context.Context, id string) (*model.Author, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, model.ErrAuthorNotFound
	}

	a, err := scanAuthor(r.pool.QueryRow(ctx, `SELECT `+authorColumns+` FROM authors WHERE id = $1`, uid))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrAuthorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get author: %w", err)
	}
	return a, nil
}

func (r *postgresRepository) FindPage(ctx context.Context, filter model.AuthorFilter, page, pageSize int) ([]model.Author, error) {
	w := utils.NewWhere(utils.Postgres)
	w.EqualIfSet("nationality", filter.Nationality)
	query := `SELECT ` + authorColumns + ` FROM authors` + w.SQL() +
		` ORDER BY seq LIMIT ` + w.Arg(pageSize) + ` OFFSET ` + w.Arg(offset(page, pageSize))

	authors, err := r.list(ctx, query, w.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	return authors, nil
}

func (r *postgresRepository) Search(ctx context.Context, text string, limit int) ([]model.Author, error) {
	w := utils.NewWhere(utils.Postgres)
	w.ContainsAny(text, searchColumns...)
	query := `SELECT ` + authorColumns + ` FROM authors` + w.SQL() + ` ORDER BY seq LIMIT ` + w.Arg(limit)

	authors, err := r.list(ctx, query, w.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search authors: %w", err)
	}
	return authors, nil
}

const insertAuthorSQL = `
	INSERT INTO authors (id, name, bio, birth_date, nationality, website, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING ` + authorColumns

// Insert returns the stored row so callers see the values as the database keeps them.
func (r *postgresRepository) Insert(ctx context.Context, a *model.Author) (*model.Author, error) {
	out, err := scanAuthor(r.pool.QueryRow(ctx, insertAuthorSQL,
		uuid.New(), a.Name, a.Bio, a.BirthDate, a.Nationality, a.Website, a.CreatedAt, a.UpdatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to insert author: %w", err)
	}
	return out, nil
}

func (r *postgresRepository) Replace(ctx context.Context, id string, a *model.Author) (*model.Author, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, model.ErrAuthorNotFound
	}

	out, err := scanAuthor(r.pool.QueryRow(ctx, `
		UPDATE authors SET name = $2, bio = $3, birth_date = $4, nationality = $5, website = $6, updated_at = $7
		WHERE id = $1
		RETURNING `+authorColumns,
		uid, a.Name, a.Bio, a.BirthDate, a.Nationality, a.Website, a.UpdatedAt))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrAuthorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to replace author: %w", err)
	}
	return out, nil
}

func (r *postgresRepository) UpdateFields(ctx context.Context, id string, patch model.AuthorPatch, updatedAt time.Time) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return model.ErrAuthorNotFound
	}

	w := utils.NewWhere(utils.Postgres)
	sets := patchAssignments(w, patch)
	sets = append(sets, "updated_at = "+w.Arg(updatedAt))
	query := `UPDATE authors SET ` + strings.Join(sets, ", ") + ` WHERE id = ` + w.Arg(uid)

	tag, err := r.pool.Exec(ctx, query, w.Args...)
	if err != nil {
		return fmt.Errorf("failed to update author fields: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return model.ErrAuthorNotFound
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, uid)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}
	return nil
}

// patchAssignments renders "column = placeholder" for every set field. Both
// dialects share it; only the placeholder syntax differs.
func patchAssignments(w *utils.Where, patch model.AuthorPatch) []string {
	var sets []string
	for _, f := range patch.Fields() {
		switch f {
		case model.FieldName:
			sets = append(sets, "name = "+w.Arg(*patch.Name))
		case model.FieldBio:
			sets = append(sets, "bio = "+w.Arg(*patch.Bio))
		case model.FieldNationality:
			sets = append(sets, "nationality = "+w.Arg(*patch.Nationality))
		case model.FieldWebsite:
			sets = append(sets, "website = "+w.Arg(*patch.Website))
		}
	}
	return sets
}
