package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookstore-catalog/internal/domains/author/model"
	"bookstore-catalog/internal/shared/utils"

	"github.com/google/uuid"
)

const timeFormat = time.RFC3339Nano

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) RepositoryInterface {
	return &sqliteRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteAuthor(row rowScanner) (*model.Author, error) {
	var (
		a                    model.Author
		birth                sql.NullString
		createdAt, updatedAt string
	)
	if err := row.Scan(&a.ID, &a.Name, &a.Bio, &birth, &a.Nationality, &a.Website, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if birth.Valid {
		t, err := time.Parse(timeFormat, birth.String)
		if err != nil {
			return nil, fmt.Errorf("parse birth_date: %w", err)
		}
		a.BirthDate = &t
	}
	if a.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if a.UpdatedAt, err = time.Parse(timeFormat, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &a, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func (r *sqliteRepository) list(ctx context.Context, query string, args ...any) ([]model.Author, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	authors := make([]model.Author, 0)
	for rows.Next() {
		a, err := scanSQLiteAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	return authors, rows.Err()
}

func (r *sqliteRepository) FindByID(ctx context.Context, id string) (*model.Author, error) {
	a, err := scanSQLiteAuthor(r.db.QueryRowContext(ctx, `SELECT `+authorColumns+` FROM authors WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrAuthorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get author: %w", err)
	}
	return a, nil
}

func (r *sqliteRepository) FindPage(ctx context.Context, filter model.AuthorFilter, page, pageSize int) ([]model.Author, error) {
	w := utils.NewWhere(utils.SQLite)
	w.EqualIfSet("nationality", filter.Nationality)
	query := `SELECT ` + authorColumns + ` FROM authors` + w.SQL() +
		` ORDER BY seq LIMIT ` + w.Arg(pageSize) + ` OFFSET ` + w.Arg(offset(page, pageSize))

	authors, err := r.list(ctx, query, w.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	return authors, nil
}

func (r *sqliteRepository) Search(ctx context.Context, text string, limit int) ([]model.Author, error) {
	w := utils.NewWhere(utils.SQLite)
	w.ContainsAny(text, searchColumns...)
	query := `SELECT ` + authorColumns + ` FROM authors` + w.SQL() + ` ORDER BY seq LIMIT ` + w.Arg(limit)

	authors, err := r.list(ctx, query, w.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search authors: %w", err)
	}
	return authors, nil
}

func (r *sqliteRepository) Insert(ctx context.Context, a *model.Author) (*model.Author, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO authors (id, name, bio, birth_date, nationality, website, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, a.Name, a.Bio, formatTimePtr(a.BirthDate), a.Nationality, a.Website,
		formatTime(a.CreatedAt), formatTime(a.UpdatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to insert author: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *sqliteRepository) Replace(ctx context.Context, id string, a *model.Author) (*model.Author, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE authors SET name = ?, bio = ?, birth_date = ?, nationality = ?, website = ?, updated_at = ?
		WHERE id = ?`,
		a.Name, a.Bio, formatTimePtr(a.BirthDate), a.Nationality, a.Website, formatTime(a.UpdatedAt), id)
	if err != nil {
		return nil, fmt.Errorf("failed to replace author: %w", err)
	}
	if err := checkRowsAffected(res); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *sqliteRepository) UpdateFields(ctx context.Context, id string, patch model.AuthorPatch, updatedAt time.Time) error {
	w := utils.NewWhere(utils.SQLite)
	sets := patchAssignments(w, patch)
	sets = append(sets, "updated_at = "+w.Arg(formatTime(updatedAt)))
	query := `UPDATE authors SET ` + strings.Join(sets, ", ") + ` WHERE id = ` + w.Arg(id)

	res, err := r.db.ExecContext(ctx, query, w.Args...)
	if err != nil {
		return fmt.Errorf("failed to update author fields: %w", err)
	}
	return checkRowsAffected(res)
}

func (r *sqliteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM authors WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	return checkRowsAffected(res)
}

func checkRowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return model.ErrAuthorNotFound
	}
	return nil
}
