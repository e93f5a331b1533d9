package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/internal/shared/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = `id, title, author, isbn, price, published_date, genre, description,
	stock_quantity, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var (
		b  model.Book
		id uuid.UUID
	)
	err := row.Scan(&id, &b.Title, &b.Author, &b.ISBN, &b.Price, &b.PublishedDate, &b.Genre,
		&b.Description, &b.StockQuantity, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.ID = id.String()
	return &b, nil
}

func collectBooks(rows pgx.Rows) ([]model.Book, error) {
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}
	return books, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id string) (*model.Book, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, model.ErrBookNotFound
	}

	row := r.pool.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, uid)
	b, err := scanBook(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return b, nil
}

func bookWhere(filter model.BookFilter) *utils.Where {
	w := utils.NewWhere(utils.Postgres)
	w.EqualIfSet("genre", filter.Genre)
	w.EqualIfSet("author", filter.Author)
	return w
}

func (r *postgresRepository) FindPage(ctx context.Context, filter model.BookFilter, page, pageSize int) ([]model.Book, error) {
	w := bookWhere(filter)
	query := `SELECT ` + bookColumns + ` FROM books` + w.SQL() +
		` ORDER BY seq LIMIT ` + w.Arg(pageSize) + ` OFFSET ` + w.Arg(offset(page, pageSize))

	rows, err := r.pool.Query(ctx, query, w.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return collectBooks(rows)
}

func (r *postgresRepository) Count(ctx context.Context, filter model.BookFilter) (int64, error) {
	w := bookWhere(filter)

	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`+w.SQL(), w.Args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return n, nil
}

func (r *postgresRepository) Search(ctx context.Context, text string, limit int) ([]model.Book, error) {
	w := utils.NewWhere(utils.Postgres)
	w.ContainsAny(text, searchColumns...)
	query := `SELECT ` + bookColumns + ` FROM books` + w.SQL() + ` ORDER BY seq LIMIT ` + w.Arg(limit)

	rows, err := r.pool.Query(ctx, query, w.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	return collectBooks(rows)
}

const insertBookSQL = `
	INSERT INTO books (id, title, author, isbn, price, published_date, genre, description,
		stock_quantity, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING ` + bookColumns

// Insert returns the stored row so callers see the values as the database keeps them.
func (r *postgresRepository) Insert(ctx context.Context, b *model.Book) (*model.Book, error) {
	out, err := scanBook(r.pool.QueryRow(ctx, insertBookSQL,
		uuid.New(), b.Title, b.Author, b.ISBN, b.Price, b.PublishedDate, b.Genre,
		b.Description, b.StockQuantity, b.CreatedAt, b.UpdatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to insert book: %w", err)
	}
	return out, nil
}

func (r *postgresRepository) Replace(ctx context.Context, id string, b *model.Book) (*model.Book, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, model.ErrBookNotFound
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE books SET title = $2, author = $3, isbn = $4, price = $5, published_date = $6,
			genre = $7, description = $8, stock_quantity = $9, updated_at = $10
		WHERE id = $1
		RETURNING `+bookColumns,
		uid, b.Title, b.Author, b.ISBN, b.Price, b.PublishedDate, b.Genre,
		b.Description, b.StockQuantity, b.UpdatedAt)

	out, err := scanBook(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to replace book: %w", err)
	}
	return out, nil
}

func (r *postgresRepository) UpdateFields(ctx context.Context, id string, patch model.BookPatch, updatedAt time.Time) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return model.ErrBookNotFound
	}

	w := utils.NewWhere(utils.Postgres)
	sets := patchAssignments(w, patch)
	sets = append(sets, "updated_at = "+w.Arg(updatedAt))
	query := `UPDATE books SET ` + strings.Join(sets, ", ") + ` WHERE id = ` + w.Arg(uid)

	tag, err := r.pool.Exec(ctx, query, w.Args...)
	if err != nil {
		return fmt.Errorf("failed to update book fields: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

// patchAssignments renders "column = placeholder" for every set field of patch.
func patchAssignments(w *utils.Where, patch model.BookPatch) []string {
	var sets []string
	for _, f := range patch.Fields() {
		switch f {
		case model.FieldTitle:
			sets = append(sets, "title = "+w.Arg(*patch.Title))
		case model.FieldPrice:
			sets = append(sets, "price = "+w.Arg(*patch.Price))
		case model.FieldStockQuantity:
			sets = append(sets, "stock_quantity = "+w.Arg(*patch.StockQuantity))
		case model.FieldDescription:
			sets = append(sets, "description = "+w.Arg(*patch.Description))
		}
	}
	return sets
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return model.ErrBookNotFound
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, uid)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}
