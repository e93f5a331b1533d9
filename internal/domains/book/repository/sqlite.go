package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/internal/shared/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const timeFormat = time.RFC3339Nano

type sqliteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository stores books in an embedded SQLite database. Times are
// kept as RFC 3339 text and prices as decimal text.
func NewSQLiteRepository(db *sql.DB) RepositoryInterface {
	return &sqliteRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteBook(row rowScanner) (*model.Book, error) {
	var (
		b                    model.Book
		price                string
		published            sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &price, &published, &b.Genre,
		&b.Description, &b.StockQuantity, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if b.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("parse price: %w", err)
	}
	if published.Valid {
		t, err := time.Parse(timeFormat, published.String)
		if err != nil {
			return nil, fmt.Errorf("parse published_date: %w", err)
		}
		b.PublishedDate = &t
	}
	if b.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if b.UpdatedAt, err = time.Parse(timeFormat, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &b, nil
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

func (r *sqliteRepository) query(ctx context.Context, query string, args ...any) ([]model.Book, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		b, err := scanSQLiteBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *b)
	}
	return books, rows.Err()
}

func (r *sqliteRepository) FindByID(ctx context.Context, id string) (*model.Book, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id = ?`, id)
	b, err := scanSQLiteBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return b, nil
}

func sqliteBookWhere(filter model.BookFilter) *utils.Where {
	w := utils.NewWhere(utils.SQLite)
	w.EqualIfSet("genre", filter.Genre)
	w.EqualIfSet("author", filter.Author)
	return w
}

func (r *sqliteRepository) FindPage(ctx context.Context, filter model.BookFilter, page, pageSize int) ([]model.Book, error) {
	w := sqliteBookWhere(filter)
	query := `SELECT ` + bookColumns + ` FROM books` + w.SQL() +
		` ORDER BY seq LIMIT ` + w.Arg(pageSize) + ` OFFSET ` + w.Arg(offset(page, pageSize))

	books, err := r.query(ctx, query, w.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

func (r *sqliteRepository) Count(ctx context.Context, filter model.BookFilter) (int64, error) {
	w := sqliteBookWhere(filter)

	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`+w.SQL(), w.Args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return n, nil
}

func (r *sqliteRepository) Search(ctx context.Context, text string, limit int) ([]model.Book, error) {
	w := utils.NewWhere(utils.SQLite)
	w.ContainsAny(text, searchColumns...)
	query := `SELECT ` + bookColumns + ` FROM books` + w.SQL() + ` ORDER BY seq LIMIT ` + w.Arg(limit)

	books, err := r.query(ctx, query, w.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	return books, nil
}

func (r *sqliteRepository) Insert(ctx context.Context, b *model.Book) (*model.Book, error) {
	out := *b
	out.ID = uuid.NewString()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO books (id, title, author, isbn, price, published_date, genre, description,
			stock_quantity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		out.ID, out.Title, out.Author, out.ISBN, out.Price.String(), formatTimePtr(out.PublishedDate),
		out.Genre, out.Description, out.StockQuantity, formatTime(out.CreatedAt), formatTime(out.UpdatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to insert book: %w", err)
	}
	return r.FindByID(ctx, out.ID)
}

func (r *sqliteRepository) Replace(ctx context.Context, id string, b *model.Book) (*model.Book, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE books SET title = ?, author = ?, isbn = ?, price = ?, published_date = ?,
			genre = ?, description = ?, stock_quantity = ?, updated_at = ?
		WHERE id = ?`,
		b.Title, b.Author, b.ISBN, b.Price.String(), formatTimePtr(b.PublishedDate),
		b.Genre, b.Description, b.StockQuantity, formatTime(b.UpdatedAt), id)
	if err != nil {
		return nil, fmt.Errorf("failed to replace book: %w", err)
	}
	if err := checkRowsAffected(res); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *sqliteRepository) UpdateFields(ctx context.Context, id string, patch model.BookPatch, updatedAt time.Time) error {
	w := utils.NewWhere(utils.SQLite)
	var sets []string
	for _, f := range patch.Fields() {
		switch f {
		case model.FieldTitle:
			sets = append(sets, "title = "+w.Arg(*patch.Title))
		case model.FieldPrice:
			sets = append(sets, "price = "+w.Arg(patch.Price.String()))
		case model.FieldStockQuantity:
			sets = append(sets, "stock_quantity = "+w.Arg(*patch.StockQuantity))
		case model.FieldDescription:
			sets = append(sets, "description = "+w.Arg(*patch.Description))
		}
	}
	sets = append(sets, "updated_at = "+w.Arg(formatTime(updatedAt)))
	query := `UPDATE books SET ` + strings.Join(sets, ", ") + ` WHERE id = ` + w.Arg(id)

	res, err := r.db.ExecContext(ctx, query, w.Args...)
	if err != nil {
		return fmt.Errorf("failed to update book fields: %w", err)
	}
	return checkRowsAffected(res)
}

func (r *sqliteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	return checkRowsAffected(res)
}

func checkRowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return model.ErrBookNotFound
	}
	return nil
}
