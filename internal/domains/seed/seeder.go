// Package seed fills the catalog with sample or generated data.
package seed

import (
	"context"
	"fmt"
	"time"

	authormodel "bookstore-catalog/internal/domains/author/model"
	bookmodel "bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/internal/shared/datagen"

	"github.com/shopspring/decimal"
)

// TypeSeedCatalog is the asynq task type for background seeding.
const TypeSeedCatalog = "catalog:seed"

// MaxPerJob bounds how many entities of each kind one job may create.
const MaxPerJob = 10000

type BookCreator interface {
	Create(ctx context.Context, b *bookmodel.Book) (*bookmodel.Book, error)
}

type AuthorCreator interface {
	Create(ctx context.Context, a *authormodel.Author) (*authormodel.Author, error)
}

// Payload is the body of a seed job.
type Payload struct {
	Books   int    `json:"books"`
	Authors int    `json:"authors"`
	Seed    uint64 `json:"seed,omitempty"`
}

func (p Payload) Validate() error {
	if p.Books < 0 || p.Authors < 0 {
		return fmt.Errorf("counts must not be negative")
	}
	if p.Books > MaxPerJob || p.Authors > MaxPerJob {
		return fmt.Errorf("at most %d entities of each kind per job", MaxPerJob)
	}
	if p.Books == 0 && p.Authors == 0 {
		return fmt.Errorf("nothing to seed")
	}
	return nil
}

type Counts struct {
	Books   int `json:"books"`
	Authors int `json:"authors"`
}

// Seeder writes through the catalog services, so the usual validation and
// cache bookkeeping apply.
type Seeder struct {
	books   BookCreator
	authors AuthorCreator
}

func NewSeeder(books BookCreator, authors AuthorCreator) *Seeder {
	return &Seeder{books: books, authors: authors}
}

// SeedSamples inserts the fixed sample catalog. Running it twice inserts duplicates.
func (s *Seeder) SeedSamples(ctx context.Context) (Counts, error) {
	return s.create(ctx, SampleBooks(), SampleAuthors())
}

// SeedRandom inserts generated entities. A zero p.Seed uses the clock.
func (s *Seeder) SeedRandom(ctx context.Context, p Payload) (Counts, error) {
	if err := p.Validate(); err != nil {
		return Counts{}, err
	}
	seed := p.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	gen := datagen.New(seed)
	return s.create(ctx, gen.Books(p.Books), gen.Authors(p.Authors))
}

func (s *Seeder) create(ctx context.Context, books []bookmodel.Book, authors []authormodel.Author) (Counts, error) {
	var n Counts
	for i := range books {
		if _, err := s.books.Create(ctx, &books[i]); err != nil {
			return n, fmt.Errorf("seed book %q: %w", books[i].Title, err)
		}
		n.Books++
	}
	for i := range authors {
		if _, err := s.authors.Create(ctx, &authors[i]); err != nil {
			return n, fmt.Errorf("seed author %q: %w", authors[i].Name, err)
		}
		n.Authors++
	}
	return n, nil
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func SampleBooks() []bookmodel.Book {
	return []bookmodel.Book{
		{
			Title:         "The Great Gatsby",
			Author:        "F. Scott Fitzgerald",
			ISBN:          "978-0-7432-7356-5",
			Price:         decimal.RequireFromString("12.99"),
			Genre:         "Fiction",
			Description:   "A classic American novel",
			StockQuantity: 50,
			PublishedDate: date(1925, time.April, 10),
		},
		{
			Title:         "To Kill a Mockingbird",
			Author:        "Harper Lee",
			ISBN:          "978-0-06-112008-4",
			Price:         decimal.RequireFromString("14.99"),
			Genre:         "Fiction",
			Description:   "A gripping tale of racial injustice",
			StockQuantity: 35,
			PublishedDate: date(1960, time.July, 11),
		},
		{
			Title:         "1984",
			Author:        "George Orwell",
			ISBN:          "978-0-452-28423-4",
			Price:         decimal.RequireFromString("13.99"),
			Genre:         "Dystopian Fiction",
			Description:   "A dystopian social science fiction novel",
			StockQuantity: 42,
			PublishedDate: date(1949, time.June, 8),
		},
	}
}

func SampleAuthors() []authormodel.Author {
	return []authormodel.Author{
		{
			Name:        "F. Scott Fitzgerald",
			Bio:         "American novelist and short story writer",
			BirthDate:   date(1896, time.September, 24),
			Nationality: "American",
		},
		{
			Name:        "Harper Lee",
			Bio:         "American novelist widely known for To Kill a Mockingbird",
			BirthDate:   date(1926, time.April, 28),
			Nationality: "American",
		},
		{
			Name:        "George Orwell",
			Bio:         "English novelist and journalist",
			BirthDate:   date(1903, time.June, 25),
			Nationality: "British",
		},
	}
}
