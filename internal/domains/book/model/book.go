package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

func init() {
	// Prices go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// EntityName prefixes cache keys ("book:<id>", "books:...").
const EntityName = "book"

type Book struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	ISBN          string          `json:"isbn"`
	Price         decimal.Decimal `json:"price"`
	PublishedDate *time.Time      `json:"publishedDate"`
	Genre         string          `json:"genre"`
	Description   string          `json:"description"`
	StockQuantity int             `json:"stockQuantity"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (b Book) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Title, validation.Required, validation.Length(1, 500)),
		validation.Field(&b.Author, validation.Length(0, 200)),
		validation.Field(&b.ISBN, validation.Length(0, 20)),
		validation.Field(&b.Genre, validation.Length(0, 100)),
		validation.Field(&b.Price, validation.By(nonNegativePrice)),
		validation.Field(&b.StockQuantity, validation.Min(0)),
	)
}

func nonNegativePrice(value interface{}) error {
	switch p := value.(type) {
	case decimal.Decimal:
		if p.IsNegative() {
			return validation.NewError("validation_price_negative", "must not be negative")
		}
	case *decimal.Decimal:
		if p != nil && p.IsNegative() {
			return validation.NewError("validation_price_negative", "must not be negative")
		}
	}
	return nil
}

// BookFilter holds the exact-match list filters. Empty fields do not filter.
type BookFilter struct {
	Genre  string
	Author string
}

// Values returns the filter values in cache-key order.
func (f BookFilter) Values() []string {
	return []string{f.Genre, f.Author}
}
