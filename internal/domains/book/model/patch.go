package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// BookField names a field that can be changed by a partial update.
type BookField string

const (
	FieldTitle         BookField = "title"
	FieldPrice         BookField = "price"
	FieldStockQuantity BookField = "stockQuantity"
	FieldDescription   BookField = "description"
)

// BookPatch is a partial update. Nil fields are left untouched.
type BookPatch struct {
	Title         *string          `json:"title,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	StockQuantity *int             `json:"stockQuantity,omitempty"`
	Description   *string          `json:"description,omitempty"`
}

func (p BookPatch) IsEmpty() bool {
	return p.Title == nil && p.Price == nil && p.StockQuantity == nil && p.Description == nil
}

// Fields lists the fields set on p.
func (p BookPatch) Fields() []BookField {
	var out []BookField
	if p.Title != nil {
		out = append(out, FieldTitle)
	}
	if p.Price != nil {
		out = append(out, FieldPrice)
	}
	if p.StockQuantity != nil {
		out = append(out, FieldStockQuantity)
	}
	if p.Description != nil {
		out = append(out, FieldDescription)
	}
	return out
}

func (p BookPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.NilOrNotEmpty, validation.Length(1, 500)),
		validation.Field(&p.Price, validation.By(nonNegativePrice)),
		validation.Field(&p.StockQuantity, validation.Min(0)),
	)
}

// ParseBookPatch converts a decoded JSON object into a BookPatch. Keys are
// matched case-insensitively; unknown keys and values that cannot be
// converted to the field's type are skipped.
func ParseBookPatch(fields map[string]any) BookPatch {
	var p BookPatch
	for key, raw := range fields {
		if raw == nil {
			continue
		}
		switch strings.ToLower(key) {
		case "title":
			if s, ok := asString(raw); ok {
				p.Title = &s
			}
		case "description":
			if s, ok := asString(raw); ok {
				p.Description = &s
			}
		case "price":
			if d, ok := asDecimal(raw); ok {
				p.Price = &d
			}
		case "stockquantity":
			if n, ok := asInt(raw); ok {
				p.StockQuantity = &n
			}
		}
	}
	return p
}

func asString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64, bool, int:
		return fmt.Sprint(t), true
	}
	return "", false
}

func asDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	}
	return decimal.Decimal{}, false
}

func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case json.Number:
		n, err := strconv.Atoi(t.String())
		return n, err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		return n, err == nil
	case float64:
		if t != float64(int(t)) {
			return 0, false
		}
		return int(t), true
	case int:
		return t, true
	}
	return 0, false
}
