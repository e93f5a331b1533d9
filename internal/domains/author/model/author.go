package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// EntityName prefixes cache keys ("author:<id>", "authors:...").
const EntityName = "author"

var ErrAuthorNotFound = errors.New("author not found")

type Author struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Bio         string     `json:"bio"`
	BirthDate   *time.Time `json:"birthDate"`
	Nationality string     `json:"nationality"`
	Website     string     `json:"website"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (a Author) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&a.Nationality, validation.Length(0, 100)),
		validation.Field(&a.Website, is.URL),
		validation.Field(&a.BirthDate, validation.By(notInFuture)),
	)
}

func notInFuture(value interface{}) error {
	t, ok := value.(*time.Time)
	if !ok || t == nil {
		return nil
	}
	if t.After(time.Now()) {
		return validation.NewError("validation_date_future", "must not be in the future")
	}
	return nil
}

// AuthorFilter holds the exact-match list filters. Empty fields do not filter.
type AuthorFilter struct {
	Nationality string
}

// Values returns the filter values in cache-key order.
func (f AuthorFilter) Values() []string {
	return []string{f.Nationality}
}
