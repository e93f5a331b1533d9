package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// AuthorField names a field that can be changed by a partial update.
type AuthorField string

const (
	FieldName        AuthorField = "name"
	FieldBio         AuthorField = "bio"
	FieldNationality AuthorField = "nationality"
	FieldWebsite     AuthorField = "website"
)

// AuthorPatch is a partial update. Nil fields are left untouched.
type AuthorPatch struct {
	Name        *string `json:"name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Nationality *string `json:"nationality,omitempty"`
	Website     *string `json:"website,omitempty"`
}

func (p AuthorPatch) IsEmpty() bool {
	return p.Name == nil && p.Bio == nil && p.Nationality == nil && p.Website == nil
}

// Fields lists the fields set on p.
func (p AuthorPatch) Fields() []AuthorField {
	var out []AuthorField
	if p.Name != nil {
		out = append(out, FieldName)
	}
	if p.Bio != nil {
		out = append(out, FieldBio)
	}
	if p.Nationality != nil {
		out = append(out, FieldNationality)
	}
	if p.Website != nil {
		out = append(out, FieldWebsite)
	}
	return out
}

func (p AuthorPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&p.Website, is.URL),
	)
}

// ParseAuthorPatch keeps the string-valued entries whose keys (compared
// case-insensitively) name a patchable field.
func ParseAuthorPatch(fields map[string]any) AuthorPatch {
	var p AuthorPatch
	for key, raw := range fields {
		s, ok := raw.(string)
		if !ok {
			continue
		}
		switch strings.ToLower(key) {
		case "name":
			p.Name = &s
		case "bio":
			p.Bio = &s
		case "nationality":
			p.Nationality = &s
		case "website":
			p.Website = &s
		}
	}
	return p
}
