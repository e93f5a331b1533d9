package repository

import (
	"strings"
	"testing"

	"bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/internal/shared/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBookWhereUsesDollarPlaceholders(t *testing.T) {
	w := bookWhere(model.BookFilter{Genre: "Fantasy", Author: "Tolkien"})
	assert.Equal(t, " WHERE genre = $1 AND author = $2", w.SQL())
	assert.Equal(t, "$3", w.Arg(10))
}

func TestPatchAssignments(t *testing.T) {
	title := "New"
	price := decimal.RequireFromString("1.25")
	w := utils.NewWhere(utils.Postgres)

	sets := patchAssignments(w, model.BookPatch{Title: &title, Price: &price})
	assert.Equal(t, []string{"title = $1", "price = $2"}, sets)
	assert.Len(t, w.Args, 2)
}

func TestInsertReadsBackStoredRow(t *testing.T) {
	assert.True(t, strings.HasSuffix(insertBookSQL, "RETURNING "+bookColumns))
	assert.Equal(t, 11, strings.Count(insertBookSQL, "$"))
}
