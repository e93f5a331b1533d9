package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityKey(t *testing.T) {
	assert.Equal(t, "book:42", EntityKey("book", "42"))
	assert.Equal(t, "author:abc", EntityKey("author", "abc"))
}

func TestListKey(t *testing.T) {
	tests := []struct {
		name    string
		entity  string
		page    int
		size    int
		filters []string
		want    string
	}{
		{"no filters", "author", 1, 10, nil, "authors:1:10"},
		{"empty filters kept in place", "book", 2, 20, []string{"", ""}, "books:::2:20"},
		{"filter values", "book", 1, 10, []string{"Fantasy", "J.R.R. Tolkien"}, "books:Fantasy:J.R.R.+Tolkien:1:10"},
		{"separator escaped", "book", 1, 10, []string{"a:b", ""}, "books:a%3Ab::1:10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ListKey(tt.entity, tt.page, tt.size, tt.filters...))
		})
	}
}

func TestListKeyDistinguishesFilterPositions(t *testing.T) {
	genreOnly := ListKey("book", 1, 10, "Fantasy", "")
	authorOnly := ListKey("book", 1, 10, "", "Fantasy")
	assert.NotEqual(t, genreOnly, authorOnly)

	assert.NotEqual(t, ListKey("book", 1, 10, "a:b", ""), ListKey("book", 1, 10, "a", "b"))
	assert.Equal(t, ListKey("book", 3, 5, "x", "y"), ListKey("book", 3, 5, "x", "y"))
}
