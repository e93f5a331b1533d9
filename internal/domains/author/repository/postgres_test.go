package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertReadsBackStoredRow(t *testing.T) {
	assert.True(t, strings.HasSuffix(insertAuthorSQL, "RETURNING "+authorColumns))
	assert.Equal(t, 8, strings.Count(insertAuthorSQL, "$"))
}
