package datagen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratedEntitiesAreValid(t *testing.T) {
	g := New(42)

	for _, b := range g.Books(50) {
		require.NoError(t, b.Validate())
		assert.True(t, b.Price.IsPositive())
		assert.GreaterOrEqual(t, b.StockQuantity, 1)
		require.NotNil(t, b.PublishedDate)
		assert.GreaterOrEqual(t, b.PublishedDate.Year(), 2000)
	}
	for _, a := range g.Authors(50) {
		require.NoError(t, a.Validate())
		assert.NotEmpty(t, a.Nationality)
	}
}

func TestSameSeedSameSequence(t *testing.T) {
	assert.Equal(t, New(7).Books(5), New(7).Books(5))
	assert.NotEqual(t, New(7).Books(5), New(8).Books(5))
}
