// Package datagen produces random but plausible catalog entities for seeding
// and load testing.
package datagen

import (
	"fmt"
	"math/rand/v2"
	"time"

	authormodel "bookstore-catalog/internal/domains/author/model"
	bookmodel "bookstore-catalog/internal/domains/book/model"

	"github.com/shopspring/decimal"
)

var (
	titles = []string{
		"The Silent Observer", "Midnight Chronicles", "The Last Symphony", "Desert Winds",
		"City of Shadows", "The Golden Key", "River's End", "Mountain Peak",
		"Ocean's Call", "Forest Whispers",
	}
	names = []string{
		"Alexander Smith", "Emma Johnson", "Michael Brown", "Sarah Wilson",
		"David Lee", "Lisa Chen", "Robert Taylor", "Jessica Davis",
		"Christopher White", "Amanda Garcia", "John Martinez", "Maria Rodriguez",
	}
	genres = []string{
		"Fiction", "Mystery", "Romance", "Thriller", "Science Fiction",
		"Fantasy", "Biography", "History", "Adventure", "Drama",
	}
	descriptions = []string{
		"A captivating tale that explores the depths of human nature",
		"An epic adventure that spans across continents and cultures",
		"A thought-provoking story about love, loss, and redemption",
		"A gripping narrative that keeps you on the edge of your seat",
		"An inspiring journey of self-discovery and personal growth",
	}
	nationalities = []string{
		"American", "British", "Canadian", "Australian", "French",
		"German", "Italian", "Spanish", "Japanese", "Chinese",
	}
	bios = []string{
		"An acclaimed author known for thought-provoking narratives",
		"A bestselling writer with a passion for storytelling",
		"An award-winning novelist celebrated for complex characters",
		"A prolific author whose works span multiple genres",
		"A contemporary writer exploring modern themes",
	}
)

// SearchTerms are words that appear in generated titles, handy for search traffic.
var SearchTerms = []string{"silent", "midnight", "symphony", "desert", "shadows", "key", "river", "ocean", "forest"}

// Generator is not safe for concurrent use; give each goroutine its own.
type Generator struct {
	rng *rand.Rand
}

// New returns a generator seeded with seed. Equal seeds give equal sequences.
func New(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func pick[T any](g *Generator, items []T) T {
	return items[g.rng.IntN(len(items))]
}

func (g *Generator) date(fromYear, span int) *time.Time {
	d := time.Date(fromYear+g.rng.IntN(span), time.Month(1+g.rng.IntN(12)), 1+g.rng.IntN(28), 0, 0, 0, 0, time.UTC)
	return &d
}

func (g *Generator) Book() bookmodel.Book {
	return bookmodel.Book{
		Title:         pick(g, titles),
		Author:        pick(g, names),
		ISBN:          fmt.Sprintf("978-%d-%04d-%03d-%d", g.rng.IntN(10), g.rng.IntN(10000), g.rng.IntN(1000), g.rng.IntN(10)),
		Price:         decimal.New(int64(1000+g.rng.IntN(4000)), -2),
		PublishedDate: g.date(2000, 24),
		Genre:         pick(g, genres),
		Description:   pick(g, descriptions),
		StockQuantity: 1 + g.rng.IntN(100),
	}
}

func (g *Generator) Author() authormodel.Author {
	return authormodel.Author{
		Name:        pick(g, names),
		Bio:         pick(g, bios),
		BirthDate:   g.date(1940, 60),
		Nationality: pick(g, nationalities),
		Website:     fmt.Sprintf("https://www.author-%d.com", g.rng.IntN(1000)),
	}
}

func (g *Generator) Books(n int) []bookmodel.Book {
	out := make([]bookmodel.Book, n)
	for i := range out {
		out[i] = g.Book()
	}
	return out
}

func (g *Generator) Authors(n int) []authormodel.Author {
	out := make([]authormodel.Author, n)
	for i := range out {
		out[i] = g.Author()
	}
	return out
}

// IntN exposes the generator's source for callers choosing among their own options.
func (g *Generator) IntN(n int) int {
	return g.rng.IntN(n)
}

// SearchTerm returns a word likely to match generated titles.
func (g *Generator) SearchTerm() string {
	return pick(g, SearchTerms)
}
