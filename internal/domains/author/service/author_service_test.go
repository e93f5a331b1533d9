package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bookstore-catalog/internal/domains/author/model"
	"bookstore-catalog/internal/domains/author/repository"
	"bookstore-catalog/internal/domains/catalog"
	"bookstore-catalog/internal/infrastructure/cache"
	"bookstore-catalog/internal/infrastructure/database"
	"bookstore-catalog/internal/infrastructure/telemetry"
	pkgcache "bookstore-catalog/pkg/cache"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*AuthorService, pkgcache.Cache, *telemetry.Metrics) {
	t.Helper()
	db, err := database.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mem, err := cache.NewMemoryCache(cache.MemoryConfig{Capacity: 1000, Shards: 4})
	require.NoError(t, err)

	metrics := telemetry.NewMetrics()
	policy := catalog.NewPolicy(model.EntityName, DefaultTTL, mem, metrics)
	return NewAuthorService(repository.NewSQLiteRepository(db), policy), mem, metrics
}

func TestAuthorLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, c, _ := newService(t)

	created, err := svc.Create(ctx, &model.Author{Name: "Ursula K. Le Guin", Nationality: "American"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, time.UTC, created.CreatedAt.Location())

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, hit, err := c.Get(ctx, catalog.EntityKey("author", created.ID))
	require.NoError(t, err)
	assert.True(t, hit)

	updated, err := svc.Update(ctx, created.ID, &model.Author{Name: "Ursula Le Guin"})
	require.NoError(t, err)
	assert.Equal(t, "Ursula Le Guin", updated.Name)
	assert.Empty(t, updated.Nationality)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))

	got, err = svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ursula Le Guin", got.Name)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), model.ErrAuthorNotFound)
}

func TestCreateRejectsMissingName(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Create(context.Background(), &model.Author{Website: "not a url"})
	var verr *catalog.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields(), "name")
	assert.Contains(t, verr.Fields(), "website")
}

func TestPatchAuthor(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	created, err := svc.Create(ctx, &model.Author{Name: "Chinua Achebe", Nationality: "Nigerian"})
	require.NoError(t, err)
	_, err = svc.GetByID(ctx, created.ID)
	require.NoError(t, err)

	bio := "Author of Things Fall Apart"
	patched, err := svc.Patch(ctx, created.ID, model.AuthorPatch{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, bio, patched.Bio)
	assert.Equal(t, "Nigerian", patched.Nationality)

	same, err := svc.Patch(ctx, created.ID, model.AuthorPatch{})
	require.NoError(t, err)
	assert.Equal(t, patched.UpdatedAt, same.UpdatedAt)

	empty := ""
	_, err = svc.Patch(ctx, created.ID, model.AuthorPatch{Name: &empty})
	assert.ErrorIs(t, err, catalog.ErrValidation)

	_, err = svc.Patch(ctx, "missing", model.AuthorPatch{Bio: &bio})
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}

func TestAuthorListStaysCachedAfterWrite(t *testing.T) {
	ctx := context.Background()
	svc, _, metrics := newService(t)

	_, err := svc.Create(ctx, &model.Author{Name: "A", Nationality: "Irish"})
	require.NoError(t, err)

	list, err := svc.List(ctx, model.AuthorFilter{Nationality: "Irish"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = svc.Create(ctx, &model.Author{Name: "B", Nationality: "Irish"})
	require.NoError(t, err)

	stale, err := svc.List(ctx, model.AuthorFilter{Nationality: "Irish"}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, stale, 1)

	expected := `
# HELP catalog_stale_list_writes_total Writes after which cached list pages are left to expire by TTL.
# TYPE catalog_stale_list_writes_total counter
catalog_stale_list_writes_total{entity="author"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(metrics.Registry, strings.NewReader(expected), "catalog_stale_list_writes_total"))
}

func TestAuthorSearch(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	_, err := svc.Create(ctx, &model.Author{Name: "Haruki Murakami", Nationality: "Japanese"})
	require.NoError(t, err)

	found, err := svc.Search(ctx, "japan")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Haruki Murakami", found[0].Name)
}
