package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kitchensage/v2/internal/domain/recipe"
	"github.com/kitchensage/v2/internal/ports/outbound"
	"github.com/kitchensage/v2/test/testutils"
)

func newCachedCatalog(inner outbound.RecipeCatalog, cache outbound.CacheRepository) outbound.RecipeCatalog {
	return NewCachedRecipeCatalog(inner, cache, nil, 5*time.Minute, zap.NewNop())
}

func searchableKey(key string) bool {
	return key != searchGenerationKey
}

func TestCachedCatalogSearchMissQueriesInnerAndStoresSnapshot(t *testing.T) {
	inner := new(testutils.MockRecipeCatalog)
	cache := new(testutils.MockCacheRepository)

	pool := []*recipe.Recipe{
		testutils.NewRecipeBuilder().WithName("Tomato Soup").Build(),
		testutils.NewRecipeBuilder().WithName("Beef Stew").Build(),
	}
	criteria := outbound.SearchCriteria{Limit: 100}

	cache.On("Get", mock.Anything, searchGenerationKey).Return(nil, ErrCacheMiss)
	cache.On("Set", mock.Anything, searchGenerationKey, mock.Anything, time.Duration(0)).Return(nil)
	cache.On("Get", mock.Anything, mock.MatchedBy(searchableKey)).Return(nil, ErrCacheMiss)
	cache.On("Set", mock.Anything, mock.MatchedBy(searchableKey), mock.Anything, 5*time.Minute).Return(nil)
	inner.On("Search", mock.Anything, criteria).Return(pool, nil)

	catalog := newCachedCatalog(inner, cache)
	got, err := catalog.Search(context.Background(), criteria)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Tomato Soup", got[0].Name())
	inner.AssertNumberOfCalls(t, "Search", 1)
	cache.AssertCalled(t, "Set", mock.Anything, mock.MatchedBy(searchableKey), mock.Anything, 5*time.Minute)
}

func TestCachedCatalogSearchHitSkipsInner(t *testing.T) {
	inner := new(testutils.MockRecipeCatalog)
	cache := new(testutils.MockCacheRepository)

	pool := []*recipe.Recipe{
		testutils.NewRecipeBuilder().WithName("Pancakes").WithServings(2).Build(),
	}
	snapshot, err := encodeSnapshots(pool)
	require.NoError(t, err)

	cache.On("Get", mock.Anything, searchGenerationKey).Return([]byte("gen-1"), nil)
	cache.On("Get", mock.Anything, mock.MatchedBy(searchableKey)).Return(snapshot, nil)

	catalog := newCachedCatalog(inner, cache)
	got, err := catalog.Search(context.Background(), outbound.SearchCriteria{})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Pancakes", got[0].Name())
	assert.Equal(t, 2, got[0].Servings())
	inner.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestCachedCatalogCorruptSnapshotFallsThrough(t *testing.T) {
	inner := new(testutils.MockRecipeCatalog)
	cache := new(testutils.MockCacheRepository)

	pool := []*recipe.Recipe{testutils.NewRecipeBuilder().Build()}

	cache.On("Get", mock.Anything, searchGenerationKey).Return([]byte("gen-1"), nil)
	cache.On("Get", mock.Anything, mock.MatchedBy(searchableKey)).Return([]byte("not json"), nil)
	cache.On("Delete", mock.Anything, mock.MatchedBy(searchableKey)).Return(nil)
	cache.On("Set", mock.Anything, mock.MatchedBy(searchableKey), mock.Anything, 5*time.Minute).Return(nil)
	inner.On("Search", mock.Anything, mock.Anything).Return(pool, nil)

	catalog := newCachedCatalog(inner, cache)
	got, err := catalog.Search(context.Background(), outbound.SearchCriteria{})

	require.NoError(t, err)
	assert.Len(t, got, 1)
	inner.AssertNumberOfCalls(t, "Search", 1)
}

func TestCachedCatalogWritesInvalidateGeneration(t *testing.T) {
	inner := new(testutils.MockRecipeCatalog)
	cache := new(testutils.MockCacheRepository)

	rec := testutils.NewRecipeBuilder().Build()
	inner.On("Create", mock.Anything, rec).Return(nil)
	cache.On("Delete", mock.Anything, searchGenerationKey).Return(nil)

	catalog := newCachedCatalog(inner, cache)
	require.NoError(t, catalog.Create(context.Background(), rec))

	cache.AssertCalled(t, "Delete", mock.Anything, searchGenerationKey)
}

func TestCachedCatalogSnapshotRoundTripKeepsIngredients(t *testing.T) {
	rec := testutils.NewRecipeBuilder().
		WithName("Pasta Primavera").
		WithIngredient("Penne", 400, recipe.MeasurementUnitGram).
		WithIngredient("Zucchini", 1, recipe.MeasurementUnitPiece).
		Build()

	data, err := encodeSnapshots([]*recipe.Recipe{rec})
	require.NoError(t, err)

	decoded, err := decodeSnapshots(data)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	require.Len(t, decoded[0].Ingredients(), 2)
	assert.Equal(t, rec.ID(), decoded[0].ID())
	assert.Equal(t, "Penne", decoded[0].Ingredients()[0].Name)
}
