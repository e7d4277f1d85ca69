package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kitchensage/v2/internal/domain/recipe"
	"github.com/kitchensage/v2/internal/infrastructure/monitoring"
	"github.com/kitchensage/v2/internal/ports/outbound"
)

const searchKeyPrefix = "catalog:search:"

// CachedRecipeCatalog decorates a recipe catalog with cache-first search.
// Search snapshots are cached per criteria; any write invalidates every
// snapshot so assignment runs never see a stale pool.
type CachedRecipeCatalog struct {
	inner   outbound.RecipeCatalog
	cache   outbound.CacheRepository
	metrics *monitoring.Metrics
	ttl     time.Duration
	logger  *zap.Logger
}

// NewCachedRecipeCatalog creates a cache-first catalog decorator
func NewCachedRecipeCatalog(
	inner outbound.RecipeCatalog,
	cache outbound.CacheRepository,
	metrics *monitoring.Metrics,
	ttl time.Duration,
	logger *zap.Logger,
) outbound.RecipeCatalog {
	return &CachedRecipeCatalog{
		inner:   inner,
		cache:   cache,
		metrics: metrics,
		ttl:     ttl,
		logger:  logger.Named("catalog-cache"),
	}
}

// recipeSnapshot is the cache wire form of a catalog recipe
type recipeSnapshot struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	Cuisine     string               `json:"cuisine"`
	DietaryTags []string             `json:"dietary_tags,omitempty"`
	PrepMinutes int                  `json:"prep_minutes"`
	CookMinutes int                  `json:"cook_minutes"`
	Servings    int                  `json:"servings"`
	Ingredients []ingredientSnapshot `json:"ingredients,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

type ingredientSnapshot struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Quantity float64   `json:"quantity"`
	Unit     string    `json:"unit"`
	Notes    string    `json:"notes,omitempty"`
}

// Create writes through and invalidates cached snapshots
func (c *CachedRecipeCatalog) Create(ctx context.Context, rec *recipe.Recipe) error {
	if err := c.inner.Create(ctx, rec); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update writes through and invalidates cached snapshots
func (c *CachedRecipeCatalog) Update(ctx context.Context, rec *recipe.Recipe) error {
	if err := c.inner.Update(ctx, rec); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Delete writes through and invalidates cached snapshots
func (c *CachedRecipeCatalog) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// FindByID delegates to the inner catalog
func (c *CachedRecipeCatalog) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	return c.inner.FindByID(ctx, id)
}

// FindByIDs delegates to the inner catalog
func (c *CachedRecipeCatalog) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error) {
	return c.inner.FindByIDs(ctx, ids)
}

// Search returns a cached snapshot when one exists, otherwise queries
// the inner catalog and stores the result.
func (c *CachedRecipeCatalog) Search(ctx context.Context, criteria outbound.SearchCriteria) ([]*recipe.Recipe, error) {
	key := searchKey(criteria, c.generation(ctx))

	if data, err := c.cache.Get(ctx, key); err == nil {
		if recipes, err := decodeSnapshots(data); err == nil {
			c.recordCacheOp("get", "hit")
			return recipes, nil
		}
		// Corrupt entry, drop it and fall through to the catalog
		_ = c.cache.Delete(ctx, key)
	} else {
		c.recordCacheOp("get", "miss")
	}

	recipes, err := c.inner.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}

	if data, err := encodeSnapshots(recipes); err == nil {
		if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
			c.recordCacheOp("set", "error")
		} else {
			c.recordCacheOp("set", "ok")
		}
	}

	return recipes, nil
}

const searchGenerationKey = "catalog:search:generation"

// generation returns the current snapshot generation marker, minting a
// fresh one when none exists. The marker is folded into every search
// key, so dropping it invalidates all snapshots in O(1) without SCAN.
func (c *CachedRecipeCatalog) generation(ctx context.Context) string {
	if data, err := c.cache.Get(ctx, searchGenerationKey); err == nil && len(data) > 0 {
		return string(data)
	}
	gen := uuid.NewString()
	if err := c.cache.Set(ctx, searchGenerationKey, []byte(gen), 0); err != nil {
		c.logger.Debug("Failed to store snapshot generation", zap.Error(err))
	}
	return gen
}

// invalidate drops the generation marker, orphaning every cached
// snapshot. Orphans age out through their own TTL.
func (c *CachedRecipeCatalog) invalidate(ctx context.Context) {
	if err := c.cache.Delete(ctx, searchGenerationKey); err != nil {
		c.logger.Warn("Failed to invalidate catalog snapshots", zap.Error(err))
	}
	c.recordCacheOp("invalidate", "ok")
}

func (c *CachedRecipeCatalog) recordCacheOp(operation, result string) {
	if c.metrics != nil {
		c.metrics.RecordCacheOperation(operation, result)
	}
}

func searchKey(criteria outbound.SearchCriteria, generation string) string {
	payload, _ := json.Marshal(criteria)
	sum := sha256.Sum256(payload)
	return searchKeyPrefix + generation + ":" + hex.EncodeToString(sum[:8])
}

func encodeSnapshots(recipes []*recipe.Recipe) ([]byte, error) {
	snapshots := make([]recipeSnapshot, 0, len(recipes))
	for _, rec := range recipes {
		tags := make([]string, 0, len(rec.DietaryTags()))
		for _, tag := range rec.DietaryTags() {
			tags = append(tags, string(tag))
		}
		ingredients := make([]ingredientSnapshot, 0, len(rec.Ingredients()))
		for _, ing := range rec.Ingredients() {
			ingredients = append(ingredients, ingredientSnapshot{
				ID:       ing.ID,
				Name:     ing.Name,
				Quantity: ing.Quantity,
				Unit:     string(ing.Unit),
				Notes:    ing.Notes,
			})
		}
		snapshots = append(snapshots, recipeSnapshot{
			ID:          rec.ID(),
			Name:        rec.Name(),
			Cuisine:     string(rec.Cuisine()),
			DietaryTags: tags,
			PrepMinutes: int(rec.PrepTime().Minutes()),
			CookMinutes: int(rec.CookTime().Minutes()),
			Servings:    rec.Servings(),
			Ingredients: ingredients,
			CreatedAt:   rec.CreatedAt(),
		})
	}
	return json.Marshal(snapshots)
}

func decodeSnapshots(data []byte) ([]*recipe.Recipe, error) {
	var snapshots []recipeSnapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, fmt.Errorf("corrupt catalog snapshot: %w", err)
	}

	recipes := make([]*recipe.Recipe, 0, len(snapshots))
	for _, snap := range snapshots {
		tags := make([]recipe.DietaryTag, 0, len(snap.DietaryTags))
		for _, tag := range snap.DietaryTags {
			tags = append(tags, recipe.DietaryTag(tag))
		}
		ingredients := make([]recipe.Ingredient, 0, len(snap.Ingredients))
		for _, ing := range snap.Ingredients {
			ingredients = append(ingredients, recipe.Ingredient{
				ID:       ing.ID,
				Name:     ing.Name,
				Quantity: ing.Quantity,
				Unit:     recipe.MeasurementUnit(ing.Unit),
				Notes:    ing.Notes,
			})
		}
		recipes = append(recipes, recipe.Reconstruct(
			snap.ID,
			snap.Name,
			recipe.CuisineType(snap.Cuisine),
			tags,
			time.Duration(snap.PrepMinutes)*time.Minute,
			time.Duration(snap.CookMinutes)*time.Minute,
			snap.Servings,
			ingredients,
			snap.CreatedAt,
		))
	}
	return recipes, nil
}
