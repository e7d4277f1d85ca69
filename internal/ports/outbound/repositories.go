// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kitchensage/v2/internal/domain/grocery"
	"github.com/kitchensage/v2/internal/domain/mealplan"
	"github.com/kitchensage/v2/internal/domain/recipe"
)

// RecipeCatalog defines the interface for recipe persistence and pool
// retrieval. Search results feed the slot assignment pool, so adapters
// must return recipes in a stable order.
type RecipeCatalog interface {
	Create(ctx context.Context, rec *recipe.Recipe) error
	Update(ctx context.Context, rec *recipe.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)

	// Search returns the candidate pool for a set of dietary tags. An
	// empty tag list returns everything.
	Search(ctx context.Context, criteria SearchCriteria) ([]*recipe.Recipe, error)

	// FindByIDs resolves a plan's recipes in one round trip, ingredients
	// included.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error)
}

// SearchCriteria defines pool retrieval parameters.
type SearchCriteria struct {
	DietaryTags []recipe.DietaryTag
	Cuisines    []recipe.CuisineType
	MaxTotal    time.Duration
	Limit       int
}

// MealPlanStore defines the interface for meal plan persistence.
type MealPlanStore interface {
	Save(ctx context.Context, plan *mealplan.MealPlan) error
	FindByID(ctx context.Context, id uuid.UUID) (*mealplan.MealPlan, error)
	FindRecent(ctx context.Context, limit int) ([]*mealplan.MealPlan, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// GroceryStore defines the interface for grocery list persistence.
type GroceryStore interface {
	// GetOrCreateDefault returns the default list, creating it when none
	// exists yet.
	GetOrCreateDefault(ctx context.Context) (*grocery.GroceryList, error)

	FindByID(ctx context.Context, id uuid.UUID) (*grocery.GroceryList, error)
	Save(ctx context.Context, list *grocery.GroceryList) error
}

// EnrichmentService defines the interface for LLM-backed grocery list
// enrichment. Implementations must be safe to call concurrently.
type EnrichmentService interface {
	// EnrichItems asks the model to categorize and tidy a merged list.
	// The caller validates the response structurally and falls back to
	// deterministic output on any error.
	EnrichItems(ctx context.Context, items []grocery.ConsolidatedItem) ([]grocery.ConsolidatedItem, error)
}

// CacheRepository defines the interface for caching operations.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
