package testutils

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/kitchensage/v2/internal/domain/grocery"
	"github.com/kitchensage/v2/internal/domain/mealplan"
	"github.com/kitchensage/v2/internal/domain/recipe"
	"github.com/kitchensage/v2/internal/ports/outbound"
)

// MockRecipeCatalog provides a mock implementation of RecipeCatalog
type MockRecipeCatalog struct {
	mock.Mock
}

func (m *MockRecipeCatalog) Create(ctx context.Context, rec *recipe.Recipe) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecipeCatalog) Update(ctx context.Context, rec *recipe.Recipe) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecipeCatalog) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecipeCatalog) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Recipe), args.Error(1)
}

func (m *MockRecipeCatalog) Search(ctx context.Context, criteria outbound.SearchCriteria) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipe.Recipe), args.Error(1)
}

func (m *MockRecipeCatalog) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipe.Recipe), args.Error(1)
}

// MockMealPlanStore provides a mock implementation of MealPlanStore
type MockMealPlanStore struct {
	mock.Mock
}

func (m *MockMealPlanStore) Save(ctx context.Context, plan *mealplan.MealPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockMealPlanStore) FindByID(ctx context.Context, id uuid.UUID) (*mealplan.MealPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mealplan.MealPlan), args.Error(1)
}

func (m *MockMealPlanStore) FindRecent(ctx context.Context, limit int) ([]*mealplan.MealPlan, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*mealplan.MealPlan), args.Error(1)
}

func (m *MockMealPlanStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockGroceryStore provides a mock implementation of GroceryStore
type MockGroceryStore struct {
	mock.Mock
}

func (m *MockGroceryStore) GetOrCreateDefault(ctx context.Context) (*grocery.GroceryList, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*grocery.GroceryList), args.Error(1)
}

func (m *MockGroceryStore) FindByID(ctx context.Context, id uuid.UUID) (*grocery.GroceryList, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*grocery.GroceryList), args.Error(1)
}

func (m *MockGroceryStore) Save(ctx context.Context, list *grocery.GroceryList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

// MockEnrichmentService provides a mock implementation of EnrichmentService
type MockEnrichmentService struct {
	mock.Mock
}

func (m *MockEnrichmentService) EnrichItems(ctx context.Context, items []grocery.ConsolidatedItem) ([]grocery.ConsolidatedItem, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]grocery.ConsolidatedItem), args.Error(1)
}

// MockCacheRepository provides a mock implementation of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
