package grocery

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	grocerydomain "github.com/kitchensage/v2/internal/domain/grocery"
	"github.com/kitchensage/v2/internal/domain/mealplan"
	"github.com/kitchensage/v2/internal/domain/recipe"
	"github.com/kitchensage/v2/internal/infrastructure/monitoring"
	"github.com/kitchensage/v2/internal/ports/inbound"
	"github.com/kitchensage/v2/internal/ports/outbound"
	"github.com/kitchensage/v2/pkg/errors"
)

// GroceryService implements the grocery list use cases.
type GroceryService struct {
	planStore outbound.MealPlanStore
	catalog   outbound.RecipeCatalog
	store     outbound.GroceryStore
	engine    *ConsolidationEngine
	metrics   *monitoring.Metrics
	logger    *zap.Logger
}

// NewGroceryService creates a new grocery service.
func NewGroceryService(
	planStore outbound.MealPlanStore,
	catalog outbound.RecipeCatalog,
	store outbound.GroceryStore,
	engine *ConsolidationEngine,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
) inbound.GroceryService {
	return &GroceryService{
		planStore: planStore,
		catalog:   catalog,
		store:     store,
		engine:    engine,
		metrics:   metrics,
		logger:    logger.Named("grocery-service"),
	}
}

// BuildListFromPlan extracts the plan's ingredients at their effective
// serving sizes, consolidates them, and folds the result into the
// default grocery list.
func (s *GroceryService) BuildListFromPlan(ctx context.Context, cmd inbound.BuildListCommand) (*inbound.GroceryListDTO, error) {
	plan, err := s.planStore.FindByID(ctx, cmd.PlanID)
	if err != nil {
		return nil, errors.NewPlanNotFoundError(cmd.PlanID.String())
	}

	recipes, err := s.catalog.FindByIDs(ctx, plan.RecipeIDs())
	if err != nil {
		return nil, errors.NewDatabaseError("load plan recipes", err)
	}
	byID := make(map[uuid.UUID]*recipe.Recipe, len(recipes))
	for _, rec := range recipes {
		byID[rec.ID()] = rec
	}

	rawItems := extractRawItems(plan.Assignments(), byID)

	result := s.engine.Consolidate(ctx, rawItems, cmd.SkipEnrichment)

	list, err := s.store.GetOrCreateDefault(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("load default grocery list", err)
	}

	for _, item := range result.Items {
		if err := list.AddOrMerge(item); err != nil {
			// Structurally invalid lines are skipped, not fatal.
			s.logger.Warn("skipping unmergeable item",
				zap.String("name", item.Name), zap.Error(err))
		}
	}

	if err := s.store.Save(ctx, list); err != nil {
		return nil, errors.NewDatabaseError("save grocery list", err)
	}

	if s.metrics != nil {
		s.metrics.RecordGroceryListBuilt(result.Enriched)
	}
	s.logger.Info("grocery list built from plan",
		zap.String("plan_id", cmd.PlanID.String()),
		zap.Int("raw_items", len(rawItems)),
		zap.Int("consolidated_items", len(result.Items)),
		zap.Bool("enriched", result.Enriched))

	dto := toListDTO(list)
	dto.Enriched = result.Enriched
	return dto, nil
}

// GetDefaultList returns the default list, creating it when absent.
func (s *GroceryService) GetDefaultList(ctx context.Context) (*inbound.GroceryListDTO, error) {
	list, err := s.store.GetOrCreateDefault(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("load default grocery list", err)
	}
	return toListDTO(list), nil
}

// GetListByID returns one list.
func (s *GroceryService) GetListByID(ctx context.Context, listID uuid.UUID) (*inbound.GroceryListDTO, error) {
	list, err := s.store.FindByID(ctx, listID)
	if err != nil {
		return nil, errors.NewListNotFoundError(listID.String())
	}
	return toListDTO(list), nil
}

// MarkItemPurchased toggles the purchased flag on one line.
func (s *GroceryService) MarkItemPurchased(ctx context.Context, listID, itemID uuid.UUID, purchased bool) error {
	list, err := s.store.FindByID(ctx, listID)
	if err != nil {
		return errors.NewListNotFoundError(listID.String())
	}
	if err := list.MarkPurchased(itemID, purchased); err != nil {
		return errors.NewNotFoundError("Grocery item")
	}
	if err := s.store.Save(ctx, list); err != nil {
		return errors.NewDatabaseError("save grocery list", err)
	}
	return nil
}

// RemoveItem deletes one line from a list.
func (s *GroceryService) RemoveItem(ctx context.Context, listID, itemID uuid.UUID) error {
	list, err := s.store.FindByID(ctx, listID)
	if err != nil {
		return errors.NewListNotFoundError(listID.String())
	}
	if err := list.RemoveItem(itemID); err != nil {
		return errors.NewNotFoundError("Grocery item")
	}
	if err := s.store.Save(ctx, list); err != nil {
		return errors.NewDatabaseError("save grocery list", err)
	}
	return nil
}

// extractRawItems flattens every assignment's recipe ingredients,
// scaled by effective servings over the recipe's default servings.
func extractRawItems(assignments []mealplan.SlotAssignment, byID map[uuid.UUID]*recipe.Recipe) []grocerydomain.RawItem {
	var items []grocerydomain.RawItem
	for _, a := range assignments {
		rec, ok := byID[a.RecipeID]
		if !ok {
			continue
		}
		multiplier := 1.0
		if rec.Servings() > 0 {
			multiplier = float64(a.EffectiveServings) / float64(rec.Servings())
		}
		for _, ing := range rec.Ingredients() {
			items = append(items, grocerydomain.RawItem{
				IngredientID: ing.ID,
				Name:         ing.Name,
				Quantity:     ing.Quantity * multiplier,
				Unit:         string(ing.Unit),
				Notes:        ing.Notes,
				Recipe:       rec.Name(),
			})
		}
	}
	return items
}

func toListDTO(list *grocerydomain.GroceryList) *inbound.GroceryListDTO {
	items := make([]inbound.GroceryItemDTO, 0, len(list.Items()))
	for _, item := range list.Items() {
		dto := inbound.GroceryItemDTO{
			ID:        item.ID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Unit:      item.Unit,
			Notes:     item.Notes,
			Category:  item.Category,
			Purchased: item.Purchased,
		}
		if item.IngredientID != uuid.Nil {
			ingredientID := item.IngredientID
			dto.IngredientID = &ingredientID
		}
		items = append(items, dto)
	}
	return &inbound.GroceryListDTO{
		ID:        list.ID(),
		Name:      list.Name(),
		Items:     items,
		CreatedAt: list.CreatedAt().Format(time.RFC3339),
		UpdatedAt: list.UpdatedAt().Format(time.RFC3339),
	}
}
