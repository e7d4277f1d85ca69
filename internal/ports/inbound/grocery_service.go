package inbound

import (
	"context"

	"github.com/google/uuid"
)

// GroceryService defines the use cases for grocery list generation and
// shopping state.
type GroceryService interface {
	// BuildListFromPlan extracts every ingredient of the plan's recipes,
	// consolidates them, optionally enriches the result, and folds it
	// into the default grocery list.
	BuildListFromPlan(ctx context.Context, cmd BuildListCommand) (*GroceryListDTO, error)

	// Queries and shopping state
	GetDefaultList(ctx context.Context) (*GroceryListDTO, error)
	GetListByID(ctx context.Context, listID uuid.UUID) (*GroceryListDTO, error)
	MarkItemPurchased(ctx context.Context, listID, itemID uuid.UUID, purchased bool) error
	RemoveItem(ctx context.Context, listID, itemID uuid.UUID) error
}

// BuildListCommand contains data for grocery list generation.
type BuildListCommand struct {
	PlanID uuid.UUID

	// SkipEnrichment forces the deterministic path even when an
	// enrichment service is configured.
	SkipEnrichment bool
}

// GroceryListDTO is the data transfer object for grocery lists.
type GroceryListDTO struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Items     []GroceryItemDTO `json:"items"`
	Enriched  bool             `json:"enriched"`
	CreatedAt string           `json:"created_at"`
	UpdatedAt string           `json:"updated_at"`
}

// GroceryItemDTO for one grocery line. IngredientID is present only
// when the line resolved to a catalog ingredient.
type GroceryItemDTO struct {
	ID           uuid.UUID  `json:"id"`
	IngredientID *uuid.UUID `json:"ingredient_id,omitempty"`
	Name         string     `json:"name"`
	Quantity     float64    `json:"quantity"`
	Unit         string     `json:"unit"`
	Notes        string     `json:"notes,omitempty"`
	Category     string     `json:"category,omitempty"`
	Purchased    bool       `json:"purchased"`
}
