package grocery

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GroceryList is the aggregate root for a user's shopping list.
type GroceryList struct {
	id        uuid.UUID
	name      string
	items     []GroceryItem
	createdAt time.Time
	updatedAt time.Time
}

// GroceryItem is one line on a list. Purchased tracks shopping state
// and resets whenever new quantity merges into the line. IngredientID
// links the line back to the catalog ingredient when resolved.
type GroceryItem struct {
	ID           uuid.UUID
	IngredientID uuid.UUID
	Name         string
	Quantity     float64
	Unit         string
	Notes        string
	Category     string
	Purchased    bool
}

// DefaultListName is the list created implicitly when a user has none.
const DefaultListName = "My Grocery List"

// NewList creates an empty named list.
func NewList(name string) (*GroceryList, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyListName
	}
	now := time.Now()
	return &GroceryList{
		id:        uuid.New(),
		name:      name,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructList rebuilds a list from persisted state.
func ReconstructList(id uuid.UUID, name string, items []GroceryItem, createdAt, updatedAt time.Time) *GroceryList {
	return &GroceryList{
		id:        id,
		name:      name,
		items:     items,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the list identifier.
func (l *GroceryList) ID() uuid.UUID { return l.id }

// Name returns the list name.
func (l *GroceryList) Name() string { return l.name }

// Items returns the current lines.
func (l *GroceryList) Items() []GroceryItem { return l.items }

// CreatedAt returns when the list was created.
func (l *GroceryList) CreatedAt() time.Time { return l.createdAt }

// UpdatedAt returns the last mutation time.
func (l *GroceryList) UpdatedAt() time.Time { return l.updatedAt }

// AddOrMerge folds a consolidated item into the list. A line with the
// same case-insensitive (name, unit) accumulates quantity and clears
// its purchased flag; otherwise a new line is appended.
func (l *GroceryList) AddOrMerge(item ConsolidatedItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	key := mergeKey(item.Name, item.Unit)
	for idx := range l.items {
		existing := &l.items[idx]
		if mergeKey(existing.Name, existing.Unit) != key {
			continue
		}
		existing.Quantity += item.Quantity
		existing.Purchased = false
		if existing.IngredientID == uuid.Nil {
			existing.IngredientID = item.IngredientID
		}
		if item.Notes != "" && !strings.Contains(existing.Notes, item.Notes) {
			if existing.Notes != "" {
				existing.Notes += "; "
			}
			existing.Notes += item.Notes
		}
		l.updatedAt = time.Now()
		return nil
	}

	l.items = append(l.items, GroceryItem{
		ID:           uuid.New(),
		IngredientID: item.IngredientID,
		Name:         item.Name,
		Quantity:     item.Quantity,
		Unit:         item.Unit,
		Notes:        item.Notes,
		Category:     item.Category,
	})
	l.updatedAt = time.Now()
	return nil
}

// MarkPurchased toggles the purchased flag on one line.
func (l *GroceryList) MarkPurchased(itemID uuid.UUID, purchased bool) error {
	for idx := range l.items {
		if l.items[idx].ID == itemID {
			l.items[idx].Purchased = purchased
			l.updatedAt = time.Now()
			return nil
		}
	}
	return ErrItemNotFound
}

// RemoveItem deletes one line from the list.
func (l *GroceryList) RemoveItem(itemID uuid.UUID) error {
	for idx := range l.items {
		if l.items[idx].ID == itemID {
			l.items = append(l.items[:idx], l.items[idx+1:]...)
			l.updatedAt = time.Now()
			return nil
		}
	}
	return ErrItemNotFound
}

func mergeKey(name, unit string) MergeKey {
	return MergeKey{
		Name: strings.ToLower(strings.TrimSpace(name)),
		Unit: strings.ToLower(strings.TrimSpace(unit)),
	}
}
