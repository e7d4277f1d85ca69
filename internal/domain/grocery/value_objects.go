// Package grocery contains the grocery list aggregate and the value
// objects flowing through ingredient consolidation.
package grocery

import (
	"strings"

	"github.com/google/uuid"
)

// RawItem is one ingredient occurrence as extracted from a recipe,
// before consolidation. IngredientID carries the catalog ingredient
// identity when known; uuid.Nil means unresolved.
type RawItem struct {
	IngredientID uuid.UUID
	Name         string
	Quantity     float64
	Unit         string
	Notes        string
	Recipe       string
}

// Validate rejects items that cannot be merged meaningfully.
func (i RawItem) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyItemName
	}
	if i.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// MergeKey returns the case-insensitive (name, unit) identity used to
// fold raw items together.
func (i RawItem) MergeKey() MergeKey {
	return MergeKey{
		Name: strings.ToLower(strings.TrimSpace(i.Name)),
		Unit: strings.ToLower(strings.TrimSpace(i.Unit)),
	}
}

// MergeKey identifies one consolidated line.
type MergeKey struct {
	Name string
	Unit string
}

// ConsolidatedItem is one merged grocery line. IngredientID is the
// catalog identity of the folded occurrences when they agreed on one.
type ConsolidatedItem struct {
	IngredientID uuid.UUID
	Name         string
	Quantity     float64
	Unit         string
	Notes        string
	Category     string
}

// Validate checks the structural invariants a consolidated line must
// hold regardless of how it was produced.
func (i ConsolidatedItem) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyItemName
	}
	if i.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// ConsolidationResult carries the merged lines plus how they were made.
type ConsolidationResult struct {
	Items []ConsolidatedItem

	// Enriched is true only when every line passed through external
	// enrichment and validated. Deterministic fallback output always
	// reports false.
	Enriched bool
}
