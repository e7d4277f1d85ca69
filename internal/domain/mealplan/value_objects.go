package mealplan

import (
	"github.com/google/uuid"

	"github.com/kitchensage/v2/internal/domain/recipe"
)

// MealType identifies one of the three daily meal slots.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
)

// MealTypes lists the slot order within a day. Assignment iterates this
// order, so it is part of the deterministic contract.
func MealTypes() []MealType {
	return []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner}
}

// PlanShape is the immutable input to a single assignment run.
type PlanShape struct {
	Days        int
	People      int
	DietaryTags []recipe.DietaryTag
	Hint        string
	Budget      float64

	// ServingsOverride, when > 0, replaces the effective-servings rule
	// for every slot.
	ServingsOverride int
}

// Validate checks the shape bounds.
func (s PlanShape) Validate() error {
	if s.Days < 1 || s.Days > 30 {
		return ErrInvalidDays
	}
	if s.People < 1 || s.People > 20 {
		return ErrInvalidPeople
	}
	if s.Budget < 0 {
		return ErrInvalidBudget
	}
	return nil
}

// TotalSlots returns the number of (day, meal type) slots the shape spans.
func (s PlanShape) TotalSlots() int {
	return s.Days * len(MealTypes())
}

// SlotAssignment binds one recipe to one (day, meal type) slot.
type SlotAssignment struct {
	Day               int // 1-based
	MealType          MealType
	RecipeID          uuid.UUID
	RecipeName        string
	EffectiveServings int
	PrepTimeMinutes   int
	CookTimeMinutes   int
}
