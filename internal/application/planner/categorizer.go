// Package planner implements meal plan composition: categorizing
// recipes into meal slots, assigning them with a scoring heuristic,
// synthesizing a plan title, and streaming progress to consumers.
package planner

import (
	"time"

	"github.com/kitchensage/v2/internal/domain/mealplan"
	"github.com/kitchensage/v2/internal/domain/recipe"
)

// Keyword sets per meal type. A name match qualifies a recipe
// regardless of its total time.
var (
	breakfastKeywords = []string{"breakfast", "cereal", "eggs", "toast", "pancake", "oatmeal", "smoothie"}
	lunchKeywords     = []string{"salad", "sandwich", "soup", "bowl", "wrap", "pasta"}
	dinnerKeywords    = []string{"dinner", "roast", "stew", "curry", "casserole", "grilled"}
)

// TimeBands holds the total-time windows that qualify a recipe for a
// meal type when no keyword matches.
type TimeBands struct {
	BreakfastMaxTotal time.Duration
	LunchMinTotal     time.Duration
	LunchMaxTotal     time.Duration
	DinnerMinTotal    time.Duration
}

// DefaultTimeBands returns the empirically tuned windows.
func DefaultTimeBands() TimeBands {
	return TimeBands{
		BreakfastMaxTotal: 20 * time.Minute,
		LunchMinTotal:     10 * time.Minute,
		LunchMaxTotal:     45 * time.Minute,
		DinnerMinTotal:    20 * time.Minute,
	}
}

// Categorizer decides which recipes suit which meal slots.
type Categorizer struct {
	bands TimeBands
}

// NewCategorizer creates a categorizer with the given time bands.
func NewCategorizer(bands TimeBands) *Categorizer {
	return &Categorizer{bands: bands}
}

// Fits reports whether a recipe suits a meal type, by name keyword or
// total-time band. Pure function.
func (c *Categorizer) Fits(rec *recipe.Recipe, mealType mealplan.MealType) bool {
	total := rec.TotalTime()

	switch mealType {
	case mealplan.MealTypeBreakfast:
		return matchesAny(rec, breakfastKeywords) || total <= c.bands.BreakfastMaxTotal
	case mealplan.MealTypeLunch:
		return matchesAny(rec, lunchKeywords) ||
			(total >= c.bands.LunchMinTotal && total <= c.bands.LunchMaxTotal)
	case mealplan.MealTypeDinner:
		return matchesAny(rec, dinnerKeywords) || total >= c.bands.DinnerMinTotal
	}
	return false
}

// Candidates returns the recipes fitting the meal type. When nothing
// fits a non-empty pool, the whole pool is returned: callers must never
// see zero candidates while recipes exist.
func (c *Categorizer) Candidates(pool []*recipe.Recipe, mealType mealplan.MealType) []*recipe.Recipe {
	suitable := make([]*recipe.Recipe, 0, len(pool))
	for _, rec := range pool {
		if c.Fits(rec, mealType) {
			suitable = append(suitable, rec)
		}
	}
	if len(suitable) == 0 {
		return pool
	}
	return suitable
}

func matchesAny(rec *recipe.Recipe, keywords []string) bool {
	for _, kw := range keywords {
		if rec.NameContains(kw) {
			return true
		}
	}
	return false
}
