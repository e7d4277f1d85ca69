package planner

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/kitchensage/v2/internal/domain/mealplan"
	"github.com/kitchensage/v2/internal/domain/recipe"
)

// ScoringWeights are the bonuses applied when ranking candidates for a
// slot. Configurable, defaults preserved from production tuning.
type ScoringWeights struct {
	UnusedBonus   int
	PrepFitBonus  int
	ServingsBonus int
}

// DefaultScoringWeights returns the production defaults.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		UnusedBonus:   10,
		PrepFitBonus:  5,
		ServingsBonus: 3,
	}
}

// PrepBands holds the preferred prep-time windows per meal type used
// for the prep-fit bonus. These differ from the categorizer's
// total-time bands.
type PrepBands struct {
	BreakfastMaxPrep time.Duration
	LunchMinPrep     time.Duration
	LunchMaxPrep     time.Duration
	DinnerMinPrep    time.Duration
}

// DefaultPrepBands returns the production defaults.
func DefaultPrepBands() PrepBands {
	return PrepBands{
		BreakfastMaxPrep: 15 * time.Minute,
		LunchMinPrep:     15 * time.Minute,
		LunchMaxPrep:     30 * time.Minute,
		DinnerMinPrep:    20 * time.Minute,
	}
}

// Assigner fills day × meal-type slots from a candidate pool.
type Assigner struct {
	categorizer *Categorizer
	weights     ScoringWeights
	bands       PrepBands
	logger      *zap.Logger
}

// NewAssigner creates an assigner.
func NewAssigner(categorizer *Categorizer, weights ScoringWeights, bands PrepBands, logger *zap.Logger) *Assigner {
	return &Assigner{
		categorizer: categorizer,
		weights:     weights,
		bands:       bands,
		logger:      logger.Named("slot-assigner"),
	}
}

// Assign fills every (day, meal type) slot of the shape from the pool
// and reports the variety score (unique recipes / filled slots).
// Deterministic for a fixed pool ordering; ties break toward the lower
// recipe id. An empty pool yields an empty list, a degraded result
// rather than an error.
func (a *Assigner) Assign(pool []*recipe.Recipe, shape mealplan.PlanShape) ([]mealplan.SlotAssignment, float64) {
	if len(pool) == 0 {
		a.logger.Warn("recipe pool is empty, producing plan with no assignments",
			zap.Int("days", shape.Days))
		return nil, 0
	}

	// Candidate sets are stable across days, compute them once.
	candidates := make(map[mealplan.MealType][]*recipe.Recipe, 3)
	for _, mt := range mealplan.MealTypes() {
		candidates[mt] = a.categorizer.Candidates(pool, mt)
	}

	used := make(map[string]struct{})
	assignments := make([]mealplan.SlotAssignment, 0, shape.TotalSlots())

	for day := 1; day <= shape.Days; day++ {
		for _, mt := range mealplan.MealTypes() {
			selected := a.selectRecipe(candidates[mt], used, mt, shape.People)
			if selected == nil {
				continue
			}
			used[selected.ID().String()] = struct{}{}
			assignments = append(assignments, mealplan.SlotAssignment{
				Day:               day,
				MealType:          mt,
				RecipeID:          selected.ID(),
				RecipeName:        selected.Name(),
				EffectiveServings: effectiveServings(shape, selected),
				PrepTimeMinutes:   int(selected.PrepTime().Minutes()),
				CookTimeMinutes:   int(selected.CookTime().Minutes()),
			})
		}
	}

	variety := 0.0
	if len(assignments) > 0 {
		variety = float64(len(used)) / float64(len(assignments))
	}

	a.logger.Debug("assignment complete",
		zap.Int("slots", len(assignments)),
		zap.Int("unique_recipes", len(used)),
		zap.Float64("variety_score", variety))

	return assignments, variety
}

// selectRecipe ranks the candidates for one slot. Unused recipes are
// preferred; when every candidate has been used, repetition is allowed.
func (a *Assigner) selectRecipe(candidates []*recipe.Recipe, used map[string]struct{}, mealType mealplan.MealType, people int) *recipe.Recipe {
	available := make([]*recipe.Recipe, 0, len(candidates))
	for _, rec := range candidates {
		if _, ok := used[rec.ID().String()]; !ok {
			available = append(available, rec)
		}
	}
	if len(available) == 0 {
		available = candidates
	}
	if len(available) == 0 {
		return nil
	}

	type scored struct {
		score int
		rec   *recipe.Recipe
	}
	ranked := make([]scored, 0, len(available))
	for _, rec := range available {
		ranked = append(ranked, scored{score: a.score(rec, used, mealType, people), rec: rec})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].rec.ID().String() < ranked[j].rec.ID().String()
	})

	return ranked[0].rec
}

func (a *Assigner) score(rec *recipe.Recipe, used map[string]struct{}, mealType mealplan.MealType, people int) int {
	score := 0

	if _, ok := used[rec.ID().String()]; !ok {
		score += a.weights.UnusedBonus
	}

	prep := rec.PrepTime()
	switch mealType {
	case mealplan.MealTypeBreakfast:
		if prep <= a.bands.BreakfastMaxPrep {
			score += a.weights.PrepFitBonus
		}
	case mealplan.MealTypeLunch:
		if prep >= a.bands.LunchMinPrep && prep <= a.bands.LunchMaxPrep {
			score += a.weights.PrepFitBonus
		}
	case mealplan.MealTypeDinner:
		if prep >= a.bands.DinnerMinPrep {
			score += a.weights.PrepFitBonus
		}
	}

	if rec.Servings() >= people {
		score += a.weights.ServingsBonus
	}

	return score
}

func effectiveServings(shape mealplan.PlanShape, rec *recipe.Recipe) int {
	if shape.ServingsOverride > 0 {
		return shape.ServingsOverride
	}
	if rec.Servings() > shape.People {
		return rec.Servings()
	}
	return shape.People
}
