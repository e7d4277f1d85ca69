package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitchensage/v2/internal/domain/mealplan"
	"github.com/kitchensage/v2/internal/domain/recipe"
	"github.com/kitchensage/v2/test/testutils"
)

func TestCategorizerFits(t *testing.T) {
	c := NewCategorizer(DefaultTimeBands())

	tests := []struct {
		name     string
		recipe   *recipe.Recipe
		mealType mealplan.MealType
		want     bool
	}{
		{
			name: "breakfast keyword match regardless of time",
			recipe: testutils.NewRecipeBuilder().
				WithName("Scrambled Eggs Benedict").
				WithTimes(20*time.Minute, 25*time.Minute).
				Build(),
			mealType: mealplan.MealTypeBreakfast,
			want:     true,
		},
		{
			name: "quick recipe fits breakfast by time band",
			recipe: testutils.NewRecipeBuilder().
				WithName("Fruit Parfait").
				WithTimes(5*time.Minute, 10*time.Minute).
				Build(),
			mealType: mealplan.MealTypeBreakfast,
			want:     true,
		},
		{
			name: "slow keyword-less recipe does not fit breakfast",
			recipe: testutils.NewRecipeBuilder().
				WithName("Beef Wellington").
				WithTimes(30*time.Minute, 60*time.Minute).
				Build(),
			mealType: mealplan.MealTypeBreakfast,
			want:     false,
		},
		{
			name: "lunch keyword match",
			recipe: testutils.NewRecipeBuilder().
				WithName("Chicken Caesar Salad").
				WithTimes(60*time.Minute, 30*time.Minute).
				Build(),
			mealType: mealplan.MealTypeLunch,
			want:     true,
		},
		{
			name: "lunch time band inclusive bounds",
			recipe: testutils.NewRecipeBuilder().
				WithName("Leftover Medley").
				WithTimes(5*time.Minute, 5*time.Minute).
				Build(),
			mealType: mealplan.MealTypeLunch,
			want:     true,
		},
		{
			name: "too quick for lunch without keyword",
			recipe: testutils.NewRecipeBuilder().
				WithName("Cheese Plate").
				WithTimes(2*time.Minute, 0).
				Build(),
			mealType: mealplan.MealTypeLunch,
			want:     false,
		},
		{
			name: "dinner keyword match",
			recipe: testutils.NewRecipeBuilder().
				WithName("Slow Cooker Beef Stew").
				WithTimes(5*time.Minute, 10*time.Minute).
				Build(),
			mealType: mealplan.MealTypeDinner,
			want:     true,
		},
		{
			name: "hearty recipe fits dinner by time",
			recipe: testutils.NewRecipeBuilder().
				WithName("Lasagna").
				WithTimes(20*time.Minute, 40*time.Minute).
				Build(),
			mealType: mealplan.MealTypeDinner,
			want:     true,
		},
		{
			name: "quick keyword-less recipe does not fit dinner",
			recipe: testutils.NewRecipeBuilder().
				WithName("Cheese Plate").
				WithTimes(5*time.Minute, 0).
				Build(),
			mealType: mealplan.MealTypeDinner,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Fits(tt.recipe, tt.mealType))
		})
	}
}

func TestCategorizerCandidatesFallsBackToWholePool(t *testing.T) {
	c := NewCategorizer(DefaultTimeBands())

	// Nothing here fits lunch: no lunch keywords, total times outside 10-45.
	pool := []*recipe.Recipe{
		testutils.NewRecipeBuilder().WithName("Cheese Plate").WithTimes(2*time.Minute, 0).Build(),
		testutils.NewRecipeBuilder().WithName("Beef Wellington").WithTimes(30*time.Minute, 60*time.Minute).Build(),
	}

	candidates := c.Candidates(pool, mealplan.MealTypeLunch)
	require.Len(t, candidates, len(pool), "whole pool must be returned when nothing fits")
}

func TestCategorizerCandidatesFiltersWhenMatchesExist(t *testing.T) {
	c := NewCategorizer(DefaultTimeBands())

	salad := testutils.NewRecipeBuilder().WithName("Greek Salad").WithTimes(60*time.Minute, 30*time.Minute).Build()
	roast := testutils.NewRecipeBuilder().WithName("Sunday Roast").WithTimes(30*time.Minute, 90*time.Minute).Build()

	candidates := c.Candidates([]*recipe.Recipe{salad, roast}, mealplan.MealTypeLunch)
	require.Len(t, candidates, 1)
	assert.Equal(t, salad.ID(), candidates[0].ID())
}

func TestCategorizerEmptyPool(t *testing.T) {
	c := NewCategorizer(DefaultTimeBands())
	assert.Empty(t, c.Candidates(nil, mealplan.MealTypeDinner))
}
