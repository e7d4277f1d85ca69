package gorm

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitchensage/v2/internal/domain/recipe"
)

func taggedModel(name string, tags ...string) RecipeModel {
	return RecipeModel{
		ID:          uuid.New(),
		Name:        name,
		Cuisine:     string(recipe.CuisineItalian),
		DietaryTags: StringSlice(tags),
		Servings:    2,
	}
}

func TestFilterByTagsKeepsOnlyFullMatches(t *testing.T) {
	models := []RecipeModel{
		taggedModel("Lentil Curry", "vegetarian", "vegan"),
		taggedModel("Beef Stew"),
		taggedModel("Caprese Salad", "vegetarian"),
	}

	recipes := filterByTags(models, []recipe.DietaryTag{recipe.DietaryTagVegetarian}, 0)

	require.Len(t, recipes, 2)
	assert.Equal(t, "Lentil Curry", recipes[0].Name())
	assert.Equal(t, "Caprese Salad", recipes[1].Name())
}

func TestFilterByTagsAppliesLimitAfterFiltering(t *testing.T) {
	// Matching rows interleaved with non-matching ones: a pre-filter
	// limit of 3 would see at most one match.
	var models []RecipeModel
	for i := 0; i < 3; i++ {
		models = append(models, taggedModel(fmt.Sprintf("Meat Dish %d", i)))
		models = append(models, taggedModel(fmt.Sprintf("Veggie Dish %d", i), "vegetarian"))
	}

	recipes := filterByTags(models, []recipe.DietaryTag{recipe.DietaryTagVegetarian}, 3)

	require.Len(t, recipes, 3)
	for _, rec := range recipes {
		assert.True(t, rec.HasDietaryTag(recipe.DietaryTagVegetarian))
	}
}

func TestFilterByTagsLimitWithoutTags(t *testing.T) {
	models := []RecipeModel{
		taggedModel("One"),
		taggedModel("Two"),
		taggedModel("Three"),
	}

	recipes := filterByTags(models, nil, 2)

	assert.Len(t, recipes, 2)
}

func TestFilterByTagsRequiresEveryTag(t *testing.T) {
	models := []RecipeModel{
		taggedModel("Vegan Bowl", "vegetarian", "vegan"),
		taggedModel("Cheese Omelette", "vegetarian"),
	}

	recipes := filterByTags(models, []recipe.DietaryTag{
		recipe.DietaryTagVegetarian,
		recipe.DietaryTagVegan,
	}, 0)

	require.Len(t, recipes, 1)
	assert.Equal(t, "Vegan Bowl", recipes[0].Name())
}
