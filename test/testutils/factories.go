// Package testutils provides test data factories and mock
// implementations for consistent test setup.
package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/kitchensage/v2/internal/domain/grocery"
	"github.com/kitchensage/v2/internal/domain/mealplan"
	"github.com/kitchensage/v2/internal/domain/recipe"
)

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	id          uuid.UUID
	name        string
	cuisine     recipe.CuisineType
	dietaryTags []recipe.DietaryTag
	prepTime    time.Duration
	cookTime    time.Duration
	servings    int
	ingredients []recipe.Ingredient
}

// NewRecipeBuilder creates a builder with sensible defaults
func NewRecipeBuilder() *RecipeBuilder {
	faker := gofakeit.New(time.Now().UnixNano())

	return &RecipeBuilder{
		id:       uuid.New(),
		name:     faker.Dinner(),
		cuisine:  recipe.CuisineItalian,
		prepTime: 15 * time.Minute,
		cookTime: 30 * time.Minute,
		servings: 4,
	}
}

// WithID sets the recipe id
func (b *RecipeBuilder) WithID(id uuid.UUID) *RecipeBuilder {
	b.id = id
	return b
}

// WithName sets the recipe name
func (b *RecipeBuilder) WithName(name string) *RecipeBuilder {
	b.name = name
	return b
}

// WithCuisine sets the cuisine
func (b *RecipeBuilder) WithCuisine(cuisine recipe.CuisineType) *RecipeBuilder {
	b.cuisine = cuisine
	return b
}

// WithDietaryTags sets the dietary tags
func (b *RecipeBuilder) WithDietaryTags(tags ...recipe.DietaryTag) *RecipeBuilder {
	b.dietaryTags = tags
	return b
}

// WithTimes sets prep and cook time
func (b *RecipeBuilder) WithTimes(prep, cook time.Duration) *RecipeBuilder {
	b.prepTime = prep
	b.cookTime = cook
	return b
}

// WithServings sets the servings
func (b *RecipeBuilder) WithServings(servings int) *RecipeBuilder {
	b.servings = servings
	return b
}

// WithIngredient appends one ingredient line
func (b *RecipeBuilder) WithIngredient(name string, quantity float64, unit recipe.MeasurementUnit) *RecipeBuilder {
	b.ingredients = append(b.ingredients, recipe.Ingredient{
		ID:       uuid.New(),
		Name:     name,
		Quantity: quantity,
		Unit:     unit,
	})
	return b
}

// Build constructs the recipe
func (b *RecipeBuilder) Build() *recipe.Recipe {
	return recipe.Reconstruct(
		b.id, b.name, b.cuisine, b.dietaryTags,
		b.prepTime, b.cookTime, b.servings, b.ingredients,
		time.Now(),
	)
}

// NewTestShape returns a valid plan shape for the given days and people
func NewTestShape(days, people int) mealplan.PlanShape {
	return mealplan.PlanShape{Days: days, People: people}
}

// NewRawItem builds one raw grocery item
func NewRawItem(name string, quantity float64, unit string) grocery.RawItem {
	return grocery.RawItem{Name: name, Quantity: quantity, Unit: unit}
}
