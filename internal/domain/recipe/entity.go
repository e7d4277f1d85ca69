// Package recipe contains the read model for catalog recipes.
// The planning core treats recipes as an immutable snapshot: the catalog
// owns persistence and mutation, this core only reads.
package recipe

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Recipe is a catalog recipe as seen by the planning core.
type Recipe struct {
	id          uuid.UUID
	name        string
	cuisine     CuisineType
	dietaryTags []DietaryTag
	prepTime    time.Duration
	cookTime    time.Duration
	servings    int
	ingredients []Ingredient
	createdAt   time.Time
}

// New creates a recipe snapshot with validation.
func New(name string, cuisine CuisineType, servings int, prepTime, cookTime time.Duration) (*Recipe, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if servings < 1 {
		return nil, ErrInvalidServings
	}
	if prepTime < 0 || cookTime < 0 {
		return nil, ErrNegativeTime
	}

	return &Recipe{
		id:        uuid.New(),
		name:      name,
		cuisine:   cuisine,
		servings:  servings,
		prepTime:  prepTime,
		cookTime:  cookTime,
		createdAt: time.Now(),
	}, nil
}

// Reconstruct rebuilds a recipe from persisted state. It is intended
// for repository mappers and test factories and trusts the stored data;
// validation happened when the recipe entered the catalog.
func Reconstruct(
	id uuid.UUID,
	name string,
	cuisine CuisineType,
	dietaryTags []DietaryTag,
	prepTime, cookTime time.Duration,
	servings int,
	ingredients []Ingredient,
	createdAt time.Time,
) *Recipe {
	return &Recipe{
		id:          id,
		name:        name,
		cuisine:     cuisine,
		dietaryTags: dietaryTags,
		prepTime:    prepTime,
		cookTime:    cookTime,
		servings:    servings,
		ingredients: ingredients,
		createdAt:   createdAt,
	}
}

// ID returns the recipe's unique identifier.
func (r *Recipe) ID() uuid.UUID {
	return r.id
}

// Name returns the recipe's name.
func (r *Recipe) Name() string {
	return r.name
}

// Cuisine returns the recipe's cuisine type.
func (r *Recipe) Cuisine() CuisineType {
	return r.cuisine
}

// DietaryTags returns the recipe's dietary tags.
func (r *Recipe) DietaryTags() []DietaryTag {
	return r.dietaryTags
}

// PrepTime returns the preparation time.
func (r *Recipe) PrepTime() time.Duration {
	return r.prepTime
}

// CookTime returns the cooking time.
func (r *Recipe) CookTime() time.Duration {
	return r.cookTime
}

// TotalTime returns prep plus cook time.
func (r *Recipe) TotalTime() time.Duration {
	return r.prepTime + r.cookTime
}

// Servings returns the number of servings the recipe yields.
func (r *Recipe) Servings() int {
	return r.servings
}

// Ingredients returns the ordered ingredient lines.
func (r *Recipe) Ingredients() []Ingredient {
	return r.ingredients
}

// CreatedAt returns when the recipe entered the catalog.
func (r *Recipe) CreatedAt() time.Time {
	return r.createdAt
}

// AddIngredient appends an ingredient line after validation.
func (r *Recipe) AddIngredient(ing Ingredient) error {
	if err := ing.Validate(); err != nil {
		return err
	}
	r.ingredients = append(r.ingredients, ing)
	return nil
}

// HasDietaryTag reports whether the recipe carries the given tag.
func (r *Recipe) HasDietaryTag(tag DietaryTag) bool {
	for _, t := range r.dietaryTags {
		if t == tag {
			return true
		}
	}
	return false
}

// NameContains reports whether the recipe name contains the keyword,
// case-insensitively.
func (r *Recipe) NameContains(keyword string) bool {
	return strings.Contains(strings.ToLower(r.name), strings.ToLower(keyword))
}

func validateName(name string) error {
	if len(name) < 3 {
		return ErrNameTooShort
	}
	if len(name) > 200 {
		return ErrNameTooLong
	}
	return nil
}
