package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kitchensage/v2/internal/domain/recipe"
	"github.com/kitchensage/v2/internal/ports/outbound"
)

// RecipeCatalog implements the recipe catalog interface using GORM
type RecipeCatalog struct {
	db *gorm.DB
}

// NewRecipeCatalog creates a new recipe catalog
func NewRecipeCatalog(db *gorm.DB) outbound.RecipeCatalog {
	return &RecipeCatalog{db: db}
}

// Create persists a new recipe with its ingredient lines
func (r *RecipeCatalog) Create(ctx context.Context, rec *recipe.Recipe) error {
	model := toRecipeModel(rec)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing recipe
func (r *RecipeCatalog) Update(ctx context.Context, rec *recipe.Recipe) error {
	model := toRecipeModel(rec)

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return recipe.ErrRecipeNotFound
	}
	return nil
}

// Delete removes a recipe by ID (soft delete)
func (r *RecipeCatalog) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&RecipeModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return recipe.ErrRecipeNotFound
	}
	return nil
}

// FindByID finds a recipe by ID, ingredients included
func (r *RecipeCatalog) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel

	result := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, recipe.ErrRecipeNotFound
		}
		return nil, result.Error
	}

	return toRecipeDomain(&model), nil
}

// Search returns the candidate pool for the given criteria. Results are
// ordered by id so assignment runs see a stable pool.
func (r *RecipeCatalog) Search(ctx context.Context, criteria outbound.SearchCriteria) ([]*recipe.Recipe, error) {
	query := r.db.WithContext(ctx).
		Model(&RecipeModel{}).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("id ASC")

	if len(criteria.Cuisines) > 0 {
		cuisines := make([]string, 0, len(criteria.Cuisines))
		for _, c := range criteria.Cuisines {
			cuisines = append(cuisines, string(c))
		}
		query = query.Where("cuisine IN ?", cuisines)
	}

	if criteria.MaxTotal > 0 {
		query = query.Where("prep_time_minutes + cook_time_minutes <= ?", int(criteria.MaxTotal.Minutes()))
	}

	// Dietary tags are stored as JSON and filtered post-query, so the
	// limit can only be pushed into SQL when no tags are requested;
	// otherwise matching rows past the limit would be lost.
	if criteria.Limit > 0 && len(criteria.DietaryTags) == 0 {
		query = query.Limit(criteria.Limit)
	}

	var models []RecipeModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return filterByTags(models, criteria.DietaryTags, criteria.Limit), nil
}

// filterByTags keeps recipes carrying every requested tag, applying the
// limit after filtering.
func filterByTags(models []RecipeModel, tags []recipe.DietaryTag, limit int) []*recipe.Recipe {
	recipes := make([]*recipe.Recipe, 0, len(models))
	for i := range models {
		rec := toRecipeDomain(&models[i])
		if !hasAllTags(rec, tags) {
			continue
		}
		recipes = append(recipes, rec)
		if limit > 0 && len(recipes) == limit {
			break
		}
	}
	return recipes
}

// FindByIDs resolves recipes in one query, ingredients included
func (r *RecipeCatalog) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var models []RecipeModel
	result := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id IN ?", ids).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	recipes := make([]*recipe.Recipe, 0, len(models))
	for i := range models {
		recipes = append(recipes, toRecipeDomain(&models[i]))
	}
	return recipes, nil
}

func hasAllTags(rec *recipe.Recipe, tags []recipe.DietaryTag) bool {
	for _, tag := range tags {
		if !rec.HasDietaryTag(tag) {
			return false
		}
	}
	return true
}
