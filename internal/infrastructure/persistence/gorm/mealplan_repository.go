package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kitchensage/v2/internal/domain/mealplan"
	"github.com/kitchensage/v2/internal/ports/outbound"
)

// MealPlanStore implements the meal plan store interface using GORM
type MealPlanStore struct {
	db *gorm.DB
}

// NewMealPlanStore creates a new meal plan store
func NewMealPlanStore(db *gorm.DB) outbound.MealPlanStore {
	return &MealPlanStore{db: db}
}

// Save persists a plan together with its meal slots
func (s *MealPlanStore) Save(ctx context.Context, plan *mealplan.MealPlan) error {
	model := toMealPlanModel(plan)
	return s.db.WithContext(ctx).Create(model).Error
}

// FindByID finds a plan by ID, meal slots included
func (s *MealPlanStore) FindByID(ctx context.Context, id uuid.UUID) (*mealplan.MealPlan, error) {
	var model MealPlanModel

	result := s.db.WithContext(ctx).
		Preload("Meals", func(db *gorm.DB) *gorm.DB {
			return db.Order("day ASC, meal_type ASC")
		}).
		First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, mealplan.ErrPlanNotFound
		}
		return nil, result.Error
	}

	return toMealPlanDomain(&model), nil
}

// FindRecent returns the most recently created plans, newest first
func (s *MealPlanStore) FindRecent(ctx context.Context, limit int) ([]*mealplan.MealPlan, error) {
	if limit <= 0 {
		limit = 20
	}

	var models []MealPlanModel
	result := s.db.WithContext(ctx).
		Preload("Meals", func(db *gorm.DB) *gorm.DB {
			return db.Order("day ASC, meal_type ASC")
		}).
		Order("created_at DESC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	plans := make([]*mealplan.MealPlan, 0, len(models))
	for i := range models {
		plans = append(plans, toMealPlanDomain(&models[i]))
	}
	return plans, nil
}

// Delete removes a plan and its meal slots
func (s *MealPlanStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_plan_id = ?", id).Delete(&MealModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&MealPlanModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return mealplan.ErrPlanNotFound
		}
		return nil
	})
}
