package mealplan

import "errors"

// Domain errors for meal plan assembly

var (
	ErrInvalidDays   = errors.New("plan days must be between 1 and 30")
	ErrInvalidPeople = errors.New("plan people must be between 1 and 20")
	ErrInvalidBudget = errors.New("plan budget must not be negative")
	ErrPlanNotFound  = errors.New("meal plan not found")
)
