package recipe

import "errors"

// Domain errors for recipe snapshots

var (
	ErrNameTooShort    = errors.New("recipe name must be at least 3 characters")
	ErrNameTooLong     = errors.New("recipe name must not exceed 200 characters")
	ErrInvalidServings = errors.New("servings must be greater than 0")
	ErrNegativeTime    = errors.New("prep and cook time must not be negative")
	ErrRecipeNotFound  = errors.New("recipe not found")
)
