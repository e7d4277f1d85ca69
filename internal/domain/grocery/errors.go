package grocery

import "errors"

var (
	ErrEmptyListName   = errors.New("grocery list name is required")
	ErrEmptyItemName   = errors.New("grocery item name is required")
	ErrInvalidQuantity = errors.New("grocery item quantity must be positive")
	ErrItemNotFound    = errors.New("grocery item not found")
	ErrListNotFound    = errors.New("grocery list not found")
)
