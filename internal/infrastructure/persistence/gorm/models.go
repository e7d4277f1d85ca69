// Package gorm provides GORM model definitions and repositories for the
// recipe catalog, meal plan store, and grocery store.
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeModel represents the GORM model for catalog recipes
type RecipeModel struct {
	ID          uuid.UUID   `gorm:"type:char(36);primaryKey"`
	Name        string      `gorm:"type:varchar(255);not null;index"`
	Cuisine     string      `gorm:"type:varchar(50);index"`
	DietaryTags StringSlice `gorm:"type:json"`

	// Timing (stored in minutes)
	PrepTimeMinutes int `gorm:"column:prep_time_minutes;default:0"`
	CookTimeMinutes int `gorm:"column:cook_time_minutes;default:0"`

	Servings int `gorm:"default:1"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relationships
	Ingredients []IngredientModel `gorm:"foreignKey:RecipeID"`
}

// IngredientModel represents one ingredient line of a recipe
type IngredientModel struct {
	ID       uuid.UUID `gorm:"type:char(36);primaryKey"`
	RecipeID uuid.UUID `gorm:"type:char(36);not null;index"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Quantity float64   `gorm:"not null"`
	Unit     string    `gorm:"type:varchar(50)"`
	Notes    string    `gorm:"type:text"`
	Position int       `gorm:"default:0"`
}

// MealPlanModel represents the GORM model for meal plans
type MealPlanModel struct {
	ID          uuid.UUID   `gorm:"type:char(36);primaryKey"`
	Name        string      `gorm:"type:varchar(255);not null"`
	Days        int         `gorm:"not null"`
	People      int         `gorm:"not null"`
	DietaryTags StringSlice `gorm:"type:json"`
	Hint        string      `gorm:"type:text"`
	Budget      float64     `gorm:"default:0"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	// Relationships
	Meals []MealModel `gorm:"foreignKey:MealPlanID"`
}

// MealModel represents one (day, meal type) slot of a plan
type MealModel struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey"`
	MealPlanID uuid.UUID `gorm:"type:char(36);not null;index"`
	Day        int       `gorm:"not null"`
	MealType   string    `gorm:"type:varchar(20);not null"`
	RecipeID   uuid.UUID `gorm:"type:char(36);not null;index"`
	RecipeName string    `gorm:"type:varchar(255)"`
	Servings   int       `gorm:"default:1"`

	PrepTimeMinutes int `gorm:"column:prep_time_minutes;default:0"`
	CookTimeMinutes int `gorm:"column:cook_time_minutes;default:0"`
}

// GroceryListModel represents the GORM model for grocery lists
type GroceryListModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships
	Items []GroceryItemModel `gorm:"foreignKey:ListID"`
}

// GroceryItemModel represents one line on a grocery list
type GroceryItemModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	ListID       uuid.UUID `gorm:"type:char(36);not null;index:idx_list_name_unit"`
	IngredientID uuid.UUID `gorm:"type:char(36);index"`
	Name         string    `gorm:"type:varchar(255);not null;index:idx_list_name_unit"`
	Quantity     float64   `gorm:"not null"`
	Unit         string    `gorm:"type:varchar(50);index:idx_list_name_unit"`
	Notes        string    `gorm:"type:text"`
	Category     string    `gorm:"type:varchar(100)"`
	Purchased    bool      `gorm:"default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for IngredientModel
func (i *IngredientModel) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for MealPlanModel
func (m *MealPlanModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for GroceryListModel
func (g *GroceryListModel) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// AllModels returns every model for auto-migration
func AllModels() []interface{} {
	return []interface{}{
		&RecipeModel{},
		&IngredientModel{},
		&MealPlanModel{},
		&MealModel{},
		&GroceryListModel{},
		&GroceryItemModel{},
	}
}
