package recipe

import (
	"errors"

	"github.com/google/uuid"
)

// Ingredient is one ingredient line of a recipe. The ingredient identity
// (ID) is stable across recipes: two recipes referencing the same
// ingredient carry the same ID, not just the same name string.
type Ingredient struct {
	ID       uuid.UUID
	Name     string
	Quantity float64
	Unit     MeasurementUnit
	Notes    string
}

// Validate validates the ingredient line.
func (i Ingredient) Validate() error {
	if i.Name == "" {
		return errors.New("ingredient name is required")
	}
	if i.Quantity <= 0 {
		return errors.New("ingredient quantity must be positive")
	}
	return nil
}

// MeasurementUnit represents units of measurement.
type MeasurementUnit string

const (
	// Volume units
	MeasurementUnitTeaspoon   MeasurementUnit = "tsp"
	MeasurementUnitTablespoon MeasurementUnit = "tbsp"
	MeasurementUnitCup        MeasurementUnit = "cup"
	MeasurementUnitMilliliter MeasurementUnit = "ml"
	MeasurementUnitLiter      MeasurementUnit = "l"

	// Weight units
	MeasurementUnitGram     MeasurementUnit = "g"
	MeasurementUnitKilogram MeasurementUnit = "kg"
	MeasurementUnitPound    MeasurementUnit = "lb"
	MeasurementUnitOunce    MeasurementUnit = "oz"

	// Count units
	MeasurementUnitPiece MeasurementUnit = "piece"
	MeasurementUnitPinch MeasurementUnit = "pinch"
)

// CuisineType represents different cuisine types.
type CuisineType string

const (
	CuisineItalian       CuisineType = "italian"
	CuisineFrench        CuisineType = "french"
	CuisineChinese       CuisineType = "chinese"
	CuisineJapanese      CuisineType = "japanese"
	CuisineIndian        CuisineType = "indian"
	CuisineMexican       CuisineType = "mexican"
	CuisineAmerican      CuisineType = "american"
	CuisineMediterranean CuisineType = "mediterranean"
	CuisineThai          CuisineType = "thai"
	CuisineOther         CuisineType = "other"
)

// DietaryTag represents dietary classifications.
type DietaryTag string

const (
	DietaryTagVegetarian DietaryTag = "vegetarian"
	DietaryTagVegan      DietaryTag = "vegan"
	DietaryTagGlutenFree DietaryTag = "gluten_free"
	DietaryTagDairyFree  DietaryTag = "dairy_free"
	DietaryTagKeto       DietaryTag = "keto"
	DietaryTagPaleo      DietaryTag = "paleo"
)
