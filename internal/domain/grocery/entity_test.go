package grocery

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddOrMergeAppendsNewLine(t *testing.T) {
	list, err := NewList(DefaultListName)
	require.NoError(t, err)

	err = list.AddOrMerge(ConsolidatedItem{Name: "Flour", Quantity: 2, Unit: "cup"})
	require.NoError(t, err)
	require.Len(t, list.Items(), 1)
	assert.Equal(t, 2.0, list.Items()[0].Quantity)
}

func TestAddOrMergeAccumulatesQuantity(t *testing.T) {
	list, err := NewList(DefaultListName)
	require.NoError(t, err)

	require.NoError(t, list.AddOrMerge(ConsolidatedItem{Name: "Flour", Quantity: 2, Unit: "cup"}))
	require.NoError(t, list.AddOrMerge(ConsolidatedItem{Name: "flour", Quantity: 1, Unit: "CUP"}))

	require.Len(t, list.Items(), 1, "case-insensitive (name, unit) key")
	assert.Equal(t, 3.0, list.Items()[0].Quantity)
}

func TestAddOrMergeResetsPurchased(t *testing.T) {
	itemID := uuid.New()
	list := ReconstructList(uuid.New(), DefaultListName, []GroceryItem{
		{ID: itemID, Name: "Flour", Quantity: 1, Unit: "cup", Purchased: true},
	}, time.Now(), time.Now())

	require.NoError(t, list.AddOrMerge(ConsolidatedItem{Name: "Flour", Quantity: 2, Unit: "cup"}))

	require.Len(t, list.Items(), 1)
	assert.False(t, list.Items()[0].Purchased)
	assert.Equal(t, 3.0, list.Items()[0].Quantity)
}

func TestAddOrMergeBackfillsIngredientIdentity(t *testing.T) {
	ingredientID := uuid.New()
	list, err := NewList(DefaultListName)
	require.NoError(t, err)

	require.NoError(t, list.AddOrMerge(ConsolidatedItem{Name: "Flour", Quantity: 2, Unit: "cup"}))
	require.NoError(t, list.AddOrMerge(ConsolidatedItem{IngredientID: ingredientID, Name: "flour", Quantity: 1, Unit: "cup"}))

	require.Len(t, list.Items(), 1)
	assert.Equal(t, ingredientID, list.Items()[0].IngredientID)
}

func TestAddOrMergeDistinctUnits(t *testing.T) {
	list, err := NewList(DefaultListName)
	require.NoError(t, err)

	require.NoError(t, list.AddOrMerge(ConsolidatedItem{Name: "Milk", Quantity: 1, Unit: "cup"}))
	require.NoError(t, list.AddOrMerge(ConsolidatedItem{Name: "Milk", Quantity: 200, Unit: "ml"}))

	assert.Len(t, list.Items(), 2)
}

func TestAddOrMergeRejectsInvalidItems(t *testing.T) {
	list, err := NewList(DefaultListName)
	require.NoError(t, err)

	assert.ErrorIs(t, list.AddOrMerge(ConsolidatedItem{Name: "", Quantity: 1}), ErrEmptyItemName)
	assert.ErrorIs(t, list.AddOrMerge(ConsolidatedItem{Name: "Flour", Quantity: 0}), ErrInvalidQuantity)
	assert.Empty(t, list.Items())
}

func TestMarkPurchased(t *testing.T) {
	itemID := uuid.New()
	list := ReconstructList(uuid.New(), DefaultListName, []GroceryItem{
		{ID: itemID, Name: "Flour", Quantity: 1, Unit: "cup"},
	}, time.Now(), time.Now())

	require.NoError(t, list.MarkPurchased(itemID, true))
	assert.True(t, list.Items()[0].Purchased)

	assert.ErrorIs(t, list.MarkPurchased(uuid.New(), true), ErrItemNotFound)
}

func TestRemoveItem(t *testing.T) {
	itemID := uuid.New()
	list := ReconstructList(uuid.New(), DefaultListName, []GroceryItem{
		{ID: itemID, Name: "Flour", Quantity: 1, Unit: "cup"},
	}, time.Now(), time.Now())

	require.NoError(t, list.RemoveItem(itemID))
	assert.Empty(t, list.Items())

	assert.ErrorIs(t, list.RemoveItem(itemID), ErrItemNotFound)
}

func TestNewListRequiresName(t *testing.T) {
	_, err := NewList("  ")
	assert.ErrorIs(t, err, ErrEmptyListName)
}
