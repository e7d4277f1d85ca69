package grocery

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	grocerydomain "github.com/kitchensage/v2/internal/domain/grocery"
	"github.com/kitchensage/v2/pkg/logger"
	"github.com/kitchensage/v2/test/testutils"
)

func newEngine(enricher *testutils.MockEnrichmentService) *ConsolidationEngine {
	if enricher == nil {
		return NewConsolidationEngine(nil, nil, logger.NewNop())
	}
	return NewConsolidationEngine(enricher, nil, logger.NewNop())
}

func TestDeterministicMergeSumsQuantities(t *testing.T) {
	e := newEngine(nil)

	result := e.Consolidate(context.Background(), []grocerydomain.RawItem{
		testutils.NewRawItem("Flour", 2, "cup"),
		testutils.NewRawItem("flour", 1, "cup"),
		testutils.NewRawItem("Butter", 1, "tbsp"),
	}, false)

	require.Len(t, result.Items, 2)
	assert.False(t, result.Enriched)

	assert.Equal(t, "Butter", result.Items[0].Name)
	assert.Equal(t, 1.0, result.Items[0].Quantity)
	assert.Equal(t, "Flour", result.Items[1].Name)
	assert.Equal(t, 3.0, result.Items[1].Quantity)
}

func TestMergeKeyedByNameAndUnit(t *testing.T) {
	e := newEngine(nil)

	result := e.Consolidate(context.Background(), []grocerydomain.RawItem{
		testutils.NewRawItem("Milk", 1, "cup"),
		testutils.NewRawItem("Milk", 200, "ml"),
	}, false)

	require.Len(t, result.Items, 2, "different units must not merge")
}

func TestMergeJoinsDistinctNotes(t *testing.T) {
	e := newEngine(nil)

	a := testutils.NewRawItem("Onion", 1, "piece")
	a.Notes = "diced"
	b := testutils.NewRawItem("Onion", 2, "piece")
	b.Notes = "sliced"
	c := testutils.NewRawItem("Onion", 1, "piece")
	c.Notes = "diced"

	result := e.Consolidate(context.Background(), []grocerydomain.RawItem{a, b, c}, false)

	require.Len(t, result.Items, 1)
	assert.Equal(t, 4.0, result.Items[0].Quantity)
	assert.Equal(t, "diced; sliced", result.Items[0].Notes)
}

func TestMergeIsIdempotent(t *testing.T) {
	e := newEngine(nil)
	input := []grocerydomain.RawItem{
		testutils.NewRawItem("Rice", 2, "cup"),
		testutils.NewRawItem("rice", 1, "cup"),
	}

	first := e.Consolidate(context.Background(), input, false)

	// Feeding merged output back in must not change it.
	asRaw := make([]grocerydomain.RawItem, 0, len(first.Items))
	for _, item := range first.Items {
		asRaw = append(asRaw, grocerydomain.RawItem{
			Name: item.Name, Quantity: item.Quantity, Unit: item.Unit, Notes: item.Notes,
		})
	}
	second := e.Consolidate(context.Background(), asRaw, false)

	assert.Equal(t, first.Items, second.Items)
}

func TestMergeSkipsInvalidItems(t *testing.T) {
	e := newEngine(nil)

	result := e.Consolidate(context.Background(), []grocerydomain.RawItem{
		testutils.NewRawItem("", 2, "cup"),
		testutils.NewRawItem("Sugar", 0, "cup"),
		testutils.NewRawItem("Sugar", 1, "cup"),
	}, false)

	require.Len(t, result.Items, 1)
	assert.Equal(t, 1.0, result.Items[0].Quantity)
}

func TestEmptyInputYieldsEmptyOutput(t *testing.T) {
	e := newEngine(nil)

	result := e.Consolidate(context.Background(), nil, false)

	assert.Empty(t, result.Items)
	assert.False(t, result.Enriched)
}

func TestMergeCarriesIngredientIdentity(t *testing.T) {
	e := newEngine(nil)
	ingredientID := uuid.New()

	withID := testutils.NewRawItem("Flour", 2, "cup")
	withID.IngredientID = ingredientID
	withoutID := testutils.NewRawItem("flour", 1, "cup")

	result := e.Consolidate(context.Background(), []grocerydomain.RawItem{withoutID, withID}, false)

	require.Len(t, result.Items, 1)
	assert.Equal(t, ingredientID, result.Items[0].IngredientID,
		"a resolved occurrence must lend the merged line its identity")
}

func TestEnrichmentRestoresIngredientIdentity(t *testing.T) {
	enricher := new(testutils.MockEnrichmentService)
	e := newEngine(enricher)
	ingredientID := uuid.New()

	// The response omits the id; it is restored from the input line.
	enricher.On("EnrichItems", mock.Anything, mock.Anything).Return([]grocerydomain.ConsolidatedItem{
		{Name: "Flour", Quantity: 3, Unit: "cup", Category: "baking"},
	}, nil)

	raw := testutils.NewRawItem("Flour", 3, "cup")
	raw.IngredientID = ingredientID

	result := e.Consolidate(context.Background(), []grocerydomain.RawItem{raw}, false)

	assert.True(t, result.Enriched)
	require.Len(t, result.Items, 1)
	assert.Equal(t, ingredientID, result.Items[0].IngredientID)
}

func TestEnrichmentSuccess(t *testing.T) {
	enricher := new(testutils.MockEnrichmentService)
	e := newEngine(enricher)

	enricher.On("EnrichItems", mock.Anything, mock.Anything).Return([]grocerydomain.ConsolidatedItem{
		{Name: "Flour", Quantity: 3, Unit: "cup", Category: "baking"},
	}, nil)

	result := e.Consolidate(context.Background(), []grocerydomain.RawItem{
		testutils.NewRawItem("Flour", 2, "cup"),
		testutils.NewRawItem("flour", 1, "cup"),
	}, false)

	assert.True(t, result.Enriched)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "baking", result.Items[0].Category)
}

func TestEnrichmentFailureFallsBackToDeterministic(t *testing.T) {
	enricher := new(testutils.MockEnrichmentService)
	e := newEngine(enricher)

	enricher.On("EnrichItems", mock.Anything, mock.Anything).Return(nil, errors.New("service down"))

	result := e.Consolidate(context.Background(), []grocerydomain.RawItem{
		testutils.NewRawItem("Flour", 2, "cup"),
	}, false)

	assert.False(t, result.Enriched)
	require.Len(t, result.Items, 1)
	assert.Equal(t, 2.0, result.Items[0].Quantity)
}

func TestEnrichmentInvalidItemsAreDropped(t *testing.T) {
	enricher := new(testutils.MockEnrichmentService)
	e := newEngine(enricher)

	enricher.On("EnrichItems", mock.Anything, mock.Anything).Return([]grocerydomain.ConsolidatedItem{
		{Name: "Flour", Quantity: 3, Unit: "cup"},
		{Name: "", Quantity: 1, Unit: "cup"},
		{Name: "Flour", Quantity: -2, Unit: "cup"},
	}, nil)

	result := e.Consolidate(context.Background(), []grocerydomain.RawItem{
		testutils.NewRawItem("Flour", 3, "cup"),
	}, false)

	assert.True(t, result.Enriched)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Flour", result.Items[0].Name)
}

func TestEnrichmentMayNotInventItems(t *testing.T) {
	enricher := new(testutils.MockEnrichmentService)
	e := newEngine(enricher)

	// The response invents "Caviar"; only the known line survives.
	enricher.On("EnrichItems", mock.Anything, mock.Anything).Return([]grocerydomain.ConsolidatedItem{
		{Name: "Flour", Quantity: 3, Unit: "cup"},
		{Name: "Caviar", Quantity: 1, Unit: "oz"},
	}, nil)

	result := e.Consolidate(context.Background(), []grocerydomain.RawItem{
		testutils.NewRawItem("Flour", 3, "cup"),
	}, false)

	assert.True(t, result.Enriched)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Flour", result.Items[0].Name)
}

func TestEnrichmentAllInvalidFallsBack(t *testing.T) {
	enricher := new(testutils.MockEnrichmentService)
	e := newEngine(enricher)

	enricher.On("EnrichItems", mock.Anything, mock.Anything).Return([]grocerydomain.ConsolidatedItem{
		{Name: "", Quantity: 0},
	}, nil)

	result := e.Consolidate(context.Background(), []grocerydomain.RawItem{
		testutils.NewRawItem("Flour", 2, "cup"),
	}, false)

	assert.False(t, result.Enriched)
	require.Len(t, result.Items, 1)
}

func TestSkipEnrichmentFlag(t *testing.T) {
	enricher := new(testutils.MockEnrichmentService)
	e := newEngine(enricher)

	result := e.Consolidate(context.Background(), []grocerydomain.RawItem{
		testutils.NewRawItem("Flour", 2, "cup"),
	}, true)

	assert.False(t, result.Enriched)
	enricher.AssertNotCalled(t, "EnrichItems", mock.Anything, mock.Anything)
}
