package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kitchensage/v2/internal/ports/inbound"
	"github.com/kitchensage/v2/pkg/errors"
)

// stubGroceryService returns canned responses for handler tests
type stubGroceryService struct {
	list    *inbound.GroceryListDTO
	err     error
	lastCmd inbound.BuildListCommand
}

func (s *stubGroceryService) BuildListFromPlan(ctx context.Context, cmd inbound.BuildListCommand) (*inbound.GroceryListDTO, error) {
	s.lastCmd = cmd
	return s.list, s.err
}

func (s *stubGroceryService) GetDefaultList(ctx context.Context) (*inbound.GroceryListDTO, error) {
	return s.list, s.err
}

func (s *stubGroceryService) GetListByID(ctx context.Context, listID uuid.UUID) (*inbound.GroceryListDTO, error) {
	if s.list == nil {
		return nil, errors.NewListNotFoundError(listID.String())
	}
	return s.list, s.err
}

func (s *stubGroceryService) MarkItemPurchased(ctx context.Context, listID, itemID uuid.UUID, purchased bool) error {
	return s.err
}

func (s *stubGroceryService) RemoveItem(ctx context.Context, listID, itemID uuid.UUID) error {
	return s.err
}

func newGroceryRouter(svc inbound.GroceryService) *chi.Mux {
	h := NewGroceryHandlers(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/grocery-lists/from-plan", h.BuildList)
	r.Get("/grocery-lists/default", h.GetDefaultList)
	r.Get("/grocery-lists/{id}", h.GetList)
	r.Patch("/grocery-lists/{id}/items/{itemID}", h.MarkItemPurchased)
	r.Delete("/grocery-lists/{id}/items/{itemID}", h.RemoveItem)
	return r
}

func TestBuildListReturnsCreated(t *testing.T) {
	planID := uuid.New()
	svc := &stubGroceryService{
		list: &inbound.GroceryListDTO{ID: uuid.New(), Name: "My Grocery List", Enriched: true},
	}
	router := newGroceryRouter(svc)

	body := `{"plan_id": "` + planID.String() + `", "skip_enrichment": false}`
	req := httptest.NewRequest(http.MethodPost, "/grocery-lists/from-plan", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, planID, svc.lastCmd.PlanID)
	assert.False(t, svc.lastCmd.SkipEnrichment)
}

func TestBuildListRequiresPlanID(t *testing.T) {
	router := newGroceryRouter(&stubGroceryService{})

	req := httptest.NewRequest(http.MethodPost, "/grocery-lists/from-plan", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBuildListUnknownPlanReturnsNotFound(t *testing.T) {
	planID := uuid.New()
	svc := &stubGroceryService{err: errors.NewPlanNotFoundError(planID.String())}
	router := newGroceryRouter(svc)

	body := `{"plan_id": "` + planID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/grocery-lists/from-plan", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp errors.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, errors.CodePlanNotFound, resp.Error.Code)
}

func TestGetDefaultListReturnsList(t *testing.T) {
	svc := &stubGroceryService{
		list: &inbound.GroceryListDTO{ID: uuid.New(), Name: "My Grocery List"},
	}
	router := newGroceryRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/grocery-lists/default", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
}

func TestMarkItemPurchasedValidatesIDs(t *testing.T) {
	router := newGroceryRouter(&stubGroceryService{})

	req := httptest.NewRequest(http.MethodPatch,
		"/grocery-lists/"+uuid.NewString()+"/items/bogus",
		strings.NewReader(`{"purchased": true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarkItemPurchasedReturnsOK(t *testing.T) {
	router := newGroceryRouter(&stubGroceryService{})

	req := httptest.NewRequest(http.MethodPatch,
		"/grocery-lists/"+uuid.NewString()+"/items/"+uuid.NewString(),
		strings.NewReader(`{"purchased": true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRemoveItemReturnsOK(t *testing.T) {
	router := newGroceryRouter(&stubGroceryService{})

	req := httptest.NewRequest(http.MethodDelete,
		"/grocery-lists/"+uuid.NewString()+"/items/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
