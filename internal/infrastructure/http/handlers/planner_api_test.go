package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kitchensage/v2/internal/ports/inbound"
	"github.com/kitchensage/v2/pkg/errors"
)

// stubPlannerService returns canned responses for handler tests
type stubPlannerService struct {
	result  *inbound.PlanResult
	events  []inbound.ProgressEvent
	plan    *inbound.MealPlanDTO
	plans   []inbound.MealPlanDTO
	err     error
	lastCmd inbound.ComposePlanCommand
}

func (s *stubPlannerService) ComposePlan(ctx context.Context, cmd inbound.ComposePlanCommand) (*inbound.PlanResult, error) {
	s.lastCmd = cmd
	return s.result, s.err
}

func (s *stubPlannerService) StreamPlan(ctx context.Context, cmd inbound.ComposePlanCommand) (<-chan inbound.ProgressEvent, error) {
	s.lastCmd = cmd
	if s.err != nil {
		return nil, s.err
	}
	ch := make(chan inbound.ProgressEvent, len(s.events))
	for _, e := range s.events {
		ch <- e
	}
	close(ch)
	return ch, nil
}

func (s *stubPlannerService) GetPlanByID(ctx context.Context, planID uuid.UUID) (*inbound.MealPlanDTO, error) {
	if s.plan == nil {
		return nil, errors.NewPlanNotFoundError(planID.String())
	}
	return s.plan, nil
}

func (s *stubPlannerService) ListRecentPlans(ctx context.Context, limit int) ([]inbound.MealPlanDTO, error) {
	return s.plans, s.err
}

func (s *stubPlannerService) DeletePlan(ctx context.Context, planID uuid.UUID) error {
	return s.err
}

func newPlannerRouter(svc inbound.PlannerService) *chi.Mux {
	h := NewPlannerHandlers(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/meal-plans", h.ComposePlan)
	r.Post("/meal-plans/stream", h.StreamPlan)
	r.Get("/meal-plans", h.ListPlans)
	r.Get("/meal-plans/{id}", h.GetPlan)
	r.Delete("/meal-plans/{id}", h.DeletePlan)
	return r
}

func TestComposePlanReturnsCreatedResult(t *testing.T) {
	svc := &stubPlannerService{
		result: &inbound.PlanResult{
			Outcome: inbound.OutcomeSuccess,
			Plan:    &inbound.MealPlanDTO{ID: uuid.New(), Name: "Italian Week"},
		},
	}
	router := newPlannerRouter(svc)

	body := `{"days": 7, "people": 4, "dietary_tags": ["vegetarian"]}`
	req := httptest.NewRequest(http.MethodPost, "/meal-plans", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 7, svc.lastCmd.Days)
	assert.Equal(t, 4, svc.lastCmd.People)
	require.Len(t, svc.lastCmd.DietaryTags, 1)

	var resp APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
}

func TestComposePlanFailedOutcomeMapsToUnprocessable(t *testing.T) {
	svc := &stubPlannerService{
		result: &inbound.PlanResult{Outcome: inbound.OutcomeFailed, Reason: "no recipes"},
	}
	router := newPlannerRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/meal-plans", strings.NewReader(`{"days": 3, "people": 2}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestComposePlanRejectsInvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"days": `},
		{"days out of range", `{"days": 45, "people": 2}`},
		{"people missing", `{"days": 7}`},
		{"unknown dietary tag", `{"days": 7, "people": 2, "dietary_tags": ["carnivore"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubPlannerService{}
			router := newPlannerRouter(svc)

			req := httptest.NewRequest(http.MethodPost, "/meal-plans", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Zero(t, svc.lastCmd.Days, "service must not be called")
		})
	}
}

func TestStreamPlanWritesServerSentEvents(t *testing.T) {
	svc := &stubPlannerService{
		events: []inbound.ProgressEvent{
			{Type: inbound.EventThinking, Message: "analyzing pool", Timestamp: time.Now()},
			{Type: inbound.EventComplete, Result: &inbound.PlanResult{Outcome: inbound.OutcomeSuccess}, Timestamp: time.Now()},
		},
	}
	router := newPlannerRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/meal-plans/stream", strings.NewReader(`{"days": 5, "people": 2}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	payload := rec.Body.String()
	assert.Contains(t, payload, "event: thinking\n")
	assert.Contains(t, payload, "event: complete\n")
	assert.Contains(t, payload, `"outcome":"success"`)
}

func TestGetPlanRejectsInvalidID(t *testing.T) {
	router := newPlannerRouter(&stubPlannerService{})

	req := httptest.NewRequest(http.MethodGet, "/meal-plans/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPlanUnknownIDReturnsNotFound(t *testing.T) {
	router := newPlannerRouter(&stubPlannerService{})

	req := httptest.NewRequest(http.MethodGet, "/meal-plans/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp errors.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, errors.CodePlanNotFound, resp.Error.Code)
}

func TestListPlansValidatesLimit(t *testing.T) {
	router := newPlannerRouter(&stubPlannerService{plans: []inbound.MealPlanDTO{}})

	req := httptest.NewRequest(http.MethodGet, "/meal-plans?limit=500", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeletePlanReturnsOK(t *testing.T) {
	router := newPlannerRouter(&stubPlannerService{})

	req := httptest.NewRequest(http.MethodDelete, "/meal-plans/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
