package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kitchensage/v2/internal/domain/recipe"
	"github.com/kitchensage/v2/internal/ports/inbound"
	"github.com/kitchensage/v2/pkg/errors"
)

// PlannerHandlers handles meal plan API requests
type PlannerHandlers struct {
	planner  inbound.PlannerService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewPlannerHandlers creates a new planner handlers instance
func NewPlannerHandlers(planner inbound.PlannerService, logger *zap.Logger) *PlannerHandlers {
	return &PlannerHandlers{
		planner:  planner,
		validate: validator.New(),
		logger:   logger,
	}
}

// composePlanRequest is the wire form of a planning request
type composePlanRequest struct {
	Days             int      `json:"days" validate:"required,min=1,max=30"`
	People           int      `json:"people" validate:"required,min=1,max=20"`
	DietaryTags      []string `json:"dietary_tags" validate:"dive,oneof=vegetarian vegan gluten_free dairy_free keto paleo"`
	Hint             string   `json:"hint" validate:"max=500"`
	Budget           float64  `json:"budget" validate:"min=0"`
	ServingsOverride int      `json:"servings_override" validate:"min=0"`
}

func (req composePlanRequest) toCommand() inbound.ComposePlanCommand {
	tags := make([]recipe.DietaryTag, 0, len(req.DietaryTags))
	for _, tag := range req.DietaryTags {
		tags = append(tags, recipe.DietaryTag(tag))
	}
	return inbound.ComposePlanCommand{
		Days:             req.Days,
		People:           req.People,
		DietaryTags:      tags,
		Hint:             req.Hint,
		Budget:           req.Budget,
		ServingsOverride: req.ServingsOverride,
	}
}

// ComposePlan handles POST /api/v1/meal-plans
func (h *PlannerHandlers) ComposePlan(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeComposeRequest(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := h.planner.ComposePlan(r.Context(), req.toCommand())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	status := http.StatusCreated
	if result.Outcome == inbound.OutcomeFailed {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, h.logger, status, APIResponse{Success: true, Data: result})
}

// StreamPlan handles POST /api/v1/meal-plans/stream as Server-Sent Events
func (h *PlannerHandlers) StreamPlan(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeComposeRequest(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, r, h.logger, errors.NewInternalError("Streaming is not supported"))
		return
	}

	events, err := h.planner.StreamPlan(r.Context(), req.toCommand())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			h.logger.Error("Failed to marshal progress event", zap.Error(err))
			continue
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, payload)
		flusher.Flush()
	}
}

// GetPlan handles GET /api/v1/meal-plans/{id}
func (h *PlannerHandlers) GetPlan(w http.ResponseWriter, r *http.Request) {
	planID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, errors.NewValidationError("invalid plan id"))
		return
	}

	plan, err := h.planner.GetPlanByID(r.Context(), planID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true, Data: plan})
}

// ListPlans handles GET /api/v1/meal-plans
func (h *PlannerHandlers) ListPlans(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			writeError(w, r, h.logger, errors.NewValidationError("limit must be between 1 and 100"))
			return
		}
		limit = parsed
	}

	plans, err := h.planner.ListRecentPlans(r.Context(), limit)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true, Data: plans})
}

// DeletePlan handles DELETE /api/v1/meal-plans/{id}
func (h *PlannerHandlers) DeletePlan(w http.ResponseWriter, r *http.Request) {
	planID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, errors.NewValidationError("invalid plan id"))
		return
	}

	if err := h.planner.DeletePlan(r.Context(), planID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true, Message: "Meal plan deleted"})
}

func (h *PlannerHandlers) decodeComposeRequest(r *http.Request) (composePlanRequest, error) {
	var req composePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, errors.NewValidationError("invalid JSON body")
	}
	if err := h.validate.Struct(req); err != nil {
		return req, toValidationError(err)
	}
	return req, nil
}

// toValidationError converts validator errors into the API error shape
func toValidationError(err error) error {
	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewValidationError(err.Error())
	}

	fieldErrors := make([]errors.ValidationError, 0, len(invalid))
	for _, fe := range invalid {
		fieldErrors = append(fieldErrors, errors.ValidationError{
			Field:   fe.Field(),
			Value:   fe.Value(),
			Tag:     fe.Tag(),
			Message: fmt.Sprintf("field %s failed %s validation", fe.Field(), fe.Tag()),
		})
	}
	return errors.NewValidationErrors(fieldErrors)
}
