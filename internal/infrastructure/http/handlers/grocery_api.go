package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kitchensage/v2/internal/ports/inbound"
	"github.com/kitchensage/v2/pkg/errors"
)

// GroceryHandlers handles grocery list API requests
type GroceryHandlers struct {
	grocery  inbound.GroceryService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewGroceryHandlers creates a new grocery handlers instance
func NewGroceryHandlers(grocery inbound.GroceryService, logger *zap.Logger) *GroceryHandlers {
	return &GroceryHandlers{
		grocery:  grocery,
		validate: validator.New(),
		logger:   logger,
	}
}

// buildListRequest is the wire form of a list generation request
type buildListRequest struct {
	PlanID         uuid.UUID `json:"plan_id" validate:"required"`
	SkipEnrichment bool      `json:"skip_enrichment"`
}

// BuildList handles POST /api/v1/grocery-lists/from-plan
func (h *GroceryHandlers) BuildList(w http.ResponseWriter, r *http.Request) {
	var req buildListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, errors.NewValidationError("invalid JSON body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, h.logger, toValidationError(err))
		return
	}

	list, err := h.grocery.BuildListFromPlan(r.Context(), inbound.BuildListCommand{
		PlanID:         req.PlanID,
		SkipEnrichment: req.SkipEnrichment,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, APIResponse{Success: true, Data: list})
}

// GetDefaultList handles GET /api/v1/grocery-lists/default
func (h *GroceryHandlers) GetDefaultList(w http.ResponseWriter, r *http.Request) {
	list, err := h.grocery.GetDefaultList(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true, Data: list})
}

// GetList handles GET /api/v1/grocery-lists/{id}
func (h *GroceryHandlers) GetList(w http.ResponseWriter, r *http.Request) {
	listID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, errors.NewValidationError("invalid list id"))
		return
	}

	list, err := h.grocery.GetListByID(r.Context(), listID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true, Data: list})
}

// markPurchasedRequest is the wire form of a purchased toggle
type markPurchasedRequest struct {
	Purchased bool `json:"purchased"`
}

// MarkItemPurchased handles PATCH /api/v1/grocery-lists/{id}/items/{itemID}
func (h *GroceryHandlers) MarkItemPurchased(w http.ResponseWriter, r *http.Request) {
	listID, itemID, err := parseItemPath(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req markPurchasedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, errors.NewValidationError("invalid JSON body"))
		return
	}

	if err := h.grocery.MarkItemPurchased(r.Context(), listID, itemID, req.Purchased); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true, Message: "Item updated"})
}

// RemoveItem handles DELETE /api/v1/grocery-lists/{id}/items/{itemID}
func (h *GroceryHandlers) RemoveItem(w http.ResponseWriter, r *http.Request) {
	listID, itemID, err := parseItemPath(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.grocery.RemoveItem(r.Context(), listID, itemID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true, Message: "Item removed"})
}

func parseItemPath(r *http.Request) (uuid.UUID, uuid.UUID, error) {
	listID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.NewValidationError("invalid list id")
	}
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.NewValidationError("invalid item id")
	}
	return listID, itemID, nil
}
