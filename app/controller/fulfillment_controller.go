package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"pos-billing/billing"
	"pos-billing/models"
)

// FulfillmentController handles checked-quantity (picking) requests
type FulfillmentController struct {
	manager *billing.Manager
}

// NewFulfillmentController creates a new FulfillmentController
func NewFulfillmentController(manager *billing.Manager) *FulfillmentController {
	return &FulfillmentController{manager: manager}
}

// UpdateChecked handles POST /billing/drafts/{id}/items/{itemId}/checked
// Applies one INCREMENT or DECREMENT step to an item's checked quantity and
// returns the item with the optimistic local value.
// Example request: {"action": "INCREMENT"}
func (c *FulfillmentController) UpdateChecked(w http.ResponseWriter, r *http.Request, draftID, itemID string) {
	ws, err := c.manager.Get(draftID)
	if err != nil {
		http.Error(w, "draft not found", http.StatusNotFound)
		return
	}

	var req models.CheckedQtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !req.Action.IsValid() {
		http.Error(w, "action must be INCREMENT or DECREMENT", http.StatusBadRequest)
		return
	}

	item, err := ws.Composer.ApplyCheckedQty(itemID, req.Action)
	if err != nil {
		if errors.Is(err, billing.ErrItemNotFound) {
			http.Error(w, "line item not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// BatchChecked handles POST /billing/drafts/{id}/checked
// Applies the action to every eligible item in one server round trip.
// Example request: {"action": "INCREMENT"}
func (c *FulfillmentController) BatchChecked(w http.ResponseWriter, r *http.Request, draftID string) {
	ws, err := c.manager.Get(draftID)
	if err != nil {
		http.Error(w, "draft not found", http.StatusNotFound)
		return
	}

	var req models.CheckedQtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !req.Action.IsValid() {
		http.Error(w, "action must be INCREMENT or DECREMENT", http.StatusBadRequest)
		return
	}

	if err := ws.Composer.BatchApplyCheckedQty(r.Context(), req.Action); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, draftResponse(ws))
}

// FlushChecked handles POST /billing/drafts/{id}/checked/flush
// Forces any debounced checked-quantity updates to the server immediately.
func (c *FulfillmentController) FlushChecked(w http.ResponseWriter, r *http.Request, draftID string) {
	ws, err := c.manager.Get(draftID)
	if err != nil {
		http.Error(w, "draft not found", http.StatusNotFound)
		return
	}

	ws.Composer.FlushCheckedQty(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
