package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"pos-billing/billing"
	"pos-billing/gateway"
	"pos-billing/models"
	"pos-billing/repository"
	"pos-billing/utils"
)

// BillingController handles HTTP requests for draft bills
type BillingController struct {
	manager *billing.Manager
	gateway gateway.TransactionGatewayInterface
	drafts  repository.DraftRepositoryInterface // may be nil when autosave is disabled
}

// NewBillingController creates a new BillingController
func NewBillingController(manager *billing.Manager, gw gateway.TransactionGatewayInterface, drafts repository.DraftRepositoryInterface) *BillingController {
	return &BillingController{
		manager: manager,
		gateway: gw,
		drafts:  drafts,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ writeJSON: failed to encode response: %v", err)
	}
}

// draftResponse builds the full draft view with derived totals
func draftResponse(ws *billing.Workspace) models.DraftResponse {
	subtotal := ws.Store.Subtotal()
	return models.DraftResponse{
		DraftID:         ws.DraftID,
		BillingID:       ws.Session.BillingID(),
		Type:            ws.Session.Type(),
		TransactionNo:   ws.Session.EffectiveNo(),
		NumberConfirmed: ws.Session.NumberConfirmed(),
		CustomerID:      ws.Session.CustomerID(),
		CustomerName:    ws.Session.CustomerName(),
		BillingDate:     ws.Session.BillingDate().Format("2006-01-02"),
		SaveStatus:      ws.Session.Status(),
		Items:           ws.Store.Items(),
		Subtotal:        subtotal,
		GrandTotal:      ws.Store.GrandTotal(),
		SubtotalDisplay: utils.FormatRupees(subtotal),
		TotalQuantity:   ws.Store.TotalQuantity(),
	}
}

// workspace resolves a draft id or writes a 404
func (c *BillingController) workspace(w http.ResponseWriter, draftID string) *billing.Workspace {
	ws, err := c.manager.Get(draftID)
	if err != nil {
		http.Error(w, "draft not found", http.StatusNotFound)
		return nil
	}
	return ws
}

// CreateDraft handles POST /billing/drafts
// Example request: {"type": "SALE"}
func (c *BillingController) CreateDraft(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateDraft: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !req.Type.IsValid() {
		http.Error(w, "type must be SALE or ESTIMATE", http.StatusBadRequest)
		return
	}

	ws, err := c.manager.NewDraft(r.Context(), req.Type)
	if err != nil {
		log.Printf("❌ CreateDraft: %v", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusCreated, draftResponse(ws))
}

// ListRecoverableDrafts handles GET /billing/drafts
// Returns autosaved drafts that survived a crash or restart.
func (c *BillingController) ListRecoverableDrafts(w http.ResponseWriter, r *http.Request) {
	if c.drafts == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"drafts": []models.Draft{}})
		return
	}

	drafts, err := c.drafts.List(r.Context())
	if err != nil {
		log.Printf("❌ ListRecoverableDrafts: %v", err)
		http.Error(w, "failed to list drafts", http.StatusInternalServerError)
		return
	}
	if drafts == nil {
		drafts = []models.Draft{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"drafts": drafts})
}

// LoadDraft handles POST /billing/drafts/load
// Example request: {"type": "SALE", "id": "txn_8f2a"}
func (c *BillingController) LoadDraft(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 LoadDraft: Received %s request to %s", r.Method, r.URL.Path)

	var req models.LoadDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !req.Type.IsValid() {
		http.Error(w, "type must be SALE or ESTIMATE", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	ws, err := c.manager.LoadDraft(r.Context(), req.Type, req.ID)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ LoadDraft: %v", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, draftResponse(ws))
}

// GetDraft handles GET /billing/drafts/{id}
func (c *BillingController) GetDraft(w http.ResponseWriter, r *http.Request, draftID string) {
	ws := c.workspace(w, draftID)
	if ws == nil {
		return
	}
	writeJSON(w, http.StatusOK, draftResponse(ws))
}

// DiscardDraft handles DELETE /billing/drafts/{id}
func (c *BillingController) DiscardDraft(w http.ResponseWriter, r *http.Request, draftID string) {
	if err := c.manager.Close(r.Context(), draftID); err != nil {
		http.Error(w, "draft not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /billing/drafts/{id}/items
// Example request: {"productId": "prd_42", "name": "Basmati Rice 1kg", "price": 4000, "quantity": "2"}
func (c *BillingController) AddItem(w http.ResponseWriter, r *http.Request, draftID string) {
	ws := c.workspace(w, draftID)
	if ws == nil {
		return
	}

	var req models.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.ProductID) == "" {
		http.Error(w, "productId is required", http.StatusBadRequest)
		return
	}
	if req.Price < 0 {
		http.Error(w, "price cannot be negative", http.StatusBadRequest)
		return
	}

	item := ws.Store.AddLineItem(models.Product{ID: req.ProductID, Name: req.Name, Price: req.Price}, req.Quantity)
	writeJSON(w, http.StatusCreated, item)
}

// UpdateItem handles PATCH /billing/drafts/{id}/items/{itemId}
// Example request: {"quantity": "3.75"}
func (c *BillingController) UpdateItem(w http.ResponseWriter, r *http.Request, draftID, itemID string) {
	ws := c.workspace(w, draftID)
	if ws == nil {
		return
	}

	var req models.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Price != nil && *req.Price < 0 {
		http.Error(w, "price cannot be negative", http.StatusBadRequest)
		return
	}

	item, err := ws.Store.UpdateLineItem(itemID, req)
	if err != nil {
		http.Error(w, "line item not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// RemoveItem handles DELETE /billing/drafts/{id}/items/{itemId}
func (c *BillingController) RemoveItem(w http.ResponseWriter, r *http.Request, draftID, itemID string) {
	ws := c.workspace(w, draftID)
	if ws == nil {
		return
	}

	if err := ws.Store.RemoveLineItem(itemID); err != nil {
		http.Error(w, "line item not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetNumber handles PUT /billing/drafts/{id}/number
// Example request: {"transactionNo": 1042}
func (c *BillingController) SetNumber(w http.ResponseWriter, r *http.Request, draftID string) {
	ws := c.workspace(w, draftID)
	if ws == nil {
		return
	}

	var req models.SetNumberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.TransactionNo <= 0 {
		http.Error(w, "transactionNo must be greater than 0", http.StatusBadRequest)
		return
	}

	if err := ws.Session.SetTentativeNo(req.TransactionNo); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	ws.Session.MarkUnsaved()
	ws.Composer.Autosave(r.Context())
	writeJSON(w, http.StatusOK, draftResponse(ws))
}

// SetCustomer handles PUT /billing/drafts/{id}/customer
// Example request: {"customerId": "cus_17", "customerName": "Ramesh Traders"}
func (c *BillingController) SetCustomer(w http.ResponseWriter, r *http.Request, draftID string) {
	ws := c.workspace(w, draftID)
	if ws == nil {
		return
	}

	var req models.SetCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ws.Session.SetCustomer(req.CustomerID, req.CustomerName)
	ws.Composer.Autosave(r.Context())
	writeJSON(w, http.StatusOK, draftResponse(ws))
}

// Save handles POST /billing/drafts/{id}/save
// Example request: {"action": "save&print"}
// Example response:
// {
//   "billingId": "txn_1",
//   "transactionNo": 1042,
//   "saveStatus": "saved",
//   "sideEffectError": "print failed: printer offline"
// }
func (c *BillingController) Save(w http.ResponseWriter, r *http.Request, draftID string) {
	log.Printf("📥 Save: Received %s request for draft %s", r.Method, draftID)

	ws := c.workspace(w, draftID)
	if ws == nil {
		return
	}

	var req models.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Action == "" {
		req.Action = billing.SaveActionSave
	}

	result, err := ws.Composer.Save(r.Context(), req.Action)
	if err != nil {
		var validationErr *billing.ValidationError
		switch {
		case errors.As(err, &validationErr):
			http.Error(w, validationErr.Error(), http.StatusBadRequest)
		case errors.Is(err, billing.ErrSaveInFlight):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, gateway.ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusBadGateway)
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}
