package models

import "github.com/shopspring/decimal"

// CreateDraftRequest represents the request body for opening a new draft bill
// Example: {"type": "SALE"}
type CreateDraftRequest struct {
	Type TransactionType `json:"type"`
}

// LoadDraftRequest represents the request body for hydrating a draft from a
// persisted transaction
// Example: {"type": "SALE", "id": "txn_8f2a"}
type LoadDraftRequest struct {
	Type TransactionType `json:"type"`
	ID   string          `json:"id"`
}

// AddItemRequest represents the request body for adding a catalog product to
// the bill
// Example: {"productId": "prd_42", "name": "Basmati Rice 1kg", "price": 4000, "quantity": "2"}
type AddItemRequest struct {
	ProductID string           `json:"productId"`
	Name      string           `json:"name"`
	Price     int64            `json:"price"`
	Quantity  *decimal.Decimal `json:"quantity,omitempty"`
}

// UpdateItemRequest represents a partial field update for one line item.
// Nil fields are left untouched; quantity/price updates recompute the line
// total in the same operation.
// Example: {"quantity": "3.75"}
type UpdateItemRequest struct {
	Name     *string          `json:"name,omitempty"`
	Quantity *decimal.Decimal `json:"quantity,omitempty"`
	Price    *int64           `json:"price,omitempty"`
}

// SetCustomerRequest represents the request body for attaching a customer
// Example: {"customerId": "cus_17", "customerName": "Ramesh Traders"}
type SetCustomerRequest struct {
	CustomerID   string `json:"customerId,omitempty"`
	CustomerName string `json:"customerName"`
}

// SetNumberRequest represents the request body for editing the tentative
// transaction number before first save
// Example: {"transactionNo": 1042}
type SetNumberRequest struct {
	TransactionNo int64 `json:"transactionNo"`
}

// CheckedQtyRequest represents the request body for a fulfillment action
// Example: {"action": "INCREMENT"}
type CheckedQtyRequest struct {
	Action CheckedQtyAction `json:"action"`
}

// SaveRequest represents the request body for submitting the draft
// Example: {"action": "save&print"}
type SaveRequest struct {
	Action string `json:"action"`
}

// DraftResponse represents the full current state of a draft bill with its
// derived totals
// Example response:
// {
//   "draftId": "d3a9...",
//   "type": "SALE",
//   "transactionNo": 1042,
//   "numberConfirmed": false,
//   "customerName": "Ramesh Traders",
//   "saveStatus": "unsaved",
//   "items": [...],
//   "subtotal": 20000,
//   "grandTotal": 200,
//   "subtotalDisplay": "₹200",
//   "totalQuantity": "3"
// }
type DraftResponse struct {
	DraftID         string          `json:"draftId"`
	BillingID       string          `json:"billingId,omitempty"`
	Type            TransactionType `json:"type"`
	TransactionNo   int64           `json:"transactionNo"`
	NumberConfirmed bool            `json:"numberConfirmed"`
	CustomerID      string          `json:"customerId,omitempty"`
	CustomerName    string          `json:"customerName,omitempty"`
	BillingDate     string          `json:"billingDate"`
	SaveStatus      SaveStatus      `json:"saveStatus"`
	Items           []LineItem      `json:"items"`
	Subtotal        int64           `json:"subtotal"`
	GrandTotal      int64           `json:"grandTotal"`
	SubtotalDisplay string          `json:"subtotalDisplay"`
	TotalQuantity   decimal.Decimal `json:"totalQuantity"`
}
