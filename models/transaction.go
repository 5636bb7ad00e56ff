package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the kind of billing transaction
type TransactionType string

const (
	TransactionTypeSale     TransactionType = "SALE"
	TransactionTypeEstimate TransactionType = "ESTIMATE"
)

// IsValid reports whether t is a known transaction type
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeSale || t == TransactionTypeEstimate
}

// SaveStatus tracks where a draft is in its save lifecycle
type SaveStatus string

const (
	SaveStatusIdle    SaveStatus = "idle"
	SaveStatusUnsaved SaveStatus = "unsaved"
	SaveStatusSaving  SaveStatus = "saving"
	SaveStatusSaved   SaveStatus = "saved"
	SaveStatusError   SaveStatus = "error"
)

// CheckedQtyAction is a fulfillment action applied to a line item's picked quantity
type CheckedQtyAction string

const (
	CheckedQtyIncrement CheckedQtyAction = "INCREMENT"
	CheckedQtyDecrement CheckedQtyAction = "DECREMENT"
)

// IsValid checks if the action is one of the supported fulfillment actions
func (a CheckedQtyAction) IsValid() bool {
	return a == CheckedQtyIncrement || a == CheckedQtyDecrement
}

// Transaction represents a persisted transaction as returned by the remote
// transaction service
// Example:
// {
//   "id": "txn_8f2a",
//   "type": "SALE",
//   "transactionNo": 1042,
//   "customerId": "cus_17",
//   "customerName": "Ramesh Traders",
//   "isPaid": true,
//   "createdAt": "2026-08-28T10:30:00Z",
//   "items": [...]
// }
type Transaction struct {
	ID            string          `json:"id"`
	Type          TransactionType `json:"type"`
	TransactionNo int64           `json:"transactionNo"`
	CustomerID    string          `json:"customerId,omitempty"`
	CustomerName  string          `json:"customerName,omitempty"`
	IsPaid        bool            `json:"isPaid"`
	CreatedAt     time.Time       `json:"createdAt"`
	Items         []LineItem      `json:"items"`
}

// TransactionRef is the remote service's acknowledgement of a create/edit call
type TransactionRef struct {
	ID   string          `json:"id"`
	Type TransactionType `json:"type"`
}

// TransactionPayload is the wire payload submitted to the create/edit endpoints.
// Only save-eligible items are included (catalog-backed, named, non-zero price).
type TransactionPayload struct {
	TransactionNo   int64           `json:"transactionNo"`
	TransactionType TransactionType `json:"transactionType"`
	CustomerID      string          `json:"customerId,omitempty"`
	CustomerName    string          `json:"customerName"`
	IsPaid          bool            `json:"isPaid"`
	Items           []PayloadItem   `json:"items"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// PayloadItem is one billable line in a submitted payload
type PayloadItem struct {
	ProductID  string          `json:"productId"`
	Name       string          `json:"name"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      int64           `json:"price"`
	TotalPrice int64           `json:"totalPrice"`
	CheckedQty decimal.Decimal `json:"checkedQty"`
}

// SaveResult reports the outcome of a save operation. A failed side effect
// (print/export) never reverts the save itself; it is carried separately.
type SaveResult struct {
	BillingID       string     `json:"billingId"`
	TransactionNo   int64      `json:"transactionNo"`
	SaveStatus      SaveStatus `json:"saveStatus"`
	SideEffectError string     `json:"sideEffectError,omitempty"`
}

// Receipt is the renderable reference handed to the print collaborator
type Receipt struct {
	TransactionNo int64           `json:"transactionNo"`
	Type          TransactionType `json:"type"`
	CustomerName  string          `json:"customerName,omitempty"`
	BillingDate   time.Time       `json:"billingDate"`
	Items         []PayloadItem   `json:"items"`
	Subtotal      int64           `json:"subtotal"`
	GrandTotal    int64           `json:"grandTotal"`
}

// Draft is the locally autosaved working state of an unsaved bill. Drafts are
// working copies only; the remote service stays the system of record for
// saved transactions.
type Draft struct {
	DraftID       string          `json:"draftId"`
	BillingID     string          `json:"billingId,omitempty"`
	Type          TransactionType `json:"type"`
	TransactionNo int64           `json:"transactionNo"`
	CustomerID    string          `json:"customerId,omitempty"`
	CustomerName  string          `json:"customerName,omitempty"`
	BillingDate   time.Time       `json:"billingDate"`
	Items         []LineItem      `json:"items"`
}
