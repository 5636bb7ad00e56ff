package models

import "github.com/shopspring/decimal"

// LineItem is one row of the active bill. A nil ProductID marks a placeholder
// (blank) row; at most the last row may be a placeholder and exactly one is
// kept at the tail while editing.
// Example:
// {
//   "id": "b1c2...",
//   "productId": "prd_42",
//   "name": "Basmati Rice 1kg",
//   "quantity": "3.75",
//   "price": 4000,
//   "totalPrice": 15000,
//   "checkedQty": "3"
// }
type LineItem struct {
	ID         string          `json:"id"`
	ProductID  *string         `json:"productId"`
	Name       string          `json:"name"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      int64           `json:"price"`
	TotalPrice int64           `json:"totalPrice"`
	CheckedQty decimal.Decimal `json:"checkedQty"`
	// PendingSync marks an optimistic checked-quantity value that has not yet
	// been confirmed by a batch update round trip.
	PendingSync bool `json:"pendingSync,omitempty"`
}

// IsPlaceholder reports whether the row is a blank/editable placeholder
func (li LineItem) IsPlaceholder() bool {
	return li.ProductID == nil
}

// Eligible reports whether the item may be sent to the remote service:
// catalog-backed, named, and priced. Applied only at the save boundary.
func (li LineItem) Eligible() bool {
	return li.ProductID != nil && li.Name != "" && li.Price != 0
}

// Product is a catalog product reference as returned by the remote lookup
// service; the price is in paise.
type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}
