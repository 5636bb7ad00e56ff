package billing

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pos-billing/models"
	"pos-billing/utils"
)

// LineItemStore owns the ordered line-item collection of the active bill.
// Order is significant: it is the printed line order. The store maintains
// exactly one trailing placeholder row while editing and keeps the pristine
// snapshot taken at load time for diffing.
//
// Mutations are synchronous and serialized by the store's lock; the optional
// onChange callback fires after each effective mutation, outside the lock.
type LineItemStore struct {
	mu       sync.Mutex
	items    []models.LineItem
	original []models.LineItem
	onChange func()
}

// NewLineItemStore creates a store holding the empty-session default: a
// single placeholder row.
func NewLineItemStore() *LineItemStore {
	return &LineItemStore{
		items: []models.LineItem{newPlaceholder()},
	}
}

func newPlaceholder() models.LineItem {
	return models.LineItem{ID: uuid.NewString()}
}

// SetOnChange registers the mutation callback. Set once during wiring,
// before the store is shared.
func (s *LineItemStore) SetOnChange(fn func()) {
	s.onChange = fn
}

func (s *LineItemStore) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}

// ensureTrailingPlaceholder appends a placeholder row unless the tail already
// is one. Caller must hold the lock. Returns true if a row was added.
func (s *LineItemStore) ensureTrailingPlaceholder() bool {
	n := len(s.items)
	if n > 0 && s.items[n-1].IsPlaceholder() {
		return false
	}
	s.items = append(s.items, newPlaceholder())
	return true
}

// AddLineItem appends a new item derived from a catalog product. Quantity
// defaults to 1 when the caller does not supply one; the trailing placeholder
// invariant is restored afterwards.
func (s *LineItemStore) AddLineItem(product models.Product, quantity *decimal.Decimal) models.LineItem {
	qty := decimal.NewFromInt(1)
	if quantity != nil && quantity.IsPositive() {
		qty = *quantity
	}

	productID := product.ID
	item := models.LineItem{
		ID:         uuid.NewString(),
		ProductID:  &productID,
		Name:       product.Name,
		Quantity:   qty,
		Price:      product.Price,
		TotalPrice: utils.LineTotal(qty, product.Price),
	}

	s.mu.Lock()
	// The placeholder stays last: insert the new item in front of it.
	n := len(s.items)
	if n > 0 && s.items[n-1].IsPlaceholder() {
		s.items = append(s.items[:n-1], item, s.items[n-1])
	} else {
		s.items = append(s.items, item)
		s.ensureTrailingPlaceholder()
	}
	s.mu.Unlock()

	s.notify()
	return item
}

// AddEmptyLineItem appends a placeholder row if the tail is not already one.
// Idempotent: calling it twice in a row yields exactly one trailing
// placeholder.
func (s *LineItemStore) AddEmptyLineItem() {
	s.mu.Lock()
	added := s.ensureTrailingPlaceholder()
	s.mu.Unlock()

	if added {
		s.notify()
	}
}

// UpdateLineItem applies a partial field update to one item by identity.
// Quantity and price changes recompute the line total in the same update, so
// no intermediate inconsistent state is observable. The checked quantity is
// re-clamped into [0, quantity] when the ordered quantity shrinks.
func (s *LineItemStore) UpdateLineItem(id string, patch models.UpdateItemRequest) (models.LineItem, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return models.LineItem{}, ErrItemNotFound
	}

	item := s.items[idx]
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
		if item.Quantity.IsNegative() {
			item.Quantity = decimal.Zero
		}
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.Quantity != nil || patch.Price != nil {
		item.TotalPrice = utils.LineTotal(item.Quantity, item.Price)
	}
	if item.CheckedQty.GreaterThan(item.Quantity) {
		item.CheckedQty = item.Quantity
	}

	s.items[idx] = item
	s.mu.Unlock()

	s.notify()
	return item, nil
}

// SetCheckedQty replaces an item's picked quantity, clamped to
// [0, quantity]. pending marks the value as awaiting batch confirmation.
func (s *LineItemStore) SetCheckedQty(id string, qty decimal.Decimal, pending bool) (models.LineItem, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return models.LineItem{}, ErrItemNotFound
	}

	if qty.IsNegative() {
		qty = decimal.Zero
	}
	if qty.GreaterThan(s.items[idx].Quantity) {
		qty = s.items[idx].Quantity
	}
	s.items[idx].CheckedQty = qty
	s.items[idx].PendingSync = pending
	item := s.items[idx]
	s.mu.Unlock()

	s.notify()
	return item, nil
}

// ClearPendingSync drops the pending flag from every item; called once a
// batch update round trip has re-established the authoritative values.
func (s *LineItemStore) ClearPendingSync() {
	s.mu.Lock()
	for i := range s.items {
		s.items[i].PendingSync = false
	}
	s.mu.Unlock()
}

// RemoveLineItem removes an item by identity and restores the trailing
// placeholder invariant.
func (s *LineItemStore) RemoveLineItem(id string) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return ErrItemNotFound
	}

	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.ensureTrailingPlaceholder()
	s.mu.Unlock()

	s.notify()
	return nil
}

// SetLineItems bulk-hydrates the collection from a loaded transaction. Used
// only at load time; the trailing placeholder is re-added for editing.
func (s *LineItemStore) SetLineItems(items []models.LineItem) {
	s.mu.Lock()
	s.items = make([]models.LineItem, len(items))
	copy(s.items, items)
	s.ensureTrailingPlaceholder()
	s.mu.Unlock()
}

// SetOriginalLineItems captures the pristine snapshot of the current
// collection. The snapshot is immutable for the lifetime of the edit session
// and is used only for diffing, never for display.
func (s *LineItemStore) SetOriginalLineItems() {
	s.mu.Lock()
	s.original = make([]models.LineItem, 0, len(s.items))
	for _, item := range s.items {
		if !item.IsPlaceholder() {
			s.original = append(s.original, item)
		}
	}
	s.mu.Unlock()
}

// Reset clears the store back to the empty-session default.
func (s *LineItemStore) Reset() {
	s.mu.Lock()
	s.items = []models.LineItem{newPlaceholder()}
	s.original = nil
	s.mu.Unlock()
}

// Items returns a copy of the current collection in order.
func (s *LineItemStore) Items() []models.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// OriginalItems returns a copy of the pristine snapshot.
func (s *LineItemStore) OriginalItems() []models.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.LineItem, len(s.original))
	copy(out, s.original)
	return out
}

// Get returns one item by identity.
func (s *LineItemStore) Get(id string) (models.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return models.LineItem{}, ErrItemNotFound
	}
	return s.items[idx], nil
}

// EligibleItems returns the items that may be sent to the remote service.
// The filter never mutates the in-memory list.
func (s *LineItemStore) EligibleItems() []models.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.LineItem
	for _, item := range s.items {
		if item.Eligible() {
			out = append(out, item)
		}
	}
	return out
}

// Subtotal is the sum of line totals over non-placeholder items, in paise.
func (s *LineItemStore) Subtotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum int64
	for _, item := range s.items {
		if !item.IsPlaceholder() {
			sum += item.TotalPrice
		}
	}
	return sum
}

// GrandTotal is the subtotal rounded to whole rupees.
func (s *LineItemStore) GrandTotal() int64 {
	return utils.PaiseToRupees(s.Subtotal())
}

// TotalQuantity is the sum of ordered quantities over non-placeholder items.
func (s *LineItemStore) TotalQuantity() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Zero
	for _, item := range s.items {
		if !item.IsPlaceholder() {
			sum = sum.Add(item.Quantity)
		}
	}
	return sum
}

// indexOf returns the position of an item by id, or -1. Caller must hold the
// lock.
func (s *LineItemStore) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
