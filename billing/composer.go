package billing

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"pos-billing/gateway"
	"pos-billing/models"
	"pos-billing/utils"
)

// Save actions: what happens after a successful submission.
const (
	SaveActionSave  = "save"
	SaveActionPrint = "save&print"
	SaveActionPDF   = "saveAsPDF"
)

// flushDebounce coalesces bursts of checked-quantity clicks before the batch
// round trip. Only the last value per item is sent (last-write-wins).
const flushDebounce = 300 * time.Millisecond

// Printer is the print side-effect collaborator. A print failure is reported
// to the caller but never rolls back a committed save.
type Printer interface {
	PrintReceipt(ctx context.Context, receipt *models.Receipt) error
}

// Exporter is the PDF-export side-effect collaborator.
type Exporter interface {
	ExportPDF(ctx context.Context, billingID string, txType models.TransactionType) error
}

// DraftStore persists unsaved working state locally so a crash does not lose
// an in-progress bill. Best effort: failures are logged, never surfaced.
type DraftStore interface {
	Upsert(ctx context.Context, draft *models.Draft) error
	Delete(ctx context.Context, draftID string) error
}

// Composer assembles the network payload from the session and line-item
// store, validates it, and drives save, print, export and fulfillment-update
// operations against the remote transaction service.
type Composer struct {
	draftID  string
	session  *Session
	store    *LineItemStore
	gateway  gateway.TransactionGatewayInterface
	printer  Printer
	exporter Exporter
	drafts   DraftStore

	closed atomic.Bool

	flushMu      sync.Mutex
	flushTimer   *time.Timer
	pendingItems map[string]models.CheckedQtyAction
}

// NewComposer wires a composer over its stores and collaborators. printer,
// exporter and drafts may be nil; the corresponding side effects are then
// skipped.
func NewComposer(draftID string, session *Session, store *LineItemStore, gw gateway.TransactionGatewayInterface, printer Printer, exporter Exporter, drafts DraftStore) *Composer {
	return &Composer{
		draftID:      draftID,
		session:      session,
		store:        store,
		gateway:      gw,
		printer:      printer,
		exporter:     exporter,
		drafts:       drafts,
		pendingItems: make(map[string]models.CheckedQtyAction),
	}
}

// DraftID returns the client-local draft id.
func (c *Composer) DraftID() string {
	return c.draftID
}

// Close detaches the composer: in-flight responses arriving afterwards are
// discarded instead of being applied to a different draft's state.
func (c *Composer) Close() {
	c.closed.Store(true)
	c.flushMu.Lock()
	if c.flushTimer != nil {
		c.flushTimer.Stop()
		c.flushTimer = nil
	}
	c.flushMu.Unlock()
}

// BuildPayload assembles and validates the wire payload. The eligibility
// filter (catalog-backed, named, non-zero price) is applied here, at the
// save boundary only. The first violation is returned as a *ValidationError
// and blocks submission before any network call.
func (c *Composer) BuildPayload() (*models.TransactionPayload, error) {
	if c.session.EffectiveNo() <= 0 {
		return nil, &ValidationError{Err: ErrMissingTransactionNo}
	}

	eligible := c.store.EligibleItems()
	if len(eligible) == 0 {
		return nil, &ValidationError{Err: ErrNoLineItems}
	}

	items := make([]models.PayloadItem, 0, len(eligible))
	for _, li := range eligible {
		if !li.Quantity.IsPositive() {
			return nil, &ValidationError{Err: ErrInvalidQuantity, Details: fmt.Sprintf("item %q", li.Name)}
		}
		if li.Price < 0 {
			return nil, &ValidationError{Err: ErrNegativePrice, Details: fmt.Sprintf("item %q", li.Name)}
		}
		items = append(items, models.PayloadItem{
			ProductID:  *li.ProductID,
			Name:       li.Name,
			Quantity:   li.Quantity,
			Price:      li.Price,
			TotalPrice: li.TotalPrice,
			CheckedQty: li.CheckedQty,
		})
	}

	txType := c.session.Type()
	return &models.TransactionPayload{
		TransactionNo:   c.session.EffectiveNo(),
		TransactionType: txType,
		CustomerID:      c.session.CustomerID(),
		CustomerName:    c.session.CustomerName(),
		IsPaid:          txType == models.TransactionTypeSale,
		Items:           items,
		CreatedAt:       c.session.BillingDate(),
	}, nil
}

// Save validates, submits and runs the requested follow-on side effect.
//
// Create vs edit is decided solely by presence of a previously-assigned
// billing id. While a save is in flight further submissions return
// ErrSaveInFlight, so a double click produces exactly one network call. A
// side-effect failure after a committed save is carried in the result, and
// the save status stays saved.
func (c *Composer) Save(ctx context.Context, action string) (*models.SaveResult, error) {
	switch action {
	case SaveActionSave, SaveActionPrint, SaveActionPDF:
	default:
		return nil, &ValidationError{Err: ErrUnknownAction, Details: action}
	}

	payload, err := c.BuildPayload()
	if err != nil {
		log.Printf("❌ Save: validation failed for draft %s: %v", c.draftID, err)
		return nil, err
	}

	if err := c.session.BeginSave(); err != nil {
		log.Printf("⚠️ Save: submission ignored for draft %s: %v", c.draftID, err)
		return nil, err
	}

	// Push any pending fulfillment state before the edit overwrites it.
	c.FlushCheckedQty(ctx)

	billingID := c.session.BillingID()
	txType := c.session.Type()

	var ref *models.TransactionRef
	if billingID != "" {
		log.Printf("📤 Save: editing transaction %s (draft %s)", billingID, c.draftID)
		ref, err = c.gateway.EditTransaction(ctx, txType, billingID, payload)
	} else {
		log.Printf("📤 Save: creating transaction no=%d (draft %s)", payload.TransactionNo, c.draftID)
		ref, err = c.gateway.CreateTransaction(ctx, txType, payload)
	}
	if err != nil {
		c.session.FailSave()
		return nil, err
	}

	c.session.FinishSave(ref.ID, payload.TransactionNo)
	log.Printf("✅ Save: transaction %s committed (no=%d)", ref.ID, payload.TransactionNo)

	if c.drafts != nil {
		if err := c.drafts.Delete(ctx, c.draftID); err != nil {
			log.Printf("⚠️ Save: failed to delete autosaved draft %s: %v", c.draftID, err)
		}
	}

	result := &models.SaveResult{
		BillingID:     ref.ID,
		TransactionNo: payload.TransactionNo,
		SaveStatus:    c.session.Status(),
	}

	switch action {
	case SaveActionPrint:
		if c.printer == nil {
			break
		}
		receipt := c.buildReceipt(payload)
		if err := c.printer.PrintReceipt(ctx, receipt); err != nil {
			log.Printf("⚠️ Save: print failed for %s (save remains committed): %v", ref.ID, err)
			result.SideEffectError = fmt.Sprintf("print failed: %v", err)
		}
	case SaveActionPDF:
		if c.exporter == nil {
			break
		}
		if err := c.exporter.ExportPDF(ctx, ref.ID, txType); err != nil {
			log.Printf("⚠️ Save: PDF export failed for %s (save remains committed): %v", ref.ID, err)
			result.SideEffectError = fmt.Sprintf("export failed: %v", err)
		}
	}

	return result, nil
}

func (c *Composer) buildReceipt(payload *models.TransactionPayload) *models.Receipt {
	var subtotal int64
	for _, item := range payload.Items {
		subtotal += item.TotalPrice
	}
	return &models.Receipt{
		TransactionNo: payload.TransactionNo,
		Type:          payload.TransactionType,
		CustomerName:  payload.CustomerName,
		BillingDate:   payload.CreatedAt,
		Items:         payload.Items,
		Subtotal:      subtotal,
		GrandTotal:    utils.PaiseToRupees(subtotal),
	}
}

// LoadTransaction hydrates the session and line-item store from a persisted
// transaction. All-or-nothing: on any failure no partial state is applied.
func (c *Composer) LoadTransaction(ctx context.Context, txType models.TransactionType, id string) error {
	tx, err := c.gateway.GetTransaction(ctx, txType, id)
	if err != nil {
		return err
	}

	if c.closed.Load() {
		log.Printf("⚠️ LoadTransaction: draft %s closed before response arrived, discarding", c.draftID)
		return nil
	}

	c.session.Hydrate(tx)
	c.store.SetLineItems(tx.Items)
	c.store.SetOriginalLineItems()
	log.Printf("✅ LoadTransaction: hydrated draft %s from transaction %s", c.draftID, id)
	return nil
}

// ApplyCheckedQty applies one fulfillment action to one item optimistically
// against local state and schedules a debounced batch flush. Rapid clicks
// coalesce: the flush sends only the last action per item.
func (c *Composer) ApplyCheckedQty(itemID string, action models.CheckedQtyAction) (models.LineItem, error) {
	if action != models.CheckedQtyIncrement && action != models.CheckedQtyDecrement {
		return models.LineItem{}, &ValidationError{Err: ErrUnknownAction, Details: string(action)}
	}

	item, err := c.store.Get(itemID)
	if err != nil {
		return models.LineItem{}, err
	}

	next := NextCheckedQty(action, item.Quantity, item.CheckedQty)
	updated, err := c.store.SetCheckedQty(itemID, next, c.session.BillingID() != "")
	if err != nil {
		return models.LineItem{}, err
	}

	// Nothing to reconcile for a transaction that was never persisted.
	if c.session.BillingID() == "" {
		return updated, nil
	}

	c.flushMu.Lock()
	c.pendingItems[itemID] = action
	if c.flushTimer != nil {
		c.flushTimer.Stop()
	}
	c.flushTimer = time.AfterFunc(flushDebounce, func() {
		c.FlushCheckedQty(context.Background())
	})
	c.flushMu.Unlock()

	return updated, nil
}

// BatchApplyCheckedQty applies one action to every non-placeholder item
// locally and, for a persisted transaction, issues the batch endpoint call
// followed by a refetch.
func (c *Composer) BatchApplyCheckedQty(ctx context.Context, action models.CheckedQtyAction) error {
	if action != models.CheckedQtyIncrement && action != models.CheckedQtyDecrement {
		return &ValidationError{Err: ErrUnknownAction, Details: string(action)}
	}

	pending := c.session.BillingID() != ""
	for _, item := range c.store.Items() {
		if item.IsPlaceholder() {
			continue
		}
		next := NextCheckedQty(action, item.Quantity, item.CheckedQty)
		if _, err := c.store.SetCheckedQty(item.ID, next, pending); err != nil {
			return err
		}
	}

	billingID := c.session.BillingID()
	if billingID == "" {
		return nil
	}

	if err := c.gateway.BatchUpdateCheckedQty(ctx, c.session.Type(), billingID, action); err != nil {
		return err
	}
	c.refreshCheckedQty(ctx, billingID)
	return nil
}

// FlushCheckedQty sends the coalesced per-item fulfillment updates now and
// refetches the transaction so displayed values reflect server truth rather
// than the speculative local ones.
func (c *Composer) FlushCheckedQty(ctx context.Context) {
	c.flushMu.Lock()
	if c.flushTimer != nil {
		c.flushTimer.Stop()
		c.flushTimer = nil
	}
	pending := c.pendingItems
	c.pendingItems = make(map[string]models.CheckedQtyAction)
	c.flushMu.Unlock()

	if len(pending) == 0 || c.closed.Load() {
		return
	}

	billingID := c.session.BillingID()
	if billingID == "" {
		return
	}

	txType := c.session.Type()
	failed := false
	for itemID, action := range pending {
		if err := c.gateway.UpdateCheckedQty(ctx, txType, billingID, itemID, action); err != nil {
			log.Printf("⚠️ FlushCheckedQty: update failed for item %s: %v", itemID, err)
			failed = true
		}
	}
	if failed {
		return
	}

	c.refreshCheckedQty(ctx, billingID)
}

// refreshCheckedQty re-establishes the authoritative checked quantities from
// the server. The billing id captured at request time is compared against
// the active one before anything is applied, so a response for a stale draft
// is discarded.
func (c *Composer) refreshCheckedQty(ctx context.Context, requestedID string) {
	tx, err := c.gateway.GetTransaction(ctx, c.session.Type(), requestedID)
	if err != nil {
		log.Printf("⚠️ refreshCheckedQty: refetch failed for %s: %v", requestedID, err)
		return
	}

	if c.closed.Load() || c.session.BillingID() != requestedID {
		log.Printf("⚠️ refreshCheckedQty: stale response for %s discarded", requestedID)
		return
	}

	for _, remote := range tx.Items {
		if _, err := c.store.SetCheckedQty(remote.ID, remote.CheckedQty, false); err != nil {
			// Item removed locally since the request went out; skip it.
			continue
		}
	}
	c.store.ClearPendingSync()
	log.Printf("✅ refreshCheckedQty: reconciled %d items for %s", len(tx.Items), requestedID)
}

// Autosave persists the current working state of the draft locally. Best
// effort; a failure is logged and never interrupts editing.
func (c *Composer) Autosave(ctx context.Context) {
	if c.drafts == nil || c.closed.Load() {
		return
	}

	draft := &models.Draft{
		DraftID:       c.draftID,
		BillingID:     c.session.BillingID(),
		Type:          c.session.Type(),
		TransactionNo: c.session.EffectiveNo(),
		CustomerID:    c.session.CustomerID(),
		CustomerName:  c.session.CustomerName(),
		BillingDate:   c.session.BillingDate(),
		Items:         c.store.Items(),
	}
	if err := c.drafts.Upsert(ctx, draft); err != nil {
		log.Printf("⚠️ Autosave: failed for draft %s: %v", c.draftID, err)
	}
}
