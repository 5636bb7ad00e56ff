package billing

import (
	"sync"
	"time"

	"pos-billing/models"
)

// Session owns the transaction-scoped fields of the active draft: the
// two-phase transaction number (tentative until a save confirms it), type,
// customer reference, dates and the save-status state machine.
//
// Status transitions: idle → unsaved (any mutation after hydration) → saving
// (on submit) → saved on success or error on failure; error permits retry.
type Session struct {
	mu sync.Mutex

	billingID           string
	txType              models.TransactionType
	tentativeNo         int64
	confirmedNo         int64
	customerID          string
	customerName        string
	billingDate         time.Time
	originalBillingDate time.Time
	saveStatus          models.SaveStatus
}

// NewSession creates an idle session for a new draft of the given type.
func NewSession(txType models.TransactionType) *Session {
	now := time.Now()
	return &Session{
		txType:              txType,
		billingDate:         now,
		originalBillingDate: now,
		saveStatus:          models.SaveStatusIdle,
	}
}

// Hydrate fills the session from a persisted transaction. The loaded number
// is server-confirmed: it becomes read-only and no next-number fetch applies.
func (s *Session) Hydrate(tx *models.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.billingID = tx.ID
	s.txType = tx.Type
	s.confirmedNo = tx.TransactionNo
	s.tentativeNo = 0
	s.customerID = tx.CustomerID
	s.customerName = tx.CustomerName
	s.billingDate = tx.CreatedAt
	s.originalBillingDate = tx.CreatedAt
	s.saveStatus = models.SaveStatusIdle
}

// SetTentativeNo sets the user-editable speculative number. Rejected once a
// server-confirmed number exists.
func (s *Session) SetTentativeNo(n int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.confirmedNo != 0 {
		return ErrNumberConfirmed
	}
	s.tentativeNo = n
	return nil
}

// EffectiveNo returns the confirmed number when present, else the tentative
// one. The two are never conflated in storage.
func (s *Session) EffectiveNo() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.confirmedNo != 0 {
		return s.confirmedNo
	}
	return s.tentativeNo
}

// NumberConfirmed reports whether the number is server-confirmed.
func (s *Session) NumberConfirmed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmedNo != 0
}

// SetCustomer attaches a customer reference to the draft.
func (s *Session) SetCustomer(id, name string) {
	s.mu.Lock()
	s.customerID = id
	s.customerName = name
	s.mu.Unlock()
	s.MarkUnsaved()
}

// MarkUnsaved records that the draft diverged from its last saved state.
// No-op while a save is in flight; resubmission is suppressed anyway.
func (s *Session) MarkUnsaved() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveStatus == models.SaveStatusSaving {
		return
	}
	s.saveStatus = models.SaveStatusUnsaved
}

// BeginSave transitions to saving. Returns ErrSaveInFlight when another save
// for this draft has not finished yet: exactly one submission may be in
// flight at a time.
func (s *Session) BeginSave() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveStatus == models.SaveStatusSaving {
		return ErrSaveInFlight
	}
	s.saveStatus = models.SaveStatusSaving
	return nil
}

// FinishSave commits a successful save: the billing id is set and the
// submitted number becomes the confirmed one.
func (s *Session) FinishSave(billingID string, confirmedNo int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.billingID = billingID
	s.confirmedNo = confirmedNo
	s.saveStatus = models.SaveStatusSaved
}

// FailSave records a failed save. Local state is otherwise unchanged and the
// draft can be resubmitted.
func (s *Session) FailSave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveStatus = models.SaveStatusError
}

// Status returns the current save status.
func (s *Session) Status() models.SaveStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveStatus
}

// BillingID returns the server-assigned transaction id, empty until the
// first successful save.
func (s *Session) BillingID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.billingID
}

// Type returns the transaction type.
func (s *Session) Type() models.TransactionType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.txType
}

// CustomerID returns the attached customer id, if any.
func (s *Session) CustomerID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customerID
}

// CustomerName returns the attached customer name.
func (s *Session) CustomerName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customerName
}

// BillingDate returns the draft's billing date.
func (s *Session) BillingDate() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.billingDate
}

// OriginalBillingDate returns the billing date captured at load time.
func (s *Session) OriginalBillingDate() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.originalBillingDate
}
