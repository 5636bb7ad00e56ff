package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-billing/models"
)

func TestSessionLifecycle(t *testing.T) {
	s := NewSession(models.TransactionTypeSale)

	assert.Equal(t, models.SaveStatusIdle, s.Status())
	assert.Equal(t, models.TransactionTypeSale, s.Type())
	assert.Empty(t, s.BillingID())
	assert.False(t, s.NumberConfirmed())

	require.NoError(t, s.SetTentativeNo(1042))
	assert.Equal(t, int64(1042), s.EffectiveNo())

	s.MarkUnsaved()
	assert.Equal(t, models.SaveStatusUnsaved, s.Status())

	require.NoError(t, s.BeginSave())
	assert.Equal(t, models.SaveStatusSaving, s.Status())

	// Exactly one save may be in flight.
	assert.ErrorIs(t, s.BeginSave(), ErrSaveInFlight)

	// Edits during an in-flight save do not disturb the saving status.
	s.MarkUnsaved()
	assert.Equal(t, models.SaveStatusSaving, s.Status())

	s.FinishSave("txn_1", 1042)
	assert.Equal(t, models.SaveStatusSaved, s.Status())
	assert.Equal(t, "txn_1", s.BillingID())
	assert.True(t, s.NumberConfirmed())
	assert.Equal(t, int64(1042), s.EffectiveNo())
}

func TestSessionRetryFromError(t *testing.T) {
	s := NewSession(models.TransactionTypeEstimate)
	require.NoError(t, s.SetTentativeNo(7))

	require.NoError(t, s.BeginSave())
	s.FailSave()
	assert.Equal(t, models.SaveStatusError, s.Status())

	// Retry must be possible from error.
	require.NoError(t, s.BeginSave())
	s.FinishSave("txn_9", 7)
	assert.Equal(t, models.SaveStatusSaved, s.Status())
}

func TestSessionNumberConfirmationLocksEdits(t *testing.T) {
	s := NewSession(models.TransactionTypeSale)
	require.NoError(t, s.SetTentativeNo(10))
	require.NoError(t, s.SetTentativeNo(11), "tentative number is user-editable before first save")

	require.NoError(t, s.BeginSave())
	s.FinishSave("txn_1", 11)

	assert.ErrorIs(t, s.SetTentativeNo(12), ErrNumberConfirmed)
	assert.Equal(t, int64(11), s.EffectiveNo())
}

func TestSessionHydrate(t *testing.T) {
	s := NewSession(models.TransactionTypeSale)
	require.NoError(t, s.SetTentativeNo(99))
	s.MarkUnsaved()

	createdAt := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)
	s.Hydrate(&models.Transaction{
		ID:            "txn_8f2a",
		Type:          models.TransactionTypeSale,
		TransactionNo: 1042,
		CustomerID:    "cus_17",
		CustomerName:  "Ramesh Traders",
		CreatedAt:     createdAt,
	})

	assert.Equal(t, "txn_8f2a", s.BillingID())
	assert.True(t, s.NumberConfirmed(), "loaded numbers are server-confirmed")
	assert.Equal(t, int64(1042), s.EffectiveNo())
	assert.Equal(t, "Ramesh Traders", s.CustomerName())
	assert.Equal(t, createdAt, s.OriginalBillingDate())
	assert.Equal(t, models.SaveStatusIdle, s.Status())
}

func TestSessionSetCustomerMarksUnsaved(t *testing.T) {
	s := NewSession(models.TransactionTypeSale)
	s.SetCustomer("cus_1", "Asha Stores")

	assert.Equal(t, "cus_1", s.CustomerID())
	assert.Equal(t, "Asha Stores", s.CustomerName())
	assert.Equal(t, models.SaveStatusUnsaved, s.Status())
}
