package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-billing/gateway"
	"pos-billing/models"
)

func TestManagerNewDraft(t *testing.T) {
	gw := &mockGateway{nextNumber: 1042}
	m := NewManager(gw, nil, nil, nil)

	ws, err := m.NewDraft(context.Background(), models.TransactionTypeSale)
	require.NoError(t, err)
	assert.NotEmpty(t, ws.DraftID)
	assert.Equal(t, int64(1042), ws.Session.EffectiveNo())
	assert.False(t, ws.Session.NumberConfirmed(), "a fetched number is tentative until first save")

	got, err := m.Get(ws.DraftID)
	require.NoError(t, err)
	assert.Same(t, ws, got)
}

func TestManagerNewDraftGatewayFailure(t *testing.T) {
	gw := &mockGateway{nextNumberErr: &gateway.NetworkError{Op: "getNextTransactionNumber", Message: "down"}}
	m := NewManager(gw, nil, nil, nil)

	_, err := m.NewDraft(context.Background(), models.TransactionTypeSale)
	require.Error(t, err)
}

func TestManagerLoadDraft(t *testing.T) {
	pid := "prd_1"
	gw := &mockGateway{
		transaction: &models.Transaction{
			ID:            "txn_8f2a",
			Type:          models.TransactionTypeSale,
			TransactionNo: 7,
			Items: []models.LineItem{
				{ID: "it_1", ProductID: &pid, Name: "Rice", Quantity: dec("1"), Price: 4000, TotalPrice: 4000},
			},
		},
	}
	m := NewManager(gw, nil, nil, nil)

	ws, err := m.LoadDraft(context.Background(), models.TransactionTypeSale, "txn_8f2a")
	require.NoError(t, err)
	assert.Equal(t, "txn_8f2a", ws.Session.BillingID())
	assert.True(t, ws.Session.NumberConfirmed())
	assert.Len(t, ws.Store.OriginalItems(), 1)
}

func TestManagerLoadDraftNotFound(t *testing.T) {
	gw := &mockGateway{getErr: gateway.ErrNotFound}
	m := NewManager(gw, nil, nil, nil)

	_, err := m.LoadDraft(context.Background(), models.TransactionTypeSale, "nope")
	assert.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestManagerClose(t *testing.T) {
	gw := &mockGateway{nextNumber: 1}
	drafts := &mockDraftStore{}
	m := NewManager(gw, nil, nil, drafts)

	ws, err := m.NewDraft(context.Background(), models.TransactionTypeSale)
	require.NoError(t, err)

	require.NoError(t, m.Close(context.Background(), ws.DraftID))
	assert.Equal(t, 1, drafts.deletes)

	_, err = m.Get(ws.DraftID)
	assert.ErrorIs(t, err, ErrDraftNotFound)

	assert.ErrorIs(t, m.Close(context.Background(), ws.DraftID), ErrDraftNotFound)
}

func TestManagerMutationMarksUnsavedAndAutosaves(t *testing.T) {
	gw := &mockGateway{nextNumber: 1}
	drafts := &mockDraftStore{}
	m := NewManager(gw, nil, nil, drafts)

	ws, err := m.NewDraft(context.Background(), models.TransactionTypeSale)
	require.NoError(t, err)

	ws.Store.AddLineItem(models.Product{ID: "prd_1", Name: "Rice", Price: 4000}, nil)
	assert.Equal(t, models.SaveStatusUnsaved, ws.Session.Status())
	assert.Equal(t, 1, drafts.upserts)
}
