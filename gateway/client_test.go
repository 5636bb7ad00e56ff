package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-billing/models"
)

func TestGetNextTransactionNumber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/transactions/SALE/next-number", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "ok", "data": 1042})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	number, err := client.GetNextTransactionNumber(context.Background(), models.TransactionTypeSale)
	require.NoError(t, err)
	assert.Equal(t, int64(1042), number)
}

func TestCreateTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transactions/SALE", r.URL.Path)

		var payload models.TransactionPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, int64(1042), payload.TransactionNo)
		assert.True(t, payload.IsPaid)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "ok",
			"data":   map[string]string{"id": "txn_1", "type": "SALE"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	ref, err := client.CreateTransaction(context.Background(), models.TransactionTypeSale, &models.TransactionPayload{
		TransactionNo:   1042,
		TransactionType: models.TransactionTypeSale,
		IsPaid:          true,
	})
	require.NoError(t, err)
	assert.Equal(t, "txn_1", ref.ID)
	assert.Equal(t, models.TransactionTypeSale, ref.Type)
}

func TestEditTransactionErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/transactions/SALE/txn_1", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "error",
			"error":  map[string]string{"message": "transaction number already in use"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.EditTransaction(context.Background(), models.TransactionTypeSale, "txn_1", &models.TransactionPayload{})
	require.Error(t, err)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "transaction number already in use", netErr.Message)
}

func TestGetTransactionNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GetTransaction(context.Background(), models.TransactionTypeSale, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetTransactionDecodesItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "ok",
			"data": map[string]interface{}{
				"id":            "txn_8f2a",
				"type":          "SALE",
				"transactionNo": 1042,
				"customerName":  "Ramesh Traders",
				"items": []map[string]interface{}{
					{"id": "it_1", "productId": "prd_1", "name": "Dal", "quantity": "3.75", "price": 4000, "totalPrice": 15000, "checkedQty": "3"},
				},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	tx, err := client.GetTransaction(context.Background(), models.TransactionTypeSale, "txn_8f2a")
	require.NoError(t, err)
	assert.Equal(t, int64(1042), tx.TransactionNo)
	require.Len(t, tx.Items, 1)
	assert.Equal(t, "3.75", tx.Items[0].Quantity.String())
	assert.Equal(t, "3", tx.Items[0].CheckedQty.String())
}

func TestUpdateCheckedQty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions/SALE/txn_1/items/it_1/checked-qty", r.URL.Path)

		var req models.CheckedQtyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, models.CheckedQtyIncrement, req.Action)

		json.NewEncoder(w).Encode(map[string]interface{}{"status": "ok", "data": nil})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.UpdateCheckedQty(context.Background(), models.TransactionTypeSale, "txn_1", "it_1", models.CheckedQtyIncrement)
	assert.NoError(t, err)
}

func TestBatchUpdateCheckedQty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions/SALE/txn_1/checked-qty", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "ok", "data": nil})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.BatchUpdateCheckedQty(context.Background(), models.TransactionTypeSale, "txn_1", models.CheckedQtyDecrement)
	assert.NoError(t, err)
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	_, err := client.GetNextTransactionNumber(context.Background(), models.TransactionTypeSale)
	require.Error(t, err)

	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}
