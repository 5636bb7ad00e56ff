package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"pos-billing/models"
)

// Client talks to the remote transaction service over HTTP. Responses use the
// service's standard envelope: {"status": "...", "data": ..., "error": {"message": "..."}}
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Client for the given base URL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Ensure Client implements TransactionGatewayInterface
var _ TransactionGatewayInterface = (*Client)(nil)

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// do performs one JSON round trip and decodes the envelope's data field into
// out (when out is non-nil). All failures come back as *NetworkError, except
// a 404 which maps to ErrNotFound.
func (c *Client) do(ctx context.Context, op, method, path string, body interface{}, out interface{}) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &NetworkError{Op: op, Err: fmt.Errorf("failed to encode request: %w", err)}
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("❌ gateway %s: request failed: %v", op, err)
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if resp.StatusCode >= 400 || env.Status == "error" {
		msg := fmt.Sprintf("remote returned status %d", resp.StatusCode)
		if env.Error != nil && env.Error.Message != "" {
			msg = env.Error.Message
		}
		log.Printf("❌ gateway %s: %s", op, msg)
		return &NetworkError{Op: op, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &NetworkError{Op: op, Err: fmt.Errorf("failed to decode data: %w", err)}
		}
	}

	return nil
}

// GetNextTransactionNumber fetches the next tentative number for a
// transaction type. The value is speculative until a save confirms it.
func (c *Client) GetNextTransactionNumber(ctx context.Context, txType models.TransactionType) (int64, error) {
	var number int64
	path := fmt.Sprintf("/transactions/%s/next-number", txType)
	if err := c.do(ctx, "getNextTransactionNumber", http.MethodGet, path, nil, &number); err != nil {
		return 0, err
	}
	return number, nil
}

// CreateTransaction persists a new transaction
func (c *Client) CreateTransaction(ctx context.Context, txType models.TransactionType, payload *models.TransactionPayload) (*models.TransactionRef, error) {
	var ref models.TransactionRef
	path := fmt.Sprintf("/transactions/%s", txType)
	if err := c.do(ctx, "createTransaction", http.MethodPost, path, payload, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// EditTransaction replaces an already-persisted transaction by id
func (c *Client) EditTransaction(ctx context.Context, txType models.TransactionType, id string, payload *models.TransactionPayload) (*models.TransactionRef, error) {
	var ref models.TransactionRef
	path := fmt.Sprintf("/transactions/%s/%s", txType, id)
	if err := c.do(ctx, "editTransaction", http.MethodPut, path, payload, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// GetTransaction fetches a persisted transaction with its items
func (c *Client) GetTransaction(ctx context.Context, txType models.TransactionType, id string) (*models.Transaction, error) {
	var tx models.Transaction
	path := fmt.Sprintf("/transactions/%s/%s", txType, id)
	if err := c.do(ctx, "getTransaction", http.MethodGet, path, nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// UpdateCheckedQty applies one fulfillment action to one item of a persisted
// transaction
func (c *Client) UpdateCheckedQty(ctx context.Context, txType models.TransactionType, id, itemID string, action models.CheckedQtyAction) error {
	path := fmt.Sprintf("/transactions/%s/%s/items/%s/checked-qty", txType, id, itemID)
	body := models.CheckedQtyRequest{Action: action}
	return c.do(ctx, "updateCheckedQty", http.MethodPost, path, body, nil)
}

// BatchUpdateCheckedQty applies one fulfillment action to every item of a
// persisted transaction
func (c *Client) BatchUpdateCheckedQty(ctx context.Context, txType models.TransactionType, id string, action models.CheckedQtyAction) error {
	path := fmt.Sprintf("/transactions/%s/%s/checked-qty", txType, id)
	body := models.CheckedQtyRequest{Action: action}
	return c.do(ctx, "batchUpdateCheckedQty", http.MethodPost, path, body, nil)
}
