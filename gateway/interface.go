package gateway

import (
	"context"

	"pos-billing/models"
)

// TransactionGatewayInterface defines the contract for the remote transaction
// service. The remote service is the system of record for saved transactions
// and the sole authority for final transaction-number uniqueness.
type TransactionGatewayInterface interface {
	GetNextTransactionNumber(ctx context.Context, txType models.TransactionType) (int64, error)
	CreateTransaction(ctx context.Context, txType models.TransactionType, payload *models.TransactionPayload) (*models.TransactionRef, error)
	EditTransaction(ctx context.Context, txType models.TransactionType, id string, payload *models.TransactionPayload) (*models.TransactionRef, error)
	GetTransaction(ctx context.Context, txType models.TransactionType, id string) (*models.Transaction, error)
	UpdateCheckedQty(ctx context.Context, txType models.TransactionType, id, itemID string, action models.CheckedQtyAction) error
	BatchUpdateCheckedQty(ctx context.Context, txType models.TransactionType, id string, action models.CheckedQtyAction) error
}
