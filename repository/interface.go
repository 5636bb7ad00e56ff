package repository

import (
	"context"

	"pos-billing/models"
)

// DraftRepositoryInterface defines the contract for local draft persistence.
// Drafts are crash-recovery working copies of unsaved bills; the remote
// transaction service remains the system of record for saved transactions.
type DraftRepositoryInterface interface {
	EnsureSchema(ctx context.Context) error
	Upsert(ctx context.Context, draft *models.Draft) error
	Get(ctx context.Context, draftID string) (*models.Draft, error)
	List(ctx context.Context) ([]models.Draft, error)
	Delete(ctx context.Context, draftID string) error
}
