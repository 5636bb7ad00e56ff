package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"pos-billing/db"
	"pos-billing/models"
)

// DraftRepository handles database operations for autosaved drafts
type DraftRepository struct{}

// NewDraftRepository creates a new DraftRepository
func NewDraftRepository() *DraftRepository {
	return &DraftRepository{}
}

// Ensure DraftRepository implements DraftRepositoryInterface
var _ DraftRepositoryInterface = (*DraftRepository)(nil)

// EnsureSchema creates the draft table if it does not exist yet
func (r *DraftRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS draft_bills (
			draft_id   TEXT PRIMARY KEY,
			txn_type   TEXT NOT NULL,
			payload    JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := db.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create draft_bills table: %w", err)
	}
	return nil
}

// Upsert inserts or replaces the autosaved state of one draft
func (r *DraftRepository) Upsert(ctx context.Context, draft *models.Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	query := `
		INSERT INTO draft_bills (draft_id, txn_type, payload, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (draft_id)
		DO UPDATE SET txn_type = $2, payload = $3, updated_at = NOW()
	`
	if _, err := db.DB.ExecContext(ctx, query, draft.DraftID, string(draft.Type), payload); err != nil {
		return fmt.Errorf("failed to upsert draft: %w", err)
	}
	return nil
}

// Get retrieves one autosaved draft by id
func (r *DraftRepository) Get(ctx context.Context, draftID string) (*models.Draft, error) {
	query := `SELECT payload FROM draft_bills WHERE draft_id = $1`

	var payload []byte
	err := db.DB.QueryRowContext(ctx, query, draftID).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("draft not found")
		}
		return nil, fmt.Errorf("failed to fetch draft: %w", err)
	}

	var draft models.Draft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &draft, nil
}

// List retrieves all autosaved drafts, most recently touched first
func (r *DraftRepository) List(ctx context.Context) ([]models.Draft, error) {
	query := `SELECT payload FROM draft_bills ORDER BY updated_at DESC`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch drafts: %w", err)
	}
	defer rows.Close()

	var drafts []models.Draft
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			log.Printf("❌ List: Error scanning draft: %v", err)
			continue
		}
		var draft models.Draft
		if err := json.Unmarshal(payload, &draft); err != nil {
			log.Printf("❌ List: Error decoding draft: %v", err)
			continue
		}
		drafts = append(drafts, draft)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate drafts: %w", err)
	}

	return drafts, nil
}

// Delete removes one autosaved draft
func (r *DraftRepository) Delete(ctx context.Context, draftID string) error {
	query := `DELETE FROM draft_bills WHERE draft_id = $1`
	if _, err := db.DB.ExecContext(ctx, query, draftID); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
