package repository

import (
	"context"
	"encoding/json"
	"time"

	"ontix/internal/database"
)

// ArchiveRepository persists ledger notifications for audit. The ledger is
// the source of truth; these tables are append-only history.
type ArchiveRepository struct {
	db *database.DB
}

func NewArchiveRepository(db *database.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// RecordNotification stores any notification verbatim with its subject.
func (r *ArchiveRepository) RecordNotification(ctx context.Context, subject string, payload []byte) error {
	query := `
		INSERT INTO notifications_archive (subject, payload)
		VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, subject, json.RawMessage(payload))
	return err
}

// RecordResale stores a completed resale row.
func (r *ArchiveRepository) RecordResale(ctx context.Context, ticketID int64, seller, buyer string, price int64, occurredAt time.Time) error {
	query := `
		INSERT INTO resales_archive (ticket_id, seller, buyer, price, occurred_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query, ticketID, seller, buyer, price, occurredAt)
	return err
}

// RecordPayout stores an outbound fund transfer row.
func (r *ArchiveRepository) RecordPayout(ctx context.Context, recipient string, amount int64, memo string, occurredAt time.Time) error {
	query := `
		INSERT INTO payouts_archive (recipient, amount, memo, occurred_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query, recipient, amount, memo, occurredAt)
	return err
}

// ResaleCount reports how many resales have been archived for a ticket.
// Used by operational tooling to cross-check the single-resale rule.
func (r *ArchiveRepository) ResaleCount(ctx context.Context, ticketID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM resales_archive WHERE ticket_id = $1`

	err := r.db.QueryRowContext(ctx, query, ticketID).Scan(&count)
	return count, err
}
