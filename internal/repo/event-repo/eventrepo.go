package eventrepo

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"

	"github.com/bountylab/reconciler/internal/domain"
	"github.com/bountylab/reconciler/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// RecordIfNew inserts the event once. The uniqueness constraint on event_id
// is the serialization point: concurrent duplicate deliveries see exactly one
// true result.
func (r *Repository) RecordIfNew(ctx context.Context, eventID, eventType string, payload json.RawMessage) (bool, error) {
	query := `
        INSERT INTO payment_events (event_id, type, payload)
        VALUES ($1, $2, $3)
        ON CONFLICT (event_id) DO NOTHING
    `
	tag, err := r.db.Exec(ctx, query, eventID, eventType, payload)
	if err != nil {
		zap.L().Error("failed to record payment event", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ClaimProcessing atomically moves an unprocessed or previously failed event
// into processing. Exactly one of any number of concurrent claimants wins.
func (r *Repository) ClaimProcessing(ctx context.Context, eventID string) (bool, error) {
	query := `
        UPDATE payment_events
        SET status = 'processing'
        WHERE event_id = $1 AND status IN ('unprocessed', 'failed')
    `
	tag, err := r.db.Exec(ctx, query, eventID)
	if err != nil {
		zap.L().Error("failed to claim payment event", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repository) MarkProcessed(ctx context.Context, eventID string) error {
	query := `
        UPDATE payment_events
        SET status = 'processed', failure_reason = '', processed_at = now()
        WHERE event_id = $1 AND status = 'processing'
    `
	if _, err := r.db.Exec(ctx, query, eventID); err != nil {
		zap.L().Error("failed to mark payment event processed", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) MarkFailed(ctx context.Context, eventID, reason string) error {
	query := `
        UPDATE payment_events
        SET status = 'failed', failure_reason = $2
        WHERE event_id = $1 AND status = 'processing'
    `
	if _, err := r.db.Exec(ctx, query, eventID, reason); err != nil {
		zap.L().Error("failed to mark payment event failed", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByEventID(ctx context.Context, eventID string) (*domain.PaymentEvent, error) {
	query := `
        SELECT id, event_id, type, payload, status, failure_reason, received_at, processed_at
        FROM payment_events
        WHERE event_id = $1
    `
	row := r.db.QueryRow(ctx, query, eventID)
	var event domain.PaymentEvent
	err := row.Scan(&event.ID, &event.EventID, &event.Type, &event.Payload, &event.Status, &event.FailureReason, &event.ReceivedAt, &event.ProcessedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to find payment event", zap.Error(err))
		return nil, err
	}
	return &event, nil
}
