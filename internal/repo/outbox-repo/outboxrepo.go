package outboxrepo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

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

// Create must run inside the caller's transaction so the outbox row commits
// or rolls back together with the domain change it describes.
func (r *Repository) Create(ctx context.Context, id uuid.UUID, eventType string, payload json.RawMessage) (*domain.OutboxEvent, error) {
	query := `
        INSERT INTO outbox_events (id, type, payload)
        VALUES ($1, $2, $3)
        RETURNING id, type, payload, status, retry_count, next_attempt_at, last_error, created_at, processed_at
    `
	row := r.db.QueryRow(ctx, query, id, eventType, payload)
	var event domain.OutboxEvent
	err := row.Scan(&event.ID, &event.Type, &event.Payload, &event.Status, &event.RetryCount, &event.NextAttemptAt, &event.LastError, &event.CreatedAt, &event.ProcessedAt)
	if err != nil {
		zap.L().Error("failed to create outbox event", zap.Error(err))
		return nil, err
	}
	return &event, nil
}

// ClaimBatch atomically flips due rows to processing. SKIP LOCKED keeps
// concurrent relay instances from double-claiming a row. Rows stuck at
// processing longer than staleClaimAfter were claimed by a relay that died
// before finishing; they become claimable again.
func (r *Repository) ClaimBatch(ctx context.Context, limit, maxRetries int, staleClaimAfter time.Duration) ([]domain.OutboxEvent, error) {
	query := `
        UPDATE outbox_events
        SET status = 'processing', claimed_at = now()
        WHERE id IN (
            SELECT id FROM outbox_events
            WHERE ((status = 'pending' OR (status = 'failed' AND retry_count < $2))
                     AND next_attempt_at <= now())
               OR (status = 'processing' AND claimed_at < now() - make_interval(secs => $3))
            ORDER BY created_at
            LIMIT $1
            FOR UPDATE SKIP LOCKED
        )
        RETURNING id, type, payload, status, retry_count, next_attempt_at, last_error, created_at, processed_at
    `
	rows, err := r.db.Query(ctx, query, limit, maxRetries, staleClaimAfter.Seconds())
	if err != nil {
		zap.L().Error("failed to claim outbox batch", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var events []domain.OutboxEvent
	for rows.Next() {
		var event domain.OutboxEvent
		err := rows.Scan(&event.ID, &event.Type, &event.Payload, &event.Status, &event.RetryCount, &event.NextAttemptAt, &event.LastError, &event.CreatedAt, &event.ProcessedAt)
		if err != nil {
			zap.L().Error("failed to scan outbox row", zap.Error(err))
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func (r *Repository) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	query := `
        UPDATE outbox_events
        SET status = 'completed', processed_at = now()
        WHERE id = $1 AND status = 'processing'
    `
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		zap.L().Error("failed to mark outbox event completed", zap.Error(err))
		return err
	}
	return nil
}

// MarkFailed records the failure and schedules the next attempt. Rows are
// never deleted; once retry_count passes the cap the sweep stops selecting
// them and they stay visible for operators.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, reason string, nextAttemptAt time.Time) error {
	query := `
        UPDATE outbox_events
        SET status = 'failed', retry_count = retry_count + 1, last_error = $2, next_attempt_at = $3
        WHERE id = $1 AND status = 'processing'
    `
	if _, err := r.db.Exec(ctx, query, id, reason, nextAttemptAt); err != nil {
		zap.L().Error("failed to mark outbox event failed", zap.Error(err))
		return err
	}
	return nil
}
