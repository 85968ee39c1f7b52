package bountyrepo

import (
	"context"

	"github.com/google/uuid"
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

func (r *Repository) Create(ctx context.Context, bounty *domain.Bounty) (*domain.Bounty, error) {
	query := `
        INSERT INTO bounties (id, poster_id, amount, status, escrow_state)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at
    `
	err := r.db.QueryRow(ctx, query, bounty.ID, bounty.PosterID, bounty.Amount, bounty.Status, bounty.EscrowState).
		Scan(&bounty.CreatedAt, &bounty.UpdatedAt)
	if err != nil {
		zap.L().Error("failed to create bounty", zap.Error(err))
		return nil, err
	}
	return bounty, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Bounty, error) {
	query := `
        SELECT id, poster_id, worker_id, amount, status, escrow_state, created_at, updated_at
        FROM bounties
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)
	var bounty domain.Bounty
	err := row.Scan(&bounty.ID, &bounty.PosterID, &bounty.WorkerID, &bounty.Amount, &bounty.Status, &bounty.EscrowState, &bounty.CreatedAt, &bounty.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to find bounty", zap.Error(err))
		return nil, err
	}
	return &bounty, nil
}

// UpdateStatus flips the status only from the expected one; the conditional
// write is what makes lifecycle transitions race-safe.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error) {
	query := `
        UPDATE bounties
        SET status = $3, updated_at = now()
        WHERE id = $1 AND status = $2
    `
	tag, err := r.db.Exec(ctx, query, id, from, to)
	if err != nil {
		zap.L().Error("failed to update bounty status", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repository) AssignWorker(ctx context.Context, id uuid.UUID, workerID int, from, to string) (bool, error) {
	query := `
        UPDATE bounties
        SET status = $4, worker_id = $3, updated_at = now()
        WHERE id = $1 AND status = $2 AND worker_id IS NULL
    `
	tag, err := r.db.Exec(ctx, query, id, from, workerID, to)
	if err != nil {
		zap.L().Error("failed to assign bounty worker", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// HoldEscrow transitions none -> held. Completion may outrun the hold in the
// outbox, so a completed bounty still accepts it; only a hold relayed after
// cancellation does not fire.
func (r *Repository) HoldEscrow(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
        UPDATE bounties
        SET escrow_state = 'held', updated_at = now()
        WHERE id = $1 AND escrow_state = 'none' AND status IN ('in_progress', 'completed')
    `
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		zap.L().Error("failed to hold escrow", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// TransitionEscrow performs a conditional escrow-state change. A zero-row
// result means the expected state did not hold.
func (r *Repository) TransitionEscrow(ctx context.Context, id uuid.UUID, from, to string) (bool, error) {
	query := `
        UPDATE bounties
        SET escrow_state = $3, updated_at = now()
        WHERE id = $1 AND escrow_state = $2
    `
	tag, err := r.db.Exec(ctx, query, id, from, to)
	if err != nil {
		zap.L().Error("failed to transition escrow state", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
