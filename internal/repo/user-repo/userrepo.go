package userrepo

import (
	"context"

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

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	query := `
        SELECT id, processor_account_id, payouts_enabled, created_at
        FROM users
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)
	var user domain.User
	err := row.Scan(&user.ID, &user.ProcessorAccountID, &user.PayoutsEnabled, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to find user", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// SetPayoutsEnabled updates the processor-account verification flag. Returns
// false when no user carries the account id.
func (r *Repository) SetPayoutsEnabled(ctx context.Context, processorAccountID string, enabled bool) (bool, error) {
	query := `
        UPDATE users
        SET payouts_enabled = $2
        WHERE processor_account_id = $1
    `
	tag, err := r.db.Exec(ctx, query, processorAccountID, enabled)
	if err != nil {
		zap.L().Error("failed to update payouts flag", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
