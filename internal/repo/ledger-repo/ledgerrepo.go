package ledgerrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/bountylab/reconciler/internal/domain"
	"github.com/bountylab/reconciler/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (r *Repository) GetUserBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	query := `
        SELECT id, user_id, current_balance, escrowed_total, withdrawn_total
        FROM balances
        WHERE user_id = $1
    `
	row := r.db.QueryRow(ctx, query, userID)
	var balance domain.Balance
	err := row.Scan(&balance.ID, &balance.UserID, &balance.CurrentBalance, &balance.EscrowedTotal, &balance.WithdrawnTotal)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get user balance", zap.Error(err))
		return nil, err
	}
	return &balance, nil
}

func (r *Repository) CreateUserBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	query := `
        INSERT INTO balances (user_id, current_balance, escrowed_total, withdrawn_total)
        VALUES ($1, 0, 0, 0)
        RETURNING id, user_id, current_balance, escrowed_total, withdrawn_total
    `
	row := r.db.QueryRow(ctx, query, userID)
	var balance domain.Balance
	err := row.Scan(&balance.ID, &balance.UserID, &balance.CurrentBalance, &balance.EscrowedTotal, &balance.WithdrawnTotal)
	if err != nil {
		zap.L().Error("failed to create user balance", zap.Error(err))
		return nil, err
	}
	return &balance, nil
}

// ApplyDelta increments the balance with the storage engine's own atomic
// arithmetic, never read-modify-write in application code. Returns
// pgx.ErrNoRows when the row is missing or the delta would drive the balance
// negative; the service disambiguates.
func (r *Repository) ApplyDelta(ctx context.Context, userID int, delta int64) (int64, error) {
	query := `
        UPDATE balances
        SET current_balance = current_balance + $1
        WHERE user_id = $2 AND current_balance + $1 >= 0
        RETURNING current_balance
    `
	var newBalance int64
	if err := r.db.QueryRow(ctx, query, delta, userID).Scan(&newBalance); err != nil {
		return 0, err
	}
	return newBalance, nil
}

// ApplyDeltaLocked is the degraded path: an explicit read-modify-write under
// the same row lock the atomic update would take. Slow but still correct.
func (r *Repository) ApplyDeltaLocked(ctx context.Context, userID int, delta int64) (int64, error) {
	var newBalance int64
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		var current int64
		selectQuery := `
            SELECT current_balance
            FROM balances
            WHERE user_id = $1
            FOR UPDATE
        `
		if err := r.db.QueryRow(ctx, selectQuery, userID).Scan(&current); err != nil {
			return err
		}
		if current+delta < 0 {
			return pgx.ErrNoRows
		}
		updateQuery := `
            UPDATE balances
            SET current_balance = $1
            WHERE user_id = $2
        `
		if _, err := r.db.Exec(ctx, updateQuery, current+delta, userID); err != nil {
			zap.L().Error("failed to write balance on locked path", zap.Error(err))
			return err
		}
		newBalance = current + delta
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}

func (r *Repository) ApplyEscrowDelta(ctx context.Context, userID int, delta int64) error {
	query := `
        UPDATE balances
        SET escrowed_total = escrowed_total + $1
        WHERE user_id = $2
    `
	tag, err := r.db.Exec(ctx, query, delta, userID)
	if err != nil {
		zap.L().Error("failed to update escrowed total", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) ApplyWithdrawnDelta(ctx context.Context, userID int, delta int64) error {
	query := `
        UPDATE balances
        SET withdrawn_total = withdrawn_total + $1
        WHERE user_id = $2
    `
	tag, err := r.db.Exec(ctx, query, delta, userID)
	if err != nil {
		zap.L().Error("failed to update withdrawn total", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) CreateEntry(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	query := `
        INSERT INTO ledger_entries (id, user_id, kind, amount, related_bounty_id, source_event_id, external_ref, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at
    `
	err := r.db.QueryRow(ctx, query,
		entry.ID, entry.UserID, entry.Kind, entry.Amount,
		entry.RelatedBountyID, entry.SourceEventID, entry.ExternalRef, entry.Status,
	).Scan(&entry.CreatedAt)
	if err != nil {
		zap.L().Error("failed to create ledger entry", zap.Error(err))
		return nil, err
	}
	return entry, nil
}

// CompleteEntryByRef finalizes the pending entry matched by an external
// reference. Returns nil when no pending entry matches.
func (r *Repository) CompleteEntryByRef(ctx context.Context, ref string) (*domain.LedgerEntry, error) {
	return r.finishEntryByRef(ctx, ref, domain.EntryStatusCompleted)
}

// FailEntryByRef marks the pending entry failed; the caller reverses its
// balance effect.
func (r *Repository) FailEntryByRef(ctx context.Context, ref string) (*domain.LedgerEntry, error) {
	return r.finishEntryByRef(ctx, ref, domain.EntryStatusFailed)
}

func (r *Repository) finishEntryByRef(ctx context.Context, ref, status string) (*domain.LedgerEntry, error) {
	query := `
        UPDATE ledger_entries
        SET status = $2
        WHERE external_ref = $1 AND status = 'pending'
        RETURNING id, user_id, kind, amount, related_bounty_id, source_event_id, external_ref, status, created_at
    `
	row := r.db.QueryRow(ctx, query, ref, status)
	var entry domain.LedgerEntry
	err := row.Scan(&entry.ID, &entry.UserID, &entry.Kind, &entry.Amount, &entry.RelatedBountyID, &entry.SourceEventID, &entry.ExternalRef, &entry.Status, &entry.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to finish ledger entry", zap.Error(err), zap.String("externalRef", ref))
		return nil, err
	}
	return &entry, nil
}

func (r *Repository) ListEntriesByUserID(ctx context.Context, userID int) ([]domain.LedgerEntry, error) {
	query := `
        SELECT id, user_id, kind, amount, related_bounty_id, source_event_id, external_ref, status, created_at
        FROM ledger_entries
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch ledger entries", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var entry domain.LedgerEntry
		err := rows.Scan(&entry.ID, &entry.UserID, &entry.Kind, &entry.Amount, &entry.RelatedBountyID, &entry.SourceEventID, &entry.ExternalRef, &entry.Status, &entry.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan ledger entry row", zap.Error(err))
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// FindDrift reports balances that no longer equal the sum of their
// non-failed entries. Pending entries count because their money has already
// moved; failed entries were reversed.
func (r *Repository) FindDrift(ctx context.Context) ([]domain.BalanceDrift, error) {
	query := `
        SELECT b.user_id, b.current_balance, COALESCE(SUM(l.amount), 0) AS ledger_sum
        FROM balances b
        LEFT JOIN ledger_entries l ON l.user_id = b.user_id AND l.status IN ('pending', 'completed')
        GROUP BY b.user_id, b.current_balance
        HAVING b.current_balance <> COALESCE(SUM(l.amount), 0)
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("failed to run drift query", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var drifts []domain.BalanceDrift
	for rows.Next() {
		var drift domain.BalanceDrift
		if err := rows.Scan(&drift.UserID, &drift.CurrentBalance, &drift.LedgerSum); err != nil {
			zap.L().Error("failed to scan drift row", zap.Error(err))
			return nil, err
		}
		drifts = append(drifts, drift)
	}
	return drifts, nil
}
