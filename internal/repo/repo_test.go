package repo

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/bountylab/reconciler/internal/pg"
	bountyrepo "github.com/bountylab/reconciler/internal/repo/bounty-repo"
	eventrepo "github.com/bountylab/reconciler/internal/repo/event-repo"
	ledgerrepo "github.com/bountylab/reconciler/internal/repo/ledger-repo"
	outboxrepo "github.com/bountylab/reconciler/internal/repo/outbox-repo"
	userrepo "github.com/bountylab/reconciler/internal/repo/user-repo"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface) {
	ctrl := gomock.NewController(t)
	mockDB, err := pgxmock.NewPool()
	mockTxManager := pg.NewMockTXManager(ctrl)
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()

	return repo, mockDB
}

func TestNew(t *testing.T) {
	repo, mock := NewMock(t)

	assert.NotNil(t, repo.EventRepo)
	assert.NotNil(t, repo.LedgerRepo)
	assert.NotNil(t, repo.OutboxRepo)
	assert.NotNil(t, repo.BountyRepo)
	assert.NotNil(t, repo.UserRepo)

	assert.IsType(t, &eventrepo.Repository{}, repo.EventRepo)
	assert.IsType(t, &ledgerrepo.Repository{}, repo.LedgerRepo)
	assert.IsType(t, &outboxrepo.Repository{}, repo.OutboxRepo)
	assert.IsType(t, &bountyrepo.Repository{}, repo.BountyRepo)
	assert.IsType(t, &userrepo.Repository{}, repo.UserRepo)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}
