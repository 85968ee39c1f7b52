package repo

import (
	"github.com/bountylab/reconciler/internal/pg"
	bountyrepo "github.com/bountylab/reconciler/internal/repo/bounty-repo"
	eventrepo "github.com/bountylab/reconciler/internal/repo/event-repo"
	ledgerrepo "github.com/bountylab/reconciler/internal/repo/ledger-repo"
	outboxrepo "github.com/bountylab/reconciler/internal/repo/outbox-repo"
	userrepo "github.com/bountylab/reconciler/internal/repo/user-repo"
)

type Repositories struct {
	EventRepo  *eventrepo.Repository
	LedgerRepo *ledgerrepo.Repository
	OutboxRepo *outboxrepo.Repository
	BountyRepo *bountyrepo.Repository
	UserRepo   *userrepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		EventRepo:  eventrepo.New(conn),
		LedgerRepo: ledgerrepo.New(conn, txManager),
		OutboxRepo: outboxrepo.New(conn),
		BountyRepo: bountyrepo.New(conn),
		UserRepo:   userrepo.New(conn),
	}
}
