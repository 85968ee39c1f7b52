package service

import (
	"github.com/bountylab/reconciler/internal/handlers/balance"
	"github.com/bountylab/reconciler/internal/handlers/bounty"
	"github.com/bountylab/reconciler/internal/handlers/webhook"

	"github.com/bountylab/reconciler/internal/pg"
	"github.com/bountylab/reconciler/internal/repo"
	"github.com/bountylab/reconciler/internal/service/bountyservice"
	"github.com/bountylab/reconciler/internal/service/eventservice"
	"github.com/bountylab/reconciler/internal/service/ledgerservice"
)

type Services struct {
	EventService   webhook.Service
	BountyService  bounty.Service
	BalanceService balance.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager) *Services {
	ledgerService := ledgerservice.New(repo.LedgerRepo, txManager)
	bountyService := bountyservice.New(repo.BountyRepo, repo.OutboxRepo, ledgerService, txManager)
	eventService := eventservice.New(repo.EventRepo, ledgerService, bountyService, repo.UserRepo)

	return &Services{
		EventService:   eventService,
		BountyService:  bountyService,
		BalanceService: ledgerService,
	}
}
