package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/bountylab/reconciler/docs"
	balancehandlers "github.com/bountylab/reconciler/internal/handlers/balance"
	bountyhandlers "github.com/bountylab/reconciler/internal/handlers/bounty"
	webhookhandlers "github.com/bountylab/reconciler/internal/handlers/webhook"
	"github.com/bountylab/reconciler/internal/service"
	"github.com/bountylab/reconciler/pkg/auth"
	"github.com/bountylab/reconciler/pkg/signature"
)

type WebhookHandler interface {
	HandleEvent(w http.ResponseWriter, r *http.Request)
}

type BountyHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Accept(w http.ResponseWriter, r *http.Request)
	Complete(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
	GetLedger(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	WebhookHandler WebhookHandler
	BountyHandler  BountyHandler
	BalanceHandler BalanceHandler
}

func New(s *service.Services, verifier *signature.Verifier) *Handlers {
	return &Handlers{
		WebhookHandler: webhookhandlers.New(s.EventService, verifier),
		BountyHandler:  bountyhandlers.New(s.BountyService),
		BalanceHandler: balancehandlers.New(s.BalanceService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router, requestTimeout time.Duration) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(requestTimeout),
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	// The processor signs requests; they never carry a user token.
	r.Post("/api/webhook/payments", h.WebhookHandler.HandleEvent)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)
		r.Route("/api/bounty", func(r chi.Router) {
			r.Post("/", h.BountyHandler.Create)
			r.Get("/{id}", h.BountyHandler.Get)
			r.Post("/{id}/accept", h.BountyHandler.Accept)
			r.Post("/{id}/complete", h.BountyHandler.Complete)
			r.Post("/{id}/cancel", h.BountyHandler.Cancel)
		})
		r.Route("/api/user", func(r chi.Router) {
			r.Route("/balance", func(r chi.Router) {
				r.Get("/", h.BalanceHandler.GetBalance)
				r.Post("/withdraw", h.BalanceHandler.Withdraw)
			})
			r.Get("/ledger", h.BalanceHandler.GetLedger)
		})
	})

	return r
}
