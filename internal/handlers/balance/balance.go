package balance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bountylab/reconciler/internal/domain"
	"github.com/bountylab/reconciler/internal/dto"
	"github.com/bountylab/reconciler/internal/service/ledgerservice"
	"github.com/bountylab/reconciler/pkg/auth"
	"github.com/bountylab/reconciler/pkg/utils"
	"github.com/bountylab/reconciler/pkg/validate"
)

type Service interface {
	GetBalance(ctx context.Context, userID int) (*domain.Balance, error)
	GetLedger(ctx context.Context, userID int) ([]domain.LedgerEntry, error)
	Withdraw(ctx context.Context, userID int, amount int64) (*domain.LedgerEntry, error)
}

type BalanceHandler struct {
	balanceService Service
}

func New(balanceService Service) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
	}
}

// GetBalance godoc
//
//	@Summary		Get current user balance
//	@Description	Retrieve the available, escrowed and withdrawn totals for the authenticated user, in the smallest currency unit.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO	"Balance projection"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		404	{object}	utils.Response			"Balance not found"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/balance [get]
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	balance, err := h.balanceService.GetBalance(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ledgerservice.ErrBalanceNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "balance not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		Current:   balance.CurrentBalance,
		Escrowed:  balance.EscrowedTotal,
		Withdrawn: balance.WithdrawnTotal,
	})
}

// Withdraw godoc
//
//	@Summary		Request funds withdrawal
//	@Description	Debit the balance immediately and record a pending withdrawal entry; the returned reference is used as the processor transfer idempotency key.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawRequestDTO	true	"Withdrawal request payload"
//	@Success		200		{object}	dto.WithdrawResponseDTO	"Withdrawal accepted"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		402		{object}	utils.Response			"Insufficient balance"
//	@Failure		422		{object}	utils.Response			"Invalid destination account"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/user/balance/withdraw [post]
func (h *BalanceHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.WithdrawRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !validate.IsLuhn(req.Destination) {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid destination account")
		return
	}

	entry, err := h.balanceService.Withdraw(r.Context(), userID, req.Sum)
	if err != nil {
		switch {
		case errors.Is(err, ledgerservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, ledgerservice.ErrInvalidAmount):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, ledgerservice.ErrBalanceNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "balance not found")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.WithdrawResponseDTO{
		Reference: *entry.ExternalRef,
		Sum:       -entry.Amount,
	})
}

// GetLedger godoc
//
//	@Summary		Get ledger history
//	@Description	List the authenticated user's ledger entries, newest first.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.LedgerEntryResponseDTO	"Ledger entries"
//	@Success		204	{object}	utils.Response				"No entries"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/user/ledger [get]
func (h *BalanceHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	entries, err := h.balanceService.GetLedger(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch ledger entries")
		return
	}

	if len(entries) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No ledger entries")
		return
	}

	response := make([]dto.LedgerEntryResponseDTO, len(entries))
	for i, entry := range entries {
		response[i] = dto.LedgerEntryResponseDTO{
			ID:        entry.ID.String(),
			Kind:      entry.Kind,
			Amount:    entry.Amount,
			Status:    entry.Status,
			CreatedAt: entry.CreatedAt,
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}
