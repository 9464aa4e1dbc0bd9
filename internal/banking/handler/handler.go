// Package handler is the thin HTTP layer for accounts. It delegates to the
// banking service without embedding business logic so transport concerns
// stay isolated.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"minibank/internal/banking/models"
	dErrors "minibank/pkg/domain-errors"
	"minibank/pkg/platform/httputil"
	"minibank/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the banking operations the handler needs.
type Service interface {
	Open(ctx context.Context, initialBalance float64) (*models.Account, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Account, error)
	List(ctx context.Context) ([]*models.Account, error)
	Deposit(ctx context.Context, id uuid.UUID, amount float64) (*models.Account, error)
	Withdraw(ctx context.Context, id uuid.UUID, amount float64) (*models.Account, error)
	Transfer(ctx context.Context, fromID, toID uuid.UUID, amount float64) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// Handler handles account endpoints.
type Handler struct {
	logger  *slog.Logger
	banking Service
}

// New creates an account Handler.
func New(banking Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, banking: banking}
}

// Register mounts the account routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/accounts", h.handleOpen)
	r.Get("/accounts", h.handleList)
	r.Get("/accounts/{id}", h.handleGet)
	r.Post("/accounts/{id}/deposit", h.handleDeposit)
	r.Post("/accounts/{id}/withdraw", h.handleWithdraw)
	r.Post("/accounts/{id}/transfer", h.handleTransfer)
	r.Post("/accounts/{id}/deactivate", h.handleDeactivate)
}

func (h *Handler) handleOpen(w http.ResponseWriter, r *http.Request) {
	var req OpenAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	account, err := h.banking.Open(r.Context(), req.InitialBalance)
	if err != nil {
		h.writeError(w, r, "open account", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toAccountResponse(account))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.banking.List(r.Context())
	if err != nil {
		h.writeError(w, r, "list accounts", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAccountListResponse(accounts))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}

	account, err := h.banking.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "get account", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAccountResponse(account))
}

func (h *Handler) handleDeposit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}
	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	account, err := h.banking.Deposit(r.Context(), id, req.Amount)
	if err != nil {
		h.writeError(w, r, "deposit", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAccountResponse(account))
}

func (h *Handler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}
	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	account, err := h.banking.Withdraw(r.Context(), id, req.Amount)
	if err != nil {
		h.writeError(w, r, "withdraw", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAccountResponse(account))
}

func (h *Handler) handleTransfer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	toID, err := uuid.Parse(req.To)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid destination account ID"))
		return
	}

	if err := h.banking.Transfer(r.Context(), id, toID, req.Amount); err != nil {
		h.writeError(w, r, "transfer", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}

	if err := h.banking.Deactivate(r.Context(), id); err != nil {
		h.writeError(w, r, "deactivate", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) accountID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid account ID"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	ctx := r.Context()
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(ctx, "operation failed",
			"request_id", requestcontext.RequestID(ctx),
			"operation", operation,
			"error", err.Error(),
		)
	} else {
		h.logger.WarnContext(ctx, "operation rejected",
			"request_id", requestcontext.RequestID(ctx),
			"operation", operation,
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
