package handler

import (
	"time"

	"minibank/internal/banking/models"
)

// AccountResponse is the wire shape of an account.
type AccountResponse struct {
	ID        string    `json:"id"`
	Balance   float64   `json:"balance"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountListResponse wraps a collection of accounts.
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

func toAccountResponse(account *models.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID().String(),
		Balance:   account.Balance(),
		Active:    account.Active(),
		CreatedAt: account.CreatedAt(),
	}
}

func toAccountListResponse(accounts []*models.Account) AccountListResponse {
	out := AccountListResponse{Accounts: make([]AccountResponse, 0, len(accounts))}
	for _, account := range accounts {
		out.Accounts = append(out.Accounts, toAccountResponse(account))
	}
	return out
}
