// Package store provides the account persistence implementations: an
// in-memory store for tests and single-process runs, and a Postgres store
// for durable deployments. Both return sentinel errors for infrastructure
// facts; services translate them into domain errors.
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"minibank/internal/banking/models"
	"minibank/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded account store. Accounts are stored and
// returned as snapshots so callers never share mutable state with the map.
type InMemory struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*models.Account
}

// NewInMemory creates an empty in-memory store.
func NewInMemory() *InMemory {
	return &InMemory{accounts: make(map[uuid.UUID]*models.Account)}
}

func snapshot(a *models.Account) *models.Account {
	return models.RestoreAccount(a.ID(), a.Balance(), a.Active(), a.CreatedAt())
}

// Create stores a new account. Returns sentinel.ErrConflict when the ID is
// already taken.
func (s *InMemory) Create(_ context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.ID()]; exists {
		return sentinel.ErrConflict
	}
	s.accounts[account.ID()] = snapshot(account)
	return nil
}

// FindByID returns a snapshot of the account, or sentinel.ErrNotFound.
func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, exists := s.accounts[id]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	return snapshot(account), nil
}

// Update replaces the stored account state. Returns sentinel.ErrNotFound
// when the account does not exist.
func (s *InMemory) Update(_ context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.ID()]; !exists {
		return sentinel.ErrNotFound
	}
	s.accounts[account.ID()] = snapshot(account)
	return nil
}

// List returns snapshots of all accounts in unspecified order.
func (s *InMemory) List(_ context.Context) ([]*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		out = append(out, snapshot(account))
	}
	return out, nil
}
