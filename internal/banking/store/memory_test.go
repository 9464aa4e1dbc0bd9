package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"minibank/internal/banking/models"
	"minibank/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) newAccount(balance float64) *models.Account {
	account, err := models.NewAccount(balance)
	s.Require().NoError(err)
	return account
}

func (s *InMemoryStoreSuite) TestCreateAndFind() {
	s.Run("creates and finds account by ID", func() {
		account := s.newAccount(100)
		s.Require().NoError(s.store.Create(s.ctx, account))

		found, err := s.store.FindByID(s.ctx, account.ID())
		s.Require().NoError(err)
		s.Equal(account.ID(), found.ID())
		s.Equal(100.0, found.Balance())
		s.True(found.Active())
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, uuid.New())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("rejects duplicate ID", func() {
		account := s.newAccount(0)
		s.Require().NoError(s.store.Create(s.ctx, account))
		s.Require().ErrorIs(s.store.Create(s.ctx, account), sentinel.ErrConflict)
	})
}

func (s *InMemoryStoreSuite) TestUpdate() {
	s.Run("persists mutated state", func() {
		account := s.newAccount(100)
		s.Require().NoError(s.store.Create(s.ctx, account))

		s.Require().NoError(account.Deposit(50))
		s.Require().NoError(s.store.Update(s.ctx, account))

		found, err := s.store.FindByID(s.ctx, account.ID())
		s.Require().NoError(err)
		s.Equal(150.0, found.Balance())
	})

	s.Run("returns ErrNotFound for unknown account", func() {
		s.Require().ErrorIs(s.store.Update(s.ctx, s.newAccount(0)), sentinel.ErrNotFound)
	})
}

func (s *InMemoryStoreSuite) TestSnapshotIsolation() {
	account := s.newAccount(100)
	s.Require().NoError(s.store.Create(s.ctx, account))

	// Mutating the caller's copy must not leak into the store until Update.
	s.Require().NoError(account.Deposit(900))

	found, err := s.store.FindByID(s.ctx, account.ID())
	s.Require().NoError(err)
	s.Equal(100.0, found.Balance())
}

func (s *InMemoryStoreSuite) TestList() {
	s.Require().NoError(s.store.Create(s.ctx, s.newAccount(1)))
	s.Require().NoError(s.store.Create(s.ctx, s.newAccount(2)))

	accounts, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Len(accounts, 2)
}
