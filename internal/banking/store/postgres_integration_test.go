//go:build integration

package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"minibank/internal/banking/models"
	"minibank/internal/banking/store"
	"minibank/pkg/platform/sentinel"
	"minibank/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.pg.Pool)
	s.Require().NoError(s.store.Migrate(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(context.Background(), "accounts"))
}

func (s *PostgresStoreSuite) newAccount(balance float64) *models.Account {
	account, err := models.NewAccount(balance)
	s.Require().NoError(err)
	return account
}

func (s *PostgresStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	account := s.newAccount(100)

	s.Require().NoError(s.store.Create(ctx, account))

	found, err := s.store.FindByID(ctx, account.ID())
	s.Require().NoError(err)
	s.Equal(account.ID(), found.ID())
	s.Equal(100.0, found.Balance())
	s.True(found.Active())
	s.WithinDuration(account.CreatedAt(), found.CreatedAt(), 0)
}

func (s *PostgresStoreSuite) TestFindMissing() {
	_, err := s.store.FindByID(context.Background(), uuid.New())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestDuplicateCreate() {
	ctx := context.Background()
	account := s.newAccount(0)

	s.Require().NoError(s.store.Create(ctx, account))
	s.Require().ErrorIs(s.store.Create(ctx, account), sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestUpdatePersistsBalanceAndState() {
	ctx := context.Background()
	account := s.newAccount(100)
	s.Require().NoError(s.store.Create(ctx, account))

	s.Require().NoError(account.Deposit(50.50))
	s.Require().NoError(s.store.Update(ctx, account))

	found, err := s.store.FindByID(ctx, account.ID())
	s.Require().NoError(err)
	s.Equal(150.50, found.Balance())
}

func (s *PostgresStoreSuite) TestUpdateMissing() {
	err := s.store.Update(context.Background(), s.newAccount(0))
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestInTxRollsBackOnError() {
	ctx := context.Background()
	account := s.newAccount(100)
	s.Require().NoError(s.store.Create(ctx, account))

	err := s.store.InTx(ctx, func(ctx context.Context) error {
		s.Require().NoError(account.Deposit(50))
		s.Require().NoError(s.store.Update(ctx, account))
		return errors.New("boom")
	})
	s.Require().Error(err)

	found, err := s.store.FindByID(ctx, account.ID())
	s.Require().NoError(err)
	s.Equal(100.0, found.Balance())
}

func (s *PostgresStoreSuite) TestList() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.newAccount(1)))
	s.Require().NoError(s.store.Create(ctx, s.newAccount(2)))

	accounts, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Len(accounts, 2)
}
