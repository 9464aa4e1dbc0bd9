// Package service orchestrates account operations over a store, translating
// infrastructure sentinels into domain errors and recording metrics.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"minibank/internal/banking/models"
	"minibank/internal/platform/metrics"
	dErrors "minibank/pkg/domain-errors"
	"minibank/pkg/platform/sentinel"
	"minibank/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks AccountStore

// AccountStore is the persistence capability the service needs.
type AccountStore interface {
	Create(ctx context.Context, account *models.Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	List(ctx context.Context) ([]*models.Account, error)
}

// txRunner is implemented by stores that can run a function atomically.
// Transfer uses it when available so both sides commit together.
type txRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service carries the banking use cases. Time-dependent rules read the
// request-scoped clock via requestcontext.Now, so tests pin the clock by
// injecting a context time.
type Service struct {
	accounts AccountStore
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// Option customizes Service construction.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(accounts AccountStore, opts ...Option) *Service {
	s := &Service{
		accounts: accounts,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a new account with the given initial balance.
func (s *Service) Open(ctx context.Context, initialBalance float64) (*models.Account, error) {
	account, err := models.NewAccount(initialBalance)
	if err != nil {
		s.metrics.IncrementRejected("open")
		return nil, err
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "account already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create account")
	}

	s.logger.InfoContext(ctx, "account opened",
		"request_id", requestcontext.RequestID(ctx),
		"account_id", account.ID(),
	)
	if s.metrics != nil {
		s.metrics.AccountsOpened.Inc()
	}
	return account, nil
}

// Get fetches a single account.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	return s.load(ctx, id)
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]*models.Account, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list accounts")
	}
	return accounts, nil
}

// Deposit adds amount to the account balance.
func (s *Service) Deposit(ctx context.Context, id uuid.UUID, amount float64) (*models.Account, error) {
	account, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := account.Deposit(amount); err != nil {
		s.metrics.IncrementRejected("deposit")
		return nil, err
	}

	if err := s.save(ctx, account); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.Deposits.Inc()
	}
	return account, nil
}

// Withdraw removes amount from the account balance. The business-hours rule
// is evaluated against the request-scoped clock.
func (s *Service) Withdraw(ctx context.Context, id uuid.UUID, amount float64) (*models.Account, error) {
	account, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := account.Withdraw(amount, requestcontext.Now(ctx)); err != nil {
		s.metrics.IncrementRejected("withdraw")
		return nil, err
	}

	if err := s.save(ctx, account); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.Withdrawals.Inc()
	}
	return account, nil
}

// Transfer moves amount between two accounts.
func (s *Service) Transfer(ctx context.Context, fromID, toID uuid.UUID, amount float64) error {
	if fromID == toID {
		s.metrics.IncrementRejected("transfer")
		return dErrors.New(dErrors.CodeValidation, "cannot transfer to the same account")
	}

	from, err := s.load(ctx, fromID)
	if err != nil {
		return err
	}
	to, err := s.load(ctx, toID)
	if err != nil {
		return err
	}

	if err := from.TransferTo(to, amount, requestcontext.Now(ctx)); err != nil {
		s.metrics.IncrementRejected("transfer")
		return err
	}

	saveBoth := func(ctx context.Context) error {
		if err := s.save(ctx, from); err != nil {
			return err
		}
		return s.save(ctx, to)
	}
	if runner, ok := s.accounts.(txRunner); ok {
		if err := runner.InTx(ctx, saveBoth); err != nil {
			return err
		}
	} else if err := saveBoth(ctx); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "transfer completed",
		"request_id", requestcontext.RequestID(ctx),
		"from", fromID,
		"to", toID,
	)
	if s.metrics != nil {
		s.metrics.Transfers.Inc()
	}
	return nil
}

// Deactivate closes an account.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	account, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err := account.Deactivate(); err != nil {
		s.metrics.IncrementRejected("deactivate")
		return err
	}

	return s.save(ctx, account)
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "account not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load account")
	}
	return account, nil
}

func (s *Service) save(ctx context.Context, account *models.Account) error {
	if err := s.accounts.Update(ctx, account); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "account not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save account")
	}
	return nil
}
