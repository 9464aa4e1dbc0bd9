package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"minibank/internal/banking/models"
	"minibank/pkg/platform/sentinel"
	"minibank/pkg/platform/tx"
)

// Schema is the accounts table DDL. The balance check mirrors the domain
// invariant so a buggy writer cannot persist a negative balance.
const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id         UUID PRIMARY KEY,
    balance    DOUBLE PRECISION NOT NULL CHECK (balance >= 0),
    active     BOOLEAN NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
)`

// Postgres persists accounts in PostgreSQL via a pgx pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a Postgres-backed account store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// db returns the ambient transaction when one is in context, otherwise the
// pool.
func (s *Postgres) db(ctx context.Context) querier {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.pool
}

// InTx runs fn inside a single transaction. Stores called with the context
// fn receives join that transaction.
func (s *Postgres) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return pgx.BeginFunc(ctx, s.pool, func(t pgx.Tx) error {
		return fn(tx.WithTx(ctx, t))
	})
}

// Migrate creates the accounts table when missing.
func (s *Postgres) Migrate(ctx context.Context) error {
	if _, err := s.db(ctx).Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate accounts table: %w", err)
	}
	return nil
}

func (s *Postgres) Create(ctx context.Context, account *models.Account) error {
	_, err := s.db(ctx).Exec(ctx,
		`INSERT INTO accounts (id, balance, active, created_at) VALUES ($1, $2, $3, $4)`,
		account.ID(), account.Balance(), account.Active(), account.CreatedAt(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	row := s.db(ctx).QueryRow(ctx,
		`SELECT id, balance, active, created_at FROM accounts WHERE id = $1`, id)

	var (
		accountID uuid.UUID
		balance   float64
		active    bool
		createdAt time.Time
	)
	if err := row.Scan(&accountID, &balance, &active, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find account %s: %w", id, err)
	}
	return models.RestoreAccount(accountID, balance, active, createdAt), nil
}

func (s *Postgres) Update(ctx context.Context, account *models.Account) error {
	tag, err := s.db(ctx).Exec(ctx,
		`UPDATE accounts SET balance = $2, active = $3 WHERE id = $1`,
		account.ID(), account.Balance(), account.Active(),
	)
	if err != nil {
		return fmt.Errorf("update account %s: %w", account.ID(), err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) List(ctx context.Context) ([]*models.Account, error) {
	rows, err := s.db(ctx).Query(ctx,
		`SELECT id, balance, active, created_at FROM accounts ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []*models.Account
	for rows.Next() {
		var (
			accountID uuid.UUID
			balance   float64
			active    bool
			createdAt time.Time
		)
		if err := rows.Scan(&accountID, &balance, &active, &createdAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, models.RestoreAccount(accountID, balance, active, createdAt))
	}
	return out, rows.Err()
}
