// Package models holds the banking domain entities and their business rules.
// Entities guard their own invariants; construct via the New* functions at
// trust boundaries, never by casting or assembling structs directly.
package models

import (
	"time"

	"github.com/google/uuid"

	dErrors "minibank/pkg/domain-errors"
)

// Account is a guarded mutable value: a non-negative balance plus an active
// flag, mutated only through its guarded methods. The balance invariant
// (never negative) holds at all times; a failed operation leaves the
// account untouched.
//
// Accounts are not safe for concurrent use. Callers serialize access to a
// given instance; the stores guard their own maps and rows.
type Account struct {
	id        uuid.UUID
	balance   float64
	active    bool
	createdAt time.Time
	hours     BusinessHours
}

// AccountOption customizes account construction.
type AccountOption func(*Account)

// WithBusinessHours overrides the default withdrawal window.
func WithBusinessHours(h BusinessHours) AccountOption {
	return func(a *Account) {
		a.hours = h
	}
}

// NewAccount creates an active account with the given initial balance.
//
// Errors: returns CodeValidation when the initial balance is negative.
func NewAccount(initialBalance float64, opts ...AccountOption) (*Account, error) {
	if initialBalance < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "initial balance cannot be negative")
	}
	a := &Account{
		id:        uuid.New(),
		balance:   initialBalance,
		active:    true,
		createdAt: time.Now(),
		hours:     DefaultBusinessHours,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// RestoreAccount rehydrates an account from trusted store data, bypassing
// creation validation. Stores are the only intended caller.
func RestoreAccount(id uuid.UUID, balance float64, active bool, createdAt time.Time) *Account {
	return &Account{
		id:        id,
		balance:   balance,
		active:    active,
		createdAt: createdAt,
		hours:     DefaultBusinessHours,
	}
}

func (a *Account) ID() uuid.UUID        { return a.id }
func (a *Account) Balance() float64     { return a.balance }
func (a *Account) Active() bool         { return a.active }
func (a *Account) CreatedAt() time.Time { return a.createdAt }

// Deposit adds amount to the balance. Zero is a valid no-op. Deposits carry
// no time-of-day restriction.
//
// Errors: CodeValidation when the amount is negative or the account is
// deactivated.
func (a *Account) Deposit(amount float64) error {
	if err := a.validateActive(); err != nil {
		return err
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	a.balance += amount
	return nil
}

// Withdraw removes amount from the balance. The at timestamp must fall
// inside the business-hours window; callers obtain it from the
// request-scoped clock so the rule stays deterministic under test.
//
// Errors: CodeValidation when the amount is negative, exceeds the balance,
// the account is deactivated, or at is outside the window. Each failure
// carries a distinguishing message.
func (a *Account) Withdraw(amount float64, at time.Time) error {
	if err := a.validateActive(); err != nil {
		return err
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	if err := a.validateSufficientBalance(amount); err != nil {
		return err
	}
	if err := a.hours.Allows(at); err != nil {
		return err
	}
	a.balance -= amount
	return nil
}

// TransferTo moves amount from this account to dest. The withdrawal side
// enforces the business-hours rule; a failure at any step leaves both
// balances unchanged.
func (a *Account) TransferTo(dest *Account, amount float64, at time.Time) error {
	if err := a.validateActive(); err != nil {
		return err
	}
	if dest == nil {
		return dErrors.New(dErrors.CodeValidation, "transfer destination is required")
	}
	if dest == a {
		return dErrors.New(dErrors.CodeValidation, "cannot transfer to the same account")
	}
	if !dest.active {
		return dErrors.New(dErrors.CodeValidation, "cannot transfer to a deactivated account")
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	if err := a.validateSufficientBalance(amount); err != nil {
		return err
	}
	if err := a.Withdraw(amount, at); err != nil {
		return err
	}
	return dest.Deposit(amount)
}

// Deactivate closes the account. Only an active account with zero balance
// can be deactivated.
func (a *Account) Deactivate() error {
	if !a.active {
		return dErrors.New(dErrors.CodeValidation, "account is already deactivated")
	}
	if a.balance > 0 {
		return dErrors.New(dErrors.CodeInvariantViolation, "cannot deactivate account with remaining balance")
	}
	a.active = false
	return nil
}

func (a *Account) validateActive() error {
	if !a.active {
		return dErrors.New(dErrors.CodeValidation, "account is deactivated")
	}
	return nil
}

func (a *Account) validateSufficientBalance(amount float64) error {
	if amount > a.balance {
		return dErrors.New(dErrors.CodeValidation, "insufficient balance")
	}
	return nil
}

func validateAmount(amount float64) error {
	if amount < 0 {
		return dErrors.New(dErrors.CodeValidation, "amount must be positive")
	}
	return nil
}
