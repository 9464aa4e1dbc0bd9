package models

import (
	"strings"

	dErrors "minibank/pkg/domain-errors"
)

// User owns a collection of accounts. Name and email must be non-blank;
// renaming keeps the same validation as construction.
type User struct {
	name     string
	email    string
	accounts []*Account
}

// NewUser creates a user with a validated name and email.
func NewUser(name, email string) (*User, error) {
	u := &User{}
	if err := u.Rename(name); err != nil {
		return nil, err
	}
	if err := u.ChangeEmail(email); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) Name() string  { return u.name }
func (u *User) Email() string { return u.email }

// Accounts returns the user's accounts. The slice is a copy; the accounts
// themselves are shared.
func (u *User) Accounts() []*Account {
	out := make([]*Account, len(u.accounts))
	copy(out, u.accounts)
	return out
}

// Rename updates the user's name.
//
// Errors: CodeValidation when the name is blank or whitespace-only.
func (u *User) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return dErrors.New(dErrors.CodeValidation, "name cannot be blank")
	}
	u.name = name
	return nil
}

// ChangeEmail updates the user's email.
//
// Errors: CodeValidation when the email is blank or whitespace-only.
func (u *User) ChangeEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return dErrors.New(dErrors.CodeValidation, "email cannot be blank")
	}
	u.email = email
	return nil
}

// AddAccount attaches an account to the user.
func (u *User) AddAccount(account *Account) error {
	if account == nil {
		return dErrors.New(dErrors.CodeValidation, "account is required")
	}
	u.accounts = append(u.accounts, account)
	return nil
}

// TotalBalance sums the balances of all attached accounts.
func (u *User) TotalBalance() float64 {
	var total float64
	for _, account := range u.accounts {
		total += account.Balance()
	}
	return total
}
