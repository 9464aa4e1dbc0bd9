package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"minibank/internal/banking/models"
	"minibank/internal/banking/service"
	"minibank/internal/banking/service/mocks"
	dErrors "minibank/pkg/domain-errors"
	"minibank/pkg/platform/sentinel"
	"minibank/pkg/requestcontext"
	"minibank/pkg/testutil"
)

var (
	insideHours = testutil.BusinessHoursTime
	afterHours  = testutil.AfterHoursTime
)

func newService(t *testing.T) (*service.Service, *mocks.MockAccountStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockAccountStore(ctrl)
	return service.New(store), store
}

func storedAccount(t *testing.T, balance float64) *models.Account {
	t.Helper()
	account, err := models.NewAccount(balance)
	require.NoError(t, err)
	return account
}

func TestOpen(t *testing.T) {
	t.Run("creates account with initial balance", func(t *testing.T) {
		svc, store := newService(t)
		store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		account, err := svc.Open(context.Background(), 100)
		require.NoError(t, err)
		assert.Equal(t, 100.0, account.Balance())
	})

	t.Run("rejects negative initial balance without touching the store", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Open(context.Background(), -1)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.ErrorContains(t, err, "initial balance cannot be negative")
	})

	t.Run("translates store failure to internal error", func(t *testing.T) {
		svc, store := newService(t)
		store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := svc.Open(context.Background(), 0)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func TestGet(t *testing.T) {
	t.Run("translates ErrNotFound", func(t *testing.T) {
		svc, store := newService(t)
		id := uuid.New()
		store.EXPECT().FindByID(gomock.Any(), id).Return(nil, sentinel.ErrNotFound)

		_, err := svc.Get(context.Background(), id)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
		assert.ErrorContains(t, err, "account not found")
	})

	t.Run("returns the stored account", func(t *testing.T) {
		svc, store := newService(t)
		account := storedAccount(t, 25)
		store.EXPECT().FindByID(gomock.Any(), account.ID()).Return(account, nil)

		got, err := svc.Get(context.Background(), account.ID())
		require.NoError(t, err)
		assert.Equal(t, 25.0, got.Balance())
	})
}

func TestDeposit(t *testing.T) {
	t.Run("updates the balance", func(t *testing.T) {
		svc, store := newService(t)
		account := storedAccount(t, 0)
		store.EXPECT().FindByID(gomock.Any(), account.ID()).Return(account, nil)
		store.EXPECT().Update(gomock.Any(), account).Return(nil)

		got, err := svc.Deposit(context.Background(), account.ID(), 50.50)
		require.NoError(t, err)
		assert.Equal(t, 50.50, got.Balance())
	})

	t.Run("negative amount is rejected without update", func(t *testing.T) {
		svc, store := newService(t)
		account := storedAccount(t, 100)
		store.EXPECT().FindByID(gomock.Any(), account.ID()).Return(account, nil)

		_, err := svc.Deposit(context.Background(), account.ID(), -50)
		require.Error(t, err)
		assert.ErrorContains(t, err, "amount must be positive")
	})
}

func TestWithdraw(t *testing.T) {
	t.Run("inside business hours", func(t *testing.T) {
		svc, store := newService(t)
		account := storedAccount(t, 100)
		store.EXPECT().FindByID(gomock.Any(), account.ID()).Return(account, nil)
		store.EXPECT().Update(gomock.Any(), account).Return(nil)

		ctx := requestcontext.WithTime(context.Background(), insideHours)
		got, err := svc.Withdraw(ctx, account.ID(), 50)
		require.NoError(t, err)
		assert.Equal(t, 50.0, got.Balance())
	})

	t.Run("outside business hours is rejected without update", func(t *testing.T) {
		svc, store := newService(t)
		account := storedAccount(t, 100)
		store.EXPECT().FindByID(gomock.Any(), account.ID()).Return(account, nil)

		ctx := testutil.ContextWithTime(t, "2025-07-08T20:00:00Z")
		_, err := svc.Withdraw(ctx, account.ID(), 50)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.ErrorContains(t, err, "business hours")
		assert.Equal(t, 100.0, account.Balance())
	})

	t.Run("weekend is rejected without update", func(t *testing.T) {
		svc, store := newService(t)
		account := storedAccount(t, 100)
		store.EXPECT().FindByID(gomock.Any(), account.ID()).Return(account, nil)

		ctx := requestcontext.WithTime(context.Background(), testutil.WeekendTime)
		_, err := svc.Withdraw(ctx, account.ID(), 50)
		require.Error(t, err)
		assert.ErrorContains(t, err, "business days")
		assert.Equal(t, 100.0, account.Balance())
	})

	t.Run("insufficient balance", func(t *testing.T) {
		svc, store := newService(t)
		account := storedAccount(t, 50.50)
		store.EXPECT().FindByID(gomock.Any(), account.ID()).Return(account, nil)

		ctx := requestcontext.WithTime(context.Background(), insideHours)
		_, err := svc.Withdraw(ctx, account.ID(), 100)
		require.Error(t, err)
		assert.ErrorContains(t, err, "insufficient")
		assert.Equal(t, 50.50, account.Balance())
	})
}

func TestTransfer(t *testing.T) {
	t.Run("moves funds and saves both accounts", func(t *testing.T) {
		svc, store := newService(t)
		from := storedAccount(t, 100)
		to := storedAccount(t, 0)
		store.EXPECT().FindByID(gomock.Any(), from.ID()).Return(from, nil)
		store.EXPECT().FindByID(gomock.Any(), to.ID()).Return(to, nil)
		store.EXPECT().Update(gomock.Any(), from).Return(nil)
		store.EXPECT().Update(gomock.Any(), to).Return(nil)

		ctx := requestcontext.WithTime(context.Background(), insideHours)
		require.NoError(t, svc.Transfer(ctx, from.ID(), to.ID(), 50))
		assert.Equal(t, 50.0, from.Balance())
		assert.Equal(t, 50.0, to.Balance())
	})

	t.Run("rejects same source and destination before loading", func(t *testing.T) {
		svc, _ := newService(t)
		id := uuid.New()

		err := svc.Transfer(context.Background(), id, id, 50)
		require.Error(t, err)
		assert.ErrorContains(t, err, "same account")
	})

	t.Run("rejects transfer outside business hours", func(t *testing.T) {
		svc, store := newService(t)
		from := storedAccount(t, 100)
		to := storedAccount(t, 0)
		store.EXPECT().FindByID(gomock.Any(), from.ID()).Return(from, nil)
		store.EXPECT().FindByID(gomock.Any(), to.ID()).Return(to, nil)

		ctx := requestcontext.WithTime(context.Background(), afterHours)
		err := svc.Transfer(ctx, from.ID(), to.ID(), 50)
		require.Error(t, err)
		assert.ErrorContains(t, err, "business hours")
		assert.Equal(t, 100.0, from.Balance())
		assert.Equal(t, 0.0, to.Balance())
	})
}

func TestDeactivate(t *testing.T) {
	t.Run("deactivates empty account", func(t *testing.T) {
		svc, store := newService(t)
		account := storedAccount(t, 0)
		store.EXPECT().FindByID(gomock.Any(), account.ID()).Return(account, nil)
		store.EXPECT().Update(gomock.Any(), account).Return(nil)

		require.NoError(t, svc.Deactivate(context.Background(), account.ID()))
		assert.False(t, account.Active())
	})

	t.Run("rejects deactivation with remaining balance", func(t *testing.T) {
		svc, store := newService(t)
		account := storedAccount(t, 10)
		store.EXPECT().FindByID(gomock.Any(), account.ID()).Return(account, nil)

		err := svc.Deactivate(context.Background(), account.ID())
		require.Error(t, err)
		assert.ErrorContains(t, err, "remaining balance")
	})
}
