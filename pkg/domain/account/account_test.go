package account_test

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	domainaccount "github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/domain/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs before any tests and applies globally for all tests in the package.
func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)

	exitVal := m.Run()
	os.Exit(exitVal)
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)}
}

func amt(s string) money.Money { return money.MustNew(s) }

func newAccount(t *testing.T, clock *fakeClock) *domainaccount.Account {
	t.Helper()
	acc, err := domainaccount.New().
		WithNumber(1).
		WithOwner("111").
		WithClock(clock.Now).
		Build()
	require.NoError(t, err)
	return acc
}

func TestNewAccount(t *testing.T) {
	t.Parallel()
	acc, err := domainaccount.New().WithNumber(7).WithOwner("111").Build()
	require.NoError(t, err)
	assert.Equal(t, 7, acc.Number)
	assert.Equal(t, domainaccount.DefaultBranch, acc.Branch)
	assert.Equal(t, "111", acc.OwnerID)
	assert.Equal(t, "0.00", acc.Balance().String())
	assert.Equal(t, domainaccount.DefaultLimits(), acc.Limits())
	assert.Zero(t, acc.History().Len())
}

func TestBuild_Invariants(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		builder *domainaccount.Builder
		wantErr error
	}{
		{"missing number", domainaccount.New().WithOwner("1"), domainaccount.ErrInvalidNumber},
		{"missing owner", domainaccount.New().WithNumber(1), domainaccount.ErrOwnerRequired},
		{"negative balance", domainaccount.New().WithNumber(1).WithOwner("1").WithBalance(amt("-1")), domainaccount.ErrNegativeBalance},
		{"zero withdrawal limit", domainaccount.New().WithNumber(1).WithOwner("1").WithLimits(domainaccount.Limits{DailyWithdrawals: 1, DailyTransactions: 1}), domainaccount.ErrInvalidLimits},
		{"zero daily withdrawals", domainaccount.New().WithNumber(1).WithOwner("1").WithLimits(domainaccount.Limits{WithdrawalAmount: amt("1"), DailyTransactions: 1}), domainaccount.ErrInvalidLimits},
		{"zero daily transactions", domainaccount.New().WithNumber(1).WithOwner("1").WithLimits(domainaccount.Limits{WithdrawalAmount: amt("1"), DailyWithdrawals: 1}), domainaccount.ErrInvalidLimits},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDeposit(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	acc := newAccount(t, clock)

	rec, err := acc.Deposit(amt("200.00"))
	require.NoError(t, err)
	assert.Equal(t, domainaccount.KindDeposit, rec.Kind)
	assert.Equal(t, "200.00", rec.Amount.String())
	assert.Equal(t, "200.00", rec.BalanceAfter.String())
	assert.Equal(t, clock.now, rec.Timestamp)
	assert.NotEmpty(t, rec.ID)

	assert.Equal(t, "200.00", acc.Balance().String())
	assert.Equal(t, 1, acc.TransactionsToday())
	assert.Equal(t, 0, acc.WithdrawalsToday())
	assert.Equal(t, 1, acc.History().Len())
}

func TestDeposit_NonPositiveIsNoop(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"0", "-0.01", "-100"} {
		t.Run(raw, func(t *testing.T) {
			acc := newAccount(t, newFakeClock())
			_, err := acc.Deposit(amt(raw))
			assert.ErrorIs(t, err, domainaccount.ErrInvalidAmount)
			assert.Equal(t, "0.00", acc.Balance().String())
			assert.Zero(t, acc.History().Len())
			assert.Zero(t, acc.TransactionsToday())
		})
	}
}

func TestDeposit_DailyLimitReached(t *testing.T) {
	t.Parallel()
	acc := newAccount(t, newFakeClock())
	for i := 0; i < domainaccount.DefaultLimits().DailyTransactions; i++ {
		_, err := acc.Deposit(amt("1"))
		require.NoError(t, err)
	}
	_, err := acc.Deposit(amt("1"))
	assert.ErrorIs(t, err, domainaccount.ErrDailyLimitReached)
	assert.Equal(t, "10.00", acc.Balance().String())
	assert.Equal(t, 10, acc.History().Len())
}

func TestDeposit_InvalidAmountWinsOverDailyLimit(t *testing.T) {
	t.Parallel()
	acc := newAccount(t, newFakeClock())
	for i := 0; i < 10; i++ {
		_, err := acc.Deposit(amt("1"))
		require.NoError(t, err)
	}
	_, err := acc.Deposit(amt("0"))
	assert.ErrorIs(t, err, domainaccount.ErrInvalidAmount)
}

func TestWithdraw(t *testing.T) {
	t.Parallel()
	acc := newAccount(t, newFakeClock())
	_, err := acc.Deposit(amt("200.00"))
	require.NoError(t, err)

	rec, err := acc.Withdraw(amt("50.00"))
	require.NoError(t, err)
	assert.Equal(t, domainaccount.KindWithdrawal, rec.Kind)
	assert.Equal(t, "150.00", rec.BalanceAfter.String())
	assert.Equal(t, "150.00", acc.Balance().String())
	assert.Equal(t, 1, acc.WithdrawalsToday())
	assert.Equal(t, 2, acc.TransactionsToday())
}

func TestWithdraw_ValidationOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(t *testing.T, acc *domainaccount.Account)
		amount  string
		wantErr error
	}{
		{
			name:    "invalid amount before daily limit",
			setup:   exhaustTransactions,
			amount:  "-5",
			wantErr: domainaccount.ErrInvalidAmount,
		},
		{
			name:    "daily limit before insufficient funds",
			setup:   exhaustTransactions,
			amount:  "100000",
			wantErr: domainaccount.ErrDailyLimitReached,
		},
		{
			name:    "insufficient funds before amount limit",
			setup:   deposit("100"),
			amount:  "600",
			wantErr: domainaccount.ErrInsufficientFunds,
		},
		{
			name:    "amount limit before withdrawal count",
			setup:   func(t *testing.T, acc *domainaccount.Account) { deposit("1000")(t, acc); withdrawTimes(3)(t, acc) },
			amount:  "500.01",
			wantErr: domainaccount.ErrAmountExceedsLimit,
		},
		{
			name:    "withdrawal count",
			setup:   func(t *testing.T, acc *domainaccount.Account) { deposit("1000")(t, acc); withdrawTimes(3)(t, acc) },
			amount:  "0.01",
			wantErr: domainaccount.ErrDailyWithdrawalCountReached,
		},
		{
			name:    "zero on empty account",
			setup:   func(*testing.T, *domainaccount.Account) {},
			amount:  "0",
			wantErr: domainaccount.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := newAccount(t, newFakeClock())
			tt.setup(t, acc)
			before := acc.Balance()
			records := acc.History().Len()
			withdrawals := acc.WithdrawalsToday()
			transactions := acc.TransactionsToday()

			_, err := acc.Withdraw(amt(tt.amount))
			assert.ErrorIs(t, err, tt.wantErr)

			assert.True(t, before.Equal(acc.Balance()), "balance must not change")
			assert.Equal(t, records, acc.History().Len())
			assert.Equal(t, withdrawals, acc.WithdrawalsToday())
			assert.Equal(t, transactions, acc.TransactionsToday())
		})
	}
}

func TestWithdraw_LimitsAreStrict(t *testing.T) {
	t.Parallel()
	acc := newAccount(t, newFakeClock())
	_, err := acc.Deposit(amt("800"))
	require.NoError(t, err)

	_, err = acc.Withdraw(amt("500.00"))
	assert.NoError(t, err, "a withdrawal equal to the limit is allowed")

	_, err = acc.Withdraw(amt("300.00"))
	assert.NoError(t, err, "a withdrawal equal to the balance is allowed")
	assert.Equal(t, "0.00", acc.Balance().String())
}

func TestDepositThenWithdrawRestoresBalance(t *testing.T) {
	t.Parallel()
	acc := newAccount(t, newFakeClock())
	_, err := acc.Deposit(amt("42.00"))
	require.NoError(t, err)
	before := acc.Balance()
	records := acc.History().Len()

	_, err = acc.Deposit(amt("123.45"))
	require.NoError(t, err)
	_, err = acc.Withdraw(amt("123.45"))
	require.NoError(t, err)

	assert.True(t, before.Equal(acc.Balance()))
	assert.Equal(t, records+2, acc.History().Len())
}

func TestDailyRollover(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	acc := newAccount(t, clock)
	deposit("1000")(t, acc)
	withdrawTimes(3)(t, acc)

	_, err := acc.Withdraw(amt("0.01"))
	require.ErrorIs(t, err, domainaccount.ErrDailyWithdrawalCountReached)

	t.Run("same day is a no-op", func(t *testing.T) {
		clock.Advance(time.Hour)
		acc.RollOver()
		acc.RollOver()
		assert.Equal(t, 3, acc.WithdrawalsToday())
		assert.Equal(t, 4, acc.TransactionsToday())
	})

	t.Run("next day resets counters", func(t *testing.T) {
		clock.Advance(24 * time.Hour)
		acc.RollOver()
		assert.Zero(t, acc.WithdrawalsToday())
		assert.Zero(t, acc.TransactionsToday())
		y, m, d := clock.now.Date()
		assert.Equal(t, time.Date(y, m, d, 0, 0, 0, 0, time.UTC), acc.LastTransactionDate())

		_, err := acc.Withdraw(amt("0.01"))
		assert.NoError(t, err)
		assert.Equal(t, 1, acc.WithdrawalsToday())
	})
}

func TestDailyRollover_UnblocksTransactions(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	acc := newAccount(t, clock)
	exhaustTransactions(t, acc)

	_, err := acc.Deposit(amt("1"))
	require.ErrorIs(t, err, domainaccount.ErrDailyLimitReached)

	clock.Advance(24 * time.Hour)
	_, err = acc.Deposit(amt("1"))
	assert.NoError(t, err)
	assert.Equal(t, 1, acc.TransactionsToday())
}

func TestStatement(t *testing.T) {
	t.Parallel()
	acc := newAccount(t, newFakeClock())

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, domainaccount.NoMovementsMessage, acc.History().Render())
		assert.Contains(t, acc.Statement(), domainaccount.NoMovementsMessage)
		assert.Contains(t, acc.Statement(), "Balance: R$ 0.00")
	})

	t.Run("one deposit", func(t *testing.T) {
		_, err := acc.Deposit(amt("100.00"))
		require.NoError(t, err)
		rendered := acc.History().Render()
		assert.Contains(t, rendered, "Deposit")
		assert.Contains(t, rendered, "100.00")
		assert.Contains(t, rendered, "15/03/2024 10:00:00")
		assert.NotContains(t, rendered, domainaccount.NoMovementsMessage)
		assert.True(t, strings.HasSuffix(acc.Statement(), "Balance: R$ 100.00"))
	})

	t.Run("chronological order", func(t *testing.T) {
		_, err := acc.Withdraw(amt("30.00"))
		require.NoError(t, err)
		lines := strings.Split(acc.History().Render(), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "Deposit"))
		assert.True(t, strings.HasPrefix(lines[1], "Withdrawal"))
	})
}

func TestSnapshot_ConsistentUnderConcurrentDeposits(t *testing.T) {
	t.Parallel()
	limits := domainaccount.DefaultLimits()
	limits.DailyTransactions = 1000
	acc, err := domainaccount.New().
		WithNumber(1).
		WithOwner("111").
		WithLimits(limits).
		WithClock(newFakeClock().Now).
		Build()
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 500 {
			_, _ = acc.Deposit(amt("1.00"))
		}
	}()

	for range 200 {
		snap := acc.Snapshot()
		records := snap.History.Records()
		assert.Equal(t, int64(len(records)*100), snap.Balance.Decimal().Shift(2).IntPart())
		assert.Equal(t, len(records), snap.TransactionsToday)
		if len(records) > 0 {
			assert.True(t, records[len(records)-1].BalanceAfter.Equal(snap.Balance))
		}
		assert.True(t, strings.HasSuffix(snap.Statement(), "Balance: "+snap.Balance.Format()))
	}
	wg.Wait()

	snap := acc.Snapshot()
	assert.Equal(t, "500.00", snap.Balance.String())
	assert.Equal(t, acc.Statement(), snap.Statement())
	assert.Equal(t, acc.Number, snap.Number)
	assert.Equal(t, "111", snap.OwnerID)
}

func TestHistory_RecordsAreCopies(t *testing.T) {
	t.Parallel()
	acc := newAccount(t, newFakeClock())
	deposit("10")(t, acc)

	records := acc.History().Records()
	records[0].Amount = amt("999")
	assert.Equal(t, "10.00", acc.History().Records()[0].Amount.String())
}

func TestKind_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Deposit", domainaccount.KindDeposit.String())
	assert.Equal(t, "Withdrawal", domainaccount.KindWithdrawal.String())
	assert.Equal(t, "Kind(9)", domainaccount.Kind(9).String())
}

func deposit(raw string) func(t *testing.T, acc *domainaccount.Account) {
	return func(t *testing.T, acc *domainaccount.Account) {
		t.Helper()
		_, err := acc.Deposit(amt(raw))
		require.NoError(t, err)
	}
}

func withdrawTimes(n int) func(t *testing.T, acc *domainaccount.Account) {
	return func(t *testing.T, acc *domainaccount.Account) {
		t.Helper()
		for i := 0; i < n; i++ {
			_, err := acc.Withdraw(amt("1"))
			require.NoError(t, err)
		}
	}
}

func exhaustTransactions(t *testing.T, acc *domainaccount.Account) {
	t.Helper()
	for i := 0; i < acc.Limits().DailyTransactions; i++ {
		_, err := acc.Deposit(amt("1"))
		require.NoError(t, err)
	}
}
