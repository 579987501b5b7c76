package account

import (
	"errors"
	"sync"
	"time"

	"github.com/amirasaad/ledger/pkg/domain/money"
)

var (
	// ErrInvalidAmount is returned when a deposit or withdrawal amount is not positive.
	ErrInvalidAmount = errors.New("invalid amount: the value must be greater than zero")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the current balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAmountExceedsLimit is returned when a withdrawal exceeds the per-withdrawal limit.
	ErrAmountExceedsLimit = errors.New("withdrawal amount exceeds the limit")

	// ErrDailyWithdrawalCountReached is returned when the daily number of withdrawals is exhausted.
	ErrDailyWithdrawalCountReached = errors.New("maximum number of withdrawals for today reached")

	// ErrDailyLimitReached is returned when the daily number of transactions is exhausted.
	ErrDailyLimitReached = errors.New("maximum number of transactions for today reached")

	// ErrInvalidLimits is returned when an account is built with unusable limits.
	ErrInvalidLimits = errors.New("invalid account limits")

	// ErrInvalidNumber is returned when an account number is not positive.
	ErrInvalidNumber = errors.New("account number must be positive")

	// ErrOwnerRequired is returned when an account is built without an owner.
	ErrOwnerRequired = errors.New("account owner is required")

	// ErrNegativeBalance is returned when an account is hydrated with a negative balance.
	ErrNegativeBalance = errors.New("balance cannot be negative")
)

// DefaultBranch is the branch shared by every account of the ledger.
const DefaultBranch = "0001"

// Clock returns the current time. Accounts use it for timestamps and for the
// daily counter rollover.
type Clock func() time.Time

// Account is a checking account owned by exactly one customer.
// It acts as an aggregate root: balance, daily counters and history only change
// together, under the account's mutex.
//
// Invariants:
//   - The balance is never negative.
//   - Every successful deposit or withdrawal appends exactly one Record.
//   - Failed operations leave balance, history and counters unchanged.
type Account struct {
	Number    int
	Branch    string
	OwnerID   string
	CreatedAt time.Time

	mu                sync.Mutex
	balance           money.Money
	limits            Limits
	withdrawalsToday  int
	transactionsToday int
	lastTxDate        time.Time
	history           History
	clock             Clock
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	number  int
	branch  string
	ownerID string
	balance money.Money
	limits  Limits
	clock   Clock
}

// New creates a Builder with the default branch, limits and the system clock.
func New() *Builder {
	return &Builder{
		branch: DefaultBranch,
		limits: DefaultLimits(),
		clock:  time.Now,
	}
}

// WithNumber sets the account number. This is a mandatory field.
func (b *Builder) WithNumber(number int) *Builder {
	b.number = number
	return b
}

// WithBranch sets the branch code.
func (b *Builder) WithBranch(branch string) *Builder {
	if branch != "" {
		b.branch = branch
	}
	return b
}

// WithOwner sets the national identifier of the owning customer. This is a mandatory field.
func (b *Builder) WithOwner(ownerID string) *Builder {
	b.ownerID = ownerID
	return b
}

// WithBalance sets the opening balance. Only meant for test setup.
func (b *Builder) WithBalance(balance money.Money) *Builder {
	b.balance = balance
	return b
}

// WithLimits overrides the default limits.
func (b *Builder) WithLimits(limits Limits) *Builder {
	b.limits = limits
	return b
}

// WithClock replaces the system clock.
func (b *Builder) WithClock(clock Clock) *Builder {
	if clock != nil {
		b.clock = clock
	}
	return b
}

// Build validates the collected fields and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if b.number <= 0 {
		return nil, ErrInvalidNumber
	}
	if b.ownerID == "" {
		return nil, ErrOwnerRequired
	}
	if b.balance.IsNegative() {
		return nil, ErrNegativeBalance
	}
	if err := b.limits.Validate(); err != nil {
		return nil, err
	}
	now := b.clock()
	return &Account{
		Number:     b.number,
		Branch:     b.branch,
		OwnerID:    b.ownerID,
		CreatedAt:  now,
		balance:    b.balance,
		limits:     b.limits,
		lastTxDate: dateOf(now),
		clock:      b.clock,
	}, nil
}

// Deposit adds amount to the balance and records it.
//
// Checks, first match wins:
//   - ErrInvalidAmount when amount <= 0
//   - ErrDailyLimitReached when today's transaction count is exhausted
func (a *Account) Deposit(amount money.Money) (Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock()
	a.rollover(now)

	if !amount.IsPositive() {
		return Record{}, ErrInvalidAmount
	}
	if a.transactionsToday >= a.limits.DailyTransactions {
		return Record{}, ErrDailyLimitReached
	}

	a.balance = a.balance.Add(amount)
	rec := newRecord(KindDeposit, amount, a.balance, now)
	a.history.add(rec)
	a.transactionsToday++
	return rec, nil
}

// Withdraw removes amount from the balance and records it.
//
// Checks, first match wins; every limit is exceeded only by a strictly greater value:
//   - ErrInvalidAmount when amount <= 0
//   - ErrDailyLimitReached when today's transaction count is exhausted
//   - ErrInsufficientFunds when amount > balance
//   - ErrAmountExceedsLimit when amount > the per-withdrawal limit
//   - ErrDailyWithdrawalCountReached when today's withdrawal count is exhausted
func (a *Account) Withdraw(amount money.Money) (Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock()
	a.rollover(now)

	switch {
	case !amount.IsPositive():
		return Record{}, ErrInvalidAmount
	case a.transactionsToday >= a.limits.DailyTransactions:
		return Record{}, ErrDailyLimitReached
	case amount.GreaterThan(a.balance):
		return Record{}, ErrInsufficientFunds
	case amount.GreaterThan(a.limits.WithdrawalAmount):
		return Record{}, ErrAmountExceedsLimit
	case a.withdrawalsToday >= a.limits.DailyWithdrawals:
		return Record{}, ErrDailyWithdrawalCountReached
	}

	a.balance = a.balance.Sub(amount)
	rec := newRecord(KindWithdrawal, amount, a.balance, now)
	a.history.add(rec)
	a.withdrawalsToday++
	a.transactionsToday++
	return rec, nil
}

// RollOver resets the daily counters if the clock moved to another day.
// Deposit and Withdraw call it implicitly.
func (a *Account) RollOver() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rollover(a.clock())
}

// rollover must be called with a.mu held.
func (a *Account) rollover(now time.Time) {
	today := dateOf(now)
	if today.Equal(a.lastTxDate) {
		return
	}
	a.withdrawalsToday = 0
	a.transactionsToday = 0
	a.lastTxDate = today
}

// Balance returns the current balance.
func (a *Account) Balance() money.Money {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Limits returns the account's limit configuration.
func (a *Account) Limits() Limits {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.limits
}

// WithdrawalsToday returns the number of withdrawals counted for the last active day.
func (a *Account) WithdrawalsToday() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.withdrawalsToday
}

// TransactionsToday returns the number of transactions counted for the last active day.
func (a *Account) TransactionsToday() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.transactionsToday
}

// LastTransactionDate returns the day the counters belong to.
func (a *Account) LastTransactionDate() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastTxDate
}

// History returns a copy of the transaction history.
func (a *Account) History() History {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.history.clone()
}

// Statement renders the history followed by the current balance.
func (a *Account) Statement() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return renderStatement(a.history, a.balance)
}

// Snapshot is a point-in-time copy of an account's mutable state.
type Snapshot struct {
	Number              int
	Branch              string
	OwnerID             string
	CreatedAt           time.Time
	Balance             money.Money
	Limits              Limits
	WithdrawalsToday    int
	TransactionsToday   int
	LastTransactionDate time.Time
	History             History
}

// Statement renders the snapshot the same way Account.Statement does.
func (s Snapshot) Statement() string {
	return renderStatement(s.History, s.Balance)
}

// Snapshot copies balance, counters and history under a single lock, so the
// parts always agree with each other.
func (a *Account) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Snapshot{
		Number:              a.Number,
		Branch:              a.Branch,
		OwnerID:             a.OwnerID,
		CreatedAt:           a.CreatedAt,
		Balance:             a.balance,
		Limits:              a.limits,
		WithdrawalsToday:    a.withdrawalsToday,
		TransactionsToday:   a.transactionsToday,
		LastTransactionDate: a.lastTxDate,
		History:             a.history.clone(),
	}
}

func renderStatement(h History, balance money.Money) string {
	return h.Render() + "\n\n" + BalanceLabel + " " + balance.Format()
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
