// Package ledger is the in-memory registry of customers and checking accounts.
// It assigns account numbers, looks entities up and publishes a domain event
// for every change it makes.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/domain/customer"
	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/amirasaad/ledger/pkg/domain/money"
	"github.com/amirasaad/ledger/pkg/eventbus"
)

var (
	// ErrCustomerNotFound is returned when no customer has the given id.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrAccountNotFound is returned when no account has the given number.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateID is returned when a customer id is already registered.
	ErrDuplicateID = errors.New("a customer with this id already exists")
)

// Ledger holds every customer and account of one process.
type Ledger struct {
	mu         sync.RWMutex
	customers  map[string]*customer.Customer
	accounts   map[int]*account.Account
	custOrder  []*customer.Customer
	acctOrder  []*account.Account
	nextNumber int

	branch string
	limits account.Limits
	clock  account.Clock
	bus    eventbus.Bus
	logger *slog.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger. slog.Default is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithBus publishes ledger events to bus.
func WithBus(bus eventbus.Bus) Option {
	return func(l *Ledger) { l.bus = bus }
}

// WithClock replaces the system clock for every customer and account the ledger creates.
func WithClock(clock account.Clock) Option {
	return func(l *Ledger) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// WithLimits sets the limits given to newly opened accounts.
func WithLimits(limits account.Limits) Option {
	return func(l *Ledger) { l.limits = limits }
}

// WithBranch sets the branch shared by all accounts.
func WithBranch(branch string) Option {
	return func(l *Ledger) {
		if branch != "" {
			l.branch = branch
		}
	}
}

// New returns an empty Ledger whose first account number is 1.
func New(opts ...Option) (*Ledger, error) {
	l := &Ledger{
		customers:  make(map[string]*customer.Customer),
		accounts:   make(map[int]*account.Account),
		nextNumber: 1,
		branch:     account.DefaultBranch,
		limits:     account.DefaultLimits(),
		clock:      time.Now,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if err := l.limits.Validate(); err != nil {
		return nil, err
	}
	l.logger = l.logger.With("component", "ledger", "branch", l.branch)
	return l, nil
}

// Branch returns the branch code of the ledger.
func (l *Ledger) Branch() string { return l.branch }

// FindCustomer looks a customer up by id.
func (l *Ledger) FindCustomer(id string) (*customer.Customer, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.customers[customer.NormalizeID(id)]
	return c, ok
}

// FindAccount looks an account up by number.
func (l *Ledger) FindAccount(number int) (*account.Account, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	a, ok := l.accounts[number]
	return a, ok
}

// CreateCustomer registers a new customer.
func (l *Ledger) CreateCustomer(ctx context.Context, id, name, birthDate, address string) (*customer.Customer, error) {
	logger := l.logger.With("customer_id", id)
	c, err := customer.New(id, name, birthDate, address, customer.WithClock(l.clock))
	if err != nil {
		logger.Warn("CreateCustomer failed: validation", "error", err)
		return nil, err
	}
	if c.BirthDateRaw != "" && !c.HasValidBirthDate() {
		logger.Warn("birth date not recognised, keeping raw value", "birth_date", c.BirthDateRaw)
	}

	l.mu.Lock()
	if _, exists := l.customers[c.ID]; exists {
		l.mu.Unlock()
		logger.Warn("CreateCustomer failed: duplicate id")
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
	}
	l.customers[c.ID] = c
	l.custOrder = append(l.custOrder, c)
	l.mu.Unlock()

	logger.Info("customer created")
	l.emit(ctx, events.NewCustomerCreated(l.clock(), c.ID, c.Name))
	return c, nil
}

// CreateAccount opens the next numbered account for the customer.
func (l *Ledger) CreateAccount(ctx context.Context, customerID string) (*account.Account, error) {
	customerID = customer.NormalizeID(customerID)
	logger := l.logger.With("customer_id", customerID)

	l.mu.Lock()
	c, ok := l.customers[customerID]
	if !ok {
		l.mu.Unlock()
		logger.Warn("CreateAccount failed: customer not found")
		return nil, fmt.Errorf("%w: %s", ErrCustomerNotFound, customerID)
	}
	a, err := account.New().
		WithNumber(l.nextNumber).
		WithBranch(l.branch).
		WithOwner(c.ID).
		WithLimits(l.limits).
		WithClock(l.clock).
		Build()
	if err != nil {
		l.mu.Unlock()
		logger.Error("CreateAccount failed: domain error", "error", err)
		return nil, err
	}
	if err := c.AddAccount(a); err != nil {
		l.mu.Unlock()
		return nil, err
	}
	l.accounts[a.Number] = a
	l.acctOrder = append(l.acctOrder, a)
	l.nextNumber++
	l.mu.Unlock()

	logger.Info("account opened", "account_number", a.Number)
	l.emit(ctx, events.NewAccountOpened(a.CreatedAt, a.Number, a.Branch, c.ID))
	return a, nil
}

// Deposit credits amount to the account with the given number.
func (l *Ledger) Deposit(ctx context.Context, number int, amount money.Money) (account.Record, error) {
	logger := l.logger.With("account_number", number, "amount", amount.String())
	a, ok := l.FindAccount(number)
	if !ok {
		return account.Record{}, fmt.Errorf("%w: %d", ErrAccountNotFound, number)
	}
	rec, err := a.Deposit(amount)
	if err != nil {
		logger.Info("deposit rejected", "error", err)
		l.emit(ctx, events.NewTransactionRejected(l.clock(), number, "deposit", amount, err))
		return account.Record{}, err
	}
	logger.Info("deposit completed", "balance", rec.BalanceAfter.String())
	l.emit(ctx, events.NewDepositCompleted(number, rec))
	return rec, nil
}

// Withdraw debits amount from the account with the given number.
func (l *Ledger) Withdraw(ctx context.Context, number int, amount money.Money) (account.Record, error) {
	logger := l.logger.With("account_number", number, "amount", amount.String())
	a, ok := l.FindAccount(number)
	if !ok {
		return account.Record{}, fmt.Errorf("%w: %d", ErrAccountNotFound, number)
	}
	rec, err := a.Withdraw(amount)
	if err != nil {
		logger.Info("withdrawal rejected", "error", err)
		l.emit(ctx, events.NewTransactionRejected(l.clock(), number, "withdraw", amount, err))
		return account.Record{}, err
	}
	logger.Info("withdrawal completed", "balance", rec.BalanceAfter.String())
	l.emit(ctx, events.NewWithdrawalCompleted(number, rec))
	return rec, nil
}

// Statement renders the statement of the account with the given number.
func (l *Ledger) Statement(number int) (string, error) {
	a, ok := l.FindAccount(number)
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrAccountNotFound, number)
	}
	return a.Statement(), nil
}

// Accounts returns every account in the order it was opened.
func (l *Ledger) Accounts() []*account.Account {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*account.Account, len(l.acctOrder))
	copy(out, l.acctOrder)
	return out
}

// Customers returns every customer in the order it was created.
func (l *Ledger) Customers() []*customer.Customer {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*customer.Customer, len(l.custOrder))
	copy(out, l.custOrder)
	return out
}

func (l *Ledger) emit(ctx context.Context, e events.Event) {
	if l.bus == nil {
		return
	}
	if err := l.bus.Emit(ctx, e); err != nil {
		l.logger.Error("failed to emit event", "type", e.Type(), "error", err)
	}
}
