// Package customer defines the Customer entity: identity, address and the
// ordered list of checking accounts the customer owns.
package customer

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidCustomer is returned when mandatory customer fields are missing.
	ErrInvalidCustomer = errors.New("invalid customer")

	// ErrInvalidBirthDate is returned by ParseBirthDate for unrecognised input.
	ErrInvalidBirthDate = errors.New("invalid birth date")

	// ErrNotOwner is returned when linking an account owned by someone else.
	ErrNotOwner = errors.New("account belongs to another customer")
)

// BirthDateLayouts are tried in order when parsing a birth date.
var BirthDateLayouts = []string{"02-01-2006", "02/01/2006", "2006-01-02"}

var validate = validator.New()

// Option configures a Customer under construction.
type Option func(*Customer)

// WithClock sets the clock that stamps CreatedAt. The default is time.Now.
func WithClock(clock account.Clock) Option {
	return func(c *Customer) {
		if clock != nil {
			c.CreatedAt = clock()
		}
	}
}

// Customer is a person registered in the ledger.
//
// The customer tracks account membership only; accounts live in the ledger.
type Customer struct {
	ID           string     `json:"id" validate:"required,max=32"`
	Name         string     `json:"name" validate:"required,max=120"`
	BirthDate    *time.Time `json:"birth_date,omitempty"`
	BirthDateRaw string     `json:"birth_date_raw,omitempty"`
	Address      string     `json:"address" validate:"max=255"`
	CreatedAt    time.Time  `json:"created_at"`

	mu       sync.RWMutex
	accounts []*account.Account
}

// New validates the input and returns a Customer.
//
// An unparsable birth date is not fatal: the raw text is kept in BirthDateRaw
// and BirthDate stays nil.
func New(id, name, birthDate, address string, opts ...Option) (*Customer, error) {
	c := &Customer{
		ID:           NormalizeID(id),
		Name:         strings.TrimSpace(name),
		BirthDateRaw: strings.TrimSpace(birthDate),
		Address:      strings.TrimSpace(address),
		CreatedAt:    time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := validate.Struct(c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCustomer, err)
	}
	if c.BirthDateRaw != "" {
		if t, err := ParseBirthDate(c.BirthDateRaw); err == nil {
			c.BirthDate = &t
		}
	}
	return c, nil
}

// NormalizeID returns id the way customers are keyed: surrounding whitespace removed.
func NormalizeID(id string) string {
	return strings.TrimSpace(id)
}

// ParseBirthDate parses s with the first matching layout of BirthDateLayouts.
func ParseBirthDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range BirthDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidBirthDate, s)
}

// HasValidBirthDate reports whether the birth date was parsed.
func (c *Customer) HasValidBirthDate() bool {
	return c.BirthDate != nil
}

// AddAccount appends a to the customer's accounts.
func (c *Customer) AddAccount(a *account.Account) error {
	if a.OwnerID != c.ID {
		return ErrNotOwner
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts = append(c.accounts, a)
	return nil
}

// Accounts returns the customer's accounts in the order they were opened.
func (c *Customer) Accounts() []*account.Account {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*account.Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}
