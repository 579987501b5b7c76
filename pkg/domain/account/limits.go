package account

import (
	"fmt"

	"github.com/amirasaad/ledger/pkg/domain/money"
)

// Limits is the data-driven rule set of a checking account.
type Limits struct {
	// WithdrawalAmount caps a single withdrawal.
	WithdrawalAmount money.Money
	// DailyWithdrawals caps the number of withdrawals per calendar day.
	DailyWithdrawals int
	// DailyTransactions caps deposits plus withdrawals per calendar day.
	DailyTransactions int
}

// DefaultLimits returns 500.00 per withdrawal, 3 withdrawals and 10 transactions a day.
func DefaultLimits() Limits {
	return Limits{
		WithdrawalAmount:  money.FromCents(50000),
		DailyWithdrawals:  3,
		DailyTransactions: 10,
	}
}

// Validate rejects limits that would make an account unusable.
func (l Limits) Validate() error {
	if !l.WithdrawalAmount.IsPositive() {
		return fmt.Errorf("%w: withdrawal amount must be positive", ErrInvalidLimits)
	}
	if l.DailyWithdrawals <= 0 {
		return fmt.Errorf("%w: daily withdrawals must be positive", ErrInvalidLimits)
	}
	if l.DailyTransactions <= 0 {
		return fmt.Errorf("%w: daily transactions must be positive", ErrInvalidLimits)
	}
	return nil
}
