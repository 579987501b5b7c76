package account

import (
	"fmt"
	"time"

	"github.com/amirasaad/ledger/pkg/domain/money"
	"github.com/google/uuid"
)

// TimestampLayout is used for record timestamps in statements.
const TimestampLayout = "02/01/2006 15:04:05"

// Kind tags a Record as a deposit or a withdrawal.
type Kind int

// Transaction kinds.
const (
	KindDeposit Kind = iota + 1
	KindWithdrawal
)

// String returns the statement label of the kind.
func (k Kind) String() string {
	switch k {
	case KindDeposit:
		return "Deposit"
	case KindWithdrawal:
		return "Withdrawal"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText encodes the kind as its label.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Record is an immutable description of one completed deposit or withdrawal.
type Record struct {
	ID           uuid.UUID   `json:"id"`
	Kind         Kind        `json:"kind"`
	Amount       money.Money `json:"amount"`
	BalanceAfter money.Money `json:"balance_after"`
	Timestamp    time.Time   `json:"timestamp"`
}

func newRecord(kind Kind, amount, balanceAfter money.Money, at time.Time) Record {
	return Record{
		ID:           uuid.New(),
		Kind:         kind,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		Timestamp:    at,
	}
}

// Line renders the record as one statement line: label, right-aligned amount, timestamp.
func (r Record) Line() string {
	return fmt.Sprintf("%-10s  %s %12s  %s",
		r.Kind, money.Symbol, r.Amount.String(), r.Timestamp.Format(TimestampLayout))
}
