// Package events holds the domain events published by the ledger.
package events

import (
	"time"

	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/domain/money"
	"github.com/google/uuid"
)

// Event is implemented by every domain event.
type Event interface {
	Type() string
}

// Meta carries the fields shared by all events.
type Meta struct {
	ID         uuid.UUID `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newMeta(at time.Time) Meta {
	return Meta{ID: uuid.New(), OccurredAt: at}
}

// CustomerCreated is emitted after a customer is registered.
type CustomerCreated struct {
	Meta
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
}

func (CustomerCreated) Type() string { return EventTypeCustomerCreated.String() }

// NewCustomerCreated builds a CustomerCreated event.
func NewCustomerCreated(at time.Time, customerID, name string) CustomerCreated {
	return CustomerCreated{Meta: newMeta(at), CustomerID: customerID, Name: name}
}

// AccountOpened is emitted after an account is linked to its owner.
type AccountOpened struct {
	Meta
	AccountNumber int    `json:"account_number"`
	Branch        string `json:"branch"`
	CustomerID    string `json:"customer_id"`
}

func (AccountOpened) Type() string { return EventTypeAccountOpened.String() }

// NewAccountOpened builds an AccountOpened event.
func NewAccountOpened(at time.Time, number int, branch, customerID string) AccountOpened {
	return AccountOpened{Meta: newMeta(at), AccountNumber: number, Branch: branch, CustomerID: customerID}
}

// DepositCompleted is emitted after a deposit is applied.
type DepositCompleted struct {
	Meta
	AccountNumber int         `json:"account_number"`
	RecordID      uuid.UUID   `json:"record_id"`
	Amount        money.Money `json:"amount"`
	BalanceAfter  money.Money `json:"balance_after"`
}

func (DepositCompleted) Type() string { return EventTypeDepositCompleted.String() }

// NewDepositCompleted builds a DepositCompleted event from the applied record.
func NewDepositCompleted(number int, rec account.Record) DepositCompleted {
	return DepositCompleted{
		Meta:          newMeta(rec.Timestamp),
		AccountNumber: number,
		RecordID:      rec.ID,
		Amount:        rec.Amount,
		BalanceAfter:  rec.BalanceAfter,
	}
}

// WithdrawalCompleted is emitted after a withdrawal is applied.
type WithdrawalCompleted struct {
	Meta
	AccountNumber int         `json:"account_number"`
	RecordID      uuid.UUID   `json:"record_id"`
	Amount        money.Money `json:"amount"`
	BalanceAfter  money.Money `json:"balance_after"`
}

func (WithdrawalCompleted) Type() string { return EventTypeWithdrawalCompleted.String() }

// NewWithdrawalCompleted builds a WithdrawalCompleted event from the applied record.
func NewWithdrawalCompleted(number int, rec account.Record) WithdrawalCompleted {
	return WithdrawalCompleted{
		Meta:          newMeta(rec.Timestamp),
		AccountNumber: number,
		RecordID:      rec.ID,
		Amount:        rec.Amount,
		BalanceAfter:  rec.BalanceAfter,
	}
}

// TransactionRejected is emitted when a deposit or withdrawal fails a rule.
type TransactionRejected struct {
	Meta
	AccountNumber int         `json:"account_number"`
	Operation     string      `json:"operation"`
	Amount        money.Money `json:"amount"`
	Reason        string      `json:"reason"`
}

func (TransactionRejected) Type() string { return EventTypeTransactionRejected.String() }

// NewTransactionRejected builds a TransactionRejected event.
func NewTransactionRejected(at time.Time, number int, operation string, amount money.Money, reason error) TransactionRejected {
	return TransactionRejected{
		Meta:          newMeta(at),
		AccountNumber: number,
		Operation:     operation,
		Amount:        amount,
		Reason:        reason.Error(),
	}
}
