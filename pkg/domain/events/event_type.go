package events

// EventType represents the type of an event in the system.
type EventType string

// Event type constants
const (
	EventTypeCustomerCreated     EventType = "Customer.Created"
	EventTypeAccountOpened       EventType = "Account.Opened"
	EventTypeDepositCompleted    EventType = "Deposit.Completed"
	EventTypeWithdrawalCompleted EventType = "Withdrawal.Completed"
	EventTypeTransactionRejected EventType = "Transaction.Rejected"
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	return string(et)
}

// All lists every event type the ledger emits.
func All() []EventType {
	return []EventType{
		EventTypeCustomerCreated,
		EventTypeAccountOpened,
		EventTypeDepositCompleted,
		EventTypeWithdrawalCompleted,
		EventTypeTransactionRejected,
	}
}
