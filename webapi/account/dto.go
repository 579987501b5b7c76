package account

import (
	"time"

	domainaccount "github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/domain/money"
)

//revive:disable

// AmountRequest is the body of deposit and withdrawal requests.
type AmountRequest struct {
	Amount *money.Money `json:"amount" swaggertype:"number" example:"150.00" validate:"required"`
}

// LimitsDTO is the API representation of account limits.
type LimitsDTO struct {
	WithdrawalAmount  money.Money `json:"withdrawal_amount" swaggertype:"number"`
	DailyWithdrawals  int         `json:"daily_withdrawals"`
	DailyTransactions int         `json:"daily_transactions"`
}

// AccountDTO is the API response representation of an account.
type AccountDTO struct {
	Number            int         `json:"number"`
	Branch            string      `json:"branch"`
	OwnerID           string      `json:"owner_id"`
	Balance           money.Money `json:"balance" swaggertype:"number"`
	WithdrawalsToday  int         `json:"withdrawals_today"`
	TransactionsToday int         `json:"transactions_today"`
	Limits            LimitsDTO   `json:"limits"`
	CreatedAt         time.Time   `json:"created_at"`
}

// RecordDTO is the API response representation of one history record.
type RecordDTO struct {
	ID           string      `json:"id"`
	Kind         string      `json:"kind"`
	Amount       money.Money `json:"amount" swaggertype:"number"`
	BalanceAfter money.Money `json:"balance_after" swaggertype:"number"`
	Timestamp    time.Time   `json:"timestamp"`
}

// StatementDTO is the API response of the statement endpoint.
type StatementDTO struct {
	Lines   []string    `json:"lines"`
	Records []RecordDTO `json:"records"`
	Balance money.Money `json:"balance" swaggertype:"number"`
	Text    string      `json:"text"`
}

//revive:enable

// ToAccountDTO maps a domain account to its API view.
func ToAccountDTO(a *domainaccount.Account) AccountDTO {
	snap := a.Snapshot()
	return AccountDTO{
		Number:            snap.Number,
		Branch:            snap.Branch,
		OwnerID:           snap.OwnerID,
		Balance:           snap.Balance,
		WithdrawalsToday:  snap.WithdrawalsToday,
		TransactionsToday: snap.TransactionsToday,
		Limits: LimitsDTO{
			WithdrawalAmount:  snap.Limits.WithdrawalAmount,
			DailyWithdrawals:  snap.Limits.DailyWithdrawals,
			DailyTransactions: snap.Limits.DailyTransactions,
		},
		CreatedAt: snap.CreatedAt,
	}
}

// ToRecordDTO maps a history record to its API view.
func ToRecordDTO(r domainaccount.Record) RecordDTO {
	return RecordDTO{
		ID:           r.ID.String(),
		Kind:         r.Kind.String(),
		Amount:       r.Amount,
		BalanceAfter: r.BalanceAfter,
		Timestamp:    r.Timestamp,
	}
}

// ToStatementDTO builds the statement view of an account.
func ToStatementDTO(a *domainaccount.Account) StatementDTO {
	snap := a.Snapshot()
	records := snap.History.Records()
	dto := StatementDTO{
		Lines:   make([]string, 0, len(records)),
		Records: make([]RecordDTO, 0, len(records)),
		Balance: snap.Balance,
		Text:    snap.Statement(),
	}
	for _, r := range records {
		dto.Lines = append(dto.Lines, r.Line())
		dto.Records = append(dto.Records, ToRecordDTO(r))
	}
	return dto
}
