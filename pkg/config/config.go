// Package config loads the application configuration from the environment.
package config

import (
	"time"

	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/domain/money"
)

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[ledger]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Limits are the rules applied to every newly opened account.
type Limits struct {
	WithdrawalAmount  money.Money `envconfig:"WITHDRAWAL_AMOUNT" default:"500.00"`
	DailyWithdrawals  int         `envconfig:"DAILY_WITHDRAWALS" default:"3"`
	DailyTransactions int         `envconfig:"DAILY_TRANSACTIONS" default:"10"`
}

// Account converts the section into domain limits.
func (l *Limits) Account() account.Limits {
	return account.Limits{
		WithdrawalAmount:  l.WithdrawalAmount,
		DailyWithdrawals:  l.DailyWithdrawals,
		DailyTransactions: l.DailyTransactions,
	}
}

type EventBus struct {
	Driver    string `envconfig:"DRIVER" default:"memory"` // memory | memory-async
	QueueSize int    `envconfig:"QUEUE_SIZE" default:"100"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Branch    string     `envconfig:"BRANCH" default:"0001"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Limits    *Limits    `envconfig:"LIMITS"`
	EventBus  *EventBus  `envconfig:"EVENT_BUS"`
}
