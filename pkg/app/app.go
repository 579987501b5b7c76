package app

import (
	"log/slog"

	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/eventbus"
	"github.com/amirasaad/ledger/pkg/ledger"
)

// Deps contains the infrastructure the application is built from.
type Deps struct {
	EventBus eventbus.Bus
	Logger   *slog.Logger
}

type App struct {
	Deps   *Deps
	Config *config.App
	Ledger *ledger.Ledger
}

// New wires the event handlers and builds the ledger from cfg.
func New(deps *Deps, cfg *config.App) (*App, error) {
	SetupBus(deps.EventBus, deps.Logger)

	l, err := ledger.New(
		ledger.WithLogger(deps.Logger),
		ledger.WithBus(deps.EventBus),
		ledger.WithBranch(cfg.Branch),
		ledger.WithLimits(cfg.Limits.Account()),
	)
	if err != nil {
		return nil, err
	}
	return &App{Deps: deps, Config: cfg, Ledger: l}, nil
}
