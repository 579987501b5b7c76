package initializer

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	infra_eventbus "github.com/amirasaad/ledger/infra/eventbus"
	"github.com/amirasaad/ledger/pkg/app"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/eventbus"
)

// InitializeDependencies builds the logger and event bus described by cfg.
// Logs go to logOut, or stdout when nil. The returned cleanup drains the bus
// and must be called before exit.
func InitializeDependencies(cfg *config.App, logOut io.Writer) (
	deps *app.Deps,
	cleanup func(),
	err error,
) {
	if logOut == nil {
		logOut = os.Stdout
	}
	deps = &app.Deps{}
	logger := setupLogger(cfg.Log, logOut)
	deps.Logger = logger

	bus, err := initEventBus(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}
	deps.EventBus = bus

	cleanup = func() {}
	if closer, ok := bus.(interface{ Close() }); ok {
		cleanup = closer.Close
	}
	logger.Info("Dependencies initialized", "env", cfg.Env, "event_bus", cfg.EventBus.Driver)
	return deps, cleanup, nil
}

func initEventBus(cfg *config.App, logger *slog.Logger) (eventbus.Bus, error) {
	switch cfg.EventBus.Driver {
	case "", "memory":
		return infra_eventbus.NewWithMemory(logger), nil
	case "memory-async":
		return infra_eventbus.NewWithMemoryAsync(logger, cfg.EventBus.QueueSize), nil
	default:
		return nil, fmt.Errorf("unsupported event bus driver %q", cfg.EventBus.Driver)
	}
}
