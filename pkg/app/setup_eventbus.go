// Package app provides functionality for setting up and configuring the event Bus
// with all necessary event handlers for the application.
package app

import (
	"log/slog"

	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/amirasaad/ledger/pkg/eventbus"
	"github.com/amirasaad/ledger/pkg/handler/audit"
)

// SetupBus registers all event handlers with the provided event Bus.
func SetupBus(bus eventbus.Bus, logger *slog.Logger) {
	handle := audit.HandleEvent(logger)
	for _, t := range events.All() {
		bus.Register(t.String(), handle)
	}
}
