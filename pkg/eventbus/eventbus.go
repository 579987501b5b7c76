// Package eventbus defines the contract between event publishers and subscribers.
package eventbus

import (
	"context"

	"github.com/amirasaad/ledger/pkg/domain/events"
)

// HandlerFunc handles one event.
type HandlerFunc func(ctx context.Context, event events.Event) error

// Bus registers handlers by event type and dispatches emitted events to them.
type Bus interface {
	Register(eventType string, handler HandlerFunc)
	Emit(ctx context.Context, event events.Event) error
}
