package eventbus

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/amirasaad/ledger/pkg/eventbus"
)

// ErrBusClosed is returned by Emit once the asynchronous bus has been closed.
var ErrBusClosed = errors.New("event bus closed")

// MemoryEventBus dispatches events synchronously to the registered handlers.
type MemoryEventBus struct {
	handlers  map[string][]eventbus.HandlerFunc
	mu        sync.RWMutex
	logger    *slog.Logger
	published []events.Event
}

// NewWithMemory creates a synchronous in-memory event bus.
func NewWithMemory(logger *slog.Logger) *MemoryEventBus {
	return &MemoryEventBus{
		handlers:  make(map[string][]eventbus.HandlerFunc),
		logger:    logger.With("bus", "memory"),
		published: make([]events.Event, 0),
	}
}

// Register registers a handler for a specific event type.
func (b *MemoryEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit dispatches the event to all registered handlers for its type.
// Handler errors are logged and never returned to the publisher.
func (b *MemoryEventBus) Emit(ctx context.Context, event events.Event) error {
	b.mu.Lock()
	handlers := append([]eventbus.HandlerFunc{}, b.handlers[event.Type()]...)
	b.published = append(b.published, event)
	b.mu.Unlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			b.logger.Error("failed to process event", "type", event.Type(), "error", err)
		}
	}
	return nil
}

// ClearPublished clears the list of published events.
func (b *MemoryEventBus) ClearPublished() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = make([]events.Event, 0)
}

// Published returns a copy of every event emitted so far.
func (b *MemoryEventBus) Published() []events.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]events.Event, len(b.published))
	copy(out, b.published)
	return out
}

var _ eventbus.Bus = (*MemoryEventBus)(nil)

type envelope struct {
	ctx   context.Context
	event events.Event
}

// MemoryAsyncEventBus queues events and runs handlers on a background goroutine.
type MemoryAsyncEventBus struct {
	handlers map[string][]eventbus.HandlerFunc
	mu       sync.RWMutex
	eventCh  chan envelope
	wg       sync.WaitGroup
	log      *slog.Logger

	// sendMu guards closed and the close of eventCh against in-flight sends.
	sendMu sync.RWMutex
	closed bool
}

// NewWithMemoryAsync creates an asynchronous in-memory event bus with the given queue size.
func NewWithMemoryAsync(logger *slog.Logger, queueSize int) *MemoryAsyncEventBus {
	if queueSize <= 0 {
		queueSize = 100
	}
	b := &MemoryAsyncEventBus{
		handlers: make(map[string][]eventbus.HandlerFunc),
		eventCh:  make(chan envelope, queueSize),
		log:      logger.With("bus", "memory-async"),
	}
	b.wg.Add(1)
	go b.process()
	return b
}

// Register subscribes handler to events of the given type. Handlers run on
// the bus goroutine in registration order.
func (b *MemoryAsyncEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.mu.Unlock()
}

// Emit enqueues the event. It blocks while the queue is full unless ctx is done,
// and returns ErrBusClosed after Close.
func (b *MemoryAsyncEventBus) Emit(ctx context.Context, event events.Event) error {
	b.sendMu.RLock()
	defer b.sendMu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}
	select {
	case b.eventCh <- envelope{ctx: context.WithoutCancel(ctx), event: event}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting events and waits until the queue is drained.
// It is safe to call more than once.
func (b *MemoryAsyncEventBus) Close() {
	b.sendMu.Lock()
	if !b.closed {
		b.closed = true
		close(b.eventCh)
	}
	b.sendMu.Unlock()
	b.wg.Wait()
}

func (b *MemoryAsyncEventBus) process() {
	defer b.wg.Done()
	for w := range b.eventCh {
		b.mu.RLock()
		handlers := append([]eventbus.HandlerFunc{}, b.handlers[w.event.Type()]...)
		b.mu.RUnlock()
		for _, handler := range handlers {
			func() {
				defer func() {
					if r := recover(); r != nil {
						b.log.Error("panic recovered in event handler", "type", w.event.Type(), "panic", r)
					}
				}()
				if err := handler(w.ctx, w.event); err != nil {
					b.log.Error("failed to process event", "type", w.event.Type(), "error", err)
				}
			}()
		}
	}
}

var _ eventbus.Bus = (*MemoryAsyncEventBus)(nil)
