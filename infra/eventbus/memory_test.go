package eventbus_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	infra_eventbus "github.com/amirasaad/ledger/infra/eventbus"
	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMemoryEventBus_DispatchesByType(t *testing.T) {
	bus := infra_eventbus.NewWithMemory(discardLogger())
	var got []string
	bus.Register(events.EventTypeCustomerCreated.String(), func(_ context.Context, e events.Event) error {
		got = append(got, e.(events.CustomerCreated).CustomerID)
		return nil
	})

	now := time.Now()
	require.NoError(t, bus.Emit(context.Background(), events.NewCustomerCreated(now, "111", "Ana")))
	require.NoError(t, bus.Emit(context.Background(), events.NewAccountOpened(now, 1, "0001", "111")))

	assert.Equal(t, []string{"111"}, got)
	assert.Len(t, bus.Published(), 2)

	bus.ClearPublished()
	assert.Empty(t, bus.Published())
}

func TestMemoryEventBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := infra_eventbus.NewWithMemory(discardLogger())
	calls := 0
	typ := events.EventTypeAccountOpened.String()
	bus.Register(typ, func(context.Context, events.Event) error {
		calls++
		return errors.New("boom")
	})
	bus.Register(typ, func(context.Context, events.Event) error {
		calls++
		return nil
	})

	err := bus.Emit(context.Background(), events.NewAccountOpened(time.Now(), 1, "0001", "111"))
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestMemoryAsyncEventBus_DrainsOnClose(t *testing.T) {
	bus := infra_eventbus.NewWithMemoryAsync(discardLogger(), 4)
	var (
		mu  sync.Mutex
		ids []string
	)
	bus.Register(events.EventTypeCustomerCreated.String(), func(_ context.Context, e events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		ids = append(ids, e.(events.CustomerCreated).CustomerID)
		return nil
	})
	bus.Register(events.EventTypeCustomerCreated.String(), func(context.Context, events.Event) error {
		panic("handler panic is recovered")
	})

	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, bus.Emit(context.Background(), events.NewCustomerCreated(time.Now(), id, "x")))
	}
	bus.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"1", "2", "3"}, ids)
}

func TestMemoryAsyncEventBus_EmitHonoursContext(t *testing.T) {
	bus := infra_eventbus.NewWithMemoryAsync(discardLogger(), 1)
	block := make(chan struct{})
	bus.Register(events.EventTypeCustomerCreated.String(), func(context.Context, events.Event) error {
		<-block
		return nil
	})
	e := events.NewCustomerCreated(time.Now(), "1", "x")
	require.NoError(t, bus.Emit(context.Background(), e))
	// succeeds once the worker is stuck on the first event, leaving the queue full
	require.Eventually(t, func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		return bus.Emit(ctx, e) == nil
	}, time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, bus.Emit(ctx, e), context.Canceled)
	close(block)
	bus.Close()
}

func TestMemoryAsyncEventBus_EmitAfterClose(t *testing.T) {
	bus := infra_eventbus.NewWithMemoryAsync(discardLogger(), 2)
	var handled atomic.Int32
	bus.Register(events.EventTypeCustomerCreated.String(), func(context.Context, events.Event) error {
		handled.Add(1)
		return nil
	})
	e := events.NewCustomerCreated(time.Now(), "1", "x")

	var wg sync.WaitGroup
	var accepted atomic.Int32
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				err := bus.Emit(context.Background(), e)
				if err == nil {
					accepted.Add(1)
					continue
				}
				assert.ErrorIs(t, err, infra_eventbus.ErrBusClosed)
				return
			}
		}()
	}
	bus.Close()
	wg.Wait()
	bus.Close()

	assert.ErrorIs(t, bus.Emit(context.Background(), e), infra_eventbus.ErrBusClosed)
	assert.Equal(t, accepted.Load(), handled.Load(), "every accepted event is handled before Close returns")
}
