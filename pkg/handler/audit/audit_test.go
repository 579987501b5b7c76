package audit_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/amirasaad/ledger/pkg/domain/money"
	"github.com/amirasaad/ledger/pkg/handler/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unknownEvent struct{}

func (unknownEvent) Type() string { return "Unknown" }

func TestHandleEvent(t *testing.T) {
	at := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		event     events.Event
		wantLevel string
		wantMsg   string
	}{
		{"customer", events.NewCustomerCreated(at, "111", "Ana"), "INFO", "customer created"},
		{"account", events.NewAccountOpened(at, 1, "0001", "111"), "INFO", "account opened"},
		{"deposit", events.NewDepositCompleted(1, account.Record{Amount: money.MustNew("10")}), "INFO", "deposit completed"},
		{"withdrawal", events.NewWithdrawalCompleted(1, account.Record{Amount: money.MustNew("10")}), "INFO", "withdrawal completed"},
		{"rejected", events.NewTransactionRejected(at, 1, "withdraw", money.MustNew("10"), account.ErrInsufficientFunds), "WARN", "transaction rejected"},
		{"unknown", unknownEvent{}, "WARN", "unknown event"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			require.NoError(t, audit.HandleEvent(logger)(context.Background(), tt.event))

			var line map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, tt.wantLevel, line["level"])
			assert.True(t, strings.HasSuffix(line["msg"].(string), tt.wantMsg), line["msg"])
			assert.Equal(t, tt.event.Type(), line["event_type"])
		})
	}
}
