// Package audit logs every ledger event it receives.
package audit

import (
	"context"
	"log/slog"

	"github.com/amirasaad/ledger/pkg/domain/events"
)

// HandleEvent returns a handler that writes one structured log line per event.
// Rejections are logged at warn level.
func HandleEvent(logger *slog.Logger) func(ctx context.Context, e events.Event) error {
	return func(ctx context.Context, e events.Event) error {
		log := logger.With("handler", "audit.HandleEvent", "event_type", e.Type())

		switch ev := e.(type) {
		case events.CustomerCreated:
			log.InfoContext(ctx, "📝 customer created", "event_id", ev.ID, "customer_id", ev.CustomerID)
		case events.AccountOpened:
			log.InfoContext(ctx, "📝 account opened",
				"event_id", ev.ID,
				"account_number", ev.AccountNumber,
				"branch", ev.Branch,
				"customer_id", ev.CustomerID,
			)
		case events.DepositCompleted:
			log.InfoContext(ctx, "📝 deposit completed",
				"event_id", ev.ID,
				"account_number", ev.AccountNumber,
				"record_id", ev.RecordID,
				"amount", ev.Amount.String(),
				"balance", ev.BalanceAfter.String(),
			)
		case events.WithdrawalCompleted:
			log.InfoContext(ctx, "📝 withdrawal completed",
				"event_id", ev.ID,
				"account_number", ev.AccountNumber,
				"record_id", ev.RecordID,
				"amount", ev.Amount.String(),
				"balance", ev.BalanceAfter.String(),
			)
		case events.TransactionRejected:
			log.WarnContext(ctx, "⚠️ transaction rejected",
				"event_id", ev.ID,
				"account_number", ev.AccountNumber,
				"operation", ev.Operation,
				"amount", ev.Amount.String(),
				"reason", ev.Reason,
			)
		default:
			log.WarnContext(ctx, "unknown event")
		}
		return nil
	}
}
