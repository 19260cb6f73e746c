package events

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Event kinds emitted by the ledger.
const (
	KindMint     = "mint"
	KindTransfer = "transfer"
)

// Event describes a committed ledger operation for audit consumers. Burn
// and Fee are zero for mints. Memo is passed through unchanged and is never
// persisted by the ledger itself.
type Event struct {
	ID        string
	Kind      string
	Sender    string
	Recipient string
	Amount    uint64
	Burn      uint64
	Fee       uint64
	Net       uint64
	Memo      string
}

// Sink receives ledger events. Implementations must tolerate being called
// after the operation has committed; a sink failure never unwinds the
// operation.
type Sink interface {
	Emit(ctx context.Context, event Event) error
}

// NewID returns a fresh event identifier.
func NewID() string {
	return uuid.NewString()
}

// LoggerSink writes events to the structured logger.
type LoggerSink struct {
	logger *slog.Logger
}

// NewLoggerSink constructs a sink backed by slog.
func NewLoggerSink(logger *slog.Logger) *LoggerSink {
	return &LoggerSink{logger: logger}
}

// Emit logs the event.
func (s *LoggerSink) Emit(_ context.Context, event Event) error {
	if s == nil || s.logger == nil {
		return nil
	}
	attrs := []any{
		slog.String("event_id", event.ID),
		slog.String("kind", event.Kind),
		slog.String("recipient", event.Recipient),
		slog.Uint64("amount", event.Amount),
	}
	if event.Kind == KindTransfer {
		attrs = append(attrs,
			slog.String("sender", event.Sender),
			slog.Uint64("burn", event.Burn),
			slog.Uint64("fee", event.Fee),
			slog.Uint64("net", event.Net),
		)
		if event.Memo != "" {
			attrs = append(attrs, slog.String("memo", event.Memo))
		}
	}
	s.logger.Info("ledger event", attrs...)
	return nil
}
