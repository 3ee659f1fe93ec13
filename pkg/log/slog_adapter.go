package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes protocol events to an slog.Logger.
// Useful for development when you want to see protocol events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("exchange_id", event.ExchangeID),
		slog.String("kind", event.Kind),
		slog.Int("elements", event.Elements),
		slog.Bool("completed", event.Completed),
		slog.Duration("duration", event.Duration),
	}

	if event.Subject != "" {
		attrs = append(attrs, slog.String("subject", event.Subject))
	}
	if event.Resumed {
		attrs = append(attrs, slog.Bool("resumed", true))
	}
	if event.ResumePath != "" {
		attrs = append(attrs, slog.String("resume_path", event.ResumePath))
	}
	if event.Status != "" {
		attrs = append(attrs, slog.String("status", event.Status))
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "interaction", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
