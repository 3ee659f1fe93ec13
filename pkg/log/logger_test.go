package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

type captureLogger struct {
	events []Event
}

func (l *captureLogger) Log(event Event) {
	l.events = append(l.events, event)
}

func TestNoopLogger(t *testing.T) {
	// Must not panic; the zero value is usable.
	var l NoopLogger
	l.Log(newTestEvent())
}

func TestMultiLogger(t *testing.T) {
	a, b := &captureLogger{}, &captureLogger{}
	m := NewMultiLogger(a, b)

	m.Log(newTestEvent())
	m.Log(newTestEvent())

	if len(a.events) != 2 || len(b.events) != 2 {
		t.Errorf("event counts = %d/%d, want 2/2", len(a.events), len(b.events))
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	NewSlogAdapter(logger).Log(newTestEvent())

	out := buf.String()
	for _, want := range []string{"kind=READ", "subject=ctrl-1", "resume_path=1/6/0", "elements=10"} {
		if !strings.Contains(out, want) {
			t.Errorf("slog output missing %q:\n%s", want, out)
		}
	}
}
