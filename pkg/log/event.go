package log

import "time"

// Event records one dispatched exchange. CBOR encoding uses integer
// keys for compactness.
type Event struct {
	// Timestamp when dispatch started (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ExchangeID correlates the chunks of one logical interaction (UUID).
	ExchangeID string `cbor:"2,keyasint"`

	// Subject is the authenticated peer identity, empty when the
	// exchange failed before session resolution.
	Subject string `cbor:"3,keyasint,omitempty"`

	// Kind is the interaction kind name (READ, WRITE, ...).
	Kind string `cbor:"4,keyasint"`

	// Elements is the number of report elements written this exchange.
	Elements int `cbor:"5,keyasint"`

	// Completed is true when the exchange was fully answered.
	Completed bool `cbor:"6,keyasint"`

	// Resumed is true when the response was partial and a resumed
	// interaction is pending.
	Resumed bool `cbor:"7,keyasint,omitempty"`

	// ResumePath is the resume point of a partial response.
	ResumePath string `cbor:"8,keyasint,omitempty"`

	// Status holds the dispatch error text, empty on success.
	Status string `cbor:"9,keyasint,omitempty"`

	// Duration of the dispatch. Stored as nanoseconds.
	Duration time.Duration `cbor:"10,keyasint"`
}
