package interaction

import (
	"context"
	"errors"

	"github.com/lattice-home/lattice-go/pkg/model"
	"github.com/lattice-home/lattice-go/pkg/wire"
)

// Dispatch errors. These are structural failures of the exchange; per-item
// failures never surface here, they become status elements instead.
var (
	// ErrResponseTooLarge reports that a write or invoke response did
	// not fit the packet. Those responses have no resume semantics, so
	// running out of space is a hard error.
	ErrResponseTooLarge = errors.New("response does not fit packet")

	// ErrElementTooLarge reports that a single report element did not
	// fit an empty packet. Resuming would re-yield the same item into
	// the same empty packet forever, so dispatch fails instead.
	ErrElementTooLarge = errors.New("element exceeds packet capacity")

	// ErrUnknownInteraction reports an interaction kind dispatch does
	// not recognize.
	ErrUnknownInteraction = errors.New("unknown interaction")
)

// statusFor maps a handler error to the per-item status reported to the
// peer. Unrecognized errors collapse to FAILURE so handler internals
// never leak onto the wire.
func statusFor(err error) wire.Status {
	switch {
	case errors.Is(err, model.ErrAttributeNotFound):
		return wire.StatusUnsupportedAttribute
	case errors.Is(err, model.ErrAttributeNotReadable):
		return wire.StatusUnsupportedRead
	case errors.Is(err, model.ErrAttributeNotWritable):
		return wire.StatusUnsupportedWrite
	case errors.Is(err, model.ErrCommandNotFound):
		return wire.StatusUnsupportedCommand
	case errors.Is(err, model.ErrInvalidParameters):
		return wire.StatusInvalidParameter
	case errors.Is(err, model.ErrAttributeValueType),
		errors.Is(err, model.ErrAttributeOutOfRange),
		errors.Is(err, model.ErrAttributeNotNullable):
		return wire.StatusConstraintError
	default:
		return wire.StatusFailure
	}
}

// isContextErr reports whether a handler error is a cancellation rather
// than a per-item failure. Cancellations abort the whole dispatch.
func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
