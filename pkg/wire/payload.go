package wire

import (
	"errors"
	"fmt"
)

// ErrNoSpace is returned by PayloadWriter.WriteElement when the encoded
// element does not fit into the remaining buffer capacity. It is a
// control-flow signal, not a failure: read-family dispatch treats it as
// a chunk boundary and resumes in a later exchange.
var ErrNoSpace = errors.New("payload buffer full")

// PayloadWriter appends report elements to a fixed-capacity buffer.
//
// An element is appended only when it fits completely, so the buffer
// holds a whole number of elements at all times and is a valid CBOR
// sequence after every call. On ErrNoSpace the buffer is unchanged and
// the writer remains usable.
//
// Not safe for concurrent use; each response packet owns one writer.
type PayloadWriter struct {
	buf      []byte
	capacity int
}

func newPayloadWriter(capacity int) *PayloadWriter {
	if capacity < 0 {
		capacity = 0
	}
	return &PayloadWriter{buf: make([]byte, 0, capacity), capacity: capacity}
}

// WriteElement encodes v and appends it to the buffer. Returns
// ErrNoSpace when the element does not fit; any other error is a
// structural encode failure.
func (w *PayloadWriter) WriteElement(v any) error {
	data, err := Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode element: %w", err)
	}
	if len(w.buf)+len(data) > w.capacity {
		return ErrNoSpace
	}
	w.buf = append(w.buf, data...)
	return nil
}

// Len returns the number of bytes written so far.
func (w *PayloadWriter) Len() int {
	return len(w.buf)
}

// Cap returns the total buffer capacity in bytes.
func (w *PayloadWriter) Cap() int {
	return w.capacity
}

// Free returns the remaining capacity in bytes.
func (w *PayloadWriter) Free() int {
	return w.capacity - len(w.buf)
}

// Bytes returns the written payload. The slice is owned by the writer;
// callers must not modify it.
func (w *PayloadWriter) Bytes() []byte {
	return w.buf
}

// Reset discards all written elements, keeping the capacity.
func (w *PayloadWriter) Reset() {
	w.buf = w.buf[:0]
}
