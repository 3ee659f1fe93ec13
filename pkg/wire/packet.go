package wire

import "errors"

// ErrPacketCompleted is returned by Packet.Writer once the packet has
// been completed; a completed packet accepts no further elements.
var ErrPacketCompleted = errors.New("packet already completed")

// PacketFlags qualify a completed response packet.
type PacketFlags uint8

const (
	// FlagMoreChunks marks a partial response: the peer must issue a
	// resumed interaction to receive the remaining elements.
	FlagMoreChunks PacketFlags = 1 << 0
)

// Packet is the size-bounded response buffer for one exchange. The
// dispatcher obtains its writer, appends report elements, and completes
// the packet with flags describing how the exchange ended.
type Packet struct {
	writer    *PayloadWriter
	flags     PacketFlags
	completed bool
}

// NewPacket returns a packet whose payload holds at most capacity bytes.
func NewPacket(capacity int) *Packet {
	return &Packet{writer: newPayloadWriter(capacity)}
}

// Writer returns the payload writer. Fails once the packet is completed.
func (p *Packet) Writer() (*PayloadWriter, error) {
	if p.completed {
		return nil, ErrPacketCompleted
	}
	return p.writer, nil
}

// Complete seals the packet with the given flags. Later calls are no-ops.
func (p *Packet) Complete(flags PacketFlags) {
	if p.completed {
		return
	}
	p.completed = true
	p.flags = flags
}

// Completed returns true once Complete has been called.
func (p *Packet) Completed() bool {
	return p.completed
}

// Flags returns the completion flags. Zero until completed.
func (p *Packet) Flags() PacketFlags {
	return p.flags
}

// MoreChunks returns true if the packet was completed as a partial
// response.
func (p *Packet) MoreChunks() bool {
	return p.flags&FlagMoreChunks != 0
}

// Payload returns the encoded element sequence written so far.
func (p *Packet) Payload() []byte {
	return p.writer.Bytes()
}
