package interaction

import (
	"github.com/lattice-home/lattice-go/pkg/wire"
)

// Interaction is one decoded protocol-level request: a read, write,
// invoke or subscribe, one of their resumed forms, or a timed marker.
// The transport layer owns the value; dispatch borrows it for one
// Handle call.
type Interaction interface {
	// Kind returns the interaction kind name for logging.
	Kind() string

	isInteraction()
}

// ReadRequest asks for the current values of the matching attributes.
//
// CBOR encoding:
//
//	{
//	  1: attrPaths   // array of AttrPath filters
//	}
type ReadRequest struct {
	AttrPaths []wire.AttrPath `cbor:"1,keyasint"`
}

func (*ReadRequest) Kind() string   { return "READ" }
func (*ReadRequest) isInteraction() {}

// Complete finalizes the exchange for a read. A resume path marks the
// response as partial and stashes the follow-up interaction on the
// transaction.
func (r *ReadRequest) Complete(pkt *wire.Packet, txn *Transaction, resume *wire.AttrPath) (bool, error) {
	return completeRead(pkt, txn, &ResumeReadRequest{Read: *r, ResumePath: resume})
}

// WriteRequest carries attribute values to store.
//
// CBOR encoding:
//
//	{
//	  1: writes   // array of AttrData
//	}
type WriteRequest struct {
	Writes []wire.AttrData `cbor:"1,keyasint"`
}

func (*WriteRequest) Kind() string   { return "WRITE" }
func (*WriteRequest) isInteraction() {}

// Complete finalizes the exchange for a write. Writes have no resume
// semantics; the exchange is always fully answered.
func (r *WriteRequest) Complete(pkt *wire.Packet, txn *Transaction) (bool, error) {
	pkt.Complete(0)
	txn.setResume(nil)
	return true, nil
}

// InvokeRequest carries command invocations to execute.
//
// CBOR encoding:
//
//	{
//	  1: invokes   // array of CmdData
//	}
type InvokeRequest struct {
	Invokes []wire.CmdData `cbor:"1,keyasint"`
}

func (*InvokeRequest) Kind() string   { return "INVOKE" }
func (*InvokeRequest) isInteraction() {}

// Complete finalizes the exchange for an invoke. As with writes, the
// exchange is always fully answered.
func (r *InvokeRequest) Complete(pkt *wire.Packet, txn *Transaction) (bool, error) {
	pkt.Complete(0)
	txn.setResume(nil)
	return true, nil
}

// SubscribeRequest asks to establish a subscription over the matching
// attributes, priming the subscriber with their current values first.
//
// CBOR encoding:
//
//	{
//	  1: attrPaths,     // array of AttrPath filters
//	  2: minInterval,   // uint32 seconds
//	  3: maxInterval    // uint32 seconds
//	}
type SubscribeRequest struct {
	AttrPaths   []wire.AttrPath `cbor:"1,keyasint"`
	MinInterval uint32          `cbor:"2,keyasint"`
	MaxInterval uint32          `cbor:"3,keyasint"`
}

func (*SubscribeRequest) Kind() string   { return "SUBSCRIBE" }
func (*SubscribeRequest) isInteraction() {}

// Complete never finishes the exchange directly: a subscribe always
// continues as a ResumeSubscribe — with a resume path while priming
// data remains, without one to establish the subscription.
func (r *SubscribeRequest) Complete(pkt *wire.Packet, txn *Transaction, resume *wire.AttrPath) (bool, error) {
	var flags wire.PacketFlags
	if resume != nil {
		flags = wire.FlagMoreChunks
	}
	pkt.Complete(flags)
	txn.setResume(&ResumeSubscribeRequest{Subscribe: *r, ResumePath: resume})
	return false, nil
}

// TimedRequest opens a timed window for a subsequent write or invoke.
// Dispatch treats it as a no-op; the timed window itself is enforced
// by the exchange layer.
//
// CBOR encoding:
//
//	{
//	  1: timeout   // uint32 milliseconds
//	}
type TimedRequest struct {
	Timeout uint32 `cbor:"1,keyasint"`
}

func (*TimedRequest) Kind() string   { return "TIMED" }
func (*TimedRequest) isInteraction() {}

// ResumeReadRequest continues a chunked read from the recorded resume
// path. A nil resume path reads from the beginning.
//
// CBOR encoding:
//
//	{
//	  1: read,         // ReadRequest
//	  2: resumePath    // concrete AttrPath, absent = start over
//	}
type ResumeReadRequest struct {
	Read       ReadRequest    `cbor:"1,keyasint"`
	ResumePath *wire.AttrPath `cbor:"2,keyasint,omitempty"`
}

func (*ResumeReadRequest) Kind() string   { return "RESUME_READ" }
func (*ResumeReadRequest) isInteraction() {}

// Complete finalizes the exchange like ReadRequest.Complete.
func (r *ResumeReadRequest) Complete(pkt *wire.Packet, txn *Transaction, resume *wire.AttrPath) (bool, error) {
	return completeRead(pkt, txn, &ResumeReadRequest{Read: r.Read, ResumePath: resume})
}

// ResumeSubscribeRequest continues a subscribe: with a resume path it
// keeps priming like a resumed read; without one it establishes the
// subscription.
//
// CBOR encoding:
//
//	{
//	  1: subscribe,    // SubscribeRequest
//	  2: resumePath    // concrete AttrPath, absent = establish
//	}
type ResumeSubscribeRequest struct {
	Subscribe  SubscribeRequest `cbor:"1,keyasint"`
	ResumePath *wire.AttrPath   `cbor:"2,keyasint,omitempty"`
}

func (*ResumeSubscribeRequest) Kind() string   { return "RESUME_SUBSCRIBE" }
func (*ResumeSubscribeRequest) isInteraction() {}

// Complete finalizes the exchange: partial priming continues as
// another ResumeSubscribe; after establishment the exchange is done.
func (r *ResumeSubscribeRequest) Complete(pkt *wire.Packet, txn *Transaction, resume *wire.AttrPath) (bool, error) {
	if resume != nil {
		pkt.Complete(wire.FlagMoreChunks)
		txn.setResume(&ResumeSubscribeRequest{Subscribe: r.Subscribe, ResumePath: resume})
		return false, nil
	}
	pkt.Complete(0)
	txn.setResume(nil)
	return true, nil
}

// completeRead is the shared read-family completion rule.
func completeRead(pkt *wire.Packet, txn *Transaction, next *ResumeReadRequest) (bool, error) {
	if next.ResumePath == nil {
		pkt.Complete(0)
		txn.setResume(nil)
		return true, nil
	}
	pkt.Complete(wire.FlagMoreChunks)
	txn.setResume(next)
	return false, nil
}
