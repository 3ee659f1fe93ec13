// Package interaction implements the Lattice interaction dispatcher:
// the component that receives one decoded interaction, walks the
// matching device model items under access control, and encodes the
// result into a size-bounded response packet.
//
// # Dispatch
//
// DataModel binds together the four collaborators of one dispatch:
// the Node traversal (which model items match the request), the ACL
// manager (what the peer may access), the Handler (attribute storage
// and command execution, supplied by the device implementer) and the
// response packet. Handle runs one interaction to completion and
// reports whether the exchange is fully answered.
//
// # Chunking
//
// Read-family responses are chunked: when an element does not fit the
// packet, dispatch stops, records the path of the item that did not
// fit, and completes the packet as partial. The transport replays the
// transaction's pending resumed interaction on the next exchange, and
// traversal re-yields from exactly that item. Writes and invokes have
// no chunking; their responses are expected to fit, and overflow is a
// hard error.
//
// # Subscriptions
//
// A Subscribe interaction primes the subscriber with current values
// like a read, then hands over to ResumeSubscribe. A ResumeSubscribe
// without a resume path establishes the subscription: it allocates an
// id from the SubscriptionIDs counter and writes a single
// establishment element, without touching the model.
//
// # Blocking and suspending execution
//
// DataModel and AsyncDataModel share one dispatch routine; they differ
// only in whether Handler calls may block on a context. Given the same
// model state and handler behavior, both produce byte-identical
// response payloads.
package interaction
