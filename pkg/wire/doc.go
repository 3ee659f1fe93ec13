// Package wire defines the CBOR wire format types for the Lattice protocol.
//
// Lattice uses CBOR (RFC 8949) with integer keys for efficient encoding.
// A response payload is a CBOR sequence (RFC 8742) of report elements:
// whole elements are appended one at a time, so the payload is valid after
// every append and a chunked response can stop between any two elements.
//
// # Report Elements
//
// Four element kinds appear in response payloads:
//   - AttrReport: attribute value or per-attribute status (read family)
//   - AttrStatus: write outcome for one attribute
//   - CmdReport: command response data or status
//   - SubscribeDone: subscription establishment (id, report interval)
//
// # CBOR Integer Keys
//
// All maps use integer keys for compactness. The key mappings are
// documented on each type. Encoding is deterministic (canonical key
// order), so identical inputs produce byte-identical payloads.
//
// # Nullable vs Absent
//
// Lattice distinguishes between nullable values and absent keys:
//   - Key absent: field not included in this element
//   - Key with value: field has this value
//   - Key with null: value is explicitly null (nullable attribute)
package wire
