package model

import "github.com/lattice-home/lattice-go/pkg/wire"

// AttrDetails identifies one attribute slot yielded by traversal.
type AttrDetails struct {
	// Path is the slot address. Concrete for resolved slots; status
	// items echo the request path as given.
	Path wire.AttrPath

	// Wildcard is true when the slot came from wildcard expansion.
	// Wildcard items that fail access control are filtered out before
	// they are yielded, so the handler never sees them.
	Wildcard bool
}

// AttrItem is one read-family traversal item. A non-success Status
// means traversal already resolved the item to a per-item error
// (unsupported path piece, access denied) and no handler call happens;
// the encoder turns it into a status element.
type AttrItem struct {
	Details AttrDetails
	Status  wire.Status
}

// AttrWriteItem is one write traversal item carrying the value to store.
type AttrWriteItem struct {
	AttrItem
	Value any
}

// CmdDetails identifies one command slot yielded by traversal.
type CmdDetails struct {
	// Path is the slot address.
	Path wire.CmdPath

	// Wildcard is true when the slot came from wildcard expansion.
	Wildcard bool
}

// CmdItem is one invoke traversal item. As with AttrItem, a
// non-success Status short-circuits the handler call.
type CmdItem struct {
	Details CmdDetails
	Status  wire.Status
	Args    any
}
