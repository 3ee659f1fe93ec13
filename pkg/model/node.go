package model

import (
	"errors"
	"iter"

	"github.com/lattice-home/lattice-go/pkg/acl"
	"github.com/lattice-home/lattice-go/pkg/wire"
)

// Node errors.
var (
	ErrNilAccessor = errors.New("nil accessor")
)

// Node is the traversal component over one device. Given a request's
// path filters and an accessor, it produces a lazy, finite, single-pass
// sequence of items in deterministic order: filters in request order,
// wildcard pieces expanded over ascending IDs.
//
// Resumed traversals take the resume path of the previous partial
// response and re-yield from exactly that item; the previous exchange
// rolled its element back, so nothing is skipped or duplicated.
type Node struct {
	device *Device
}

// NewNode creates a traversal node over the given device.
func NewNode(device *Device) *Node {
	return &Node{device: device}
}

// Device returns the underlying device.
func (n *Node) Device() *Device {
	return n.device
}

// Read yields one item per readable attribute slot matching the filters.
func (n *Node) Read(paths []wire.AttrPath, acc *acl.Accessor) iter.Seq2[AttrItem, error] {
	return n.attrItems(paths, nil, acc, false)
}

// SubscribingRead is Read restricted to subscribable attributes.
func (n *Node) SubscribingRead(paths []wire.AttrPath, acc *acl.Accessor) iter.Seq2[AttrItem, error] {
	return n.attrItems(paths, nil, acc, true)
}

// ResumeRead is Read starting from the resume path of a previous
// partial response. A nil resume path starts from the beginning.
func (n *Node) ResumeRead(paths []wire.AttrPath, resume *wire.AttrPath, acc *acl.Accessor) iter.Seq2[AttrItem, error] {
	return n.attrItems(paths, resume, acc, false)
}

// ResumeSubscribingRead is SubscribingRead starting from a resume path.
func (n *Node) ResumeSubscribingRead(paths []wire.AttrPath, resume *wire.AttrPath, acc *acl.Accessor) iter.Seq2[AttrItem, error] {
	return n.attrItems(paths, resume, acc, true)
}

// attrItems is the shared read-family traversal.
func (n *Node) attrItems(paths []wire.AttrPath, resume *wire.AttrPath, acc *acl.Accessor, subscribing bool) iter.Seq2[AttrItem, error] {
	return func(yield func(AttrItem, error) bool) {
		if acc == nil {
			yield(AttrItem{}, ErrNilAccessor)
			return
		}

		// Until the resume item is reached, items are consumed
		// without being yielded.
		skipping := resume != nil
		emit := func(item AttrItem) bool {
			if skipping {
				if !item.Details.Path.Equal(*resume) {
					return true
				}
				skipping = false
			}
			return yield(item, nil)
		}

		for _, p := range paths {
			if p.IsConcrete() {
				if !emit(n.resolveAttr(p, acc, subscribing)) {
					return
				}
				continue
			}
			if !n.expandAttrs(p, acc, subscribing, emit) {
				return
			}
		}
	}
}

// resolveAttr resolves one concrete filter path to an item. Failures
// become per-item statuses so one bad path never aborts the request.
func (n *Node) resolveAttr(p wire.AttrPath, acc *acl.Accessor, subscribing bool) AttrItem {
	item := AttrItem{Details: AttrDetails{Path: p}}

	endpoint, err := n.device.GetEndpoint(*p.Endpoint)
	if err != nil {
		item.Status = wire.StatusUnsupportedEndpoint
		return item
	}

	cluster, err := endpoint.GetCluster(*p.Cluster)
	if err != nil {
		item.Status = wire.StatusUnsupportedCluster
		return item
	}

	attr, err := cluster.GetAttribute(*p.Attribute)
	if err != nil {
		item.Status = wire.StatusUnsupportedAttribute
		return item
	}

	meta := attr.Metadata()
	if !meta.Access.CanRead() || (subscribing && !meta.Access.CanSubscribe()) {
		item.Status = wire.StatusUnsupportedRead
		return item
	}

	if !acc.AllowsAttr(p, meta.RequiredReadPrivilege()) {
		item.Status = wire.StatusNotAuthorized
		return item
	}

	return item
}

// expandAttrs expands a wildcard filter over the device in ascending
// ID order. Slots the requester may not access are skipped silently:
// wildcard expansion never leaks the shape of the model to
// unauthorized subjects.
func (n *Node) expandAttrs(p wire.AttrPath, acc *acl.Accessor, subscribing bool, emit func(AttrItem) bool) bool {
	for _, epID := range n.device.EndpointIDs() {
		if p.Endpoint != nil && *p.Endpoint != epID {
			continue
		}
		endpoint, err := n.device.GetEndpoint(epID)
		if err != nil {
			continue
		}

		for _, clID := range endpoint.ClusterIDs() {
			if p.Cluster != nil && *p.Cluster != clID {
				continue
			}
			cluster, err := endpoint.GetCluster(clID)
			if err != nil {
				continue
			}

			for _, attrID := range cluster.AttributeIDs() {
				if p.Attribute != nil && *p.Attribute != attrID {
					continue
				}
				attr, err := cluster.GetAttribute(attrID)
				if err != nil {
					continue
				}

				meta := attr.Metadata()
				if !meta.Access.CanRead() || (subscribing && !meta.Access.CanSubscribe()) {
					continue
				}

				path := wire.ConcreteAttrPath(epID, clID, attrID)
				if !acc.AllowsAttr(path, meta.RequiredReadPrivilege()) {
					continue
				}

				if !emit(AttrItem{Details: AttrDetails{Path: path, Wildcard: true}}) {
					return false
				}
			}
		}
	}
	return true
}

// Write yields one item per requested attribute write, in request
// order. Write paths must be concrete.
func (n *Node) Write(writes []wire.AttrData, acc *acl.Accessor) iter.Seq2[AttrWriteItem, error] {
	return func(yield func(AttrWriteItem, error) bool) {
		if acc == nil {
			yield(AttrWriteItem{}, ErrNilAccessor)
			return
		}

		for _, w := range writes {
			item := AttrWriteItem{
				AttrItem: AttrItem{Details: AttrDetails{Path: w.Path}},
				Value:    w.Value,
			}
			item.Status = n.resolveAttrWrite(w.Path, acc)
			if !yield(item, nil) {
				return
			}
		}
	}
}

// resolveAttrWrite checks one write path, returning the per-item status.
func (n *Node) resolveAttrWrite(p wire.AttrPath, acc *acl.Accessor) wire.Status {
	if !p.IsConcrete() {
		return wire.StatusInvalidParameter
	}

	endpoint, err := n.device.GetEndpoint(*p.Endpoint)
	if err != nil {
		return wire.StatusUnsupportedEndpoint
	}

	cluster, err := endpoint.GetCluster(*p.Cluster)
	if err != nil {
		return wire.StatusUnsupportedCluster
	}

	attr, err := cluster.GetAttribute(*p.Attribute)
	if err != nil {
		return wire.StatusUnsupportedAttribute
	}

	meta := attr.Metadata()
	if *p.Attribute >= AttrIDGlobalBase || !meta.Access.CanWrite() {
		return wire.StatusUnsupportedWrite
	}

	if !acc.AllowsAttr(p, meta.RequiredWritePrivilege()) {
		return wire.StatusNotAuthorized
	}

	return wire.StatusSuccess
}

// Invoke yields one item per requested command invocation, in request
// order. Invoke paths must be concrete.
func (n *Node) Invoke(invokes []wire.CmdData, acc *acl.Accessor) iter.Seq2[CmdItem, error] {
	return func(yield func(CmdItem, error) bool) {
		if acc == nil {
			yield(CmdItem{}, ErrNilAccessor)
			return
		}

		for _, inv := range invokes {
			item := CmdItem{
				Details: CmdDetails{Path: inv.Path},
				Args:    inv.Args,
			}
			item.Status = n.resolveCmd(inv.Path, acc)
			if !yield(item, nil) {
				return
			}
		}
	}
}

// resolveCmd checks one command path, returning the per-item status.
func (n *Node) resolveCmd(p wire.CmdPath, acc *acl.Accessor) wire.Status {
	if !p.IsConcrete() {
		return wire.StatusInvalidParameter
	}

	endpoint, err := n.device.GetEndpoint(*p.Endpoint)
	if err != nil {
		return wire.StatusUnsupportedEndpoint
	}

	cluster, err := endpoint.GetCluster(*p.Cluster)
	if err != nil {
		return wire.StatusUnsupportedCluster
	}

	cmd, err := cluster.GetCommand(*p.Command)
	if err != nil {
		return wire.StatusUnsupportedCommand
	}

	if !acc.AllowsCmd(p, cmd.Metadata().RequiredInvokePrivilege()) {
		return wire.StatusNotAuthorized
	}

	return wire.StatusSuccess
}
