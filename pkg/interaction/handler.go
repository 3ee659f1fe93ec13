package interaction

import (
	"context"
	"iter"

	"github.com/lattice-home/lattice-go/pkg/acl"
	"github.com/lattice-home/lattice-go/pkg/model"
	"github.com/lattice-home/lattice-go/pkg/wire"
)

// Node is the traversal capability dispatch consumes: given a request's
// path filters and an accessor, it yields the matching model items in
// deterministic order. *model.Node satisfies it.
type Node interface {
	Read(paths []wire.AttrPath, acc *acl.Accessor) iter.Seq2[model.AttrItem, error]
	SubscribingRead(paths []wire.AttrPath, acc *acl.Accessor) iter.Seq2[model.AttrItem, error]
	ResumeRead(paths []wire.AttrPath, resume *wire.AttrPath, acc *acl.Accessor) iter.Seq2[model.AttrItem, error]
	ResumeSubscribingRead(paths []wire.AttrPath, resume *wire.AttrPath, acc *acl.Accessor) iter.Seq2[model.AttrItem, error]
	Write(writes []wire.AttrData, acc *acl.Accessor) iter.Seq2[model.AttrWriteItem, error]
	Invoke(invokes []wire.CmdData, acc *acl.Accessor) iter.Seq2[model.CmdItem, error]
}

// Handler performs the data operations dispatch resolved items to:
// reading and writing attribute storage and executing commands. Calls
// must not block; use AsyncHandler when an operation has to wait.
//
// Errors returned here become per-item status elements, never dispatch
// failures. *model.DeviceHandler satisfies this interface.
type Handler interface {
	Read(attr *model.AttrDetails, acc *acl.Accessor) (any, error)
	Write(attr *model.AttrDetails, acc *acl.Accessor, value any) error
	Invoke(cmd *model.CmdDetails, acc *acl.Accessor, args any) (any, error)
}

// AsyncHandler is Handler with a context on every call: the one
// suspension point of a dispatch. Dispatch never suspends between
// items or mid-element, so a cancelled context can only interrupt a
// handler call, after which the whole dispatch aborts.
//
// *model.AsyncDeviceHandler satisfies this interface.
type AsyncHandler interface {
	Read(ctx context.Context, attr *model.AttrDetails, acc *acl.Accessor) (any, error)
	Write(ctx context.Context, attr *model.AttrDetails, acc *acl.Accessor, value any) error
	Invoke(ctx context.Context, cmd *model.CmdDetails, acc *acl.Accessor, args any) (any, error)
}

// DataHandler is the uniform blocking dispatch capability a transport
// layer programs against. *DataModel satisfies it.
type DataHandler interface {
	Handle(i Interaction, pkt *wire.Packet, txn *Transaction) (bool, error)
}

// AsyncDataHandler is the suspending counterpart of DataHandler.
// *AsyncDataModel satisfies it.
type AsyncDataHandler interface {
	Handle(ctx context.Context, i Interaction, pkt *wire.Packet, txn *Transaction) (bool, error)
}

// provider erases the sync/async distinction so both dispatchers share
// one dispatch routine. The async provider carries the caller's context
// into every handler call.
type provider interface {
	read(attr *model.AttrDetails, acc *acl.Accessor) (any, error)
	write(attr *model.AttrDetails, acc *acl.Accessor, value any) error
	invoke(cmd *model.CmdDetails, acc *acl.Accessor, args any) (any, error)
}

type syncProvider struct {
	h Handler
}

func (p *syncProvider) read(attr *model.AttrDetails, acc *acl.Accessor) (any, error) {
	return p.h.Read(attr, acc)
}

func (p *syncProvider) write(attr *model.AttrDetails, acc *acl.Accessor, value any) error {
	return p.h.Write(attr, acc, value)
}

func (p *syncProvider) invoke(cmd *model.CmdDetails, acc *acl.Accessor, args any) (any, error) {
	return p.h.Invoke(cmd, acc, args)
}

type asyncProvider struct {
	ctx context.Context
	h   AsyncHandler
}

func (p *asyncProvider) read(attr *model.AttrDetails, acc *acl.Accessor) (any, error) {
	return p.h.Read(p.ctx, attr, acc)
}

func (p *asyncProvider) write(attr *model.AttrDetails, acc *acl.Accessor, value any) error {
	return p.h.Write(p.ctx, attr, acc, value)
}

func (p *asyncProvider) invoke(cmd *model.CmdDetails, acc *acl.Accessor, args any) (any, error) {
	return p.h.Invoke(p.ctx, cmd, acc, args)
}
