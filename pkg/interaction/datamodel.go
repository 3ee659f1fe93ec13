package interaction

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/lattice-home/lattice-go/pkg/acl"
	"github.com/lattice-home/lattice-go/pkg/log"
	"github.com/lattice-home/lattice-go/pkg/model"
	"github.com/lattice-home/lattice-go/pkg/wire"
)

// DefaultSubscribeMaxInterval is the default ceiling, in seconds,
// between forced subscription reports announced at establishment.
const DefaultSubscribeMaxInterval uint32 = 40

// Option configures a dispatcher.
type Option func(*options)

type options struct {
	ids         *SubscriptionIDs
	maxInterval uint32
	logger      log.Logger
	debug       *slog.Logger
}

// WithSubscriptionIDs shares a subscription id allocator across
// dispatchers. Dispatchers not given one allocate privately, which is
// fine for a node with a single dispatcher.
func WithSubscriptionIDs(ids *SubscriptionIDs) Option {
	return func(o *options) { o.ids = ids }
}

// WithSubscribeMaxInterval sets the ceiling, in seconds, between forced
// subscription reports.
func WithSubscribeMaxInterval(seconds uint32) Option {
	return func(o *options) { o.maxInterval = seconds }
}

// WithLogger attaches a protocol event logger; one event is recorded
// per dispatched exchange.
func WithLogger(l log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithDebugLogger attaches an operational debug logger.
func WithDebugLogger(l *slog.Logger) Option {
	return func(o *options) { o.debug = l }
}

func newOptions(opts []Option) options {
	o := options{maxInterval: DefaultSubscribeMaxInterval}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ids == nil {
		o.ids = &SubscriptionIDs{}
	}
	return o
}

// subscribeInterval negotiates the establishment interval: the node's
// ceiling, lowered to the requested maximum, but never below the
// requested minimum.
func (o *options) subscribeInterval(req *SubscribeRequest) uint32 {
	max := o.maxInterval
	if req.MaxInterval != 0 && req.MaxInterval < max {
		max = req.MaxInterval
	}
	if req.MinInterval > max {
		max = req.MinInterval
	}
	return max
}

// DataModel is the blocking interaction dispatcher. Handler calls run
// to completion on the calling goroutine; use AsyncDataModel when
// handlers need to wait.
type DataModel struct {
	node    Node
	aclm    *acl.Manager
	handler Handler
	opts    options
}

// New creates a blocking dispatcher over the given traversal node,
// access control list and data handler.
func New(node Node, aclm *acl.Manager, h Handler, opts ...Option) *DataModel {
	return &DataModel{node: node, aclm: aclm, handler: h, opts: newOptions(opts)}
}

// Handle dispatches one interaction into the response packet. It
// returns true when the exchange is fully answered; false means the
// transport must dispatch txn.Resume() on the next exchange.
func (m *DataModel) Handle(i Interaction, pkt *wire.Packet, txn *Transaction) (bool, error) {
	return handleWith(&m.opts, &syncProvider{h: m.handler}, m.node, m.aclm, i, pkt, txn)
}

// AsyncDataModel is the suspending interaction dispatcher: handler
// calls receive the caller's context and may block on it. Given the
// same model state and handler behavior it produces byte-identical
// response payloads to DataModel.
type AsyncDataModel struct {
	node    Node
	aclm    *acl.Manager
	handler AsyncHandler
	opts    options
}

// NewAsync creates a suspending dispatcher.
func NewAsync(node Node, aclm *acl.Manager, h AsyncHandler, opts ...Option) *AsyncDataModel {
	return &AsyncDataModel{node: node, aclm: aclm, handler: h, opts: newOptions(opts)}
}

// Handle dispatches one interaction into the response packet. A
// cancelled context aborts the dispatch at the next handler call.
func (m *AsyncDataModel) Handle(ctx context.Context, i Interaction, pkt *wire.Packet, txn *Transaction) (bool, error) {
	return handleWith(&m.opts, &asyncProvider{ctx: ctx, h: m.handler}, m.node, m.aclm, i, pkt, txn)
}

var (
	_ DataHandler      = (*DataModel)(nil)
	_ AsyncDataHandler = (*AsyncDataModel)(nil)
)

// handleWith wraps dispatch with debug and protocol event logging.
func handleWith(o *options, prov provider, node Node, aclm *acl.Manager, i Interaction, pkt *wire.Packet, txn *Transaction) (bool, error) {
	start := time.Now()
	if o.debug != nil {
		o.debug.Debug("dispatching interaction",
			"kind", i.Kind(),
			"exchange_id", txn.ExchangeID())
	}

	completed, elements, err := dispatch(o, prov, node, aclm, i, pkt, txn)

	if o.debug != nil && err != nil {
		o.debug.Debug("dispatch failed",
			"kind", i.Kind(),
			"exchange_id", txn.ExchangeID(),
			"error", err)
	}
	if o.logger != nil {
		o.logger.Log(newEvent(start, i, txn, completed, elements, err))
	}
	return completed, err
}

// newEvent builds the protocol log event for one dispatched exchange.
func newEvent(start time.Time, i Interaction, txn *Transaction, completed bool, elements int, err error) log.Event {
	ev := log.Event{
		Timestamp:  start,
		ExchangeID: txn.ExchangeID(),
		Kind:       i.Kind(),
		Elements:   elements,
		Completed:  completed,
		Duration:   time.Since(start),
	}
	if s := txn.Session(); s != nil {
		ev.Subject = s.SubjectID()
	}
	if err != nil {
		ev.Status = err.Error()
	}
	switch next := txn.Resume().(type) {
	case *ResumeReadRequest:
		ev.Resumed = true
		if next.ResumePath != nil {
			ev.ResumePath = next.ResumePath.String()
		}
	case *ResumeSubscribeRequest:
		ev.Resumed = true
		if next.ResumePath != nil {
			ev.ResumePath = next.ResumePath.String()
		}
	}
	return ev
}

// dispatch runs one interaction against the model and encodes the
// response. It returns whether the exchange completed and how many
// elements were written.
func dispatch(o *options, prov provider, node Node, aclm *acl.Manager, i Interaction, pkt *wire.Packet, txn *Transaction) (bool, int, error) {
	// Timed windows are enforced by the exchange layer; dispatch leaves
	// the packet untouched and the exchange open.
	if _, ok := i.(*TimedRequest); ok {
		return false, 0, nil
	}

	acc, err := acl.ForSession(txn.Session(), aclm)
	if err != nil {
		return false, 0, err
	}
	w, err := pkt.Writer()
	if err != nil {
		return false, 0, err
	}

	switch req := i.(type) {
	case *ReadRequest:
		enc := newAttrDataEncoder(w, prov, acc)
		resume, err := encodeReads(enc, node.Read(req.AttrPaths, acc))
		if err != nil {
			return false, enc.Elements(), err
		}
		completed, err := req.Complete(pkt, txn, resume)
		return completed, enc.Elements(), err

	case *ResumeReadRequest:
		enc := newAttrDataEncoder(w, prov, acc)
		resume, err := encodeReads(enc, node.ResumeRead(req.Read.AttrPaths, req.ResumePath, acc))
		if err != nil {
			return false, enc.Elements(), err
		}
		completed, err := req.Complete(pkt, txn, resume)
		return completed, enc.Elements(), err

	case *SubscribeRequest:
		enc := newAttrDataEncoder(w, prov, acc)
		resume, err := encodeReads(enc, node.SubscribingRead(req.AttrPaths, acc))
		if err != nil {
			return false, enc.Elements(), err
		}
		completed, err := req.Complete(pkt, txn, resume)
		return completed, enc.Elements(), err

	case *ResumeSubscribeRequest:
		if req.ResumePath != nil {
			enc := newAttrDataEncoder(w, prov, acc)
			resume, err := encodeReads(enc, node.ResumeSubscribingRead(req.Subscribe.AttrPaths, req.ResumePath, acc))
			if err != nil {
				return false, enc.Elements(), err
			}
			completed, err := req.Complete(pkt, txn, resume)
			return completed, enc.Elements(), err
		}

		// Priming is done: allocate the id and announce establishment.
		// The model is not touched on this exchange.
		done := wire.NewSubscribeDone(o.ids.Next(), o.subscribeInterval(&req.Subscribe))
		if err := w.WriteElement(done); err != nil {
			if errors.Is(err, wire.ErrNoSpace) {
				return false, 0, fmt.Errorf("%w: subscription establishment", ErrResponseTooLarge)
			}
			return false, 0, err
		}
		completed, err := req.Complete(pkt, txn, nil)
		return completed, 1, err

	case *WriteRequest:
		enc := newAttrDataEncoder(w, prov, acc)
		for item, err := range node.Write(req.Writes, acc) {
			if err != nil {
				return false, enc.Elements(), err
			}
			if err := enc.HandleWrite(item); err != nil {
				return false, enc.Elements(), err
			}
		}
		completed, err := req.Complete(pkt, txn)
		return completed, enc.Elements(), err

	case *InvokeRequest:
		enc := newCmdDataEncoder(w, prov, acc)
		for item, err := range node.Invoke(req.Invokes, acc) {
			if err != nil {
				return false, enc.Elements(), err
			}
			if err := enc.HandleInvoke(item); err != nil {
				return false, enc.Elements(), err
			}
		}
		completed, err := req.Complete(pkt, txn)
		return completed, enc.Elements(), err

	default:
		return false, 0, fmt.Errorf("%w: %T", ErrUnknownInteraction, i)
	}
}

// encodeReads drains a read-family traversal into the encoder, stopping
// at the first chunk boundary.
func encodeReads(enc *AttrDataEncoder, items iter.Seq2[model.AttrItem, error]) (*wire.AttrPath, error) {
	for item, err := range items {
		if err != nil {
			return nil, err
		}
		resume, err := enc.HandleRead(item)
		if err != nil {
			return nil, err
		}
		if resume != nil {
			return resume, nil
		}
	}
	return nil, nil
}
