package interaction

import (
	"errors"
	"fmt"

	"github.com/lattice-home/lattice-go/pkg/acl"
	"github.com/lattice-home/lattice-go/pkg/model"
	"github.com/lattice-home/lattice-go/pkg/wire"
)

// AttrDataEncoder turns attribute traversal items into report elements
// on the response packet. It owns the chunk-boundary rule for reads:
// when an element does not fit, the writer leaves the payload unchanged
// and HandleRead reports the item's path as the resume point.
type AttrDataEncoder struct {
	writer   *wire.PayloadWriter
	prov     provider
	acc      *acl.Accessor
	elements int
}

func newAttrDataEncoder(w *wire.PayloadWriter, prov provider, acc *acl.Accessor) *AttrDataEncoder {
	return &AttrDataEncoder{writer: w, prov: prov, acc: acc}
}

// HandleRead encodes one read item. A non-nil resume path means the
// element did not fit: nothing was written for this item and the
// exchange must continue in a later chunk, re-starting at that path.
func (e *AttrDataEncoder) HandleRead(item model.AttrItem) (*wire.AttrPath, error) {
	var elem wire.AttrReport
	if item.Status != wire.StatusSuccess {
		elem = wire.NewAttrReportStatus(item.Details.Path, item.Status)
	} else {
		value, err := e.prov.read(&item.Details, e.acc)
		switch {
		case isContextErr(err):
			return nil, err
		case err != nil:
			elem = wire.NewAttrReportStatus(item.Details.Path, statusFor(err))
		default:
			elem = wire.NewAttrReport(item.Details.Path, value)
		}
	}

	if err := e.writer.WriteElement(elem); err != nil {
		if !errors.Is(err, wire.ErrNoSpace) {
			return nil, err
		}
		if e.writer.Len() == 0 {
			// An empty packet cannot hold the element; resuming
			// here would never make progress.
			return nil, fmt.Errorf("%w: attribute %s", ErrElementTooLarge, item.Details.Path)
		}
		resume := item.Details.Path
		return &resume, nil
	}
	e.elements++
	return nil, nil
}

// HandleWrite performs one write item and encodes its outcome. Every
// item produces exactly one status element; writes are never chunked,
// so an element that does not fit fails the dispatch.
func (e *AttrDataEncoder) HandleWrite(item model.AttrWriteItem) error {
	status := item.Status
	if status == wire.StatusSuccess {
		if err := e.prov.write(&item.Details, e.acc, item.Value); err != nil {
			if isContextErr(err) {
				return err
			}
			status = statusFor(err)
		}
	}

	if err := e.writer.WriteElement(wire.NewAttrStatus(item.Details.Path, status)); err != nil {
		if errors.Is(err, wire.ErrNoSpace) {
			return fmt.Errorf("%w: write outcome for %s", ErrResponseTooLarge, item.Details.Path)
		}
		return err
	}
	e.elements++
	return nil
}

// Elements returns the number of elements encoded so far.
func (e *AttrDataEncoder) Elements() int {
	return e.elements
}

// CmdDataEncoder turns invoke traversal items into command report
// elements. Invoke responses, like write responses, are never chunked.
type CmdDataEncoder struct {
	writer   *wire.PayloadWriter
	prov     provider
	acc      *acl.Accessor
	elements int
}

func newCmdDataEncoder(w *wire.PayloadWriter, prov provider, acc *acl.Accessor) *CmdDataEncoder {
	return &CmdDataEncoder{writer: w, prov: prov, acc: acc}
}

// HandleInvoke executes one invoke item and encodes its report.
func (e *CmdDataEncoder) HandleInvoke(item model.CmdItem) error {
	var elem wire.CmdReport
	if item.Status != wire.StatusSuccess {
		elem = wire.NewCmdReportStatus(item.Details.Path, item.Status)
	} else {
		data, err := e.prov.invoke(&item.Details, e.acc, item.Args)
		switch {
		case isContextErr(err):
			return err
		case err != nil:
			elem = wire.NewCmdReportStatus(item.Details.Path, statusFor(err))
		default:
			elem = wire.NewCmdReport(item.Details.Path, data)
		}
	}

	if err := e.writer.WriteElement(elem); err != nil {
		if errors.Is(err, wire.ErrNoSpace) {
			return fmt.Errorf("%w: command report for %s", ErrResponseTooLarge, item.Details.Path)
		}
		return err
	}
	e.elements++
	return nil
}

// Elements returns the number of elements encoded so far.
func (e *CmdDataEncoder) Elements() int {
	return e.elements
}
