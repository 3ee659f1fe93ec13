package wire

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// ElementKind discriminates report elements in a response payload.
// Every element encodes its kind under key 1.
type ElementKind uint8

const (
	// ElementAttrReport carries an attribute value or per-attribute status.
	ElementAttrReport ElementKind = 1

	// ElementAttrStatus carries the outcome of one attribute write.
	ElementAttrStatus ElementKind = 2

	// ElementCmdReport carries a command response payload or status.
	ElementCmdReport ElementKind = 3

	// ElementSubscribeDone announces an established subscription.
	ElementSubscribeDone ElementKind = 4
)

// String returns the element kind name.
func (k ElementKind) String() string {
	switch k {
	case ElementAttrReport:
		return "ATTR_REPORT"
	case ElementAttrStatus:
		return "ATTR_STATUS"
	case ElementCmdReport:
		return "CMD_REPORT"
	case ElementSubscribeDone:
		return "SUBSCRIBE_DONE"
	default:
		return "UNKNOWN"
	}
}

// Element is one decoded response payload element.
type Element interface {
	isElement()
}

// AttrReport carries the result of reading one attribute: a value when
// Status is SUCCESS, a per-item status otherwise.
//
// The value key is always encoded, null included, because nullable
// attributes must round-trip: omitting empty values would turn 0, "" or
// null into an absent key.
//
// CBOR encoding:
//
//	{
//	  1: kind,      // uint8: 1
//	  2: path,      // concrete AttrPath
//	  3: status,    // uint8: 0 = value report, else per-item error
//	  4: value      // attribute value, null unless status = 0
//	}
type AttrReport struct {
	Kind   ElementKind `cbor:"1,keyasint"`
	Path   AttrPath    `cbor:"2,keyasint"`
	Status Status      `cbor:"3,keyasint"`
	Value  any         `cbor:"4,keyasint"`
}

// NewAttrReport returns a value report for the given attribute slot.
func NewAttrReport(path AttrPath, value any) AttrReport {
	return AttrReport{Kind: ElementAttrReport, Path: path, Value: value}
}

// NewAttrReportStatus returns a per-item status report for the given slot.
func NewAttrReportStatus(path AttrPath, status Status) AttrReport {
	return AttrReport{Kind: ElementAttrReport, Path: path, Status: status}
}

func (AttrReport) isElement() {}

// AttrStatus carries the outcome of writing one attribute.
//
// CBOR encoding:
//
//	{
//	  1: kind,      // uint8: 2
//	  2: path,      // concrete AttrPath
//	  3: status     // uint8
//	}
type AttrStatus struct {
	Kind   ElementKind `cbor:"1,keyasint"`
	Path   AttrPath    `cbor:"2,keyasint"`
	Status Status      `cbor:"3,keyasint"`
}

// NewAttrStatus returns a write outcome element for the given slot.
func NewAttrStatus(path AttrPath, status Status) AttrStatus {
	return AttrStatus{Kind: ElementAttrStatus, Path: path, Status: status}
}

func (AttrStatus) isElement() {}

// CmdReport carries the result of invoking one command: response data
// when Status is SUCCESS, a per-item status otherwise. As with
// AttrReport, the data key is always encoded.
//
// CBOR encoding:
//
//	{
//	  1: kind,      // uint8: 3
//	  2: path,      // concrete CmdPath
//	  3: status,    // uint8
//	  4: data       // command response, null unless status = 0
//	}
type CmdReport struct {
	Kind   ElementKind `cbor:"1,keyasint"`
	Path   CmdPath     `cbor:"2,keyasint"`
	Status Status      `cbor:"3,keyasint"`
	Data   any         `cbor:"4,keyasint"`
}

// NewCmdReport returns a command response element for the given slot.
func NewCmdReport(path CmdPath, data any) CmdReport {
	return CmdReport{Kind: ElementCmdReport, Path: path, Data: data}
}

// NewCmdReportStatus returns a per-item status report for the given slot.
func NewCmdReportStatus(path CmdPath, status Status) CmdReport {
	return CmdReport{Kind: ElementCmdReport, Path: path, Status: status}
}

func (CmdReport) isElement() {}

// SubscribeDone announces that a new subscription was established.
// Written exactly once per subscription, after the priming reports.
//
// CBOR encoding:
//
//	{
//	  1: kind,            // uint8: 4
//	  2: subscriptionId,  // uint32
//	  3: maxInterval      // uint32: seconds between forced reports
//	}
type SubscribeDone struct {
	Kind           ElementKind    `cbor:"1,keyasint"`
	SubscriptionID SubscriptionID `cbor:"2,keyasint"`
	MaxInterval    uint32         `cbor:"3,keyasint"`
}

// NewSubscribeDone returns a subscription establishment element.
func NewSubscribeDone(id SubscriptionID, maxInterval uint32) SubscribeDone {
	return SubscribeDone{Kind: ElementSubscribeDone, SubscriptionID: id, MaxInterval: maxInterval}
}

func (SubscribeDone) isElement() {}

// AttrData carries one attribute value in a write request.
//
// CBOR encoding:
//
//	{
//	  1: path,      // AttrPath, concrete for writes
//	  2: value      // value to write, always encoded (null allowed)
//	}
type AttrData struct {
	Path  AttrPath `cbor:"1,keyasint"`
	Value any      `cbor:"2,keyasint"`
}

// CmdData carries one command invocation in an invoke request.
//
// CBOR encoding:
//
//	{
//	  1: path,      // CmdPath, concrete for invokes
//	  2: args       // command arguments, absent = none
//	}
type CmdData struct {
	Path CmdPath `cbor:"1,keyasint"`
	Args any     `cbor:"2,keyasint,omitempty"`
}

// DecodeElements decodes a response payload back into its element
// sequence. An empty payload decodes to zero elements.
func DecodeElements(payload []byte) ([]Element, error) {
	if len(payload) == 0 {
		return nil, nil
	}

	dec := NewDecoder(bytes.NewReader(payload))
	var elements []Element
	for {
		var raw cbor.RawMessage
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode element %d: %w", len(elements), err)
		}

		var head struct {
			Kind ElementKind `cbor:"1,keyasint"`
		}
		if err := Unmarshal(raw, &head); err != nil {
			return nil, fmt.Errorf("failed to decode element %d kind: %w", len(elements), err)
		}

		switch head.Kind {
		case ElementAttrReport:
			var e AttrReport
			if err := Unmarshal(raw, &e); err != nil {
				return nil, fmt.Errorf("failed to decode attr report: %w", err)
			}
			elements = append(elements, e)
		case ElementAttrStatus:
			var e AttrStatus
			if err := Unmarshal(raw, &e); err != nil {
				return nil, fmt.Errorf("failed to decode attr status: %w", err)
			}
			elements = append(elements, e)
		case ElementCmdReport:
			var e CmdReport
			if err := Unmarshal(raw, &e); err != nil {
				return nil, fmt.Errorf("failed to decode cmd report: %w", err)
			}
			elements = append(elements, e)
		case ElementSubscribeDone:
			var e SubscribeDone
			if err := Unmarshal(raw, &e); err != nil {
				return nil, fmt.Errorf("failed to decode subscribe done: %w", err)
			}
			elements = append(elements, e)
		default:
			return nil, fmt.Errorf("unknown element kind: %d", head.Kind)
		}
	}
	return elements, nil
}
