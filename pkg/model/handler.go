package model

import (
	"context"
	"fmt"

	"github.com/lattice-home/lattice-go/pkg/acl"
)

// DeviceHandler backs the interaction layer's handler capability with
// live device state: reads and writes go to attribute storage, invokes
// run the registered command handlers.
//
// Traversal has already applied access control and access flags by the
// time an item reaches the handler, so the handler only performs the
// storage operation; any error it returns is surfaced as a per-item
// status element, never as a dispatch failure.
type DeviceHandler struct {
	device *Device
}

// NewDeviceHandler creates a handler over the given device.
func NewDeviceHandler(device *Device) *DeviceHandler {
	return &DeviceHandler{device: device}
}

// Read returns the current value of the attribute slot.
func (h *DeviceHandler) Read(attr *AttrDetails, acc *acl.Accessor) (any, error) {
	return h.device.ReadAttribute(*attr.Path.Endpoint, *attr.Path.Cluster, *attr.Path.Attribute)
}

// Write stores a value into the attribute slot.
func (h *DeviceHandler) Write(attr *AttrDetails, acc *acl.Accessor, value any) error {
	return h.device.WriteAttribute(*attr.Path.Endpoint, *attr.Path.Cluster, *attr.Path.Attribute, value)
}

// Invoke runs the command slot's handler with the decoded arguments.
func (h *DeviceHandler) Invoke(cmd *CmdDetails, acc *acl.Accessor, args any) (any, error) {
	params, err := paramsFromArgs(args)
	if err != nil {
		return nil, err
	}
	result, err := h.device.InvokeCommand(context.Background(), *cmd.Path.Endpoint, *cmd.Path.Cluster, *cmd.Path.Command, params)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return result, nil
}

// AsyncDeviceHandler is DeviceHandler with context plumbing: command
// handlers receive the caller's context and may block on it. Reads and
// writes stay synchronous against attribute storage but honor a
// context that is already cancelled.
type AsyncDeviceHandler struct {
	device *Device
}

// NewAsyncDeviceHandler creates an async handler over the given device.
func NewAsyncDeviceHandler(device *Device) *AsyncDeviceHandler {
	return &AsyncDeviceHandler{device: device}
}

// Read returns the current value of the attribute slot.
func (h *AsyncDeviceHandler) Read(ctx context.Context, attr *AttrDetails, acc *acl.Accessor) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return h.device.ReadAttribute(*attr.Path.Endpoint, *attr.Path.Cluster, *attr.Path.Attribute)
}

// Write stores a value into the attribute slot.
func (h *AsyncDeviceHandler) Write(ctx context.Context, attr *AttrDetails, acc *acl.Accessor, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return h.device.WriteAttribute(*attr.Path.Endpoint, *attr.Path.Cluster, *attr.Path.Attribute, value)
}

// Invoke runs the command slot's handler with the decoded arguments.
func (h *AsyncDeviceHandler) Invoke(ctx context.Context, cmd *CmdDetails, acc *acl.Accessor, args any) (any, error) {
	params, err := paramsFromArgs(args)
	if err != nil {
		return nil, err
	}
	result, err := h.device.InvokeCommand(ctx, *cmd.Path.Endpoint, *cmd.Path.Cluster, *cmd.Path.Command, params)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return result, nil
}

// paramsFromArgs converts decoded command arguments into a parameter
// map. CBOR decoding into any yields map[any]any; JSON and in-process
// callers yield map[string]any. Anything else is a parameter error.
func paramsFromArgs(args any) (map[string]any, error) {
	switch a := args.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return a, nil
	case map[any]any:
		params := make(map[string]any, len(a))
		for k, v := range a {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("%w: non-string parameter key %v", ErrInvalidParameters, k)
			}
			params[key] = v
		}
		return params, nil
	default:
		return nil, fmt.Errorf("%w: expected parameter map, got %T", ErrInvalidParameters, args)
	}
}
