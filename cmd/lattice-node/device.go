package main

import (
	"context"
	"fmt"

	"github.com/lattice-home/lattice-go/pkg/model"
)

// Demo cluster IDs, matching the inspect name tables.
const (
	clusterDeviceInfo = 40
	clusterOnOff      = 6
)

// buildDevice assembles the demo device: a device-info cluster on the
// root endpoint and a smart outlet with an onoff cluster on endpoint 1.
func buildDevice() (*model.Device, error) {
	device := model.NewDevice("lattice-node-001", 0xFFF1, 0x0001)
	device.RootEndpoint().AddCluster(newDeviceInfoCluster())

	outlet := model.NewEndpoint(1, "outlet")
	outlet.AddCluster(newOnOffCluster())
	if err := device.AddEndpoint(outlet); err != nil {
		return nil, err
	}
	return device, nil
}

func newDeviceInfoCluster() *model.Cluster {
	c := model.NewCluster(clusterDeviceInfo, "deviceinfo", 1)
	c.AddAttribute(model.NewAttribute(&model.AttributeMetadata{
		ID:      0,
		Name:    "vendorName",
		Type:    model.DataTypeString,
		Access:  model.AccessReadOnly,
		Default: "Lattice Home",
	}))
	c.AddAttribute(model.NewAttribute(&model.AttributeMetadata{
		ID:      1,
		Name:    "productName",
		Type:    model.DataTypeString,
		Access:  model.AccessReadOnly,
		Default: "Node Simulator",
	}))
	c.AddAttribute(model.NewAttribute(&model.AttributeMetadata{
		ID:      2,
		Name:    "serialNumber",
		Type:    model.DataTypeString,
		Access:  model.AccessReadOnly,
		Default: "SIM-000001",
	}))
	return c
}

func newOnOffCluster() *model.Cluster {
	c := model.NewCluster(clusterOnOff, "onoff", 1)
	c.AddAttribute(model.NewAttribute(&model.AttributeMetadata{
		ID:      0,
		Name:    "onOff",
		Type:    model.DataTypeBool,
		Access:  model.AccessReadWrite,
		Default: false,
	}))
	c.AddAttribute(model.NewAttribute(&model.AttributeMetadata{
		ID:       1,
		Name:     "level",
		Type:     model.DataTypeUint8,
		Access:   model.AccessReadWrite,
		MinValue: 0,
		MaxValue: 100,
		Default:  uint8(0),
		Unit:     "%",
	}))

	c.AddCommand(model.NewCommand(&model.CommandMetadata{
		ID:          1,
		Name:        "toggle",
		Description: "Flip the onOff attribute",
	}, func(ctx context.Context, params map[string]any) (map[string]any, error) {
		current, err := c.ReadAttribute(0)
		if err != nil {
			return nil, err
		}
		next := current != true
		if err := c.SetAttributeInternal(0, next); err != nil {
			return nil, err
		}
		return map[string]any{"onOff": next}, nil
	}))

	c.AddCommand(model.NewCommand(&model.CommandMetadata{
		ID:          2,
		Name:        "setLevel",
		Description: "Set the level attribute",
		Parameters: []model.ParameterMetadata{
			{Name: "level", Type: model.DataTypeUint8, Required: true},
		},
	}, func(ctx context.Context, params map[string]any) (map[string]any, error) {
		level, err := levelParam(params["level"])
		if err != nil {
			return nil, err
		}
		if err := c.SetAttributeInternal(1, level); err != nil {
			return nil, err
		}
		return map[string]any{"level": level}, nil
	}))

	return c
}

// levelParam normalizes the decoded level argument; CBOR and YAML
// produce different integer types.
func levelParam(v any) (uint8, error) {
	switch n := v.(type) {
	case uint8:
		return n, nil
	case uint64:
		if n > 100 {
			return 0, fmt.Errorf("%w: level %d out of range", model.ErrInvalidParameters, n)
		}
		return uint8(n), nil
	case int:
		if n < 0 || n > 100 {
			return 0, fmt.Errorf("%w: level %d out of range", model.ErrInvalidParameters, n)
		}
		return uint8(n), nil
	case int64:
		if n < 0 || n > 100 {
			return 0, fmt.Errorf("%w: level %d out of range", model.ErrInvalidParameters, n)
		}
		return uint8(n), nil
	default:
		return 0, fmt.Errorf("%w: level must be an integer, got %T", model.ErrInvalidParameters, v)
	}
}
