package model

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/lattice-home/lattice-go/pkg/wire"
)

// Device errors.
var (
	ErrDuplicateEndpoint = errors.New("duplicate endpoint ID")
)

// Device represents a Lattice device with its endpoint hierarchy.
// It is the top-level container in the Device > Endpoint > Cluster model.
type Device struct {
	mu sync.RWMutex

	// DeviceID is the unique device identifier.
	deviceID string

	// VendorID identifies the device manufacturer.
	vendorID uint16

	// ProductID identifies the device product within the vendor.
	productID uint16

	// Endpoints indexed by ID.
	endpoints map[wire.EndpointID]*Endpoint
}

// NewDevice creates a new device with the given identity.
// Endpoint 0 (the device root) always exists.
func NewDevice(deviceID string, vendorID, productID uint16) *Device {
	d := &Device{
		deviceID:  deviceID,
		vendorID:  vendorID,
		productID: productID,
		endpoints: make(map[wire.EndpointID]*Endpoint),
	}

	d.endpoints[0] = NewEndpoint(0, "root")

	return d
}

// DeviceID returns the unique device identifier.
func (d *Device) DeviceID() string {
	return d.deviceID
}

// VendorID returns the vendor identifier.
func (d *Device) VendorID() uint16 {
	return d.vendorID
}

// ProductID returns the product identifier.
func (d *Device) ProductID() uint16 {
	return d.productID
}

// RootEndpoint returns the device root endpoint (endpoint 0).
func (d *Device) RootEndpoint() *Endpoint {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.endpoints[0]
}

// AddEndpoint adds an endpoint to the device.
// Returns an error if an endpoint with the same ID already exists.
func (d *Device) AddEndpoint(endpoint *Endpoint) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.endpoints[endpoint.ID()]; exists {
		return ErrDuplicateEndpoint
	}

	d.endpoints[endpoint.ID()] = endpoint
	return nil
}

// GetEndpoint returns an endpoint by ID.
func (d *Device) GetEndpoint(id wire.EndpointID) (*Endpoint, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	endpoint, exists := d.endpoints[id]
	if !exists {
		return nil, ErrEndpointNotFound
	}
	return endpoint, nil
}

// Endpoints returns all endpoints on this device.
func (d *Device) Endpoints() []*Endpoint {
	d.mu.RLock()
	defer d.mu.RUnlock()

	result := make([]*Endpoint, 0, len(d.endpoints))
	for _, ep := range d.endpoints {
		result = append(result, ep)
	}
	return result
}

// EndpointIDs returns the IDs of all endpoints in ascending order.
func (d *Device) EndpointIDs() []wire.EndpointID {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ids := make([]wire.EndpointID, 0, len(d.endpoints))
	for id := range d.endpoints {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// EndpointCount returns the number of endpoints.
func (d *Device) EndpointCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.endpoints)
}

// GetCluster returns a cluster from a specific endpoint.
func (d *Device) GetCluster(ep wire.EndpointID, cl wire.ClusterID) (*Cluster, error) {
	endpoint, err := d.GetEndpoint(ep)
	if err != nil {
		return nil, err
	}
	return endpoint.GetCluster(cl)
}

// ReadAttribute reads an attribute from a specific endpoint and cluster.
func (d *Device) ReadAttribute(ep wire.EndpointID, cl wire.ClusterID, attr wire.AttributeID) (any, error) {
	cluster, err := d.GetCluster(ep, cl)
	if err != nil {
		return nil, err
	}
	return cluster.ReadAttribute(attr)
}

// WriteAttribute writes an attribute to a specific endpoint and cluster.
func (d *Device) WriteAttribute(ep wire.EndpointID, cl wire.ClusterID, attr wire.AttributeID, value any) error {
	cluster, err := d.GetCluster(ep, cl)
	if err != nil {
		return err
	}
	return cluster.WriteAttribute(attr, value)
}

// InvokeCommand invokes a command on a specific endpoint and cluster.
func (d *Device) InvokeCommand(ctx context.Context, ep wire.EndpointID, cl wire.ClusterID, cmd wire.CommandID, params map[string]any) (map[string]any, error) {
	cluster, err := d.GetCluster(ep, cl)
	if err != nil {
		return nil, err
	}
	return cluster.InvokeCommand(ctx, cmd, params)
}
