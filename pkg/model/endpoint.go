package model

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/lattice-home/lattice-go/pkg/wire"
)

// Endpoint errors.
var (
	ErrClusterNotFound  = errors.New("cluster not found")
	ErrEndpointNotFound = errors.New("endpoint not found")
)

// Endpoint represents a functional unit within a device.
type Endpoint struct {
	mu sync.RWMutex

	// ID is the endpoint identifier (0 is always the device root).
	id wire.EndpointID

	// Label is an optional human-readable label.
	label string

	// Clusters indexed by ID.
	clusters map[wire.ClusterID]*Cluster
}

// NewEndpoint creates a new endpoint.
func NewEndpoint(id wire.EndpointID, label string) *Endpoint {
	return &Endpoint{
		id:       id,
		label:    label,
		clusters: make(map[wire.ClusterID]*Cluster),
	}
}

// ID returns the endpoint ID.
func (e *Endpoint) ID() wire.EndpointID {
	return e.id
}

// Label returns the endpoint label.
func (e *Endpoint) Label() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.label
}

// SetLabel sets the endpoint label.
func (e *Endpoint) SetLabel(label string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.label = label
}

// AddCluster adds a cluster to the endpoint.
func (e *Endpoint) AddCluster(cluster *Cluster) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clusters[cluster.ID()] = cluster
}

// GetCluster returns a cluster by ID.
func (e *Endpoint) GetCluster(id wire.ClusterID) (*Cluster, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	cluster, exists := e.clusters[id]
	if !exists {
		return nil, ErrClusterNotFound
	}
	return cluster, nil
}

// HasCluster returns true if the endpoint has the given cluster.
func (e *Endpoint) HasCluster(id wire.ClusterID) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, exists := e.clusters[id]
	return exists
}

// Clusters returns all clusters on this endpoint.
func (e *Endpoint) Clusters() []*Cluster {
	e.mu.RLock()
	defer e.mu.RUnlock()

	result := make([]*Cluster, 0, len(e.clusters))
	for _, c := range e.clusters {
		result = append(result, c)
	}
	return result
}

// ClusterIDs returns the IDs of all clusters in ascending order.
func (e *Endpoint) ClusterIDs() []wire.ClusterID {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ids := make([]wire.ClusterID, 0, len(e.clusters))
	for id := range e.clusters {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ReadAttribute reads an attribute from a cluster.
func (e *Endpoint) ReadAttribute(cl wire.ClusterID, attr wire.AttributeID) (any, error) {
	cluster, err := e.GetCluster(cl)
	if err != nil {
		return nil, err
	}
	return cluster.ReadAttribute(attr)
}

// WriteAttribute writes an attribute to a cluster.
func (e *Endpoint) WriteAttribute(cl wire.ClusterID, attr wire.AttributeID, value any) error {
	cluster, err := e.GetCluster(cl)
	if err != nil {
		return err
	}
	return cluster.WriteAttribute(attr, value)
}

// InvokeCommand invokes a command on a cluster.
func (e *Endpoint) InvokeCommand(ctx context.Context, cl wire.ClusterID, cmd wire.CommandID, params map[string]any) (map[string]any, error) {
	cluster, err := e.GetCluster(cl)
	if err != nil {
		return nil, err
	}
	return cluster.InvokeCommand(ctx, cmd, params)
}
