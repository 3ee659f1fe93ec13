package model

import (
	"context"
	"slices"
	"sync"

	"github.com/lattice-home/lattice-go/pkg/wire"
)

// Cluster represents a cluster instance containing attributes and commands.
type Cluster struct {
	mu sync.RWMutex

	// ID is the cluster identifier.
	id wire.ClusterID

	// Name is the human-readable cluster name.
	name string

	// Revision is the cluster implementation revision.
	revision uint16

	// Attributes indexed by ID.
	attributes map[wire.AttributeID]*Attribute

	// Commands indexed by ID.
	commands map[wire.CommandID]*Command

	// Observers for change notifications.
	observers []ClusterObserver
}

// ClusterObserver is notified when attributes change.
type ClusterObserver interface {
	// OnAttributeChanged is called after an attribute value changes.
	OnAttributeChanged(cl wire.ClusterID, attr wire.AttributeID, value any)
}

// NewCluster creates a new cluster with the given identity.
func NewCluster(id wire.ClusterID, name string, revision uint16) *Cluster {
	c := &Cluster{
		id:         id,
		name:       name,
		revision:   revision,
		attributes: make(map[wire.AttributeID]*Attribute),
		commands:   make(map[wire.CommandID]*Command),
	}

	c.addGlobalAttributes()

	return c
}

// addGlobalAttributes adds the standard global attributes.
func (c *Cluster) addGlobalAttributes() {
	// clusterRevision
	c.attributes[AttrIDClusterRevision] = NewAttribute(&AttributeMetadata{
		ID:          AttrIDClusterRevision,
		Name:        "clusterRevision",
		Type:        DataTypeUint16,
		Access:      AccessReadOnly,
		Description: "Cluster implementation revision",
		Default:     c.revision,
	})

	// attributeList (dynamically computed)
	c.attributes[AttrIDAttributeList] = NewAttribute(&AttributeMetadata{
		ID:          AttrIDAttributeList,
		Name:        "attributeList",
		Type:        DataTypeArray,
		Access:      AccessRead,
		Description: "List of supported attribute IDs",
	})

	// commandList (dynamically computed)
	c.attributes[AttrIDCommandList] = NewAttribute(&AttributeMetadata{
		ID:          AttrIDCommandList,
		Name:        "commandList",
		Type:        DataTypeArray,
		Access:      AccessRead,
		Description: "List of supported command IDs",
	})
}

// ID returns the cluster ID.
func (c *Cluster) ID() wire.ClusterID {
	return c.id
}

// Name returns the cluster name.
func (c *Cluster) Name() string {
	return c.name
}

// Revision returns the cluster revision.
func (c *Cluster) Revision() uint16 {
	return c.revision
}

// AddAttribute adds an attribute to the cluster.
func (c *Cluster) AddAttribute(attr *Attribute) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attributes[attr.ID()] = attr
}

// GetAttribute returns an attribute by ID.
func (c *Cluster) GetAttribute(id wire.AttributeID) (*Attribute, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	attr, exists := c.attributes[id]
	if !exists {
		return nil, ErrAttributeNotFound
	}
	return attr, nil
}

// ReadAttribute reads an attribute value by ID.
func (c *Cluster) ReadAttribute(id wire.AttributeID) (any, error) {
	// Handle dynamic attributes
	if id == AttrIDAttributeList {
		return c.AttributeList(), nil
	}
	if id == AttrIDCommandList {
		return c.CommandList(), nil
	}

	attr, err := c.GetAttribute(id)
	if err != nil {
		return nil, err
	}

	if !attr.Metadata().Access.CanRead() {
		return nil, ErrAttributeNotReadable
	}

	return attr.Value(), nil
}

// WriteAttribute writes an attribute value by ID.
// Global attributes are never writable.
func (c *Cluster) WriteAttribute(id wire.AttributeID, value any) error {
	if id >= AttrIDGlobalBase {
		return ErrAttributeNotWritable
	}

	attr, err := c.GetAttribute(id)
	if err != nil {
		return err
	}

	if err := attr.SetValue(value); err != nil {
		return err
	}

	c.notifyAttributeChanged(id, value)

	return nil
}

// SetAttributeInternal sets an attribute value without checking write
// access. Used by device implementations to update read-only
// attributes (e.g., measurements).
func (c *Cluster) SetAttributeInternal(id wire.AttributeID, value any) error {
	if id >= AttrIDGlobalBase {
		return ErrAttributeNotWritable
	}

	attr, err := c.GetAttribute(id)
	if err != nil {
		return err
	}

	if err := attr.SetValueInternal(value); err != nil {
		return err
	}

	c.notifyAttributeChanged(id, value)

	return nil
}

// AttributeIDs returns all attribute IDs in ascending order.
func (c *Cluster) AttributeIDs() []wire.AttributeID {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]wire.AttributeID, 0, len(c.attributes))
	for id := range c.attributes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// AttributeList returns the IDs of all readable attributes in
// ascending order, the value of the attributeList global attribute.
func (c *Cluster) AttributeList() []wire.AttributeID {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]wire.AttributeID, 0, len(c.attributes))
	for id, attr := range c.attributes {
		if attr.Metadata().Access.CanRead() {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// AddCommand adds a command to the cluster.
func (c *Cluster) AddCommand(cmd *Command) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commands[cmd.ID()] = cmd
}

// GetCommand returns a command by ID.
func (c *Cluster) GetCommand(id wire.CommandID) (*Command, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cmd, exists := c.commands[id]
	if !exists {
		return nil, ErrCommandNotFound
	}
	return cmd, nil
}

// InvokeCommand invokes a command by ID.
func (c *Cluster) InvokeCommand(ctx context.Context, id wire.CommandID, params map[string]any) (map[string]any, error) {
	cmd, err := c.GetCommand(id)
	if err != nil {
		return nil, err
	}
	return cmd.Invoke(ctx, params)
}

// CommandIDs returns all command IDs in ascending order.
func (c *Cluster) CommandIDs() []wire.CommandID {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]wire.CommandID, 0, len(c.commands))
	for id := range c.commands {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// CommandList returns the command IDs in ascending order, the value of
// the commandList global attribute.
func (c *Cluster) CommandList() []wire.CommandID {
	return c.CommandIDs()
}

// Observe adds an observer for change notifications.
func (c *Cluster) Observe(obs ClusterObserver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, obs)
}

// Unobserve removes an observer.
func (c *Cluster) Unobserve(obs ClusterObserver) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, o := range c.observers {
		if o == obs {
			c.observers = append(c.observers[:i], c.observers[i+1:]...)
			return
		}
	}
}

// notifyAttributeChanged notifies all observers of an attribute change.
func (c *Cluster) notifyAttributeChanged(attrID wire.AttributeID, value any) {
	c.mu.RLock()
	obs := make([]ClusterObserver, len(c.observers))
	copy(obs, c.observers)
	c.mu.RUnlock()

	for _, o := range obs {
		o.OnAttributeChanged(c.id, attrID, value)
	}
}
