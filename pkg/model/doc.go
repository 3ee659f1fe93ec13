// Package model implements the Lattice device object model and its
// interaction traversal.
//
// # Hierarchy
//
// Lattice uses a 3-level hierarchy:
//
//	Device > Endpoint > Cluster
//
// A Device represents one physical or logical device. Endpoints are its
// functional units (endpoint 0 is always the device root). Clusters
// group related attributes and commands.
//
// # Addressing
//
// Resources are addressed by the tuple:
//
//	(EndpointID, ClusterID, AttributeID) for attributes
//	(EndpointID, ClusterID, CommandID) for commands
//
// Every cluster carries the global attributes clusterRevision,
// attributeList and commandList; the lists are computed dynamically.
//
// # Traversal
//
// Node wraps a Device and turns interaction requests into lazy,
// access-controlled item sequences. One traversal method exists per
// interaction kind; each yields items in a deterministic order
// (endpoints, clusters, attributes ascending), which is what makes
// chunked responses resumable: a resume path names an item, and the
// resumed traversal re-yields from exactly that item.
//
// Wildcard filters expand only to slots the requester may access;
// concrete filters that fail resolution or access control yield items
// carrying a per-item status instead, so one bad path never aborts the
// rest of a request.
package model
