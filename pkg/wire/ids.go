package wire

// EndpointID identifies an endpoint within a device.
// Endpoint 0 is always the device root.
type EndpointID uint8

// ClusterID identifies a cluster within an endpoint.
type ClusterID uint8

// AttributeID identifies an attribute within a cluster.
type AttributeID uint16

// CommandID identifies a command within a cluster.
type CommandID uint8

// SubscriptionID identifies an established subscription. IDs are issued
// from a monotonically increasing counter starting at 1 and are never
// reused for the life of the process. 0 is reserved (never issued).
type SubscriptionID uint32
