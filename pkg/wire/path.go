package wire

import (
	"fmt"
	"strings"
)

// AttrPath addresses one attribute slot, or a set of them when fields are
// left nil (wildcard). Request filters may use wildcards; paths inside
// report elements and resume paths are always concrete.
//
// CBOR encoding:
//
//	{
//	  1: endpointId,   // uint8, absent = wildcard
//	  2: clusterId,    // uint8, absent = wildcard
//	  3: attributeId   // uint16, absent = wildcard
//	}
type AttrPath struct {
	Endpoint  *EndpointID  `cbor:"1,keyasint,omitempty"`
	Cluster   *ClusterID   `cbor:"2,keyasint,omitempty"`
	Attribute *AttributeID `cbor:"3,keyasint,omitempty"`
}

// ConcreteAttrPath returns a fully specified attribute path.
func ConcreteAttrPath(ep EndpointID, cl ClusterID, attr AttributeID) AttrPath {
	return AttrPath{Endpoint: &ep, Cluster: &cl, Attribute: &attr}
}

// IsConcrete returns true if no field is a wildcard.
func (p AttrPath) IsConcrete() bool {
	return p.Endpoint != nil && p.Cluster != nil && p.Attribute != nil
}

// Matches returns true if the path filter matches the given concrete slot.
// Nil fields match anything.
func (p AttrPath) Matches(ep EndpointID, cl ClusterID, attr AttributeID) bool {
	if p.Endpoint != nil && *p.Endpoint != ep {
		return false
	}
	if p.Cluster != nil && *p.Cluster != cl {
		return false
	}
	if p.Attribute != nil && *p.Attribute != attr {
		return false
	}
	return true
}

// Equal returns true if both paths name the same filter.
func (p AttrPath) Equal(other AttrPath) bool {
	return eqRef(p.Endpoint, other.Endpoint) &&
		eqRef(p.Cluster, other.Cluster) &&
		eqRef(p.Attribute, other.Attribute)
}

// String formats the path as "endpoint/cluster/attribute" with "*" for
// wildcard fields, e.g. "1/6/0" or "*/6/*".
func (p AttrPath) String() string {
	var b strings.Builder
	writeRef(&b, p.Endpoint)
	b.WriteByte('/')
	writeRef(&b, p.Cluster)
	b.WriteByte('/')
	writeRef(&b, p.Attribute)
	return b.String()
}

// CmdPath addresses one command slot, with the same wildcard rules as
// AttrPath.
//
// CBOR encoding:
//
//	{
//	  1: endpointId,   // uint8, absent = wildcard
//	  2: clusterId,    // uint8, absent = wildcard
//	  3: commandId     // uint8, absent = wildcard
//	}
type CmdPath struct {
	Endpoint *EndpointID `cbor:"1,keyasint,omitempty"`
	Cluster  *ClusterID  `cbor:"2,keyasint,omitempty"`
	Command  *CommandID  `cbor:"3,keyasint,omitempty"`
}

// ConcreteCmdPath returns a fully specified command path.
func ConcreteCmdPath(ep EndpointID, cl ClusterID, cmd CommandID) CmdPath {
	return CmdPath{Endpoint: &ep, Cluster: &cl, Command: &cmd}
}

// IsConcrete returns true if no field is a wildcard.
func (p CmdPath) IsConcrete() bool {
	return p.Endpoint != nil && p.Cluster != nil && p.Command != nil
}

// Matches returns true if the path filter matches the given concrete slot.
func (p CmdPath) Matches(ep EndpointID, cl ClusterID, cmd CommandID) bool {
	if p.Endpoint != nil && *p.Endpoint != ep {
		return false
	}
	if p.Cluster != nil && *p.Cluster != cl {
		return false
	}
	if p.Command != nil && *p.Command != cmd {
		return false
	}
	return true
}

// Equal returns true if both paths name the same filter.
func (p CmdPath) Equal(other CmdPath) bool {
	return eqRef(p.Endpoint, other.Endpoint) &&
		eqRef(p.Cluster, other.Cluster) &&
		eqRef(p.Command, other.Command)
}

// String formats the path as "endpoint/cluster/command" with "*" for
// wildcard fields.
func (p CmdPath) String() string {
	var b strings.Builder
	writeRef(&b, p.Endpoint)
	b.WriteByte('/')
	writeRef(&b, p.Cluster)
	b.WriteByte('/')
	writeRef(&b, p.Command)
	return b.String()
}

func eqRef[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func writeRef[T ~uint8 | ~uint16](b *strings.Builder, v *T) {
	if v == nil {
		b.WriteByte('*')
		return
	}
	fmt.Fprintf(b, "%d", *v)
}
