package acl

import (
	"slices"

	"github.com/lattice-home/lattice-go/pkg/wire"
)

// Target restricts an entry to a set of endpoint/cluster pairs.
// A nil field is a wildcard matching any value.
type Target struct {
	Endpoint *wire.EndpointID
	Cluster  *wire.ClusterID
}

// Matches returns true if the target covers the given slot.
func (t Target) Matches(ep wire.EndpointID, cl wire.ClusterID) bool {
	if t.Endpoint != nil && *t.Endpoint != ep {
		return false
	}
	if t.Cluster != nil && *t.Cluster != cl {
		return false
	}
	return true
}

// Entry grants a privilege to a set of subjects over a set of targets.
// An empty Subjects list matches every subject; an empty Targets list
// matches every endpoint/cluster pair.
type Entry struct {
	// Subjects are the peer identities this entry applies to.
	Subjects []string

	// Privilege is the access level granted.
	Privilege Privilege

	// Targets are the endpoint/cluster pairs this entry covers.
	Targets []Target
}

// AppliesTo returns true if the entry covers the subject and slot.
func (e Entry) AppliesTo(subject string, ep wire.EndpointID, cl wire.ClusterID) bool {
	if len(e.Subjects) > 0 && !slices.Contains(e.Subjects, subject) {
		return false
	}
	if len(e.Targets) == 0 {
		return true
	}
	for _, t := range e.Targets {
		if t.Matches(ep, cl) {
			return true
		}
	}
	return false
}
