package interaction

import (
	"sync/atomic"

	"github.com/lattice-home/lattice-go/pkg/wire"
)

// SubscriptionIDs allocates subscription identifiers for established
// subscriptions. Each Next call returns a new id; ids are never reused
// within the lifetime of the allocator, so every established
// subscription on a node is distinguishable.
//
// The zero value is ready to use. One allocator is shared by reference
// across all dispatchers of a node; it is owned by the embedding
// runtime, not by this package.
type SubscriptionIDs struct {
	last atomic.Uint32
}

// Next returns a fresh subscription id. The first id is 1; zero is
// never returned. Safe for concurrent use.
func (s *SubscriptionIDs) Next() wire.SubscriptionID {
	return wire.SubscriptionID(s.last.Add(1))
}
