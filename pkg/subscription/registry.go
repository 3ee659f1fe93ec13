package subscription

import (
	"errors"
	"sync"
	"time"

	"github.com/lattice-home/lattice-go/pkg/wire"
)

// Registry errors.
var (
	ErrDuplicateID          = errors.New("duplicate subscription ID")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

// Subscription is one established subscription: a subject watching a
// set of attribute path filters.
type Subscription struct {
	// ID is the node-allocated subscription identifier.
	ID wire.SubscriptionID

	// Subject is the subscriber's authenticated identity.
	Subject string

	// Paths are the attribute path filters; wildcards stay wildcards,
	// changed attributes are matched against them.
	Paths []wire.AttrPath

	// MaxInterval is the announced ceiling, in seconds, between forced
	// reports.
	MaxInterval uint32

	// EstablishedAt is when the establishment element was sent.
	EstablishedAt time.Time
}

// matches reports whether a change to the given attribute slot falls
// under any of the subscription's filters.
func (s *Subscription) matches(ep wire.EndpointID, cl wire.ClusterID, attr wire.AttributeID) bool {
	for _, p := range s.Paths {
		if p.Matches(ep, cl, attr) {
			return true
		}
	}
	return false
}

// Registry holds the established subscriptions of a node. Safe for
// concurrent use.
type Registry struct {
	mu sync.RWMutex

	// Active subscriptions by ID
	subscriptions map[wire.SubscriptionID]*Subscription

	// Index by subject for connection teardown
	bySubject map[string][]*Subscription
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		subscriptions: make(map[wire.SubscriptionID]*Subscription),
		bySubject:     make(map[string][]*Subscription),
	}
}

// Add records an established subscription. The id must be fresh; the
// dispatcher's allocator never repeats ids, so ErrDuplicateID indicates
// a caller registering the same establishment twice.
func (r *Registry) Add(sub *Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.subscriptions[sub.ID]; exists {
		return ErrDuplicateID
	}
	r.subscriptions[sub.ID] = sub
	r.bySubject[sub.Subject] = append(r.bySubject[sub.Subject], sub)
	return nil
}

// Remove deletes one subscription.
func (r *Registry) Remove(id wire.SubscriptionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, exists := r.subscriptions[id]
	if !exists {
		return ErrSubscriptionNotFound
	}
	delete(r.subscriptions, id)
	r.removeFromSubject(sub)
	return nil
}

// removeFromSubject drops sub from the subject index. Caller holds the lock.
func (r *Registry) removeFromSubject(sub *Subscription) {
	subs := r.bySubject[sub.Subject]
	for i, s := range subs {
		if s.ID == sub.ID {
			r.bySubject[sub.Subject] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(r.bySubject[sub.Subject]) == 0 {
		delete(r.bySubject, sub.Subject)
	}
}

// Get returns the subscription with the given id.
func (r *Registry) Get(id wire.SubscriptionID) (*Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub, exists := r.subscriptions[id]
	if !exists {
		return nil, ErrSubscriptionNotFound
	}
	return sub, nil
}

// BySubject returns all subscriptions held by one subject.
func (r *Registry) BySubject(subject string) []*Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subs := r.bySubject[subject]
	out := make([]*Subscription, len(subs))
	copy(out, subs)
	return out
}

// Matching returns the subscriptions covering a change to the given
// attribute slot.
func (r *Registry) Matching(ep wire.EndpointID, cl wire.ClusterID, attr wire.AttributeID) []*Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Subscription
	for _, sub := range r.subscriptions {
		if sub.matches(ep, cl, attr) {
			out = append(out, sub)
		}
	}
	return out
}

// DropSubject removes all subscriptions of one subject, returning how
// many were removed. Called on connection loss.
func (r *Registry) DropSubject(subject string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs := r.bySubject[subject]
	for _, sub := range subs {
		delete(r.subscriptions, sub.ID)
	}
	delete(r.bySubject, subject)
	return len(subs)
}

// Count returns the number of active subscriptions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subscriptions)
}
