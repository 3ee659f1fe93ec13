package interaction

import (
	"github.com/google/uuid"

	"github.com/lattice-home/lattice-go/pkg/acl"
)

// Transaction is the per-exchange context dispatch runs under: the
// authenticated session the interaction arrived on, an exchange id for
// correlation, and the pending resumed interaction the transport must
// replay when a response was partial.
//
// A transaction belongs to one exchange and is not shared between
// goroutines.
type Transaction struct {
	exchangeID string
	session    acl.Session
	resume     Interaction
}

// NewTransaction creates a transaction for one exchange on the given
// session.
func NewTransaction(session acl.Session) *Transaction {
	return &Transaction{
		exchangeID: uuid.New().String(),
		session:    session,
	}
}

// ExchangeID returns the unique exchange identifier.
func (t *Transaction) ExchangeID() string {
	return t.exchangeID
}

// Session returns the session the interaction arrived on.
func (t *Transaction) Session() acl.Session {
	return t.session
}

// Resume returns the interaction the transport must dispatch next to
// continue a partial response, or nil when the exchange is complete.
func (t *Transaction) Resume() Interaction {
	return t.resume
}

func (t *Transaction) setResume(i Interaction) {
	t.resume = i
}
