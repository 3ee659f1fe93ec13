package acl

import (
	"errors"

	"github.com/lattice-home/lattice-go/pkg/wire"
)

// Accessor errors.
var (
	ErrNilSession   = errors.New("nil session")
	ErrEmptySubject = errors.New("session has no subject")
)

// Session is the authenticated peer of one exchange, as established by
// the transport layer. The subject identity is typically derived from
// the peer certificate fingerprint.
type Session interface {
	// SubjectID returns the authenticated peer identity.
	SubjectID() string
}

// Accessor is the read-only authorization context for one interaction.
// It binds the session's subject to the ACL manager and is consulted
// per traversed item, never mutated.
type Accessor struct {
	subject string
	manager *Manager
}

// ForSession builds an accessor from a session and the ACL manager.
// Fails on a nil session or an empty subject; the dispatcher treats
// that as a structural error aborting the interaction.
func ForSession(s Session, m *Manager) (*Accessor, error) {
	if s == nil {
		return nil, ErrNilSession
	}
	subject := s.SubjectID()
	if subject == "" {
		return nil, ErrEmptySubject
	}
	return &Accessor{subject: subject, manager: m}, nil
}

// Subject returns the authenticated peer identity.
func (a *Accessor) Subject() string {
	return a.subject
}

// AllowsAttr returns true if the subject holds the required privilege
// over the attribute's endpoint/cluster. The path must be concrete.
func (a *Accessor) AllowsAttr(path wire.AttrPath, required Privilege) bool {
	if a.manager == nil || !path.IsConcrete() {
		return false
	}
	return a.manager.Grants(a.subject, *path.Endpoint, *path.Cluster, required)
}

// AllowsCmd returns true if the subject holds the required privilege
// over the command's endpoint/cluster. The path must be concrete.
func (a *Accessor) AllowsCmd(path wire.CmdPath, required Privilege) bool {
	if a.manager == nil || !path.IsConcrete() {
		return false
	}
	return a.manager.Grants(a.subject, *path.Endpoint, *path.Cluster, required)
}
