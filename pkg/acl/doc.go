// Package acl implements access control for the Lattice interaction layer.
//
// # Model
//
// Access is granted through entries. An entry names the subjects it
// applies to, the privilege it grants, and the endpoint/cluster targets
// it covers. Empty subject or target lists match everything.
//
// Privileges form a ladder: View < Operate < Manage < Admin. A granted
// privilege satisfies every requirement at or below it, so an Admin
// entry also allows reads that require View.
//
// # Evaluation
//
// The Manager holds the entry list and answers Grants queries. It is
// shared across sessions and safe for concurrent use.
//
// An Accessor is the per-interaction view: it binds one session's
// subject to the manager and is consulted once per traversed item.
// Accessors are cheap to construct and never outlive their interaction.
//
// # Policy Files
//
// Entry lists can be loaded from and saved to YAML policy files, the
// operator-facing representation used by tooling and tests.
package acl
