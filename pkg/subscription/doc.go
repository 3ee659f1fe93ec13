// Package subscription tracks established subscriptions on a node.
//
// The interaction dispatcher only allocates subscription ids and
// announces establishment; it does not store the association between
// subscriber and subscribed paths. The transport layer records that
// association here, consults Matching when an attribute changes to find
// the subscriptions to notify, and drops a subject's subscriptions when
// its connection goes away.
package subscription
