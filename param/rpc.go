package param

import "github.com/google/uuid"

// PeerID identifies a follower a leader replicates to. Peers are addressed
// by uuid rather than by network address or integer server id, so that the
// queue never needs to know how a per-peer worker resolves a peer to a
// transport endpoint.
type PeerID = uuid.UUID

// ReplicateRequest is what a per-peer worker sends to a follower on behalf
// of the leader. Ops is empty either because the peer isn't Synced yet
// (a probe request) or because it has already received everything the
// queue currently holds.
type ReplicateRequest struct {
	CallerTerm     uint64
	CommittedIndex OpId
	PrecedingID    OpId
	Ops            []*ReplicateOp
}

// ErrorCode enumerates the follower-reported errors the queue interprets.
type ErrorCode int

const (
	// ErrorCodeNone indicates the response carries no error.
	ErrorCodeNone ErrorCode = iota
	// ErrorCodePrecedingEntryDidntMatch is the sole error the queue acts on:
	// the follower's log at PrecedingID did not match the leader's.
	ErrorCodePrecedingEntryDidntMatch
)

// StatusKind distinguishes a successful append from a log-match refusal.
type StatusKind int

const (
	StatusSuccess StatusKind = iota
	StatusError
)

// ResponseStatus is the outcome a follower reports for one replication
// exchange.
type ResponseStatus struct {
	Kind         StatusKind
	ErrorCode    ErrorCode
	LastReceived OpId
}

// ReplicateResponse is what a per-peer worker reports back to the queue
// after a ReplicateRequest round-trip.
type ReplicateResponse struct {
	ResponderID   PeerID
	ResponderTerm uint64
	Status        ResponseStatus
}
