package param

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// QueueError is the error type returned by PeerMessageQueue operations. It
// carries a gRPC status code so a transport layer sitting in front of the
// queue can propagate rejections to a client without a separate
// translation table: any error returned by the queue already satisfies the
// interface status.FromError looks for.
type QueueError struct {
	code codes.Code
	msg  string
}

func newQueueError(code codes.Code, msg string) *QueueError {
	return &QueueError{code: code, msg: msg}
}

func (e *QueueError) Error() string {
	return e.msg
}

// GRPCStatus implements the interface used by google.golang.org/grpc/status
// to recover a *status.Status from an arbitrary error.
func (e *QueueError) GRPCStatus() *status.Status {
	return status.New(e.code, e.msg)
}

var (
	// ErrServiceUnavailable is returned by AppendOperation when admission
	// control refuses an op: neither direct admission, opportunistic
	// trimming, nor a soft-limit-headroom override could make room.
	ErrServiceUnavailable = newQueueError(codes.ResourceExhausted, "replication queue: service unavailable, admission refused")

	// ErrUnknownPeer is returned by RequestForPeer for an id that was never
	// tracked or has since been untracked.
	ErrUnknownPeer = newQueueError(codes.NotFound, "replication queue: unknown peer")

	// ErrDuplicatePeer is returned by TrackPeer for an id that is already
	// tracked.
	ErrDuplicatePeer = newQueueError(codes.AlreadyExists, "replication queue: peer already tracked")

	// ErrNotInitialized is returned by any operation other than Init when
	// the queue has not yet been initialized.
	ErrNotInitialized = newQueueError(codes.FailedPrecondition, "replication queue: not initialized")

	// ErrAlreadyInitialized is returned by Init when called more than once.
	ErrAlreadyInitialized = newQueueError(codes.FailedPrecondition, "replication queue: already initialized")
)
