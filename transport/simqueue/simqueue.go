// Package simqueue simulates the network layer between a leader's
// replication queue and its followers, in the same spirit as the reference
// pack's in-memory transport: peers are resolved to direct in-process
// implementations instead of dialed over a socket, so a demo or test can
// drive the full RequestForPeer/ResponseFromPeer exchange without any
// actual RPC plumbing.
package simqueue

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/xmh1011/replqueue/param"
)

// Follower is a simulated follower log driven purely by the requests a
// worker sends it. Implementations decide whether an incoming request's
// PrecedingID matches their own log tail, and apply or reject accordingly.
type Follower interface {
	Replicate(req *param.ReplicateRequest) *param.ReplicateResponse
}

// InMemoryFollower is a Follower backed by an in-process slice, exercising
// the same log-matching property a real follower enforces: an append is
// only accepted if PrecedingID matches the follower's own last entry.
type InMemoryFollower struct {
	mu   sync.Mutex
	id   param.PeerID
	term uint64
	log  []*param.ReplicateOp
}

// NewInMemoryFollower creates a follower identified by id, starting with an
// empty log at the given term.
func NewInMemoryFollower(id param.PeerID, term uint64) *InMemoryFollower {
	return &InMemoryFollower{id: id, term: term}
}

// Replicate implements Follower.
func (f *InMemoryFollower) Replicate(req *param.ReplicateRequest) *param.ReplicateResponse {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.logMatches(req.PrecedingID) {
		return &param.ReplicateResponse{
			ResponderID:   f.id,
			ResponderTerm: f.term,
			Status: param.ResponseStatus{
				Kind:         param.StatusError,
				ErrorCode:    param.ErrorCodePrecedingEntryDidntMatch,
				LastReceived: f.lastID(),
			},
		}
	}

	f.log = append(f.log, req.Ops...)

	return &param.ReplicateResponse{
		ResponderID:   f.id,
		ResponderTerm: f.term,
		Status: param.ResponseStatus{
			Kind:         param.StatusSuccess,
			LastReceived: f.lastID(),
		},
	}
}

func (f *InMemoryFollower) logMatches(preceding param.OpId) bool {
	return f.lastID() == preceding
}

func (f *InMemoryFollower) lastID() param.OpId {
	if len(f.log) == 0 {
		return param.MinOpID
	}
	return f.log[len(f.log)-1].Id
}

// Len reports how many ops the follower has accepted, for tests and demo
// output.
func (f *InMemoryFollower) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.log)
}

// LeaderQueue is the subset of PeerMessageQueue a Worker needs. It exists
// so tests can drive a Worker against a hand-built stub instead of a full
// queue.PeerMessageQueue.
type LeaderQueue interface {
	RequestForPeer(id param.PeerID) (*param.ReplicateRequest, error)
	ResponseFromPeer(resp *param.ReplicateResponse) (bool, error)
}

// Worker repeatedly pulls a batch for one peer from a LeaderQueue, applies
// it to a Follower, and reports the response back, looping immediately
// while more data is pending and idling on a poll interval otherwise --
// the same request/apply/respond cycle a real per-peer RPC client runs,
// minus the network.
type Worker struct {
	id       param.PeerID
	queue    LeaderQueue
	follower Follower
	interval time.Duration
	log      zerolog.Logger
}

// NewWorker creates a Worker for peer id. When idle (no more pending data)
// it polls at interval; a zero interval defaults to 10ms.
func NewWorker(id param.PeerID, queue LeaderQueue, follower Follower, interval time.Duration, log zerolog.Logger) *Worker {
	if interval <= 0 {
		interval = 10 * time.Millisecond
	}
	return &Worker{id: id, queue: queue, follower: follower, interval: interval, log: log}
}

// Run drives the worker's loop until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		more, err := w.step()
		if err != nil {
			w.log.Warn().Err(err).Stringer("peer", w.id).Msg("replication step failed")
			more = false
		}

		if more {
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.interval):
		}
	}
}

// step runs one request/apply/respond cycle and reports whether the peer
// has more data pending.
func (w *Worker) step() (bool, error) {
	req, err := w.queue.RequestForPeer(w.id)
	if err != nil {
		return false, err
	}

	resp := w.follower.Replicate(req)

	more, err := w.queue.ResponseFromPeer(resp)
	if err != nil {
		return false, err
	}
	return more, nil
}
