// Package walog defines the write-ahead log collaborator the replication
// queue talks to: "append a batch, notify when durable". Persistence
// itself -- fsync policy, segment rotation, crash recovery -- is out of
// scope for the queue and lives here only far enough to exercise the
// interface with a realistic in-memory stand-in for tests and demos.
package walog

import (
	"sync"

	"github.com/xmh1011/replqueue/param"
)

// Appender is the durability callback a PeerMessageQueue optionally holds.
// AppendBatch must return immediately; the queue never waits on the
// returned channel before replying to its own caller. It exists so a
// proposer can, if it cares, wait for local durability separately from the
// queue's own admission decision.
type Appender interface {
	AppendBatch(ops []*param.ReplicateOp) <-chan error
}

// InMemory is a trivial Appender that keeps every appended op in a slice.
// It is not durable across process restarts; it exists for tests and for
// the demo CLI, where "durability" only needs to be observable, not real.
type InMemory struct {
	mu  sync.Mutex
	log []*param.ReplicateOp
}

// NewInMemory creates an empty in-memory log.
func NewInMemory() *InMemory {
	return &InMemory{}
}

// AppendBatch stores ops and reports success on an already-resolved
// channel: an in-memory log is durable the instant the write returns.
func (l *InMemory) AppendBatch(ops []*param.ReplicateOp) <-chan error {
	done := make(chan error, 1)

	l.mu.Lock()
	l.log = append(l.log, ops...)
	l.mu.Unlock()

	done <- nil
	close(done)
	return done
}

// Entries returns a snapshot of everything appended so far, in append
// order. Intended for tests that want to assert the queue actually
// notified the log.
func (l *InMemory) Entries() []*param.ReplicateOp {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*param.ReplicateOp, len(l.log))
	copy(out, l.log)
	return out
}
