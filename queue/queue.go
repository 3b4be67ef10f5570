// Package queue implements the leader-side replication queue of a
// Raft-style consensus module: the in-memory staging buffer a leader uses
// to accept proposed operations, serve per-follower batches paced to each
// follower's progress, aggregate acknowledgments into a committed index,
// and bound its own memory footprint under load.
package queue

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/xmh1011/replqueue/config"
	"github.com/xmh1011/replqueue/memacct"
	"github.com/xmh1011/replqueue/metrics"
	"github.com/xmh1011/replqueue/param"
	"github.com/xmh1011/replqueue/walog"
)

// PeerMessageQueue is the Coordinator described by the design: it owns the
// operation buffer, the peer tracker, and a local memory accountant, and
// mediates between proposers, per-peer workers, and the enclosing
// consensus module. Every exported method except QueuedBytes and Metrics,
// which only read atomic counters, holds a single mutex for its entire
// critical section; none of them block on I/O.
type PeerMessageQueue struct {
	mu sync.Mutex

	initialized  bool
	currentTerm  uint64
	majoritySize int

	committedIndex    param.OpId
	nextIndexToAppend uint64

	buffer  *operationBuffer
	tracker *peerTracker

	localAcct *memacct.Accountant
	cfg       config.Config

	notifier    ConsensusNotifier
	logAppender walog.Appender
	metrics     *metrics.Collector
	log         zerolog.Logger
}

// Option customizes a PeerMessageQueue at construction time.
type Option func(*PeerMessageQueue)

// WithConsensusNotifier registers the enclosing consensus module. Without
// this option the queue uses NoopNotifier.
func WithConsensusNotifier(n ConsensusNotifier) Option {
	return func(q *PeerMessageQueue) { q.notifier = n }
}

// WithLogAppender registers the write-ahead log durability callback. It is
// optional; a nil appender means the queue never calls out for durability.
func WithLogAppender(a walog.Appender) Option {
	return func(q *PeerMessageQueue) { q.logAppender = a }
}

// WithMetrics registers a metrics.Collector. Without this option the queue
// allocates its own.
func WithMetrics(m *metrics.Collector) Option {
	return func(q *PeerMessageQueue) { q.metrics = m }
}

// WithLogger overrides the queue's zerolog.Logger. Without this option the
// queue logs nothing (zerolog.Nop()).
func WithLogger(l zerolog.Logger) Option {
	return func(q *PeerMessageQueue) { q.log = l }
}

// New constructs a PeerMessageQueue bound to localAcct, which the caller
// typically chains to a process-wide parent accountant shared across every
// queue in the process. The queue is unusable until Init is called.
func New(cfg config.Config, localAcct *memacct.Accountant, opts ...Option) *PeerMessageQueue {
	q := &PeerMessageQueue{
		cfg:       cfg,
		localAcct: localAcct,
		tracker:   newPeerTracker(),
		notifier:  NoopNotifier{},
		metrics:   metrics.NewCollector(),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Init establishes the queue's starting state: the OpId immediately
// preceding the first operation this leader will ever append, the leader's
// current term, and the quorum size used by the commit calculator.
// majoritySize is defined over the tracked-peer set itself; the leader is
// not counted as a separate voter. It must be called exactly once before
// any other method.
func (q *PeerMessageQueue) Init(precedingOp param.OpId, term uint64, majoritySize int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.initialized {
		return param.ErrAlreadyInitialized
	}

	q.initialized = true
	q.currentTerm = term
	q.majoritySize = majoritySize
	q.committedIndex = param.MinOpID
	q.nextIndexToAppend = precedingOp.Index + 1
	q.buffer = newOperationBuffer(precedingOp)

	q.log.Info().
		Uint64("term", term).
		Int("majority", majoritySize).
		Stringer("preceding", precedingOp).
		Msg("replication queue initialized")

	return nil
}

// TrackPeer begins replicating to id, seeding its cursor at the OpId
// immediately preceding the buffer's first live entry: the OpId passed to
// Init until a prefix has been trimmed, and the last trimmed OpId after
// that. The cursor is not reset to Init's OpId once a trim has happened.
// The peer starts unsynced: the first
// RequestForPeer for it returns zero ops until a response confirms or
// corrects the log-matching preceding entry.
func (q *PeerMessageQueue) TrackPeer(id param.PeerID) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.requireInitialized(); err != nil {
		return err
	}

	if !q.tracker.track(id, q.buffer.basePrecedingID) {
		return param.ErrDuplicatePeer
	}

	q.log.Debug().Stringer("peer", id).Msg("tracking peer")
	return nil
}

// UntrackPeer stops replicating to id and recomputes the commit index as a
// defensive measure: with majoritySize fixed at Init, dropping a voter from
// the tracked set can only leave the majority position the same or worse,
// never better, so the recompute can never advance the commit index -- it
// exists so the committed index still reflects exactly the tracked set that
// remains. Untracking an id that was never tracked, or has already been
// untracked, is a no-op.
func (q *PeerMessageQueue) UntrackPeer(id param.PeerID) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.requireInitialized(); err != nil {
		return err
	}

	if _, ok := q.tracker.get(id); !ok {
		return nil
	}
	q.tracker.untrack(id)
	q.log.Debug().Stringer("peer", id).Msg("untracked peer")

	q.recomputeCommitLocked()
	return nil
}

// AppendOperation admits op into the buffer, subject to the memory
// admission policy: direct admission,
// opportunistic trimming of the acknowledged prefix, the empty-buffer
// single-message guarantee, and the soft-limit-with-headroom override, in
// that order. It never blocks on the optional log-append callback.
func (q *PeerMessageQueue) AppendOperation(op *param.ReplicateOp) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.requireInitialized(); err != nil {
		return err
	}

	sz := int64(op.Size())
	verdict, _ := q.localAcct.TryConsume(sz)
	if verdict != memacct.OK {
		q.attemptTrim()
		verdict, _ = q.localAcct.TryConsume(sz)
	}

	switch {
	case verdict == memacct.OK:
		// already charged by TryConsume
	case q.buffer.empty():
		q.localAcct.ForceConsume(sz)
	case verdict == memacct.SoftExceeded && !q.localAcct.WouldExceedLocalHard(sz):
		q.localAcct.ForceConsume(sz)
	default:
		q.metrics.RecordRejected()
		q.log.Warn().
			Stringer("op", op.Id).
			Int64("size", sz).
			Str("verdict", verdict.String()).
			Msg("append rejected: service unavailable")
		return param.ErrServiceUnavailable
	}

	q.buffer.append(op)
	q.nextIndexToAppend = op.Id.Index + 1
	q.metrics.RecordAppended()

	if q.logAppender != nil {
		q.logAppender.AppendBatch([]*param.ReplicateOp{op})
	}

	q.log.Debug().Stringer("op", op.Id).Int64("size", sz).Msg("op appended")
	return nil
}

// attemptTrim removes the longest acknowledged prefix from the buffer,
// releasing its accounted bytes. lo is 0 (trim nothing, since valid
// indices start at 1) when no peers are tracked, since there is then no
// safe watermark to trim against.
func (q *PeerMessageQueue) attemptTrim() {
	lo, ok := q.tracker.minLastReceivedIndex()
	if !ok {
		lo = 0
	}

	before := len(q.buffer.ops)
	released := q.buffer.trimPrefixUpTo(lo)
	trimmed := before - len(q.buffer.ops)
	if trimmed > 0 {
		q.localAcct.Release(released)
		q.metrics.RecordTrim(trimmed, released)
		q.log.Debug().Int("count", trimmed).Int64("bytes", released).Msg("trimmed acknowledged prefix")
	}
}

// RequestForPeer builds the next replication batch for id. An unsynced
// peer gets a probe request with no ops. A synced peer gets the ops after
// its cursor, up to MaxBatchSizeBytes: the first of them is always
// included even if it alone exceeds that budget, and no op follows one
// that takes the batch over it.
func (q *PeerMessageQueue) RequestForPeer(id param.PeerID) (*param.ReplicateRequest, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.requireInitialized(); err != nil {
		return nil, err
	}

	cursor, ok := q.tracker.get(id)
	if !ok {
		return nil, param.ErrUnknownPeer
	}

	req := &param.ReplicateRequest{
		CallerTerm:     q.currentTerm,
		CommittedIndex: q.committedIndex,
		PrecedingID:    cursor.lastReceived,
	}

	if !cursor.synced {
		return req, nil
	}

	eligible := q.buffer.opsAfter(cursor.lastReceived.Index)
	var total int64
	for _, op := range eligible {
		sz := int64(op.Size())
		if len(req.Ops) > 0 && total+sz > q.cfg.MaxBatchSizeBytes {
			break
		}
		req.Ops = append(req.Ops, op)
		total += sz
		if total > q.cfg.MaxBatchSizeBytes {
			break
		}
	}

	return req, nil
}

// ResponseFromPeer applies a follower's response: it updates the peer's
// cursor, recomputes the commit index, and reports whether the peer has
// more to receive. Responses from an untracked peer are ignored. A higher
// responder term is reported to the ConsensusNotifier and otherwise
// changes nothing in the queue itself.
func (q *PeerMessageQueue) ResponseFromPeer(resp *param.ReplicateResponse) (bool, error) {
	q.mu.Lock()

	if err := q.requireInitialized(); err != nil {
		q.mu.Unlock()
		return false, err
	}

	cursor, ok := q.tracker.get(resp.ResponderID)
	if !ok {
		q.mu.Unlock()
		return false, nil
	}

	if resp.ResponderTerm > q.currentTerm {
		q.mu.Unlock()
		q.notifier.OnHigherTermObserved(resp.ResponderTerm, resp.ResponderID)
		return false, nil
	}

	switch resp.Status.Kind {
	case param.StatusError:
		cursor.lastReceived = resp.Status.LastReceived
		cursor.synced = false
	case param.StatusSuccess:
		cursor.lastReceived = resp.Status.LastReceived
		cursor.synced = true
	}

	advanced, newCommitted := q.recomputeCommitLocked()
	morePending := cursor.lastReceived.Index < q.nextIndexToAppend-1

	q.mu.Unlock()

	if advanced {
		q.notifier.OnCommitAdvanced(newCommitted)
	}
	return morePending, nil
}

// recomputeCommitLocked recomputes the commit index and, if it advanced,
// updates q.committedIndex and the metrics counter. It must be called with
// q.mu held; it reports whether the index advanced and its new value so
// that callers can notify the consensus module after releasing the lock.
func (q *PeerMessageQueue) recomputeCommitLocked() (bool, param.OpId) {
	newCommitted := computeCommitIndex(
		q.tracker,
		q.majoritySize,
		q.buffer,
		q.committedIndex,
	)
	if newCommitted.Compare(q.committedIndex) > 0 {
		q.committedIndex = newCommitted
		q.metrics.RecordCommitAdvance()
		return true, newCommitted
	}
	return false, q.committedIndex
}

// CommittedIndex returns the highest OpId known to be replicated on a
// majority of the tracked peers, carrying the term the buffer recorded at
// that index; that term is not compared with the current term.
func (q *PeerMessageQueue) CommittedIndex() param.OpId {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.committedIndex
}

// QueuedBytes returns the bytes currently charged against this queue's
// local accountant, which by the accounting-conservation invariant equals
// the sum of sizes of ops currently in the buffer.
func (q *PeerMessageQueue) QueuedBytes() int64 {
	return q.localAcct.Current()
}

// Metrics returns the queue's metrics.Collector for external reporting.
func (q *PeerMessageQueue) Metrics() *metrics.Collector {
	return q.metrics
}

func (q *PeerMessageQueue) requireInitialized() error {
	if !q.initialized {
		return param.ErrNotInitialized
	}
	return nil
}
