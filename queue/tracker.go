package queue

import "github.com/xmh1011/replqueue/param"

// peerCursor tracks one follower's replication progress: the last OpId it
// has confirmed receiving, and whether the log-matching property has been
// verified for that OpId. A peer is not eligible for real batches until
// synced.
type peerCursor struct {
	lastReceived param.OpId
	synced       bool
}

// peerTracker maps tracked peer ids to their cursor. It is a thin wrapper
// over a map rather than its own concurrency domain: all synchronization is
// the Coordinator's single mutex.
type peerTracker struct {
	cursors map[param.PeerID]*peerCursor
}

func newPeerTracker() *peerTracker {
	return &peerTracker{cursors: make(map[param.PeerID]*peerCursor)}
}

func (t *peerTracker) track(id param.PeerID, initial param.OpId) bool {
	if _, exists := t.cursors[id]; exists {
		return false
	}
	t.cursors[id] = &peerCursor{lastReceived: initial, synced: false}
	return true
}

func (t *peerTracker) untrack(id param.PeerID) {
	delete(t.cursors, id)
}

func (t *peerTracker) get(id param.PeerID) (*peerCursor, bool) {
	c, ok := t.cursors[id]
	return c, ok
}

// minLastReceivedIndex returns the lowest LastReceived.Index across every
// tracked peer, and false if no peers are tracked (in which case there is
// no safe watermark to trim against).
func (t *peerTracker) minLastReceivedIndex() (uint64, bool) {
	first := true
	var min uint64
	for _, c := range t.cursors {
		if first || c.lastReceived.Index < min {
			min = c.lastReceived.Index
			first = false
		}
	}
	return min, !first
}

// lastReceivedIndices returns the LastReceived.Index of every tracked peer,
// in no particular order.
func (t *peerTracker) lastReceivedIndices() []uint64 {
	out := make([]uint64, 0, len(t.cursors))
	for _, c := range t.cursors {
		out = append(out, c.lastReceived.Index)
	}
	return out
}
