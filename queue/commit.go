package queue

import (
	"sort"

	"github.com/xmh1011/replqueue/param"
)

// computeCommitIndex applies Kudu's PeerMessageQueue::AdvanceQueueWatermark
// rule: gather every tracked peer's LastReceived.Index, take the
// majoritySize-th highest as the candidate, and advance to it using
// whatever term the buffer actually recorded at that index. The leader is
// not counted as a separate voter -- majoritySize is defined over the
// tracked-peer set itself. current is returned unchanged whenever fewer
// than majoritySize peers are tracked, or the candidate index cannot be
// resolved to a term at all (it has already been trimmed past, or never
// existed).
func computeCommitIndex(
	tracker *peerTracker,
	majoritySize int,
	buf *operationBuffer,
	current param.OpId,
) param.OpId {
	indices := tracker.lastReceivedIndices()

	if len(indices) < majoritySize {
		return current
	}

	sort.Slice(indices, func(i, j int) bool { return indices[i] > indices[j] })
	candidate := indices[majoritySize-1]

	term, ok := buf.termAt(candidate)
	if !ok {
		return current
	}

	newCommitted := param.OpId{Term: term, Index: candidate}
	if newCommitted.Compare(current) > 0 {
		return newCommitted
	}
	return current
}
