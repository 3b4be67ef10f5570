// Package param defines the wire-level data types shared between a leader's
// replication queue and the collaborators around it: the per-peer worker
// that drives RequestForPeer/ResponseFromPeer, and the proposer that calls
// AppendOperation.
package param

import "fmt"

// OpId identifies a replicated operation by the term in which it was
// proposed and its position in the log. Ordering compares Term first, then
// Index, matching the Raft log-matching property.
type OpId struct {
	Term  uint64
	Index uint64
}

// MinOpID is the sentinel identifying "nothing replicated yet". It precedes
// every real OpId and is the initial value of a leader's committed index. A
// freshly tracked peer's cursor starts at it only when the queue was
// initialized with MinOpID and has not trimmed any entries.
var MinOpID = OpId{Term: 0, Index: 0}

// Compare returns -1, 0 or 1 as a is less than, equal to, or greater than b
// under the (Term, Index) total order.
func (a OpId) Compare(b OpId) int {
	switch {
	case a.Term != b.Term:
		if a.Term < b.Term {
			return -1
		}
		return 1
	case a.Index != b.Index:
		if a.Index < b.Index {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Less reports whether a precedes b in the total order.
func (a OpId) Less(b OpId) bool {
	return a.Compare(b) < 0
}

func (a OpId) String() string {
	return fmt.Sprintf("(%d,%d)", a.Term, a.Index)
}
