package queue

import "github.com/xmh1011/replqueue/param"

// operationBuffer holds the leader's staged log entries in ascending index
// order. Indices are gap-free and terms are non-decreasing along the
// buffer; both invariants are maintained purely by the fact that entries
// only ever arrive at the tail via append and only ever leave as a
// contiguous prefix via trim.
type operationBuffer struct {
	ops []*param.ReplicateOp

	// basePrecedingID is the OpId immediately before ops[0], or the OpId
	// the buffer was initialized with while still empty. It is advanced
	// every time a prefix is trimmed, so term lookups for an index that
	// now sits exactly at the trim boundary still resolve.
	basePrecedingID param.OpId
}

func newOperationBuffer(precedingID param.OpId) *operationBuffer {
	return &operationBuffer{basePrecedingID: precedingID}
}

func (b *operationBuffer) append(op *param.ReplicateOp) {
	b.ops = append(b.ops, op)
}

func (b *operationBuffer) empty() bool {
	return len(b.ops) == 0
}

func (b *operationBuffer) firstIndex() (uint64, bool) {
	if b.empty() {
		return 0, false
	}
	return b.ops[0].Id.Index, true
}

func (b *operationBuffer) lastIndex() (uint64, bool) {
	if b.empty() {
		return 0, false
	}
	return b.ops[len(b.ops)-1].Id.Index, true
}

// termAt returns the term recorded at index, considering both live entries
// and the remembered preceding id at the trim boundary.
func (b *operationBuffer) termAt(index uint64) (uint64, bool) {
	if index == b.basePrecedingID.Index {
		return b.basePrecedingID.Term, true
	}
	first, ok := b.firstIndex()
	if !ok || index < first {
		return 0, false
	}
	last, _ := b.lastIndex()
	if index > last {
		return 0, false
	}
	return b.ops[index-first].Id.Term, true
}

// opsAfter returns every live op with index strictly greater than
// afterIndex, in ascending order. The slice aliases the buffer's backing
// array; callers must not retain it across a mutation.
func (b *operationBuffer) opsAfter(afterIndex uint64) []*param.ReplicateOp {
	first, ok := b.firstIndex()
	if !ok {
		return nil
	}
	if afterIndex < first {
		return b.ops
	}
	last, _ := b.lastIndex()
	if afterIndex >= last {
		return nil
	}
	return b.ops[afterIndex-first+1:]
}

// trimPrefixUpTo removes every live entry with index <= upTo, returning the
// total accounted bytes released. It may remove every entry and leave the
// buffer empty; AppendOperation checks empty() after trimming to apply the
// single-message guarantee before force-admitting.
func (b *operationBuffer) trimPrefixUpTo(upTo uint64) int64 {
	first, ok := b.firstIndex()
	if !ok || upTo < first {
		return 0
	}

	var released int64
	cut := 0
	for cut < len(b.ops) && b.ops[cut].Id.Index <= upTo {
		released += int64(b.ops[cut].Size())
		cut++
	}
	if cut == 0 {
		return 0
	}

	b.basePrecedingID = b.ops[cut-1].Id
	b.ops = b.ops[cut:]
	return released
}
