package queue

import "github.com/xmh1011/replqueue/param"

// ConsensusNotifier is the enclosing consensus module's view of the queue:
// it learns about commit advancement and about followers reporting a
// higher term, but never drives the queue directly. The queue owns no
// term-stepdown logic of its own; that is entirely the notifier's
// responsibility.
type ConsensusNotifier interface {
	// OnCommitAdvanced is called with the new committed index whenever
	// ResponseFromPeer causes it to move forward.
	OnCommitAdvanced(newCommitted param.OpId)

	// OnHigherTermObserved is called when a follower's response carries a
	// term greater than the queue's CurrentTerm.
	OnHigherTermObserved(term uint64, responder param.PeerID)
}

// NoopNotifier discards every notification. It is a convenient default for
// callers that only care about the queue's synchronous return values.
type NoopNotifier struct{}

func (NoopNotifier) OnCommitAdvanced(param.OpId)               {}
func (NoopNotifier) OnHigherTermObserved(uint64, param.PeerID) {}
