// Mocks written by hand in the shape MockGen generates; not generated code.
// Source: queue (interfaces: ConsensusNotifier), walog (interfaces: Appender)

package queue

import (
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/xmh1011/replqueue/param"
)

// MockConsensusNotifier is a mock of the ConsensusNotifier interface.
type MockConsensusNotifier struct {
	ctrl     *gomock.Controller
	recorder *MockConsensusNotifierMockRecorder
}

// MockConsensusNotifierMockRecorder is the mock recorder for MockConsensusNotifier.
type MockConsensusNotifierMockRecorder struct {
	mock *MockConsensusNotifier
}

// NewMockConsensusNotifier creates a new mock instance.
func NewMockConsensusNotifier(ctrl *gomock.Controller) *MockConsensusNotifier {
	mock := &MockConsensusNotifier{ctrl: ctrl}
	mock.recorder = &MockConsensusNotifierMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockConsensusNotifier) EXPECT() *MockConsensusNotifierMockRecorder {
	return m.recorder
}

// OnCommitAdvanced mocks base method.
func (m *MockConsensusNotifier) OnCommitAdvanced(newCommitted param.OpId) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "OnCommitAdvanced", newCommitted)
}

// OnCommitAdvanced indicates an expected call of OnCommitAdvanced.
func (mr *MockConsensusNotifierMockRecorder) OnCommitAdvanced(newCommitted interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "OnCommitAdvanced", reflect.TypeOf((*MockConsensusNotifier)(nil).OnCommitAdvanced), newCommitted)
}

// OnHigherTermObserved mocks base method.
func (m *MockConsensusNotifier) OnHigherTermObserved(term uint64, responder param.PeerID) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "OnHigherTermObserved", term, responder)
}

// OnHigherTermObserved indicates an expected call of OnHigherTermObserved.
func (mr *MockConsensusNotifierMockRecorder) OnHigherTermObserved(term, responder interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "OnHigherTermObserved", reflect.TypeOf((*MockConsensusNotifier)(nil).OnHigherTermObserved), term, responder)
}

// MockAppender is a mock of the walog.Appender interface.
type MockAppender struct {
	ctrl     *gomock.Controller
	recorder *MockAppenderMockRecorder
}

// MockAppenderMockRecorder is the mock recorder for MockAppender.
type MockAppenderMockRecorder struct {
	mock *MockAppender
}

// NewMockAppender creates a new mock instance.
func NewMockAppender(ctrl *gomock.Controller) *MockAppender {
	mock := &MockAppender{ctrl: ctrl}
	mock.recorder = &MockAppenderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockAppender) EXPECT() *MockAppenderMockRecorder {
	return m.recorder
}

// AppendBatch mocks base method.
func (m *MockAppender) AppendBatch(ops []*param.ReplicateOp) <-chan error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AppendBatch", ops)
	ret0, _ := ret[0].(<-chan error)
	return ret0
}

// AppendBatch indicates an expected call of AppendBatch.
func (mr *MockAppenderMockRecorder) AppendBatch(ops interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AppendBatch", reflect.TypeOf((*MockAppender)(nil).AppendBatch), ops)
}

// resolvedChan returns an already-closed error channel, mirroring the
// behavior walog.InMemory gives real callers.
func resolvedChan(err error) <-chan error {
	c := make(chan error, 1)
	c <- err
	close(c)
	return c
}
