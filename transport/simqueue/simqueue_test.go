package simqueue

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/xmh1011/replqueue/config"
	"github.com/xmh1011/replqueue/memacct"
	"github.com/xmh1011/replqueue/param"
	"github.com/xmh1011/replqueue/queue"
)

func TestInMemoryFollower_RejectsMismatchedPreceding(t *testing.T) {
	id := uuid.New()
	f := NewInMemoryFollower(id, 1)

	resp := f.Replicate(&param.ReplicateRequest{
		PrecedingID: param.OpId{Term: 1, Index: 5},
	})

	assert.Equal(t, param.StatusError, resp.Status.Kind)
	assert.Equal(t, param.ErrorCodePrecedingEntryDidntMatch, resp.Status.ErrorCode)
	assert.Equal(t, param.MinOpID, resp.Status.LastReceived)
}

func TestInMemoryFollower_AppliesMatchingBatch(t *testing.T) {
	id := uuid.New()
	f := NewInMemoryFollower(id, 1)

	ops := []*param.ReplicateOp{
		param.NewReplicateOpWithSize(param.OpId{Term: 1, Index: 1}, nil, 8),
		param.NewReplicateOpWithSize(param.OpId{Term: 1, Index: 2}, nil, 8),
	}
	resp := f.Replicate(&param.ReplicateRequest{PrecedingID: param.MinOpID, Ops: ops})

	assert.Equal(t, param.StatusSuccess, resp.Status.Kind)
	assert.Equal(t, param.OpId{Term: 1, Index: 2}, resp.Status.LastReceived)
	assert.Equal(t, 2, f.Len())
}

func TestWorker_DrivesFollowerToConvergence(t *testing.T) {
	cfg := config.Default()
	acct := memacct.New("test", cfg.LocalSoftLimitBytes, cfg.LocalHardLimitBytes, nil)
	q := queue.New(cfg, acct)
	assert.NoError(t, q.Init(param.MinOpID, 1, 1))

	for i := uint64(1); i <= 25; i++ {
		op := param.NewReplicateOpWithSize(param.OpId{Term: 1, Index: i}, nil, 8)
		assert.NoError(t, q.AppendOperation(op))
	}

	peer := uuid.New()
	assert.NoError(t, q.TrackPeer(peer))
	follower := NewInMemoryFollower(peer, 1)

	w := NewWorker(peer, q, follower, time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	go w.Run(ctx)

	assert.Eventually(t, func() bool {
		return follower.Len() == 25
	}, time.Second, time.Millisecond)

	assert.Eventually(t, func() bool {
		return q.CommittedIndex() == param.OpId{Term: 1, Index: 25}
	}, time.Second, time.Millisecond)
}
