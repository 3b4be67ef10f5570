package walog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xmh1011/replqueue/param"
)

func TestInMemory_AppendBatch_ResolvesImmediately(t *testing.T) {
	l := NewInMemory()
	ops := []*param.ReplicateOp{
		param.NewReplicateOpWithSize(param.OpId{Term: 1, Index: 1}, nil, 8),
		param.NewReplicateOpWithSize(param.OpId{Term: 1, Index: 2}, nil, 8),
	}

	done := l.AppendBatch(ops)
	err, ok := <-done
	assert.True(t, ok)
	assert.NoError(t, err)

	assert.Equal(t, ops, l.Entries())
}

func TestInMemory_AppendBatch_Accumulates(t *testing.T) {
	l := NewInMemory()
	l.AppendBatch([]*param.ReplicateOp{param.NewReplicateOpWithSize(param.OpId{Term: 1, Index: 1}, nil, 8)})
	l.AppendBatch([]*param.ReplicateOp{param.NewReplicateOpWithSize(param.OpId{Term: 1, Index: 2}, nil, 8)})

	assert.Len(t, l.Entries(), 2)
}

func TestInMemory_Entries_ReturnsCopy(t *testing.T) {
	l := NewInMemory()
	l.AppendBatch([]*param.ReplicateOp{param.NewReplicateOpWithSize(param.OpId{Term: 1, Index: 1}, nil, 8)})

	entries := l.Entries()
	entries[0] = nil

	assert.NotNil(t, l.Entries()[0])
}
