package memacct

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTryConsume_WithinLimits(t *testing.T) {
	a := New("local", 800, 1000, nil)

	verdict, _ := a.TryConsume(500)
	assert.Equal(t, OK, verdict)
	assert.Equal(t, int64(500), a.Current())
}

func TestTryConsume_HardExceeded_DoesNotCharge(t *testing.T) {
	a := New("local", 800, 1000, nil)

	verdict, violator := a.TryConsume(1200)
	assert.Equal(t, HardExceeded, verdict)
	assert.Equal(t, a, violator)
	assert.Equal(t, int64(0), a.Current(), "a refused consumption must not be charged")
}

func TestTryConsume_SoftExceeded_DoesNotCharge(t *testing.T) {
	a := New("local", 500, 1000, nil)

	verdict, violator := a.TryConsume(600)
	assert.Equal(t, SoftExceeded, verdict)
	assert.Equal(t, a, violator)
	assert.Equal(t, int64(0), a.Current())
}

func TestTryConsume_ParentHardLimitBlocksChild(t *testing.T) {
	parent := New("global", 900, 900, nil)
	child := New("local", 5000, 5000, parent)

	verdict, violator := child.TryConsume(1000)
	assert.Equal(t, HardExceeded, verdict)
	assert.Equal(t, parent, violator)
	assert.Equal(t, int64(0), child.Current())
	assert.Equal(t, int64(0), parent.Current())
}

func TestTryConsume_ChargesAllLevelsOnOK(t *testing.T) {
	parent := New("global", 5000, 5000, nil)
	child := New("local", 5000, 5000, parent)

	verdict, _ := child.TryConsume(200)
	assert.Equal(t, OK, verdict)
	assert.Equal(t, int64(200), child.Current())
	assert.Equal(t, int64(200), parent.Current())
}

func TestRelease_WalksSelfThenParent(t *testing.T) {
	parent := New("global", 5000, 5000, nil)
	child := New("local", 5000, 5000, parent)

	_, _ = child.TryConsume(300)
	child.Release(100)

	assert.Equal(t, int64(200), child.Current())
	assert.Equal(t, int64(200), parent.Current())
}

func TestForceConsume_IgnoresLimits(t *testing.T) {
	a := New("local", 10, 10, nil)
	a.ForceConsume(1000)
	assert.Equal(t, int64(1000), a.Current())
}

func TestWouldExceedLocalHard(t *testing.T) {
	a := New("local", 100, 100, nil)
	_, _ = a.TryConsume(80)

	assert.False(t, a.WouldExceedLocalHard(20))
	assert.True(t, a.WouldExceedLocalHard(21))
}

func TestGlobalHardLimitThenRecovery(t *testing.T) {
	parent := New("global", 1000, 1000, nil)
	child := New("local", 5000, 5000, parent)

	parent.ForceConsume(950)

	verdict, violator := child.TryConsume(100)
	assert.Equal(t, HardExceeded, verdict)
	assert.Equal(t, parent, violator)

	parent.Release(500)

	verdict, _ = child.TryConsume(100)
	assert.Equal(t, OK, verdict)
}
