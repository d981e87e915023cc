package game_object

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/oxy-hands/common"
)

func assertVec(t *testing.T, want, got [3]float32) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "component %d", i)
	}
}

func TestWorldTransformFollowsParent(t *testing.T) {
	parent := NewGameObject(
		WithPosition(1, 0, 0),
		WithRotation(common.QuatFromAxisAngle([3]float32{0, 1, 0}, math.Pi/2)),
	)
	child := NewGameObject(WithParent(parent), WithPosition(0, 0, 1))

	// +Z rotated 90° around Y becomes +X
	assertVec(t, [3]float32{2, 0, 0}, child.WorldPosition())
	assertVec(t, [3]float32{0, 0, 1}, child.Position())

	parent.SetPosition([3]float32{0, 5, 0})
	assertVec(t, [3]float32{1, 5, 0}, child.WorldPosition())
}

func TestInverseTransformPointRoundTrips(t *testing.T) {
	n := NewGameObject(
		WithPosition(3, -1, 2),
		WithRotation(common.QuatFromAxisAngle([3]float32{1, 1, 0}, 0.7)),
		WithScale(2, 2, 2),
	)
	local := [3]float32{0.5, 0.25, -1}
	assertVec(t, local, n.InverseTransformPoint(n.TransformPoint(local)))
}

func TestSetWorldPoseUnderParent(t *testing.T) {
	parent := NewGameObject(
		WithPosition(0, 1, 0),
		WithRotation(common.QuatFromAxisAngle([3]float32{0, 0, 1}, 0.4)),
	)
	child := NewGameObject(WithParent(parent))

	target := common.QuatFromAxisAngle([3]float32{0, 1, 0}, 1.2)
	child.SetWorldPose([3]float32{4, 4, 4}, target)

	assertVec(t, [3]float32{4, 4, 4}, child.WorldPosition())
	assert.InDelta(t, 0, common.QuatAngle(target, child.WorldRotation()), 1e-3)
}

func TestSetParentRejectsCycles(t *testing.T) {
	a := NewGameObject(WithName("a"))
	b := NewGameObject(WithName("b"), WithParent(a))

	a.SetParent(b)
	assert.Nil(t, a.Parent())

	a.SetParent(a)
	assert.Nil(t, a.Parent())
	assert.Equal(t, a, b.Parent())
}

func TestDefaults(t *testing.T) {
	n := NewGameObject()
	assert.True(t, n.Enabled())
	assert.Equal(t, [3]float32{1, 1, 1}, n.Scale())
	assert.Equal(t, common.QuatIdentity(), n.Rotation())
	assert.NotEqual(t, NewGameObject().ID(), n.ID())

	n.SetEnabled(false)
	assert.False(t, n.Enabled())
}
