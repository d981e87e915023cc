package tween

import (
	"github.com/Carmen-Shannon/oxy-hands/common"
	"github.com/Carmen-Shannon/oxy-hands/engine/game_object"
)

// TransformTween moves a node toward a target node in world space: position linearly,
// rotation along the shortest arc. The target is re-read every step, so it may itself be
// moving (a hand's attach point while the object flies into it). The start pose is captured
// when the tween is created or retargeted.
//
// Completion follows the same two-step rule as ScalarTween.
type TransformTween struct {
	rate     float32
	progress float32

	mover  game_object.GameObject
	target game_object.GameObject

	// offset is applied in the target's space: the mover settles at target * offset.
	offsetPos [3]float32
	offsetRot [4]float32

	startPos [3]float32
	startRot [4]float32

	completed  bool
	onComplete func()
}

var _ Task = &TransformTween{}

// NewTransformTween creates a tween moving mover toward target at the given rate.
//
// Parameters:
//   - mover: the node to move
//   - target: the node to move toward
//   - rate: progress per second; values <= 0 snap on the next step
//
// Returns:
//   - *TransformTween: the started tween
func NewTransformTween(mover, target game_object.GameObject, rate float32) *TransformTween {
	t := &TransformTween{
		rate:      rate,
		mover:     mover,
		offsetRot: common.QuatIdentity(),
	}
	t.Retarget(target)
	return t
}

// SetOffset sets the settle pose relative to the target: the mover ends at the target's
// world transform applied to (pos, rot). Used for per-hand grab offsets.
//
// Parameters:
//   - pos: position offset in the target's local space
//   - rot: rotation offset relative to the target's rotation
func (t *TransformTween) SetOffset(pos [3]float32, rot [4]float32) {
	t.offsetPos = pos
	t.offsetRot = common.QuatNormalize(rot)
}

// Retarget points the tween at a new target, recapturing the mover's current pose as the
// start and resetting progress to 0.
//
// Parameters:
//   - target: the node to move toward
func (t *TransformTween) Retarget(target game_object.GameObject) {
	t.target = target
	t.progress = 0
	t.completed = false
	if t.mover != nil {
		t.startPos = t.mover.WorldPosition()
		t.startRot = t.mover.WorldRotation()
	}
}

// OnComplete registers the one-shot callback invoked once the mover has settled.
func (t *TransformTween) OnComplete(fn func()) {
	t.onComplete = fn
}

// SetRate changes the progress rate.
func (t *TransformTween) SetRate(rate float32) {
	t.rate = rate
}

// Mover returns the node being moved.
func (t *TransformTween) Mover() game_object.GameObject {
	return t.mover
}

// Target returns the node being moved toward.
func (t *TransformTween) Target() game_object.GameObject {
	return t.target
}

// Progress returns the interpolation progress in [0, 1].
func (t *TransformTween) Progress() float32 {
	return t.progress
}

// Done reports whether the tween has fired completion for its current target.
func (t *TransformTween) Done() bool {
	return t.completed
}

// goal returns the world pose the mover is settling into this step.
func (t *TransformTween) goal() ([3]float32, [4]float32) {
	return t.target.TransformPoint(t.offsetPos),
		common.QuatNormalize(common.QuatMul(t.target.WorldRotation(), t.offsetRot))
}

func (t *TransformTween) Step(scaledDeltaTime float32) bool {
	if t.mover == nil || t.target == nil {
		return true
	}
	if t.progress >= 1 {
		if !t.completed {
			t.completed = true
			if t.onComplete != nil {
				t.onComplete()
			}
		}
		return t.completed
	}

	if t.rate <= 0 {
		t.progress = 1
	} else if scaledDeltaTime > 0 {
		t.progress = common.Clamp01(t.progress + t.rate*scaledDeltaTime)
	}

	goalPos, goalRot := t.goal()
	if t.progress >= 1 {
		t.mover.SetWorldPose(goalPos, goalRot)
		return false
	}
	t.mover.SetWorldPose(
		common.Lerp3(t.startPos, goalPos, t.progress),
		common.Slerp(t.startRot, goalRot, t.progress),
	)
	return false
}
