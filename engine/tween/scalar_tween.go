package tween

import (
	"github.com/Carmen-Shannon/oxy-hands/common"
)

// ScalarTween linearly interpolates a single float value from a start toward a target.
//
// Progress advances by rate * scaledDeltaTime per step and is clamped to 1. The step that
// finds progress already at 1 fires the completion callback and reports completion, so a
// tween always reports its final value on one step and completes on the next. That gives
// watchers one frame at the exact target before the task leaves the scheduler.
type ScalarTween struct {
	rate     float32
	start    float32
	target   float32
	value    float32
	progress float32

	// completed guards the completion callback so it fires once per target.
	completed bool

	onValue    func(float32)
	onComplete func()
}

var _ Task = &ScalarTween{}

// NewScalarTween creates an idle tween resting at initial with the given rate.
// The tween reports completed until SetTarget is called.
//
// Parameters:
//   - initial: the starting value
//   - rate: progress per second; values <= 0 snap to the target on the next step
//
// Returns:
//   - *ScalarTween: the idle tween
func NewScalarTween(initial, rate float32) *ScalarTween {
	return &ScalarTween{
		rate:      rate,
		start:     initial,
		target:    initial,
		value:     initial,
		progress:  1,
		completed: true,
	}
}

// OnValueChanged registers the callback invoked with the interpolated value every step.
// Passing nil removes it.
func (t *ScalarTween) OnValueChanged(fn func(float32)) {
	t.onValue = fn
}

// OnComplete registers the one-shot callback invoked when the tween completes a target.
// Passing nil removes it.
func (t *ScalarTween) OnComplete(fn func()) {
	t.onComplete = fn
}

// SetTarget retargets the tween from its current value. Progress resets to 0 rather than
// queuing behind the previous target.
//
// Parameters:
//   - target: the new target value
func (t *ScalarTween) SetTarget(target float32) {
	t.start = t.value
	t.target = target
	t.progress = 0
	t.completed = false
}

// Snap jumps straight to v without interpolation and marks the tween complete.
// No callbacks fire.
func (t *ScalarTween) Snap(v float32) {
	t.start, t.target, t.value = v, v, v
	t.progress = 1
	t.completed = true
}

// SetRate changes the progress rate for the current and future targets.
func (t *ScalarTween) SetRate(rate float32) {
	t.rate = rate
}

// Rate returns the progress per second.
func (t *ScalarTween) Rate() float32 {
	return t.rate
}

// Value returns the most recently interpolated value.
func (t *ScalarTween) Value() float32 {
	return t.value
}

// Target returns the value the tween is moving toward.
func (t *ScalarTween) Target() float32 {
	return t.target
}

// Progress returns the interpolation progress in [0, 1].
func (t *ScalarTween) Progress() float32 {
	return t.progress
}

// Done reports whether the tween has fired completion for its current target.
func (t *ScalarTween) Done() bool {
	return t.completed
}

func (t *ScalarTween) Step(scaledDeltaTime float32) bool {
	if t.progress >= 1 {
		if !t.completed {
			t.completed = true
			if t.onComplete != nil {
				t.onComplete()
			}
		}
		// the completion callback may have retargeted us
		return t.completed
	}

	if t.rate <= 0 {
		t.progress = 1
	} else if scaledDeltaTime > 0 {
		t.progress = common.Clamp01(t.progress + t.rate*scaledDeltaTime)
	}
	if t.progress >= 1 {
		t.value = t.target
	} else {
		t.value = common.Lerp(t.start, t.target, t.progress)
	}
	if t.onValue != nil {
		t.onValue(t.value)
	}
	return false
}
