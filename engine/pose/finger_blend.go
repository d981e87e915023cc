package pose

import (
	"github.com/Carmen-Shannon/oxy-hands/common"
	"github.com/Carmen-Shannon/oxy-hands/engine/model"
	"github.com/Carmen-Shannon/oxy-hands/engine/tween"
)

// DefaultWeightThreshold is the smallest weight change a FingerBlend acts on.
const DefaultWeightThreshold float32 = 0.01

// DefaultBlendRate is the default tween progress per second for finger weight changes.
const DefaultBlendRate float32 = 10

// FingerBlend cross-fades one finger between an open and a closed clip.
//
// The closed weight is driven by a ScalarTween registered with the graph's scheduler, so
// weight requests ease in instead of snapping. Only bones in the finger's mask are written.
// A unit missing a clip or its mask is disabled: it ignores weight requests and writes nothing.
type FingerBlend struct {
	finger    common.Finger
	open      *clipPlayer
	closed    *clipPlayer
	mask      *FingerMask
	scheduler tween.Scheduler
	tween     *tween.ScalarTween
	threshold float32

	requested float32
	weight    float32
	disabled  bool
}

// newFingerBlend wires a unit for one finger. initial seeds the weight without a tween so a
// replacement unit can continue from where the previous one left off.
func newFingerBlend(finger common.Finger, open, closed *model.AnimationClip, mask *FingerMask, sched tween.Scheduler, rate, threshold, initial float32, loop bool) *FingerBlend {
	f := &FingerBlend{
		finger:    finger,
		open:      newClipPlayer(open, loop),
		closed:    newClipPlayer(closed, loop),
		mask:      mask,
		scheduler: sched,
		threshold: threshold,
		disabled:  open == nil || closed == nil || mask == nil || sched == nil,
	}
	if f.disabled {
		return f
	}
	f.weight = common.Clamp01(initial)
	f.requested = f.weight
	f.tween = tween.NewScalarTween(f.weight, rate)
	f.tween.OnValueChanged(func(v float32) {
		f.weight = v
	})
	return f
}

// Finger returns the finger this unit drives.
func (f *FingerBlend) Finger() common.Finger {
	return f.finger
}

// Disabled reports whether the unit was built without a clip or mask and acts as a no-op.
func (f *FingerBlend) Disabled() bool {
	return f.disabled
}

// Mask returns the unit's skeletal mask, or nil for a disabled unit without one.
func (f *FingerBlend) Mask() *FingerMask {
	return f.mask
}

// SetWeight requests a new closed weight. The value is clamped to [0, 1]. Requests closer than
// the threshold to the previous request are dropped; others retarget the unit's tween.
//
// Parameters:
//   - w: the requested closed weight
func (f *FingerBlend) SetWeight(w float32) {
	if f.disabled {
		return
	}
	w = common.Clamp01(w)
	d := w - f.requested
	if d < 0 {
		d = -d
	}
	if d < f.threshold {
		return
	}
	f.requested = w
	f.tween.SetTarget(w)
	f.scheduler.Add(f.tween)
}

// Requested returns the last accepted weight request.
func (f *FingerBlend) Requested() float32 {
	return f.requested
}

// Weight returns the current closed weight as last reported by the tween.
func (f *FingerBlend) Weight() float32 {
	return f.weight
}

// OpenWeight returns 1 - Weight.
func (f *FingerBlend) OpenWeight() float32 {
	return 1 - f.weight
}

// ClosedWeight returns Weight.
func (f *FingerBlend) ClosedWeight() float32 {
	return f.weight
}

// advance moves both clip players forward.
func (f *FingerBlend) advance(dt float32) {
	if f.disabled {
		return
	}
	f.open.advance(dt)
	f.closed.advance(dt)
}

// apply writes the blended local transforms of the masked bones into out. bind supplies the
// fallback for components the clips do not key.
func (f *FingerBlend) apply(out, bind []model.Transform) {
	if f.disabled {
		return
	}
	for _, b := range f.mask.bones {
		if int(b) >= len(out) {
			continue
		}
		a := f.open.sample(b, bind[b])
		c := f.closed.sample(b, bind[b])
		out[b] = model.BlendTransform(a, c, f.weight)
	}
}

// release detaches the unit's tween from the scheduler so it never fires again.
func (f *FingerBlend) release() {
	if f.tween == nil {
		return
	}
	f.scheduler.Remove(f.tween)
	f.tween.OnValueChanged(nil)
	f.disabled = true
}
