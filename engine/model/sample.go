package model

import (
	"math"

	"github.com/Carmen-Shannon/oxy-hands/common"
)

// WrapTime maps a playback time onto a clip of the given duration.
// Looping clips wrap with a modulo, non-looping clips clamp to the last frame.
//
// Parameters:
//   - t: playback time in seconds
//   - duration: clip duration in seconds
//   - loop: whether the clip loops
//
// Returns:
//   - float32: the wrapped sample time
func WrapTime(t, duration float32, loop bool) float32 {
	if duration <= 0 || t <= 0 {
		return 0
	}
	if t <= duration {
		return t
	}
	if loop {
		return float32(math.Mod(float64(t), float64(duration)))
	}
	return duration
}

// Sample evaluates the clip's local transform for a bone at time t.
// Components the clip does not key keep the fallback value, so a clip only animating rotation
// leaves bind-pose translation and scale intact.
//
// Parameters:
//   - bone: the bone index to sample
//   - t: sample time in seconds (already wrapped by the caller)
//   - fallback: transform used for components without keys, typically the bind pose
//
// Returns:
//   - Transform: the sampled local transform
func (c *AnimationClip) Sample(bone int32, t float32, fallback Transform) Transform {
	ch := c.Channel(bone)
	if ch == nil {
		return fallback
	}
	out := fallback
	if len(ch.PositionKeys) > 0 {
		out.Translation = sampleVector(ch.PositionKeys, t)
	}
	if len(ch.RotationKeys) > 0 {
		out.Rotation = sampleQuaternion(ch.RotationKeys, t)
	}
	if len(ch.ScaleKeys) > 0 {
		out.Scale = sampleVector(ch.ScaleKeys, t)
	}
	return out
}

// BlendTransform interpolates two local transforms: translation and scale linearly, rotation by slerp.
//
// Parameters:
//   - a: transform at weight 0
//   - b: transform at weight 1
//   - w: blend weight in [0, 1]
//
// Returns:
//   - Transform: the blended transform
func BlendTransform(a, b Transform, w float32) Transform {
	if w <= 0 {
		return a
	}
	if w >= 1 {
		return b
	}
	return Transform{
		Translation: common.Lerp3(a.Translation, b.Translation, w),
		Rotation:    common.Slerp(a.Rotation, b.Rotation, w),
		Scale:       common.Lerp3(a.Scale, b.Scale, w),
	}
}

// keySpan finds the pair of keys bracketing t and the local interpolation factor between them.
// Keys are assumed sorted by time.
func keySpan(count int, timeAt func(int) float32, t float32) (int, int, float32) {
	if count == 1 || t <= timeAt(0) {
		return 0, 0, 0
	}
	last := count - 1
	if t >= timeAt(last) {
		return last, last, 0
	}
	// binary search for the first key after t
	lo, hi := 0, last
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if timeAt(mid) <= t {
			lo = mid
		} else {
			hi = mid
		}
	}
	span := timeAt(hi) - timeAt(lo)
	if span <= 0 {
		return hi, hi, 0
	}
	return lo, hi, (t - timeAt(lo)) / span
}

func sampleVector(keys []VectorKeyframe, t float32) [3]float32 {
	a, b, f := keySpan(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if a == b {
		return keys[a].Value
	}
	return common.Lerp3(keys[a].Value, keys[b].Value, f)
}

func sampleQuaternion(keys []QuaternionKeyframe, t float32) [4]float32 {
	a, b, f := keySpan(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if a == b {
		return keys[a].Value
	}
	return common.Slerp(keys[a].Value, keys[b].Value, f)
}
