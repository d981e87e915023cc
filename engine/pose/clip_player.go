package pose

import (
	"github.com/Carmen-Shannon/oxy-hands/engine/model"
)

// clipPlayer tracks playback time for one clip, mirroring the per-instance playback state the
// skeletal animator keeps: time advances by delta * speed, looping clips wrap, others clamp.
type clipPlayer struct {
	clip  *model.AnimationClip
	time  float32
	speed float32
	loop  bool
}

func newClipPlayer(clip *model.AnimationClip, loop bool) *clipPlayer {
	return &clipPlayer{clip: clip, speed: 1, loop: loop}
}

func (p *clipPlayer) advance(dt float32) {
	if p == nil || p.clip == nil {
		return
	}
	p.time = model.WrapTime(p.time+dt*p.speed, p.clip.Duration, p.loop)
}

// sample returns the clip's local transform for bone, or fallback when there is no clip.
func (p *clipPlayer) sample(bone int32, fallback model.Transform) model.Transform {
	if p == nil || p.clip == nil {
		return fallback
	}
	return p.clip.Sample(bone, p.time, fallback)
}
