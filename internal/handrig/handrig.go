// Package handrig builds a small procedural hand rig: a wrist and three bones per finger, with
// open, fist and point clips. It stands in for authored assets in the simulator and in tests.
package handrig

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-hands/common"
	"github.com/Carmen-Shannon/oxy-hands/engine/model"
	"github.com/Carmen-Shannon/oxy-hands/engine/pose"
)

// BonesPerFinger is the number of phalanx bones generated per finger.
const BonesPerFinger = 3

// CurlAngle is the per-bone rotation of the fist clip, in radians around +X.
const CurlAngle float32 = 1.2

// Clip names.
const (
	ClipOpen  = "open"
	ClipFist  = "fist"
	ClipPoint = "point"
)

// Rig bundles the generated model with its finger masks.
type Rig struct {
	Model model.Model
	Masks [common.FingerCount]*pose.FingerMask
}

// FingerBone returns the skeleton index of a finger's n-th phalanx (0-based).
func FingerBone(f common.Finger, n int) int32 {
	return int32(1 + int(f)*BonesPerFinger + n)
}

// New builds the rig.
func New() *Rig {
	bones := []model.Bone{{Name: "wrist", ParentIndex: -1, LocalTransform: model.IdentityTransform()}}
	for f := common.FingerThumb; f <= common.FingerPinky; f++ {
		for n := 0; n < BonesPerFinger; n++ {
			parent := int32(0)
			if n > 0 {
				parent = FingerBone(f, n-1)
			}
			lt := model.IdentityTransform()
			lt.Translation = [3]float32{float32(f-2) * 0.02, 0, 0.03}
			bones = append(bones, model.Bone{
				Name:           fmt.Sprintf("%s_%d", f, n+1),
				ParentIndex:    parent,
				LocalTransform: lt,
			})
		}
	}
	skel := model.NewSkeleton(bones)

	curled := common.QuatFromAxisAngle([3]float32{1, 0, 0}, CurlAngle)
	openClip := model.NewAnimationClip(ClipOpen, 0, fingerChannels(func(common.Finger) [4]float32 {
		return common.QuatIdentity()
	}))
	fistClip := model.NewAnimationClip(ClipFist, 0, fingerChannels(func(common.Finger) [4]float32 {
		return curled
	}))
	pointClip := model.NewAnimationClip(ClipPoint, 0, fingerChannels(func(f common.Finger) [4]float32 {
		if f == common.FingerIndex {
			return common.QuatIdentity()
		}
		return curled
	}))

	r := &Rig{
		Model: model.NewModel(
			model.WithName("procedural_hand"),
			model.WithSkeleton(skel),
			model.WithAnimations([]*model.AnimationClip{openClip, fistClip, pointClip}),
		),
	}
	for f := common.FingerThumb; f <= common.FingerPinky; f++ {
		bs := make([]int32, BonesPerFinger)
		for n := range bs {
			bs[n] = FingerBone(f, n)
		}
		r.Masks[f] = pose.NewFingerMask(f, bs...)
	}
	return r
}

// Poses returns the rig's pose list: a dynamic open/fist grab pose followed by a static point.
func (r *Rig) Poses() []pose.PoseAsset {
	return []pose.PoseAsset{
		pose.NewDynamicPose("grab", r.Model.Animation(ClipOpen), r.Model.Animation(ClipFist), r.Masks),
		pose.NewStaticPose("", r.Model.Animation(ClipPoint), [common.FingerCount]*pose.FingerMask{}),
	}
}

func fingerChannels(rot func(common.Finger) [4]float32) []model.AnimationChannel {
	var chans []model.AnimationChannel
	for f := common.FingerThumb; f <= common.FingerPinky; f++ {
		for n := 0; n < BonesPerFinger; n++ {
			chans = append(chans, model.AnimationChannel{
				BoneIndex:    FingerBone(f, n),
				RotationKeys: []model.QuaternionKeyframe{{Time: 0, Value: rot(f)}},
			})
		}
	}
	return chans
}
