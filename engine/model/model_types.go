package model

import (
	"github.com/Carmen-Shannon/oxy-hands/common"
)

// --- Transform & Skeleton Types ---

// Transform represents a decomposed transform for animation interpolation.
type Transform struct {
	// Translation is the position offset.
	Translation [3]float32

	// Rotation is the orientation as a quaternion (x, y, z, w).
	Rotation [4]float32

	// Scale is the scale factor along each axis.
	Scale [3]float32
}

// IdentityTransform returns a transform with no translation, identity rotation and unit scale.
func IdentityTransform() Transform {
	return Transform{
		Rotation: common.QuatIdentity(),
		Scale:    [3]float32{1, 1, 1},
	}
}

// Bone represents a single bone in a skeleton hierarchy.
type Bone struct {
	// Name is the bone's identifier (for debugging and animation targeting).
	Name string

	// ParentIndex is the index of the parent bone (-1 for root bones).
	ParentIndex int32

	// LocalTransform is the bone's bind-pose transform relative to its parent.
	LocalTransform Transform
}

// Skeleton represents a bone hierarchy for skeletal animation.
type Skeleton struct {
	// Bones is the array of all bones in the skeleton.
	Bones []Bone

	// RootBoneIndices are indices of bones with no parent.
	RootBoneIndices []int32

	// BoneNameToIndex maps bone names to their indices for quick lookup.
	BoneNameToIndex map[string]int32
}

// NewSkeleton builds a Skeleton from bones, deriving the root list and the name lookup.
//
// Parameters:
//   - bones: the bones in hierarchy order (parents before children is not required)
//
// Returns:
//   - *Skeleton: the assembled skeleton
func NewSkeleton(bones []Bone) *Skeleton {
	s := &Skeleton{
		Bones:           bones,
		BoneNameToIndex: make(map[string]int32, len(bones)),
	}
	for i, b := range bones {
		if b.ParentIndex < 0 {
			s.RootBoneIndices = append(s.RootBoneIndices, int32(i))
		}
		if b.Name != "" {
			s.BoneNameToIndex[b.Name] = int32(i)
		}
	}
	return s
}

// BoneIndex returns the index of the named bone, or -1 if the skeleton has no such bone.
func (s *Skeleton) BoneIndex(name string) int32 {
	if s == nil {
		return -1
	}
	if idx, ok := s.BoneNameToIndex[name]; ok {
		return idx
	}
	return -1
}

// BindPose returns a fresh copy of every bone's bind-pose local transform.
func (s *Skeleton) BindPose() []Transform {
	if s == nil {
		return nil
	}
	out := make([]Transform, len(s.Bones))
	for i, b := range s.Bones {
		out[i] = b.LocalTransform
	}
	return out
}

// --- Animation Types ---

// AnimationClip represents a single authored pose or animation (open hand, fist, point, etc.).
type AnimationClip struct {
	// Name is the animation identifier.
	Name string

	// Duration is the total length of the animation in seconds. Single-frame poses use 0.
	Duration float32

	// Channels contains animation data for each animated bone.
	Channels []AnimationChannel

	// channelByBone maps bone index to channel index. Populated by NewAnimationClip.
	channelByBone map[int32]int
}

// NewAnimationClip builds a clip and indexes its channels by bone.
//
// Parameters:
//   - name: the clip identifier
//   - duration: the clip length in seconds (0 for a single-frame pose)
//   - channels: per-bone keyframe channels
//
// Returns:
//   - *AnimationClip: the indexed clip
func NewAnimationClip(name string, duration float32, channels []AnimationChannel) *AnimationClip {
	c := &AnimationClip{
		Name:          name,
		Duration:      duration,
		Channels:      channels,
		channelByBone: make(map[int32]int, len(channels)),
	}
	for i, ch := range channels {
		c.channelByBone[ch.BoneIndex] = i
	}
	return c
}

// Channel returns the channel animating the given bone, or nil when the clip does not touch it.
func (c *AnimationClip) Channel(bone int32) *AnimationChannel {
	if c == nil {
		return nil
	}
	if c.channelByBone != nil {
		if i, ok := c.channelByBone[bone]; ok {
			return &c.Channels[i]
		}
		return nil
	}
	for i := range c.Channels {
		if c.Channels[i].BoneIndex == bone {
			return &c.Channels[i]
		}
	}
	return nil
}

// AnimationChannel contains keyframe data for a single bone.
type AnimationChannel struct {
	// BoneIndex is the index of the bone this channel animates.
	BoneIndex int32

	// PositionKeys are keyframes for translation.
	PositionKeys []VectorKeyframe

	// RotationKeys are keyframes for rotation (quaternion).
	RotationKeys []QuaternionKeyframe

	// ScaleKeys are keyframes for scale.
	ScaleKeys []VectorKeyframe
}

// VectorKeyframe stores a 3D vector value at a specific time.
type VectorKeyframe struct {
	// Time is the keyframe timestamp in seconds.
	Time float32

	// Value is the 3D vector value at this keyframe.
	Value [3]float32
}

// QuaternionKeyframe stores a quaternion rotation at a specific time.
type QuaternionKeyframe struct {
	// Time is the keyframe timestamp in seconds.
	Time float32

	// Value is the quaternion value at this keyframe (x, y, z, w).
	Value [4]float32
}
