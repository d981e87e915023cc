package grab

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/Carmen-Shannon/oxy-hands/common"
	"github.com/Carmen-Shannon/oxy-hands/engine/game_object"
)

// ErrInvalidConstraint reports a pose constraint whose clamps or pose index cannot be applied.
var ErrInvalidConstraint = errors.New("grab: invalid pose constraint")

// Offset is a hand's attach pose relative to a grab point (or to the object for defaults).
type Offset struct {
	Position [3]float32
	Rotation [4]float32
}

// IdentityOffset returns an offset that places the hand exactly on the point.
func IdentityOffset() Offset {
	return Offset{Rotation: common.QuatIdentity()}
}

// PoseConstraint shapes the hand while it holds a grab point.
//
// PoseIndex selects the hand pose to switch to on select; a negative index keeps the active pose.
// When Limited is set, each finger value is clamped to [Min[f], Max[f]].
type PoseConstraint struct {
	PoseIndex int
	Limited   bool
	Min       [common.FingerCount]float32
	Max       [common.FingerCount]float32
}

// FreeConstraint returns a constraint that keeps the active pose and leaves fingers unclamped.
func FreeConstraint() PoseConstraint {
	c := PoseConstraint{PoseIndex: -1}
	for f := range c.Max {
		c.Max[f] = 1
	}
	return c
}

// Clamp limits a finger value to the constraint's range. Invalid fingers and unlimited
// constraints return v unchanged.
//
// Parameters:
//   - finger: the finger the value belongs to
//   - v: the requested value
//
// Returns:
//   - float32: the constrained value
func (c PoseConstraint) Clamp(finger common.Finger, v float32) float32 {
	if !c.Limited || !finger.Valid() {
		return v
	}
	return common.Clamp(v, c.Min[finger], c.Max[finger])
}

// Validate checks the clamps are ordered within [0, 1] and the pose index fits poseCount.
//
// Parameters:
//   - poseCount: number of poses the holding hand can switch between
//
// Returns:
//   - error: combined problems, or nil
func (c PoseConstraint) Validate(poseCount int) error {
	var err error
	if c.PoseIndex >= poseCount {
		err = multierr.Append(err, fmt.Errorf("%w: pose index %d of %d", ErrInvalidConstraint, c.PoseIndex, poseCount))
	}
	if !c.Limited {
		return err
	}
	for f := range c.Min {
		if c.Min[f] < 0 || c.Max[f] > 1 || c.Min[f] > c.Max[f] {
			err = multierr.Append(err, fmt.Errorf("%w: %s range [%g, %g]", ErrInvalidConstraint, common.Finger(f), c.Min[f], c.Max[f]))
		}
	}
	return err
}

// GrabPoint is one authored place an object can be held by, in the object's local space.
type GrabPoint struct {
	LocalPosition   [3]float32
	LocalRotation   [4]float32
	LeftConstraint  PoseConstraint
	RightConstraint PoseConstraint
	LeftOffset      Offset
	RightOffset     Offset
}

// Constraint returns the pose constraint for a hand.
func (p GrabPoint) Constraint(hand common.Handedness) PoseConstraint {
	if hand == common.HandLeft {
		return p.LeftConstraint
	}
	return p.RightConstraint
}

// Offset returns the attach offset for a hand.
func (p GrabPoint) Offset(hand common.Handedness) Offset {
	if hand == common.HandLeft {
		return p.LeftOffset
	}
	return p.RightOffset
}

// WorldPosition transforms the point's local position by node's current transform.
// A nil node treats the local position as world space.
func (p GrabPoint) WorldPosition(node game_object.GameObject) [3]float32 {
	if node == nil {
		return p.LocalPosition
	}
	return node.TransformPoint(p.LocalPosition)
}

// Constraints is an interactable's grab configuration: its grab points and the object-level
// fallbacks used when no point is configured.
type Constraints struct {
	Points            []GrabPoint
	DefaultLeft       Offset
	DefaultRight      Offset
	DefaultConstraint PoseConstraint
}

// NewConstraints returns constraints with identity default offsets, a free default
// constraint and the given points.
//
// Parameters:
//   - points: the grab points
//
// Returns:
//   - *Constraints: the constraints component
func NewConstraints(points ...GrabPoint) *Constraints {
	return &Constraints{
		Points:            points,
		DefaultLeft:       IdentityOffset(),
		DefaultRight:      IdentityOffset(),
		DefaultConstraint: FreeConstraint(),
	}
}

// DefaultOffset returns the object-level offset for a hand.
func (c *Constraints) DefaultOffset(hand common.Handedness) Offset {
	if hand == common.HandLeft {
		return c.DefaultLeft
	}
	return c.DefaultRight
}

// Validate checks every pose constraint against the holding hand's pose count.
//
// Parameters:
//   - poseCount: number of poses a hand can switch between
//
// Returns:
//   - error: combined problems, each naming the grab point, or nil
func (c *Constraints) Validate(poseCount int) error {
	err := c.DefaultConstraint.Validate(poseCount)
	for i, p := range c.Points {
		if e := p.LeftConstraint.Validate(poseCount); e != nil {
			err = multierr.Append(err, fmt.Errorf("grab point %d left: %w", i, e))
		}
		if e := p.RightConstraint.Validate(poseCount); e != nil {
			err = multierr.Append(err, fmt.Errorf("grab point %d right: %w", i, e))
		}
	}
	return err
}
