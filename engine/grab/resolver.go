package grab

import (
	"github.com/Carmen-Shannon/oxy-hands/common"
	"github.com/Carmen-Shannon/oxy-hands/engine/game_object"
)

// NoPoint is the index Resolve returns when the object has no grab points.
const NoPoint = -1

// Resolver picks the grab point an interactor holds an object by.
//
// Resolution happens once per grab. The resolver keeps the chosen index, the grabbing hand and a
// copy of the point and the defaults, so later edits to the object or its constraints do not move
// the hand for the rest of the grab. The zero value is an inactive resolver.
type Resolver struct {
	active   bool
	index    int
	hand     common.Handedness
	point    GrabPoint
	defaults Constraints
}

// NewResolver returns an inactive resolver.
func NewResolver() *Resolver {
	return &Resolver{index: NoPoint}
}

// Resolve selects the grab point nearest to the contact position and makes it active.
// Ties keep the earliest point.
//
// Parameters:
//   - c: the object's grab configuration; nil behaves like an empty configuration
//   - node: the object's node; its current transform places the points in world space
//   - contact: the contact position in world space
//   - hand: the grabbing hand
//
// Returns:
//   - int: the chosen index, or NoPoint if no points are configured
func (r *Resolver) Resolve(c *Constraints, node game_object.GameObject, contact [3]float32, hand common.Handedness) int {
	r.Reset()
	r.active = true
	r.hand = hand
	if c == nil {
		r.defaults = *NewConstraints()
		return NoPoint
	}
	r.defaults = Constraints{
		DefaultLeft:       c.DefaultLeft,
		DefaultRight:      c.DefaultRight,
		DefaultConstraint: c.DefaultConstraint,
	}

	best := float32(-1)
	for i, p := range c.Points {
		d := common.DistanceSq3(p.WorldPosition(node), contact)
		if best < 0 || d < best {
			best = d
			r.index = i
		}
	}
	if r.index != NoPoint {
		r.point = c.Points[r.index]
	}
	return r.index
}

// Active reports whether a grab is in progress.
func (r *Resolver) Active() bool {
	return r.active
}

// Index returns the resolved grab point index, NoPoint when inactive or implicit.
func (r *Resolver) Index() int {
	if !r.active {
		return NoPoint
	}
	return r.index
}

// Hand returns the hand that triggered the active grab.
func (r *Resolver) Hand() common.Handedness {
	return r.hand
}

// Point returns the resolved grab point and whether one is set.
func (r *Resolver) Point() (GrabPoint, bool) {
	return r.point, r.active && r.index != NoPoint
}

// HandOffset returns the resolved point's offset for a hand, or the object-level default
// when no point is active.
//
// Parameters:
//   - hand: the hand to query
//
// Returns:
//   - Offset: the attach offset
func (r *Resolver) HandOffset(hand common.Handedness) Offset {
	if r.active && r.index != NoPoint {
		return r.point.Offset(hand)
	}
	if !r.active {
		return IdentityOffset()
	}
	return r.defaults.DefaultOffset(hand)
}

// PoseConstraint returns the resolved point's constraint for a hand, the object-level default
// when no point is active, or a free constraint when no grab is in progress.
//
// Parameters:
//   - hand: the hand to query
//
// Returns:
//   - PoseConstraint: the constraint
func (r *Resolver) PoseConstraint(hand common.Handedness) PoseConstraint {
	switch {
	case !r.active:
		return FreeConstraint()
	case r.index == NoPoint:
		return r.defaults.DefaultConstraint
	default:
		return r.point.Constraint(hand)
	}
}

// Reset ends the grab.
func (r *Resolver) Reset() {
	*r = Resolver{index: NoPoint}
}
