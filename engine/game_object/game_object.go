package game_object

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-hands/common"
	"github.com/google/uuid"
)

type gameObject struct {
	id      uuid.UUID
	name    string
	enabled atomic.Bool
	parent  GameObject

	position [3]float32
	rotation [4]float32
	scale    [3]float32
}

// GameObject defines the interface for a scene node carrying a local transform.
// Local position, rotation and scale are relative to the optional parent; world-space
// queries walk the parent chain. Hands, attach points and interactable objects are all
// GameObjects, which lets transform tweens move any of them toward any other.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uuid.UUID: the object ID
	ID() uuid.UUID

	// Name returns the object's display name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Enabled returns whether this object takes part in interaction.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object takes part in interaction.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Parent returns the parent node, or nil for a root node.
	//
	// Returns:
	//   - GameObject: the parent or nil
	Parent() GameObject

	// SetParent re-parents this node, keeping its local transform. Passing nil detaches it.
	// Parenting a node to itself or to one of its descendants is ignored.
	//
	// Parameters:
	//   - p: the new parent, or nil
	SetParent(p GameObject)

	// Position returns the local position relative to the parent.
	//
	// Returns:
	//   - [3]float32: local position
	Position() [3]float32

	// Rotation returns the local rotation quaternion (x, y, z, w).
	//
	// Returns:
	//   - [4]float32: local rotation
	Rotation() [4]float32

	// Scale returns the local scale.
	//
	// Returns:
	//   - [3]float32: local scale
	Scale() [3]float32

	// SetPosition updates the local position.
	//
	// Parameters:
	//   - pos: new local position
	SetPosition(pos [3]float32)

	// SetRotation updates the local rotation. The quaternion is normalized.
	//
	// Parameters:
	//   - rot: new local rotation (x, y, z, w)
	SetRotation(rot [4]float32)

	// SetScale updates the local scale.
	//
	// Parameters:
	//   - scale: new local scale
	SetScale(scale [3]float32)

	// WorldPosition returns the node's position in world space.
	//
	// Returns:
	//   - [3]float32: world position
	WorldPosition() [3]float32

	// WorldRotation returns the node's rotation in world space.
	//
	// Returns:
	//   - [4]float32: world rotation
	WorldRotation() [4]float32

	// SetWorldPose places the node at a world-space position and rotation by converting
	// them into the parent's space.
	//
	// Parameters:
	//   - pos: world position
	//   - rot: world rotation
	SetWorldPose(pos [3]float32, rot [4]float32)

	// TransformPoint converts a point from this node's local space into world space.
	//
	// Parameters:
	//   - local: point in local space
	//
	// Returns:
	//   - [3]float32: the point in world space
	TransformPoint(local [3]float32) [3]float32

	// InverseTransformPoint converts a world-space point into this node's local space.
	//
	// Parameters:
	//   - world: point in world space
	//
	// Returns:
	//   - [3]float32: the point in local space
	InverseTransformPoint(world [3]float32) [3]float32
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// Objects start enabled at the origin with identity rotation and unit scale.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		id:       uuid.New(),
		rotation: common.QuatIdentity(),
		scale:    [3]float32{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uuid.UUID {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Parent() GameObject {
	return g.parent
}

func (g *gameObject) SetParent(p GameObject) {
	for n := p; n != nil; n = n.Parent() {
		if n == GameObject(g) {
			return
		}
	}
	g.parent = p
}

func (g *gameObject) Position() [3]float32 {
	return g.position
}

func (g *gameObject) Rotation() [4]float32 {
	return g.rotation
}

func (g *gameObject) Scale() [3]float32 {
	return g.scale
}

func (g *gameObject) SetPosition(pos [3]float32) {
	g.position = pos
}

func (g *gameObject) SetRotation(rot [4]float32) {
	g.rotation = common.QuatNormalize(rot)
}

func (g *gameObject) SetScale(scale [3]float32) {
	g.scale = scale
}

func (g *gameObject) WorldPosition() [3]float32 {
	if g.parent == nil {
		return g.position
	}
	return g.parent.TransformPoint(g.position)
}

func (g *gameObject) WorldRotation() [4]float32 {
	if g.parent == nil {
		return g.rotation
	}
	return common.QuatNormalize(common.QuatMul(g.parent.WorldRotation(), g.rotation))
}

func (g *gameObject) SetWorldPose(pos [3]float32, rot [4]float32) {
	if g.parent == nil {
		g.position = pos
		g.rotation = common.QuatNormalize(rot)
		return
	}
	g.position = g.parent.InverseTransformPoint(pos)
	g.rotation = common.QuatNormalize(common.QuatMul(common.QuatConjugate(g.parent.WorldRotation()), rot))
}

func (g *gameObject) TransformPoint(local [3]float32) [3]float32 {
	p := common.Add3(common.QuatRotate(g.rotation, common.Mul3(g.scale, local)), g.position)
	if g.parent == nil {
		return p
	}
	return g.parent.TransformPoint(p)
}

func (g *gameObject) InverseTransformPoint(world [3]float32) [3]float32 {
	p := world
	if g.parent != nil {
		p = g.parent.InverseTransformPoint(world)
	}
	p = common.QuatRotate(common.QuatConjugate(g.rotation), common.Sub3(p, g.position))
	for i := range p {
		if g.scale[i] != 0 {
			p[i] /= g.scale[i]
		}
	}
	return p
}
