package game_object

import (
	"github.com/Carmen-Shannon/oxy-hands/common"
	"github.com/google/uuid"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject, replacing the generated one.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uuid.UUID) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithName sets the display name of the GameObject.
//
// Parameters:
//   - name: the display name
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithEnabled sets whether the GameObject takes part in interaction.
//
// Parameters:
//   - enabled: true to enable the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithParent attaches the GameObject to a parent node.
//
// Parameters:
//   - p: the parent node
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the parent
func WithParent(p GameObject) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.SetParent(p)
	}
}

// WithPosition sets the initial local position of the GameObject.
//
// Parameters:
//   - x: the x position
//   - y: the y position
//   - z: the z position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = [3]float32{x, y, z}
	}
}

// WithScale sets the initial local scale of the GameObject.
//
// Parameters:
//   - sx: the x scale factor
//   - sy: the y scale factor
//   - sz: the z scale factor
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial scale
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = [3]float32{sx, sy, sz}
	}
}

// WithRotation sets the initial local rotation of the GameObject.
//
// Parameters:
//   - rot: the rotation quaternion (x, y, z, w)
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial rotation
func WithRotation(rot [4]float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotation = common.QuatNormalize(rot)
	}
}
