package interaction

import (
	"github.com/google/uuid"

	"github.com/Carmen-Shannon/oxy-hands/common"
	"github.com/Carmen-Shannon/oxy-hands/engine/game_object"
	"github.com/Carmen-Shannon/oxy-hands/engine/grab"
)

// InteractableBuilderOption is a functional option for configuring an Interactable via NewInteractable.
type InteractableBuilderOption func(*interactable)

// WithInteractableID sets a fixed identifier instead of a random one.
//
// Parameters:
//   - id: the identifier
//
// Returns:
//   - InteractableBuilderOption: a function that applies the id option to an interactable
func WithInteractableID(id uuid.UUID) InteractableBuilderOption {
	return func(x *interactable) {
		x.id = id
	}
}

// WithInteractableName sets the display name.
//
// Parameters:
//   - name: the name
//
// Returns:
//   - InteractableBuilderOption: a function that applies the name option to an interactable
func WithInteractableName(name string) InteractableBuilderOption {
	return func(x *interactable) {
		x.name = name
	}
}

// WithNode sets the scene node the interactable lives on. A fresh root node is created otherwise.
//
// Parameters:
//   - node: the node
//
// Returns:
//   - InteractableBuilderOption: a function that applies the node option to an interactable
func WithNode(node game_object.GameObject) InteractableBuilderOption {
	return func(x *interactable) {
		x.node = node
	}
}

// WithInteractionPoint sets the interaction point in the node's local space.
//
// Parameters:
//   - offset: the local offset
//
// Returns:
//   - InteractableBuilderOption: a function that applies the interaction point option to an interactable
func WithInteractionPoint(offset [3]float32) InteractableBuilderOption {
	return func(x *interactable) {
		x.pointOffset = offset
	}
}

// WithSelectionButton sets the physical button mapped to the selection role.
//
// Parameters:
//   - button: the selection button; the other button becomes the activation button
//
// Returns:
//   - InteractableBuilderOption: a function that applies the selection button option to an interactable
func WithSelectionButton(button common.Button) InteractableBuilderOption {
	return func(x *interactable) {
		if button.Valid() {
			x.selectionButton = button
		}
	}
}

// WithAllowedHands restricts which hands may interact.
//
// Parameters:
//   - mask: the accepted hands
//
// Returns:
//   - InteractableBuilderOption: a function that applies the hand mask option to an interactable
func WithAllowedHands(mask common.HandMask) InteractableBuilderOption {
	return func(x *interactable) {
		x.allowedHands = mask
	}
}

// WithConstraints sets the grab configuration.
//
// Parameters:
//   - c: the grab points and defaults
//
// Returns:
//   - InteractableBuilderOption: a function that applies the constraints option to an interactable
func WithConstraints(c *grab.Constraints) InteractableBuilderOption {
	return func(x *interactable) {
		x.constraints = c
	}
}

// WithInteractableEnabled sets the initial enabled state.
//
// Parameters:
//   - enabled: the enabled state
//
// Returns:
//   - InteractableBuilderOption: a function that applies the enabled option to an interactable
func WithInteractableEnabled(enabled bool) InteractableBuilderOption {
	return func(x *interactable) {
		x.enabled = enabled
	}
}
