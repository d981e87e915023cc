package interaction

import (
	"github.com/google/uuid"

	"github.com/Carmen-Shannon/oxy-hands/engine/game_object"
)

// InteractorBuilderOption is a functional option for configuring an Interactor via NewInteractor.
type InteractorBuilderOption func(*interactor)

// WithInteractorID sets a fixed identifier instead of a random one.
//
// Parameters:
//   - id: the identifier
//
// Returns:
//   - InteractorBuilderOption: a function that applies the id option to an interactor
func WithInteractorID(id uuid.UUID) InteractorBuilderOption {
	return func(ir *interactor) {
		ir.id = id
	}
}

// WithInteractorName sets the display name, "<hand>_interactor" by default.
//
// Parameters:
//   - name: the name
//
// Returns:
//   - InteractorBuilderOption: a function that applies the name option to an interactor
func WithInteractorName(name string) InteractorBuilderOption {
	return func(ir *interactor) {
		ir.name = name
	}
}

// WithAttachNode sets the node selected objects move to.
//
// Parameters:
//   - node: the attach node, typically a child of the hand root
//
// Returns:
//   - InteractorBuilderOption: a function that applies the attach node option to an interactor
func WithAttachNode(node game_object.GameObject) InteractorBuilderOption {
	return func(ir *interactor) {
		ir.attach = node
	}
}

// WithDetector sets the candidate detector.
//
// Parameters:
//   - d: a VolumeDetector, a RayDetector or another Detector implementation
//
// Returns:
//   - InteractorBuilderOption: a function that applies the detector option to an interactor
func WithDetector(d Detector) InteractorBuilderOption {
	return func(ir *interactor) {
		ir.detector = d
	}
}
