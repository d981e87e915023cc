package interaction

import (
	"github.com/google/uuid"

	"github.com/Carmen-Shannon/oxy-hands/common"
	"github.com/Carmen-Shannon/oxy-hands/engine/game_object"
	"github.com/Carmen-Shannon/oxy-hands/engine/grab"
	"github.com/Carmen-Shannon/oxy-hands/engine/tween"
)

// binding is an interactor's view of its current target. It is rebuilt whenever the
// target changes: button roles are resolved once here, not per edge.
type binding struct {
	current          *interactable
	selectionButton  common.Button
	activationButton common.Button
	selecting        bool
	using            bool

	unsubscribe []func()

	attach       *tween.TransformTween
	restoreOwner game_object.GameObject
	parented     bool
}

// interactor is the implementation of the Interactor interface.
type interactor struct {
	id       uuid.UUID
	name     string
	hand     common.Handedness
	attach   game_object.GameObject
	detector Detector
	resolver *grab.Resolver

	binding binding
	grabs   uint64
	mgr     *manager
}

// Interactor is one hand's agent in the interaction state machine. It owns at most one
// current interactable, hovered or selected, and a detector that proposes candidates.
type Interactor interface {
	// ID returns the interactor's unique identifier.
	ID() uuid.UUID

	// Name returns the interactor's display name.
	Name() string

	// Hand returns the hand the interactor belongs to.
	Hand() common.Handedness

	// AttachNode returns the node selected objects are attached to. Its world position is the
	// contact point used to resolve grab points.
	AttachNode() game_object.GameObject

	// Detector returns the candidate detector.
	Detector() Detector

	// Current returns the hovered or selected interactable, or nil.
	Current() Interactable

	// IsSelecting reports whether the current interactable is selected by this interactor.
	IsSelecting() bool

	// IsUsing reports whether the activation button is held while selecting.
	IsUsing() bool

	// SelectionButton returns the selection-role button of the current binding.
	SelectionButton() common.Button

	// ActivationButton returns the activation-role button of the current binding.
	ActivationButton() common.Button

	// Resolver returns the grab point resolver, active while selecting.
	Resolver() *grab.Resolver

	// Grabs counts the selections this interactor has begun. A change while IsSelecting stays
	// true means the previous grab ended and a new one started in between.
	Grabs() uint64
}

var _ Interactor = &interactor{}

// NewInteractor creates an interactor for a hand. Without options it uses a VolumeDetector
// and a fresh root attach node.
//
// Parameters:
//   - hand: the owning hand
//   - options: functional options
//
// Returns:
//   - Interactor: the interactor, not yet registered with a Manager
func NewInteractor(hand common.Handedness, options ...InteractorBuilderOption) Interactor {
	ir := &interactor{
		id:       uuid.New(),
		hand:     hand,
		resolver: grab.NewResolver(),
	}
	for _, opt := range options {
		opt(ir)
	}
	if ir.name == "" {
		ir.name = hand.String() + "_interactor"
	}
	if ir.attach == nil {
		ir.attach = game_object.NewGameObject(game_object.WithName(ir.name + "_attach"))
	}
	if ir.detector == nil {
		ir.detector = NewVolumeDetector()
	}
	ir.binding = binding{selectionButton: common.ButtonGrip, activationButton: common.ButtonTrigger}
	return ir
}

func (ir *interactor) ID() uuid.UUID {
	return ir.id
}

func (ir *interactor) Name() string {
	return ir.name
}

func (ir *interactor) Hand() common.Handedness {
	return ir.hand
}

func (ir *interactor) AttachNode() game_object.GameObject {
	return ir.attach
}

func (ir *interactor) Detector() Detector {
	return ir.detector
}

func (ir *interactor) Current() Interactable {
	if ir.binding.current == nil {
		return nil
	}
	return ir.binding.current
}

func (ir *interactor) Grabs() uint64 {
	return ir.grabs
}

func (ir *interactor) IsSelecting() bool {
	return ir.binding.selecting
}

func (ir *interactor) IsUsing() bool {
	return ir.binding.using
}

func (ir *interactor) SelectionButton() common.Button {
	return ir.binding.selectionButton
}

func (ir *interactor) ActivationButton() common.Button {
	return ir.binding.activationButton
}

func (ir *interactor) Resolver() *grab.Resolver {
	return ir.resolver
}
