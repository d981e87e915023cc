package interaction

import (
	"slices"

	"github.com/google/uuid"

	"github.com/Carmen-Shannon/oxy-hands/common"
	"github.com/Carmen-Shannon/oxy-hands/engine/game_object"
	"github.com/Carmen-Shannon/oxy-hands/engine/grab"
)

// Callback is an interactable listener. It receives the interactor causing the change.
type Callback func(Interactor)

type callbacks struct {
	hoverEnter []Callback
	hoverExit  []Callback
	selected   []Callback
	deselected []Callback
	useStart   []Callback
	useStop    []Callback
}

// interactable is the implementation of the Interactable interface.
type interactable struct {
	id              uuid.UUID
	name            string
	node            game_object.GameObject
	pointOffset     [3]float32
	selectionButton common.Button
	allowedHands    common.HandMask
	constraints     *grab.Constraints
	enabled         bool

	hoverers   []*interactor
	selectedBy *interactor
	listeners  callbacks

	mgr *manager
}

// Interactable is an object a hand can hover, select and use.
//
// An interactable is either idle, hovered by one or more interactors, or selected by exactly one.
// Its state is driven only by the Manager it is registered with; listeners observe changes after
// the state has been updated.
type Interactable interface {
	// ID returns the interactable's unique identifier.
	ID() uuid.UUID

	// Name returns the interactable's display name.
	Name() string

	// Node returns the scene node the interactable lives on.
	Node() game_object.GameObject

	// InteractionPoint returns the world position used for distance arbitration.
	//
	// Returns:
	//   - [3]float32: the interaction point offset transformed by the node
	InteractionPoint() [3]float32

	// SelectionButton returns the physical button mapped to the selection role.
	SelectionButton() common.Button

	// ActivationButton returns the physical button mapped to the activation role, the complement
	// of the selection button.
	ActivationButton() common.Button

	// AllowedHands returns the set of hands that may interact.
	AllowedHands() common.HandMask

	// AcceptsHand reports whether the hand may interact.
	AcceptsHand(hand common.Handedness) bool

	// Constraints returns the grab configuration, never nil.
	Constraints() *grab.Constraints

	// Enabled reports whether the interactable can be hovered or selected.
	Enabled() bool

	// SetEnabled enables or disables the interactable. Disabling a registered interactable
	// releases every interactor hovering or selecting it.
	//
	// Parameters:
	//   - enabled: the new enabled state
	SetEnabled(enabled bool)

	// State returns the current interaction state.
	State() State

	// SelectedBy returns the selecting interactor, or nil.
	SelectedBy() Interactor

	// Hoverers returns the interactors currently hovering, in hover order.
	Hoverers() []Interactor

	// OnHoverEnter registers a listener fired after an interactor starts hovering.
	OnHoverEnter(fn Callback)

	// OnHoverExit registers a listener fired after an interactor stops hovering.
	OnHoverExit(fn Callback)

	// OnSelect registers a listener fired after an interactor selects the interactable.
	OnSelect(fn Callback)

	// OnDeselect registers a listener fired after the selecting interactor lets go.
	OnDeselect(fn Callback)

	// OnUseStart registers a listener fired when the activation button goes down while selected.
	OnUseStart(fn Callback)

	// OnUseStop registers a listener fired when use ends, including on deselect.
	OnUseStop(fn Callback)
}

var _ Interactable = &interactable{}

// NewInteractable creates an enabled interactable selected with the grip, accepting both hands.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Interactable: the interactable, not yet registered with a Manager
func NewInteractable(options ...InteractableBuilderOption) Interactable {
	x := &interactable{
		id:              uuid.New(),
		selectionButton: common.ButtonGrip,
		allowedHands:    common.HandMaskBoth,
		enabled:         true,
	}
	for _, opt := range options {
		opt(x)
	}
	if x.node == nil {
		x.node = game_object.NewGameObject(game_object.WithName(x.name))
	}
	if x.constraints == nil {
		x.constraints = grab.NewConstraints()
	}
	return x
}

func (x *interactable) ID() uuid.UUID {
	return x.id
}

func (x *interactable) Name() string {
	return x.name
}

func (x *interactable) Node() game_object.GameObject {
	return x.node
}

func (x *interactable) InteractionPoint() [3]float32 {
	return x.node.TransformPoint(x.pointOffset)
}

func (x *interactable) SelectionButton() common.Button {
	return x.selectionButton
}

func (x *interactable) ActivationButton() common.Button {
	return x.selectionButton.Complement()
}

func (x *interactable) AllowedHands() common.HandMask {
	return x.allowedHands
}

func (x *interactable) AcceptsHand(hand common.Handedness) bool {
	return x.allowedHands.Accepts(hand)
}

func (x *interactable) Constraints() *grab.Constraints {
	return x.constraints
}

func (x *interactable) Enabled() bool {
	return x.enabled
}

func (x *interactable) SetEnabled(enabled bool) {
	if x.enabled == enabled {
		return
	}
	x.enabled = enabled
	if !enabled && x.mgr != nil {
		x.mgr.release(x)
	}
}

func (x *interactable) State() State {
	switch {
	case x.selectedBy != nil:
		return StateSelected
	case len(x.hoverers) > 0:
		return StateHovering
	default:
		return StateNone
	}
}

func (x *interactable) SelectedBy() Interactor {
	if x.selectedBy == nil {
		return nil
	}
	return x.selectedBy
}

func (x *interactable) Hoverers() []Interactor {
	out := make([]Interactor, len(x.hoverers))
	for i, ir := range x.hoverers {
		out[i] = ir
	}
	return out
}

func (x *interactable) OnHoverEnter(fn Callback) {
	x.listeners.hoverEnter = appendCallback(x.listeners.hoverEnter, fn)
}

func (x *interactable) OnHoverExit(fn Callback) {
	x.listeners.hoverExit = appendCallback(x.listeners.hoverExit, fn)
}

func (x *interactable) OnSelect(fn Callback) {
	x.listeners.selected = appendCallback(x.listeners.selected, fn)
}

func (x *interactable) OnDeselect(fn Callback) {
	x.listeners.deselected = appendCallback(x.listeners.deselected, fn)
}

func (x *interactable) OnUseStart(fn Callback) {
	x.listeners.useStart = appendCallback(x.listeners.useStart, fn)
}

func (x *interactable) OnUseStop(fn Callback) {
	x.listeners.useStop = appendCallback(x.listeners.useStop, fn)
}

func appendCallback(list []Callback, fn Callback) []Callback {
	if fn == nil {
		return list
	}
	return append(list, fn)
}

func (x *interactable) addHoverer(ir *interactor) {
	if !slices.Contains(x.hoverers, ir) {
		x.hoverers = append(x.hoverers, ir)
	}
}

func (x *interactable) removeHoverer(ir *interactor) {
	if i := slices.Index(x.hoverers, ir); i >= 0 {
		x.hoverers = slices.Delete(x.hoverers, i, i+1)
	}
}
