package interaction

import (
	"errors"

	"github.com/google/uuid"

	"github.com/Carmen-Shannon/oxy-hands/common"
)

var (
	// ErrNotRegistered reports an interactable or interactor unknown to the manager.
	ErrNotRegistered = errors.New("interaction: not registered")

	// ErrAlreadyRegistered reports a second registration of the same interactable or interactor.
	ErrAlreadyRegistered = errors.New("interaction: already registered")

	// ErrUnsupported reports an Interactable or Interactor implementation not built by this package.
	ErrUnsupported = errors.New("interaction: unsupported implementation")
)

// State is the interaction state of an interactable.
type State int

const (
	// StateNone means no interactor hovers or selects the interactable.
	StateNone State = iota

	// StateHovering means at least one interactor targets the interactable without selecting it.
	StateHovering

	// StateSelected means exactly one interactor holds the interactable.
	StateSelected
)

func (s State) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateHovering:
		return "hovering"
	case StateSelected:
		return "selected"
	default:
		return "unknown"
	}
}

// EventKind tags an interaction Event.
type EventKind int

const (
	EventHoverEnter EventKind = iota
	EventHoverExit
	EventSelect
	EventDeselect
	EventUseStart
	EventUseStop

	// EventStateChanged is published whenever an interactable's State changes.
	EventStateChanged
)

func (k EventKind) String() string {
	switch k {
	case EventHoverEnter:
		return "hover_enter"
	case EventHoverExit:
		return "hover_exit"
	case EventSelect:
		return "select"
	case EventDeselect:
		return "deselect"
	case EventUseStart:
		return "use_start"
	case EventUseStop:
		return "use_stop"
	case EventStateChanged:
		return "state_changed"
	default:
		return "unknown"
	}
}

// Event is a discrete interaction fact published for gameplay, audio and UI consumers.
type Event struct {
	Kind         EventKind
	Interactable uuid.UUID
	Interactor   uuid.UUID
	Hand         common.Handedness

	// From and To are set for EventStateChanged.
	From State
	To   State

	// Forced marks hover exits and deselects caused by teardown or a failing callback.
	Forced bool
}

// role is what a physical button means for the interactable an interactor is bound to.
type role int

const (
	roleNone role = iota
	roleSelect
	roleActivate
)

// roleFor maps a pressed button to its role given the interactable's selection button.
// The complementary button is the activation role.
func roleFor(selection, pressed common.Button) role {
	switch {
	case selection == common.ButtonGrip && pressed == common.ButtonGrip:
		return roleSelect
	case selection == common.ButtonGrip && pressed == common.ButtonTrigger:
		return roleActivate
	case selection == common.ButtonTrigger && pressed == common.ButtonTrigger:
		return roleSelect
	case selection == common.ButtonTrigger && pressed == common.ButtonGrip:
		return roleActivate
	default:
		return roleNone
	}
}
