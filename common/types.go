// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Handedness identifies which physical hand a component belongs to.
type Handedness int

const (
	// HandLeft is the left hand.
	HandLeft Handedness = iota

	// HandRight is the right hand.
	HandRight
)

// Valid reports whether h is the left or right hand.
func (h Handedness) Valid() bool {
	return h == HandLeft || h == HandRight
}

func (h Handedness) String() string {
	switch h {
	case HandLeft:
		return "left"
	case HandRight:
		return "right"
	default:
		return "unknown"
	}
}

// HandMask is a set of accepted hands, used by interactables to gate which hands may interact.
type HandMask uint8

const (
	// HandMaskLeft accepts only the left hand.
	HandMaskLeft HandMask = 1 << iota

	// HandMaskRight accepts only the right hand.
	HandMaskRight

	// HandMaskBoth accepts either hand.
	HandMaskBoth = HandMaskLeft | HandMaskRight
)

// Accepts reports whether the mask includes the given hand.
func (m HandMask) Accepts(h Handedness) bool {
	switch h {
	case HandLeft:
		return m&HandMaskLeft != 0
	case HandRight:
		return m&HandMaskRight != 0
	default:
		return false
	}
}

// Button identifies a physical controller button that can be mapped to an interaction role.
type Button int

const (
	// ButtonGrip is the grip (squeeze) button.
	ButtonGrip Button = iota

	// ButtonTrigger is the index trigger.
	ButtonTrigger
)

// Complement returns the other physical button. The grip complements the trigger and vice versa.
func (b Button) Complement() Button {
	if b == ButtonGrip {
		return ButtonTrigger
	}
	return ButtonGrip
}

func (b Button) String() string {
	switch b {
	case ButtonGrip:
		return "grip"
	case ButtonTrigger:
		return "trigger"
	default:
		return "unknown"
	}
}

// ButtonState is the normalized press state of a button.
type ButtonState int

const (
	// ButtonUp means the button is released.
	ButtonUp ButtonState = iota

	// ButtonDown means the button is pressed.
	ButtonDown
)

// Valid reports whether b is a known button.
func (b Button) Valid() bool {
	return b == ButtonGrip || b == ButtonTrigger
}

func (s ButtonState) String() string {
	if s == ButtonDown {
		return "down"
	}
	return "up"
}

// Finger identifies one of the five fingers of a hand, thumb first.
type Finger int

const (
	FingerThumb Finger = iota
	FingerIndex
	FingerMiddle
	FingerRing
	FingerPinky
)

// FingerCount is the number of fingers per hand.
const FingerCount = 5

// Valid reports whether f is one of the five fingers.
func (f Finger) Valid() bool {
	return f >= FingerThumb && f <= FingerPinky
}

func (f Finger) String() string {
	switch f {
	case FingerThumb:
		return "thumb"
	case FingerIndex:
		return "index"
	case FingerMiddle:
		return "middle"
	case FingerRing:
		return "ring"
	case FingerPinky:
		return "pinky"
	default:
		return "unknown"
	}
}
