package input

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-hands/common"
)

// Listener receives button edges for one (hand, button) pair.
type Listener func(state common.ButtonState)

// Edge is a queued button state change.
type Edge struct {
	Hand   common.Handedness
	Button common.Button
	State  common.ButtonState
}

type listenerKey struct {
	hand   common.Handedness
	button common.Button
}

type subscription struct {
	fn     Listener
	active bool
}

// manager is the implementation of the Manager interface.
type manager struct {
	logger *zap.Logger

	buttons map[listenerKey]common.ButtonState
	curls   [2][common.FingerCount]float32

	listeners map[listenerKey][]*subscription
	queue     []Edge
}

// Manager is the input boundary between the device layer and the interaction core.
//
// The device layer pushes normalized button states and finger curls per hand. Button changes
// are queued as edges and fanned out to subscribers only when Dispatch is called, so every
// edge reaches every subscriber once, inside the frame phase that drains the queue.
// A Manager is not safe for concurrent use; feed it from the frame loop goroutine.
type Manager interface {
	// SetButton records a button state. Setting the current state again queues nothing.
	//
	// Parameters:
	//   - hand: the hand the button belongs to
	//   - button: the physical button
	//   - state: the new press state
	SetButton(hand common.Handedness, button common.Button, state common.ButtonState)

	// Button returns the last recorded state of a button, ButtonUp if never set.
	//
	// Parameters:
	//   - hand: the hand to query
	//   - button: the physical button
	//
	// Returns:
	//   - common.ButtonState: the press state
	Button(hand common.Handedness, button common.Button) common.ButtonState

	// SetFingerCurl records a continuous finger curl, clamped to [0, 1].
	//
	// Parameters:
	//   - hand: the hand
	//   - finger: the finger
	//   - value: the curl amount
	SetFingerCurl(hand common.Handedness, finger common.Finger, value float32)

	// FingerCurl returns the last recorded curl of a finger.
	//
	// Parameters:
	//   - hand: the hand
	//   - finger: the finger
	//
	// Returns:
	//   - float32: the curl in [0, 1], 0 for invalid arguments
	FingerCurl(hand common.Handedness, finger common.Finger) float32

	// FingerCurls returns all five curls of a hand, thumb first.
	//
	// Parameters:
	//   - hand: the hand
	//
	// Returns:
	//   - [common.FingerCount]float32: the curls
	FingerCurls(hand common.Handedness) [common.FingerCount]float32

	// Subscribe registers a listener for edges of one button on one hand.
	//
	// Parameters:
	//   - hand: the hand
	//   - button: the physical button
	//   - fn: the listener
	//
	// Returns:
	//   - func(): unsubscribes the listener; safe to call more than once and from inside a listener
	Subscribe(hand common.Handedness, button common.Button, fn Listener) func()

	// Pending returns the number of edges waiting for Dispatch.
	//
	// Returns:
	//   - int: the queued edge count
	Pending() int

	// Dispatch delivers every queued edge to its subscribers in the order the edges were recorded.
	// Edges recorded by listeners during Dispatch are kept for the next call.
	//
	// Returns:
	//   - int: the number of edges delivered
	Dispatch() int
}

var _ Manager = &manager{}

// NewManager creates an input manager with every button up and every curl at 0.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Manager: the manager
func NewManager(options ...ManagerBuilderOption) Manager {
	m := &manager{
		logger:    zap.NewNop(),
		buttons:   make(map[listenerKey]common.ButtonState),
		listeners: make(map[listenerKey][]*subscription),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *manager) SetButton(hand common.Handedness, button common.Button, state common.ButtonState) {
	if !hand.Valid() || !button.Valid() {
		return
	}
	k := listenerKey{hand, button}
	if m.buttons[k] == state {
		return
	}
	m.buttons[k] = state
	m.queue = append(m.queue, Edge{Hand: hand, Button: button, State: state})
}

func (m *manager) Button(hand common.Handedness, button common.Button) common.ButtonState {
	return m.buttons[listenerKey{hand, button}]
}

func (m *manager) SetFingerCurl(hand common.Handedness, finger common.Finger, value float32) {
	if !hand.Valid() || !finger.Valid() {
		return
	}
	m.curls[hand][finger] = common.Clamp01(value)
}

func (m *manager) FingerCurl(hand common.Handedness, finger common.Finger) float32 {
	if !hand.Valid() || !finger.Valid() {
		return 0
	}
	return m.curls[hand][finger]
}

func (m *manager) FingerCurls(hand common.Handedness) [common.FingerCount]float32 {
	if !hand.Valid() {
		return [common.FingerCount]float32{}
	}
	return m.curls[hand]
}

func (m *manager) Subscribe(hand common.Handedness, button common.Button, fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	k := listenerKey{hand, button}
	sub := &subscription{fn: fn, active: true}
	m.listeners[k] = append(m.listeners[k], sub)
	return func() {
		if !sub.active {
			return
		}
		sub.active = false
		subs := m.listeners[k]
		for i, s := range subs {
			if s == sub {
				m.listeners[k] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
		if len(m.listeners[k]) == 0 {
			delete(m.listeners, k)
		}
	}
}

func (m *manager) Pending() int {
	return len(m.queue)
}

func (m *manager) Dispatch() int {
	edges := m.queue
	m.queue = nil
	for _, e := range edges {
		subs := append([]*subscription(nil), m.listeners[listenerKey{e.Hand, e.Button}]...)
		for _, s := range subs {
			if s.active {
				m.deliver(s, e)
			}
		}
	}
	return len(edges)
}

// deliver calls one listener, containing any panic to that listener.
func (m *manager) deliver(s *subscription, e Edge) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("input listener failed",
				zap.Stringer("hand", e.Hand),
				zap.Stringer("button", e.Button),
				zap.Stringer("state", e.State),
				zap.Error(fmt.Errorf("panic: %v", r)))
		}
	}()
	s.fn(e.State)
}
