package interaction

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-hands/common"
	"github.com/Carmen-Shannon/oxy-hands/engine/input"
	"github.com/Carmen-Shannon/oxy-hands/engine/tween"
)

// manager is the implementation of the Manager interface.
type manager struct {
	logger    *zap.Logger
	input     input.Manager
	scheduler tween.Scheduler

	attach     bool
	attachRate float32
	poseCount  int

	interactables []*interactable
	byID          map[uuid.UUID]*interactable
	interactors   []*interactor

	events []Event
}

// Manager runs the interaction state machine for every registered interactor and interactable.
//
// All transitions happen on the frame loop goroutine: hover is evaluated in FixedUpdate, select,
// deselect and use are driven by button edges delivered through the input manager's Dispatch,
// or by the explicit Select and Deselect calls. An interactable is selected by at most one
// interactor; the first select wins and later attempts are no-ops until it is released.
type Manager interface {
	// AddInteractable registers an interactable.
	//
	// Parameters:
	//   - x: an interactable created by NewInteractable
	//
	// Returns:
	//   - error: ErrAlreadyRegistered or ErrUnsupported
	AddInteractable(x Interactable) error

	// RemoveInteractable unregisters an interactable, force-releasing its selector and hoverers.
	//
	// Parameters:
	//   - x: the interactable
	//
	// Returns:
	//   - error: ErrNotRegistered
	RemoveInteractable(x Interactable) error

	// Interactable looks up a registered interactable by ID.
	//
	// Parameters:
	//   - id: the identifier
	//
	// Returns:
	//   - Interactable: the interactable, or nil
	Interactable(id uuid.UUID) Interactable

	// Interactables returns the registered interactables in registration order.
	Interactables() []Interactable

	// AddInteractor registers an interactor.
	//
	// Parameters:
	//   - ir: an interactor created by NewInteractor
	//
	// Returns:
	//   - error: ErrAlreadyRegistered or ErrUnsupported
	AddInteractor(ir Interactor) error

	// RemoveInteractor unregisters an interactor. A selecting interactor is force-deselected, its
	// listeners unsubscribed and its tweens dropped before it is removed.
	//
	// Parameters:
	//   - ir: the interactor
	//
	// Returns:
	//   - error: ErrNotRegistered
	RemoveInteractor(ir Interactor) error

	// Interactors returns the registered interactors in registration order.
	Interactors() []Interactor

	// FixedUpdate updates every idle or hovering interactor's detector and applies the resulting
	// hover transitions, in registration order.
	//
	// Parameters:
	//   - dt: fixed step duration in seconds
	FixedUpdate(dt float32)

	// Select makes ir select x. Fails silently when x is selected elsewhere, disabled, does not
	// accept ir's hand, or ir already selects something.
	//
	// Parameters:
	//   - ir: the interactor
	//   - x: the interactable
	//
	// Returns:
	//   - bool: true if the selection happened
	Select(ir Interactor, x Interactable) bool

	// Deselect releases whatever ir selects and immediately re-evaluates its hover.
	//
	// Parameters:
	//   - ir: the interactor
	//
	// Returns:
	//   - bool: true if something was deselected
	Deselect(ir Interactor) bool

	// Drain returns and clears the events published since the last call.
	//
	// Returns:
	//   - []Event: the events in publication order
	Drain() []Event
}

var _ Manager = &manager{}

// NewManager creates an interaction manager fed by an input manager.
//
// Parameters:
//   - in: the input boundary the interactors subscribe to
//   - options: functional options
//
// Returns:
//   - Manager: the manager
func NewManager(in input.Manager, options ...ManagerBuilderOption) Manager {
	m := &manager{
		logger: zap.NewNop(),
		input:  in,
		byID:   make(map[uuid.UUID]*interactable),
	}
	for _, opt := range options {
		opt(m)
	}
	if m.input == nil {
		m.input = input.NewManager(input.WithLogger(m.logger))
	}
	return m
}

func (m *manager) AddInteractable(x Interactable) error {
	xi, ok := x.(*interactable)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupported, x)
	}
	if _, dup := m.byID[xi.id]; dup || xi.mgr != nil {
		return fmt.Errorf("%w: interactable %s", ErrAlreadyRegistered, xi.id)
	}
	if m.poseCount > 0 {
		if err := xi.constraints.Validate(m.poseCount); err != nil {
			m.logger.Warn("grab constraints invalid",
				zap.String("interactable", xi.name), zap.Error(err))
		}
	}
	xi.mgr = m
	m.interactables = append(m.interactables, xi)
	m.byID[xi.id] = xi
	return nil
}

func (m *manager) RemoveInteractable(x Interactable) error {
	xi, ok := x.(*interactable)
	if !ok || xi.mgr != m {
		return fmt.Errorf("%w: interactable", ErrNotRegistered)
	}
	m.release(xi)
	for _, ir := range m.interactors {
		ir.detector.Forget(xi)
	}
	m.interactables = slices.DeleteFunc(m.interactables, func(c *interactable) bool { return c == xi })
	delete(m.byID, xi.id)
	xi.mgr = nil
	return nil
}

func (m *manager) Interactable(id uuid.UUID) Interactable {
	if x, ok := m.byID[id]; ok {
		return x
	}
	return nil
}

func (m *manager) Interactables() []Interactable {
	out := make([]Interactable, len(m.interactables))
	for i, x := range m.interactables {
		out[i] = x
	}
	return out
}

func (m *manager) AddInteractor(ir Interactor) error {
	iri, ok := ir.(*interactor)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupported, ir)
	}
	if iri.mgr != nil {
		return fmt.Errorf("%w: interactor %s", ErrAlreadyRegistered, iri.id)
	}
	iri.mgr = m
	m.interactors = append(m.interactors, iri)
	return nil
}

func (m *manager) RemoveInteractor(ir Interactor) error {
	iri, ok := ir.(*interactor)
	if !ok || iri.mgr != m {
		return fmt.Errorf("%w: interactor", ErrNotRegistered)
	}
	m.clear(iri, true)
	m.interactors = slices.DeleteFunc(m.interactors, func(c *interactor) bool { return c == iri })
	iri.mgr = nil
	return nil
}

func (m *manager) Interactors() []Interactor {
	out := make([]Interactor, len(m.interactors))
	for i, ir := range m.interactors {
		out[i] = ir
	}
	return out
}

func (m *manager) FixedUpdate(dt float32) {
	for _, ir := range slices.Clone(m.interactors) {
		if ir.mgr != m || ir.binding.selecting {
			continue
		}
		ir.detector.Update(dt, ir.attach.WorldPosition(), m.acceptor(ir))
		m.evaluateHover(ir)
	}
}

func (m *manager) Select(ir Interactor, x Interactable) bool {
	iri, ok := ir.(*interactor)
	if !ok || iri.mgr != m {
		return false
	}
	xi, ok := x.(*interactable)
	if !ok || xi.mgr != m {
		return false
	}
	return m.selectTarget(iri, xi)
}

func (m *manager) Deselect(ir Interactor) bool {
	iri, ok := ir.(*interactor)
	if !ok || iri.mgr != m || !iri.binding.selecting {
		return false
	}
	m.deselect(iri, false)
	m.rehover(iri)
	return true
}

func (m *manager) Drain() []Event {
	out := m.events
	m.events = nil
	return out
}

// acceptor returns the hover gate for an interactor: the candidate is registered, enabled,
// accepts the hand and is not selected by another interactor.
func (m *manager) acceptor(ir *interactor) func(Interactable) bool {
	return func(x Interactable) bool {
		xi, ok := x.(*interactable)
		return ok && m.canTarget(ir, xi)
	}
}

func (m *manager) canTarget(ir *interactor, x *interactable) bool {
	return x.mgr == m && x.enabled && x.AcceptsHand(ir.hand) && (x.selectedBy == nil || x.selectedBy == ir)
}

// evaluateHover moves an interactor's hover to its detector's current candidate.
func (m *manager) evaluateHover(ir *interactor) {
	var next *interactable
	if c := ir.detector.Current(); c != nil {
		if xi, ok := c.(*interactable); ok && m.canTarget(ir, xi) {
			next = xi
		}
	}
	if next == ir.binding.current {
		return
	}
	if ir.binding.current != nil {
		m.endHover(ir, false)
	}
	if next != nil {
		m.beginHover(ir, next)
	}
}

// rehover refreshes the detector without advancing time and re-applies hover, so a released
// hand can pick up a candidate in the same frame.
func (m *manager) rehover(ir *interactor) {
	if ir.mgr != m || ir.binding.selecting {
		return
	}
	ir.detector.Update(0, ir.attach.WorldPosition(), m.acceptor(ir))
	m.evaluateHover(ir)
}

func (m *manager) beginHover(ir *interactor, x *interactable) {
	before := x.State()
	m.bind(ir, x)
	x.addHoverer(ir)
	m.publish(Event{Kind: EventHoverEnter, Interactable: x.id, Interactor: ir.id, Hand: ir.hand})
	m.publishState(ir, x, before)
	m.logger.Debug("hover enter", zap.String("interactor", ir.name), zap.String("interactable", x.name))

	if !m.invoke(ir, x, "hover_enter", x.listeners.hoverEnter) && ir.binding.current == x && !ir.binding.selecting {
		m.endHover(ir, true)
		m.suppress(ir, x)
	}
}

func (m *manager) endHover(ir *interactor, forced bool) {
	x := ir.binding.current
	if x == nil || ir.binding.selecting {
		return
	}
	before := x.State()
	x.removeHoverer(ir)
	m.unbind(ir)
	m.publish(Event{Kind: EventHoverExit, Interactable: x.id, Interactor: ir.id, Hand: ir.hand, Forced: forced})
	m.publishState(ir, x, before)
	m.logger.Debug("hover exit", zap.String("interactor", ir.name), zap.String("interactable", x.name), zap.Bool("forced", forced))

	m.invoke(ir, x, "hover_exit", x.listeners.hoverExit)
}

func (m *manager) selectTarget(ir *interactor, x *interactable) bool {
	if ir.binding.selecting || !m.canTarget(ir, x) || x.selectedBy != nil {
		return false
	}
	if ir.binding.current != x {
		if ir.binding.current != nil {
			m.endHover(ir, false)
		}
		m.bind(ir, x)
	}

	before := x.State()
	x.removeHoverer(ir)
	x.selectedBy = ir
	ir.binding.selecting = true
	ir.grabs++
	// hovering a selected interactable is reserved for its selector
	for _, other := range slices.Clone(x.hoverers) {
		m.endHover(other, true)
	}

	ir.resolver.Resolve(x.constraints, x.node, ir.attach.WorldPosition(), ir.hand)
	m.startAttach(ir, x)

	m.publish(Event{Kind: EventSelect, Interactable: x.id, Interactor: ir.id, Hand: ir.hand})
	m.publishState(ir, x, before)
	m.logger.Debug("select",
		zap.String("interactor", ir.name),
		zap.String("interactable", x.name),
		zap.Int("grab_point", ir.resolver.Index()))

	if !m.invoke(ir, x, "select", x.listeners.selected) && ir.binding.selecting && ir.binding.current == x {
		m.deselect(ir, true)
		m.suppress(ir, x)
	}
	return true
}

// deselect releases the interactor's selection. Use is stopped first, the attach tween is
// dropped and the button listeners are unsubscribed before any deselect listener runs.
func (m *manager) deselect(ir *interactor, forced bool) {
	x := ir.binding.current
	if x == nil || !ir.binding.selecting {
		return
	}
	if ir.binding.using {
		m.stopUse(ir, x)
	}

	before := x.State()
	m.stopAttach(ir, x)
	ir.resolver.Reset()
	x.selectedBy = nil
	ir.binding.selecting = false
	m.unbind(ir)

	m.publish(Event{Kind: EventDeselect, Interactable: x.id, Interactor: ir.id, Hand: ir.hand, Forced: forced})
	m.publishState(ir, x, before)
	m.logger.Debug("deselect", zap.String("interactor", ir.name), zap.String("interactable", x.name), zap.Bool("forced", forced))

	m.invoke(ir, x, "deselect", x.listeners.deselected)
}

func (m *manager) startUse(ir *interactor, x *interactable) {
	ir.binding.using = true
	m.publish(Event{Kind: EventUseStart, Interactable: x.id, Interactor: ir.id, Hand: ir.hand})
	if !m.invoke(ir, x, "use_start", x.listeners.useStart) && ir.binding.selecting && ir.binding.current == x {
		m.deselect(ir, true)
		m.suppress(ir, x)
	}
}

// suppress makes the interactor's detector drop x after a failed callback, so x is only targeted
// again once the detector reports it anew.
func (m *manager) suppress(ir *interactor, x *interactable) {
	ir.detector.Forget(x)
	m.logger.Warn("interactable dropped from detector after callback failure",
		zap.String("interactor", ir.name), zap.String("interactable", x.name))
}

func (m *manager) stopUse(ir *interactor, x *interactable) {
	ir.binding.using = false
	m.publish(Event{Kind: EventUseStop, Interactable: x.id, Interactor: ir.id, Hand: ir.hand})
	m.invoke(ir, x, "use_stop", x.listeners.useStop)
}

// clear drops whatever the interactor targets without re-evaluating hover.
func (m *manager) clear(ir *interactor, forced bool) {
	if ir.binding.selecting {
		m.deselect(ir, forced)
		return
	}
	if ir.binding.current != nil {
		m.endHover(ir, forced)
	}
}

// release forces every interactor off an interactable.
func (m *manager) release(x *interactable) {
	if x.selectedBy != nil {
		m.deselect(x.selectedBy, true)
	}
	for _, ir := range slices.Clone(x.hoverers) {
		m.endHover(ir, true)
	}
}

// bind makes x the interactor's current target and subscribes its button roles.
func (m *manager) bind(ir *interactor, x *interactable) {
	m.unbind(ir)
	ir.binding.current = x
	ir.binding.selectionButton = x.SelectionButton()
	ir.binding.activationButton = x.ActivationButton()
	for _, b := range []common.Button{common.ButtonGrip, common.ButtonTrigger} {
		r := roleFor(ir.binding.selectionButton, b)
		ir.binding.unsubscribe = append(ir.binding.unsubscribe, m.input.Subscribe(ir.hand, b, func(s common.ButtonState) {
			m.onRole(ir, x, r, s)
		}))
	}
}

func (m *manager) unbind(ir *interactor) {
	for _, u := range ir.binding.unsubscribe {
		u()
	}
	ir.binding.unsubscribe = nil
	ir.binding.current = nil
	ir.binding.using = false
}

// onRole handles one button edge for the interactable the listener was bound to.
func (m *manager) onRole(ir *interactor, x *interactable, r role, s common.ButtonState) {
	if ir.mgr != m || ir.binding.current != x {
		return
	}
	switch {
	case r == roleSelect && s == common.ButtonDown:
		m.selectTarget(ir, x)
	case r == roleSelect && s == common.ButtonUp:
		if ir.binding.selecting {
			m.deselect(ir, false)
			m.rehover(ir)
		}
	case r == roleActivate && s == common.ButtonDown:
		if ir.binding.selecting && !ir.binding.using {
			m.startUse(ir, x)
		}
	case r == roleActivate && s == common.ButtonUp:
		if ir.binding.selecting && ir.binding.using {
			m.stopUse(ir, x)
		}
	}
}

func (m *manager) startAttach(ir *interactor, x *interactable) {
	if !m.attach || m.scheduler == nil {
		return
	}
	off := ir.resolver.HandOffset(ir.hand)
	tw := tween.NewTransformTween(x.node, ir.attach, m.attachRate)
	tw.SetOffset(off.Position, off.Rotation)
	tw.OnComplete(func() {
		if ir.binding.attach != tw {
			return
		}
		pos, rot := x.node.WorldPosition(), x.node.WorldRotation()
		ir.binding.restoreOwner = x.node.Parent()
		x.node.SetParent(ir.attach)
		x.node.SetWorldPose(pos, rot)
		ir.binding.parented = true
	})
	ir.binding.attach = tw
	m.scheduler.Add(tw)
}

func (m *manager) stopAttach(ir *interactor, x *interactable) {
	if tw := ir.binding.attach; tw != nil && m.scheduler != nil {
		m.scheduler.Remove(tw)
	}
	ir.binding.attach = nil
	if ir.binding.parented {
		pos, rot := x.node.WorldPosition(), x.node.WorldRotation()
		x.node.SetParent(ir.binding.restoreOwner)
		x.node.SetWorldPose(pos, rot)
	}
	ir.binding.parented = false
	ir.binding.restoreOwner = nil
}

func (m *manager) publish(e Event) {
	m.events = append(m.events, e)
}

func (m *manager) publishState(ir *interactor, x *interactable, before State) {
	if after := x.State(); after != before {
		m.publish(Event{Kind: EventStateChanged, Interactable: x.id, Interactor: ir.id, Hand: ir.hand, From: before, To: after})
	}
}

// invoke runs listeners in order. A panicking listener is logged and stops the remaining ones;
// the caller decides how to restore a consistent state.
//
// Returns:
//   - bool: false if a listener panicked
func (m *manager) invoke(ir *interactor, x *interactable, kind string, fns []Callback) (ok bool) {
	ok = true
	defer func() {
		if r := recover(); r != nil {
			ok = false
			m.logger.Error("interaction callback failed",
				zap.String("callback", kind),
				zap.String("interactor", ir.name),
				zap.String("interactable", x.name),
				zap.Error(fmt.Errorf("panic: %v", r)))
		}
	}()
	for _, fn := range fns {
		fn(ir)
	}
	return ok
}
