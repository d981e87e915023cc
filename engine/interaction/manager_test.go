package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Carmen-Shannon/oxy-hands/common"
	"github.com/Carmen-Shannon/oxy-hands/engine/game_object"
	"github.com/Carmen-Shannon/oxy-hands/engine/grab"
	"github.com/Carmen-Shannon/oxy-hands/engine/input"
	"github.com/Carmen-Shannon/oxy-hands/engine/tween"
)

const fixedDT = 0.02

type rig struct {
	in    input.Manager
	sched tween.Scheduler
	m     Manager
	logs  *observer.ObservedLogs
}

func newRig(t *testing.T, opts ...ManagerBuilderOption) *rig {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	in := input.NewManager()
	sched := tween.NewScheduler()
	opts = append([]ManagerBuilderOption{WithLogger(zap.New(core)), WithScheduler(sched)}, opts...)
	return &rig{in: in, sched: sched, m: NewManager(in, opts...), logs: logs}
}

func (r *rig) interactor(t *testing.T, hand common.Handedness) (Interactor, *VolumeDetector) {
	t.Helper()
	d := NewVolumeDetector()
	ir := NewInteractor(hand, WithDetector(d))
	require.NoError(t, r.m.AddInteractor(ir))
	return ir, d
}

func (r *rig) interactable(t *testing.T, name string, opts ...InteractableBuilderOption) Interactable {
	t.Helper()
	opts = append([]InteractableBuilderOption{
		WithInteractableName(name),
		WithNode(game_object.NewGameObject(game_object.WithName(name), game_object.WithPosition(0, 0, 0.1))),
	}, opts...)
	x := NewInteractable(opts...)
	require.NoError(t, r.m.AddInteractable(x))
	return x
}

func (r *rig) press(hand common.Handedness, b common.Button, s common.ButtonState) {
	r.in.SetButton(hand, b, s)
	r.in.Dispatch()
}

func worldPos(g game_object.GameObject) []float32 {
	p := g.WorldPosition()
	return p[:]
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func TestHoverSelectDeselectLifecycle(t *testing.T) {
	r := newRig(t)
	ir, d := r.interactor(t, common.HandLeft)
	x := r.interactable(t, "mug")

	d.Enter(x)
	r.m.FixedUpdate(fixedDT)
	assert.Equal(t, StateHovering, x.State())
	assert.Same(t, x, ir.Current())

	r.press(common.HandLeft, common.ButtonGrip, common.ButtonDown)
	assert.Equal(t, StateSelected, x.State())
	assert.True(t, ir.IsSelecting())
	assert.Same(t, ir, x.SelectedBy())
	assert.Empty(t, x.Hoverers())

	r.press(common.HandLeft, common.ButtonGrip, common.ButtonUp)
	assert.False(t, ir.IsSelecting())
	assert.Nil(t, x.SelectedBy())
	assert.Equal(t, StateHovering, x.State(), "hover is re-acquired in the same frame")

	assert.Equal(t, []EventKind{
		EventHoverEnter, EventStateChanged,
		EventSelect, EventStateChanged,
		EventDeselect, EventStateChanged,
		EventHoverEnter, EventStateChanged,
	}, kinds(r.m.Drain()))
	assert.Empty(t, r.m.Drain())

	d.Exit(x)
	r.m.FixedUpdate(fixedDT)
	assert.Equal(t, StateNone, x.State())
	assert.Nil(t, ir.Current())
	events := r.m.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, EventHoverExit, events[0].Kind)
	assert.Equal(t, StateHovering, events[1].From)
	assert.Equal(t, StateNone, events[1].To)
}

func TestSecondSelectorIsRejected(t *testing.T) {
	r := newRig(t)
	a, da := r.interactor(t, common.HandLeft)
	b, db := r.interactor(t, common.HandRight)
	x := r.interactable(t, "x")
	da.Enter(x)
	db.Enter(x)
	r.m.FixedUpdate(fixedDT)
	require.Len(t, x.Hoverers(), 2)

	// both edges land in the same frame; A's was recorded first
	r.in.SetButton(common.HandLeft, common.ButtonGrip, common.ButtonDown)
	r.in.SetButton(common.HandRight, common.ButtonGrip, common.ButtonDown)
	r.in.Dispatch()

	assert.Same(t, a, x.SelectedBy())
	assert.False(t, b.IsSelecting())
	assert.Nil(t, b.Current(), "a selected interactable cannot be hovered by another interactor")

	assert.False(t, r.m.Select(b, x))
	assert.False(t, r.m.Deselect(b))
	r.press(common.HandRight, common.ButtonGrip, common.ButtonUp)
	assert.Same(t, a, x.SelectedBy(), "only the selector can release")

	r.m.FixedUpdate(fixedDT)
	assert.Nil(t, b.Current())

	r.press(common.HandLeft, common.ButtonGrip, common.ButtonUp)
	r.m.FixedUpdate(fixedDT)
	assert.Equal(t, StateHovering, x.State())
	assert.Len(t, x.Hoverers(), 2)
}

func TestActivationButtonDrivesUse(t *testing.T) {
	r := newRig(t)
	ir, d := r.interactor(t, common.HandRight)
	x := r.interactable(t, "gun", WithSelectionButton(common.ButtonTrigger))
	d.Enter(x)
	r.m.FixedUpdate(fixedDT)
	assert.Equal(t, common.ButtonTrigger, ir.SelectionButton())
	assert.Equal(t, common.ButtonGrip, ir.ActivationButton())

	r.press(common.HandRight, common.ButtonGrip, common.ButtonDown)
	assert.Equal(t, StateHovering, x.State(), "activation while hovering does nothing")
	assert.False(t, ir.IsUsing())
	r.press(common.HandRight, common.ButtonGrip, common.ButtonUp)

	r.press(common.HandRight, common.ButtonTrigger, common.ButtonDown)
	require.Equal(t, StateSelected, x.State())
	r.m.Drain()

	r.press(common.HandRight, common.ButtonGrip, common.ButtonDown)
	assert.True(t, ir.IsUsing())
	assert.Equal(t, StateSelected, x.State(), "use does not change state")
	r.press(common.HandRight, common.ButtonGrip, common.ButtonUp)
	assert.False(t, ir.IsUsing())
	r.press(common.HandRight, common.ButtonGrip, common.ButtonDown)
	r.press(common.HandRight, common.ButtonTrigger, common.ButtonUp)

	assert.Equal(t, []EventKind{
		EventUseStart, EventUseStop,
		EventUseStart, EventUseStop, EventDeselect, EventStateChanged,
		EventHoverEnter, EventStateChanged,
	}, kinds(r.m.Drain()))
	assert.False(t, ir.IsUsing())
}

func TestHandValidityAndEnabledGateHover(t *testing.T) {
	r := newRig(t)
	right, dr := r.interactor(t, common.HandRight)
	left, dl := r.interactor(t, common.HandLeft)
	x := r.interactable(t, "left_only", WithAllowedHands(common.HandMaskLeft))
	dr.Enter(x)
	dl.Enter(x)
	r.m.FixedUpdate(fixedDT)
	assert.Nil(t, right.Current())
	assert.Same(t, x, left.Current())
	assert.False(t, r.m.Select(right, x))

	x.SetEnabled(false)
	assert.Nil(t, left.Current(), "disabling releases hoverers")
	assert.Equal(t, StateNone, x.State())
	r.m.FixedUpdate(fixedDT)
	assert.Nil(t, left.Current())

	x.SetEnabled(true)
	r.m.FixedUpdate(fixedDT)
	assert.Same(t, x, left.Current())
}

func TestBetterCandidateReplacesHover(t *testing.T) {
	r := newRig(t)
	ir, d := r.interactor(t, common.HandLeft)
	far := r.interactable(t, "far")
	near := r.interactable(t, "near")
	near.Node().SetPosition([3]float32{0, 0, 0.01})
	far.Node().SetPosition([3]float32{0, 0, 0.5})

	d.Enter(far)
	r.m.FixedUpdate(fixedDT)
	d.Enter(near)
	for i := 0; i < 6; i++ {
		r.m.FixedUpdate(fixedDT)
	}
	assert.Same(t, near, ir.Current())
	assert.Equal(t, StateNone, far.State())
	assert.Equal(t, StateHovering, near.State())
}

func TestExplicitSelectAndDeselect(t *testing.T) {
	r := newRig(t)
	ir, _ := r.interactor(t, common.HandLeft)
	x := r.interactable(t, "x")
	y := r.interactable(t, "y")

	require.True(t, r.m.Select(ir, x))
	assert.False(t, r.m.Select(ir, y), "an interactor holds at most one interactable")
	assert.Equal(t, StateSelected, x.State())
	assert.True(t, ir.Resolver().Active())

	// the select listeners are now bound to x's buttons
	r.press(common.HandLeft, common.ButtonGrip, common.ButtonDown)
	r.press(common.HandLeft, common.ButtonGrip, common.ButtonUp)
	assert.Equal(t, StateNone, x.State())
	assert.False(t, ir.Resolver().Active())

	require.True(t, r.m.Select(ir, y))
	assert.True(t, r.m.Deselect(ir))
	assert.False(t, r.m.Deselect(ir))
}

func TestSelectResolvesGrabPointOnce(t *testing.T) {
	r := newRig(t)
	ir, _ := r.interactor(t, common.HandRight)
	c := grab.NewConstraints(
		grab.GrabPoint{LocalPosition: [3]float32{0, 0, 1}, RightOffset: grab.IdentityOffset(), RightConstraint: grab.FreeConstraint()},
		grab.GrabPoint{LocalPosition: [3]float32{0, 0, -0.1}, RightOffset: grab.Offset{Position: [3]float32{0, 0.1, 0}, Rotation: common.QuatIdentity()}, RightConstraint: grab.FreeConstraint()},
	)
	x := r.interactable(t, "bat", WithConstraints(c))

	require.True(t, r.m.Select(ir, x))
	assert.Equal(t, 1, ir.Resolver().Index())
	x.Node().SetPosition([3]float32{0, 0, -1})
	assert.Equal(t, 1, ir.Resolver().Index())
	assert.Equal(t, float32(0.1), ir.Resolver().HandOffset(common.HandRight).Position[1])
}

func TestAttachTweenParentsAndRestores(t *testing.T) {
	r := newRig(t, WithAttachRate(0))
	ir, _ := r.interactor(t, common.HandLeft)
	ir.AttachNode().SetPosition([3]float32{0.3, 1, 0})
	x := r.interactable(t, "x")

	require.True(t, r.m.Select(ir, x))
	require.Equal(t, 1, r.sched.Len())
	r.sched.Tick(0.016)
	assert.InDeltaSlice(t, []float32{0.3, 1, 0}, worldPos(x.Node()), 1e-6)
	assert.Nil(t, x.Node().Parent())

	r.sched.Tick(0.016)
	assert.Equal(t, 0, r.sched.Len())
	assert.Same(t, ir.AttachNode(), x.Node().Parent())

	ir.AttachNode().SetPosition([3]float32{0, 2, 0})
	assert.InDeltaSlice(t, []float32{0, 2, 0}, worldPos(x.Node()), 1e-6)

	require.True(t, r.m.Deselect(ir))
	assert.Nil(t, x.Node().Parent())
	assert.InDeltaSlice(t, []float32{0, 2, 0}, worldPos(x.Node()), 1e-6)
}

func TestDeselectDropsAttachTween(t *testing.T) {
	r := newRig(t, WithAttachRate(1))
	ir, _ := r.interactor(t, common.HandLeft)
	x := r.interactable(t, "x")
	require.True(t, r.m.Select(ir, x))
	require.Equal(t, 1, r.sched.Len())
	r.m.Deselect(ir)
	assert.Equal(t, 0, r.sched.Len())
}

func TestRemoveInteractorForcesDeselect(t *testing.T) {
	r := newRig(t, WithAttachRate(1))
	ir, d := r.interactor(t, common.HandLeft)
	x := r.interactable(t, "x")
	d.Enter(x)
	r.m.FixedUpdate(fixedDT)
	r.press(common.HandLeft, common.ButtonGrip, common.ButtonDown)
	require.Equal(t, StateSelected, x.State())
	r.m.Drain()

	require.NoError(t, r.m.RemoveInteractor(ir))
	assert.Equal(t, StateNone, x.State())
	assert.Equal(t, 0, r.sched.Len())
	events := r.m.Drain()
	require.NotEmpty(t, events)
	assert.Equal(t, EventDeselect, events[0].Kind)
	assert.True(t, events[0].Forced)

	// nothing is subscribed any more
	r.press(common.HandLeft, common.ButtonGrip, common.ButtonUp)
	assert.Empty(t, r.m.Drain())
	assert.ErrorIs(t, r.m.RemoveInteractor(ir), ErrNotRegistered)
	assert.Empty(t, r.m.Interactors())
}

func TestRemoveInteractableReleasesEveryone(t *testing.T) {
	r := newRig(t)
	a, da := r.interactor(t, common.HandLeft)
	b, db := r.interactor(t, common.HandRight)
	x := r.interactable(t, "x")
	da.Enter(x)
	db.Enter(x)
	r.m.FixedUpdate(fixedDT)
	require.True(t, r.m.Select(a, x))

	require.NoError(t, r.m.RemoveInteractable(x))
	assert.False(t, a.IsSelecting())
	assert.Nil(t, a.Current())
	assert.Nil(t, b.Current())
	assert.Empty(t, da.Candidates())
	assert.Empty(t, db.Candidates())
	assert.Nil(t, r.m.Interactable(x.ID()))
	assert.ErrorIs(t, r.m.RemoveInteractable(x), ErrNotRegistered)

	r.m.FixedUpdate(fixedDT)
	assert.Nil(t, a.Current())
}

func TestRegistrationErrors(t *testing.T) {
	r := newRig(t)
	ir, _ := r.interactor(t, common.HandLeft)
	x := r.interactable(t, "x")
	assert.ErrorIs(t, r.m.AddInteractor(ir), ErrAlreadyRegistered)
	assert.ErrorIs(t, r.m.AddInteractable(x), ErrAlreadyRegistered)
	assert.Same(t, x, r.m.Interactable(x.ID()))
	assert.Len(t, r.m.Interactables(), 1)

	other := NewManager(r.in)
	assert.ErrorIs(t, other.AddInteractable(x), ErrAlreadyRegistered)
	assert.ErrorIs(t, other.RemoveInteractable(x), ErrNotRegistered)
	assert.False(t, other.Select(ir, x))
}

func TestInvalidConstraintsAreLogged(t *testing.T) {
	r := newRig(t, WithPoseCount(1))
	c := grab.NewConstraints()
	c.DefaultConstraint.PoseIndex = 3
	r.interactable(t, "x", WithConstraints(c))
	assert.Equal(t, 1, r.logs.FilterMessage("grab constraints invalid").Len())
}

func TestSelectCallbackPanicForcesDeselect(t *testing.T) {
	r := newRig(t)
	ir, d := r.interactor(t, common.HandLeft)
	x := r.interactable(t, "x")
	var deselects int
	x.OnSelect(func(Interactor) { panic("boom") })
	x.OnDeselect(func(Interactor) { deselects++ })

	d.Enter(x)
	r.m.FixedUpdate(fixedDT)
	require.NotPanics(t, func() {
		r.press(common.HandLeft, common.ButtonGrip, common.ButtonDown)
	})

	assert.Equal(t, StateNone, x.State())
	assert.False(t, ir.IsSelecting())
	assert.Nil(t, ir.Current())
	assert.Equal(t, 1, deselects)
	assert.Equal(t, 1, r.logs.FilterMessage("interaction callback failed").Len())

	var forced bool
	for _, e := range r.m.Drain() {
		if e.Kind == EventDeselect {
			forced = e.Forced
		}
	}
	assert.True(t, forced)

	// dropped from the detector until it is reported again
	r.m.FixedUpdate(fixedDT)
	assert.Equal(t, StateNone, x.State())
	assert.Empty(t, d.Candidates())

	d.Enter(x)
	r.m.FixedUpdate(fixedDT)
	assert.Equal(t, StateHovering, x.State())
}

func TestHoverCallbackPanicForcesEndHover(t *testing.T) {
	r := newRig(t)
	ir, d := r.interactor(t, common.HandLeft)
	x := r.interactable(t, "x")
	x.OnHoverEnter(func(Interactor) { panic("boom") })

	d.Enter(x)
	require.NotPanics(t, func() {
		for i := 0; i < 10; i++ {
			r.m.FixedUpdate(fixedDT)
		}
	})
	assert.Equal(t, StateNone, x.State())
	assert.Nil(t, ir.Current())
	assert.Equal(t, 1, r.logs.FilterMessage("interaction callback failed").Len())
	assert.Equal(t, 1, r.logs.FilterMessage("interactable dropped from detector after callback failure").Len())

	var enters int
	for _, e := range r.m.Drain() {
		if e.Kind == EventHoverEnter {
			enters++
		}
	}
	assert.Equal(t, 1, enters)
}

func TestUseStartCallbackPanicDropsCandidate(t *testing.T) {
	r := newRig(t)
	ir, d := r.interactor(t, common.HandLeft)
	x := r.interactable(t, "x")
	x.OnUseStart(func(Interactor) { panic("boom") })

	d.Enter(x)
	r.m.FixedUpdate(fixedDT)
	r.press(common.HandLeft, common.ButtonGrip, common.ButtonDown)
	require.True(t, ir.IsSelecting())
	require.NotPanics(t, func() {
		r.press(common.HandLeft, common.ButtonTrigger, common.ButtonDown)
	})

	assert.False(t, ir.IsSelecting())
	for i := 0; i < 5; i++ {
		r.m.FixedUpdate(fixedDT)
	}
	assert.Equal(t, StateNone, x.State())
	assert.Equal(t, 1, r.logs.FilterMessage("interaction callback failed").Len())
}

func TestListenersObserveUpdatedState(t *testing.T) {
	r := newRig(t)
	ir, d := r.interactor(t, common.HandLeft)
	x := r.interactable(t, "x")
	var seen []State
	record := func(Interactor) { seen = append(seen, x.State()) }
	x.OnHoverEnter(record)
	x.OnSelect(record)
	x.OnDeselect(record)
	x.OnHoverExit(record)

	d.Enter(x)
	r.m.FixedUpdate(fixedDT)
	r.press(common.HandLeft, common.ButtonGrip, common.ButtonDown)
	r.press(common.HandLeft, common.ButtonGrip, common.ButtonUp)
	d.Exit(x)
	r.m.FixedUpdate(fixedDT)

	assert.Equal(t, []State{StateHovering, StateSelected, StateNone, StateHovering, StateNone}, seen)
	assert.Nil(t, ir.Current())
}

// Every input from every reachable state leads to one defined state.
func TestStateMachineTotality(t *testing.T) {
	type step func(r *rig, d *VolumeDetector, x Interactable)
	inputs := map[string]step{
		"acquire":    func(r *rig, d *VolumeDetector, x Interactable) { d.Enter(x); r.m.FixedUpdate(fixedDT) },
		"lose":       func(r *rig, d *VolumeDetector, x Interactable) { d.Exit(x); r.m.FixedUpdate(fixedDT) },
		"sel_down":   func(r *rig, _ *VolumeDetector, _ Interactable) { r.press(common.HandLeft, common.ButtonGrip, common.ButtonDown) },
		"sel_up":     func(r *rig, _ *VolumeDetector, _ Interactable) { r.press(common.HandLeft, common.ButtonGrip, common.ButtonUp) },
		"act_down":   func(r *rig, _ *VolumeDetector, _ Interactable) { r.press(common.HandLeft, common.ButtonTrigger, common.ButtonDown) },
		"act_up":     func(r *rig, _ *VolumeDetector, _ Interactable) { r.press(common.HandLeft, common.ButtonTrigger, common.ButtonUp) },
		"disable":    func(_ *rig, _ *VolumeDetector, x Interactable) { x.SetEnabled(false) },
		"fixed_pass": func(r *rig, _ *VolumeDetector, _ Interactable) { r.m.FixedUpdate(fixedDT) },
	}
	setups := map[State]func(r *rig, d *VolumeDetector, x Interactable){
		StateNone: func(*rig, *VolumeDetector, Interactable) {},
		StateHovering: func(r *rig, d *VolumeDetector, x Interactable) {
			d.Enter(x)
			r.m.FixedUpdate(fixedDT)
		},
		StateSelected: func(r *rig, d *VolumeDetector, x Interactable) {
			d.Enter(x)
			r.m.FixedUpdate(fixedDT)
			r.press(common.HandLeft, common.ButtonGrip, common.ButtonDown)
		},
	}
	want := map[State]map[string]State{
		StateNone: {
			"acquire": StateHovering, "lose": StateNone, "sel_down": StateNone, "sel_up": StateNone,
			"act_down": StateNone, "act_up": StateNone, "disable": StateNone, "fixed_pass": StateNone,
		},
		StateHovering: {
			"acquire": StateHovering, "lose": StateNone, "sel_down": StateSelected, "sel_up": StateHovering,
			"act_down": StateHovering, "act_up": StateHovering, "disable": StateNone, "fixed_pass": StateHovering,
		},
		StateSelected: {
			"acquire": StateSelected, "lose": StateSelected, "sel_down": StateSelected, "sel_up": StateHovering,
			"act_down": StateSelected, "act_up": StateSelected, "disable": StateNone, "fixed_pass": StateSelected,
		},
	}

	for from, setup := range setups {
		for name, in := range inputs {
			t.Run(from.String()+"/"+name, func(t *testing.T) {
				r := newRig(t)
				ir, d := r.interactor(t, common.HandLeft)
				x := r.interactable(t, "x")
				setup(r, d, x)
				require.Equal(t, from, x.State())

				in(r, d, x)
				assert.Equal(t, want[from][name], x.State())
				assert.Equal(t, x.State() == StateSelected, ir.IsSelecting())
			})
		}
	}
}
