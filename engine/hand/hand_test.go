package hand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Carmen-Shannon/oxy-hands/common"
	"github.com/Carmen-Shannon/oxy-hands/engine/grab"
	"github.com/Carmen-Shannon/oxy-hands/engine/input"
	"github.com/Carmen-Shannon/oxy-hands/engine/interaction"
	"github.com/Carmen-Shannon/oxy-hands/engine/pose"
	"github.com/Carmen-Shannon/oxy-hands/engine/tween"
	"github.com/Carmen-Shannon/oxy-hands/internal/handrig"
)

type world struct {
	in    input.Manager
	sched tween.Scheduler
	im    interaction.Manager
	hand  Hand
}

func newWorld(t *testing.T, opts ...HandBuilderOption) *world {
	t.Helper()
	rig := handrig.New()
	in := input.NewManager()
	sched := tween.NewScheduler()
	g, err := pose.NewHandPoseGraph(rig.Model, sched, rig.Poses(), pose.WithBlendRate(0))
	require.NoError(t, err)
	h, err := NewHand(common.HandRight, g, in, opts...)
	require.NoError(t, err)
	im := interaction.NewManager(in, interaction.WithScheduler(sched))
	require.NoError(t, im.AddInteractor(h.Interactor()))
	return &world{in: in, sched: sched, im: im, hand: h}
}

// frame runs one presentation frame.
func (w *world) frame() {
	w.hand.Update(0.016)
	w.sched.Tick(0.016)
	w.hand.Evaluate(0.016)
}

func (w *world) settle() {
	for i := 0; i < 5; i++ {
		w.frame()
	}
}

func TestCurlsDriveFingerValues(t *testing.T) {
	w := newWorld(t)
	w.in.SetFingerCurl(common.HandRight, common.FingerIndex, 0.75)
	w.in.SetFingerCurl(common.HandLeft, common.FingerMiddle, 1)
	w.settle()

	g := w.hand.Graph()
	assert.Equal(t, float32(0.75), g.FingerValue(common.FingerIndex))
	assert.Equal(t, float32(0.75), g.FingerWeight(common.FingerIndex))
	assert.Equal(t, float32(0), g.FingerWeight(common.FingerMiddle), "the other hand's curls are ignored")
}

func TestGrabSwitchesPoseAndClampsFingers(t *testing.T) {
	w := newWorld(t)
	limited := grab.PoseConstraint{PoseIndex: -1, Limited: true, Max: [common.FingerCount]float32{1, 0.5, 1, 1, 1}}
	pointing := grab.PoseConstraint{PoseIndex: 1}
	cup := interaction.NewInteractable(interaction.WithConstraints(grab.NewConstraints(
		grab.GrabPoint{RightConstraint: limited, RightOffset: grab.IdentityOffset()},
	)))
	remote := interaction.NewInteractable(interaction.WithConstraints(grab.NewConstraints(
		grab.GrabPoint{RightConstraint: pointing, RightOffset: grab.IdentityOffset()},
	)))
	require.NoError(t, w.im.AddInteractable(cup))
	require.NoError(t, w.im.AddInteractable(remote))

	for f := common.FingerThumb; f <= common.FingerPinky; f++ {
		w.in.SetFingerCurl(common.HandRight, f, 1)
	}
	ir := w.hand.Interactor()

	require.True(t, w.im.Select(ir, cup))
	w.settle()
	assert.Equal(t, 0, w.hand.Graph().PoseIndex())
	assert.Equal(t, float32(0.5), w.hand.Graph().FingerWeight(common.FingerIndex))
	assert.Equal(t, float32(1), w.hand.Graph().FingerWeight(common.FingerMiddle))
	assert.True(t, w.hand.Constraint().Limited)

	require.True(t, w.im.Deselect(ir))
	w.settle()
	assert.Equal(t, float32(1), w.hand.Graph().FingerWeight(common.FingerIndex))
	assert.False(t, w.hand.Constraint().Limited)

	require.True(t, w.im.Select(ir, remote))
	w.frame()
	assert.Equal(t, 1, w.hand.Graph().PoseIndex())
	assert.Equal(t, pose.PoseStatic, w.hand.Graph().Pose().Kind)

	require.True(t, w.im.Deselect(ir))
	w.frame()
	assert.Equal(t, 0, w.hand.Graph().PoseIndex(), "releasing restores the free pose")
}

func TestRegrabWithinOneFrameAppliesNewConstraint(t *testing.T) {
	w := newWorld(t)
	limited := grab.PoseConstraint{PoseIndex: -1, Limited: true, Max: [common.FingerCount]float32{1, 0.5, 1, 1, 1}}
	cup := interaction.NewInteractable(interaction.WithConstraints(grab.NewConstraints(
		grab.GrabPoint{RightConstraint: limited, RightOffset: grab.IdentityOffset()},
	)))
	remote := interaction.NewInteractable(interaction.WithConstraints(grab.NewConstraints(
		grab.GrabPoint{RightConstraint: grab.PoseConstraint{PoseIndex: 1}, RightOffset: grab.IdentityOffset()},
	)))
	require.NoError(t, w.im.AddInteractable(cup))
	require.NoError(t, w.im.AddInteractable(remote))
	for f := common.FingerThumb; f <= common.FingerPinky; f++ {
		w.in.SetFingerCurl(common.HandRight, f, 1)
	}
	ir := w.hand.Interactor()

	require.True(t, w.im.Select(ir, cup))
	w.settle()
	require.True(t, w.hand.Constraint().Limited)

	require.True(t, w.im.Deselect(ir))
	require.True(t, w.im.Select(ir, remote))
	w.settle()
	assert.Equal(t, 1, w.hand.Graph().PoseIndex())
	assert.False(t, w.hand.Constraint().Limited, "the cup's clamps do not carry over")

	require.True(t, w.im.Deselect(ir))
	require.True(t, w.im.Select(ir, cup))
	w.settle()
	assert.Equal(t, 0, w.hand.Graph().PoseIndex(), "the free pose comes back for a pose-less grab")
	assert.True(t, w.hand.Constraint().Limited)
	assert.Equal(t, float32(0.5), w.hand.Graph().FingerWeight(common.FingerIndex))
}

func TestBadGrabPoseIsLoggedAndIgnored(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	w := newWorld(t, WithLogger(zap.New(core)))
	x := interaction.NewInteractable(interaction.WithConstraints(grab.NewConstraints(
		grab.GrabPoint{RightConstraint: grab.PoseConstraint{PoseIndex: 9}, RightOffset: grab.IdentityOffset()},
	)))
	require.NoError(t, w.im.AddInteractable(x))

	require.True(t, w.im.Select(w.hand.Interactor(), x))
	w.frame()
	assert.Equal(t, 0, w.hand.Graph().PoseIndex())
	assert.Equal(t, 1, logs.FilterMessage("grab pose unavailable, keeping current pose").Len())
}

func TestSetFreePose(t *testing.T) {
	w := newWorld(t)
	require.NoError(t, w.hand.SetFreePose(1))
	assert.Equal(t, 1, w.hand.Graph().PoseIndex())
	assert.ErrorIs(t, w.hand.SetFreePose(7), pose.ErrPoseIndex)
	assert.Equal(t, 1, w.hand.FreePose())
}

func TestNewHandDefaults(t *testing.T) {
	w := newWorld(t)
	h := w.hand
	assert.Equal(t, common.HandRight, h.Handedness())
	assert.Equal(t, common.HandRight, h.Interactor().Hand())
	assert.Same(t, h.Root(), h.Interactor().AttachNode().Parent())

	_, err := NewHand(common.HandLeft, nil, w.in)
	assert.Error(t, err)
	_, err = NewHand(common.HandLeft, h.Graph(), nil)
	assert.Error(t, err)
}

func TestReleaseDropsGraphTweens(t *testing.T) {
	rig := handrig.New()
	in := input.NewManager()
	sched := tween.NewScheduler()
	g, err := pose.NewHandPoseGraph(rig.Model, sched, rig.Poses())
	require.NoError(t, err)
	h, err := NewHand(common.HandLeft, g, in)
	require.NoError(t, err)

	in.SetFingerCurl(common.HandLeft, common.FingerRing, 1)
	h.Update(0.016)
	require.Equal(t, 1, sched.Len())
	h.Release()
	assert.Equal(t, 0, sched.Len())
}
