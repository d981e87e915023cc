package hand

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-hands/common"
	"github.com/Carmen-Shannon/oxy-hands/engine/game_object"
	"github.com/Carmen-Shannon/oxy-hands/engine/grab"
	"github.com/Carmen-Shannon/oxy-hands/engine/input"
	"github.com/Carmen-Shannon/oxy-hands/engine/interaction"
	"github.com/Carmen-Shannon/oxy-hands/engine/model"
	"github.com/Carmen-Shannon/oxy-hands/engine/pose"
)

// hand is the implementation of the Hand interface.
type hand struct {
	logger     *zap.Logger
	handedness common.Handedness
	root       game_object.GameObject
	interactor interaction.Interactor
	graph      pose.HandPoseGraph
	input      input.Manager

	freePose   int
	selecting  bool
	grabs      uint64
	constraint grab.PoseConstraint
}

// Hand owns everything one physical hand needs: its interactor, its pose graph and the input
// it reads finger curls from.
//
// Update runs in the presentation phase before the scheduler ticks. It follows the interactor's
// selection: on select the hand switches to the grab point's pose and starts clamping finger
// values to its constraint; on deselect it returns to the free pose. Evaluate runs after the
// scheduler has ticked.
type Hand interface {
	// Handedness returns which hand this is.
	Handedness() common.Handedness

	// Root returns the hand's root node. The interactor's attach node is a child of it unless
	// another attach node was supplied.
	Root() game_object.GameObject

	// Interactor returns the hand's interactor.
	Interactor() interaction.Interactor

	// Graph returns the hand's pose graph.
	Graph() pose.HandPoseGraph

	// Constraint returns the pose constraint currently applied to finger values.
	Constraint() grab.PoseConstraint

	// FreePose returns the pose index used while nothing is held.
	FreePose() int

	// SetFreePose changes the pose used while nothing is held. Applied immediately unless the
	// hand is holding something.
	//
	// Parameters:
	//   - index: the pose index
	//
	// Returns:
	//   - error: pose.ErrPoseIndex when out of range
	SetFreePose(index int) error

	// Update follows selection changes and pushes the constrained finger curls into the graph.
	//
	// Parameters:
	//   - dt: presentation frame time in seconds
	Update(dt float32)

	// Evaluate evaluates the pose graph.
	//
	// Parameters:
	//   - dt: presentation frame time in seconds
	//
	// Returns:
	//   - []model.Transform: the hand's local bone transforms, owned by the graph
	Evaluate(dt float32) []model.Transform

	// Release tears down the pose graph.
	Release()
}

var _ Hand = &hand{}

// NewHand builds a hand around a pose graph.
//
// Parameters:
//   - handedness: the hand
//   - graph: the hand's own pose graph
//   - in: the input boundary finger curls are read from
//   - options: functional options
//
// Returns:
//   - Hand: the hand with the graph's active pose as its free pose
//   - error: an error if graph or in is nil
func NewHand(handedness common.Handedness, graph pose.HandPoseGraph, in input.Manager, options ...HandBuilderOption) (Hand, error) {
	if graph == nil {
		return nil, fmt.Errorf("hand %s: nil pose graph", handedness)
	}
	if in == nil {
		return nil, fmt.Errorf("hand %s: nil input manager", handedness)
	}
	h := &hand{
		logger:     zap.NewNop(),
		handedness: handedness,
		graph:      graph,
		input:      in,
		freePose:   graph.PoseIndex(),
		constraint: grab.FreeConstraint(),
	}
	for _, opt := range options {
		opt(h)
	}
	if h.root == nil {
		h.root = game_object.NewGameObject(game_object.WithName(handedness.String() + "_hand"))
	}
	if h.interactor == nil {
		attach := game_object.NewGameObject(game_object.WithName(handedness.String()+"_attach"), game_object.WithParent(h.root))
		h.interactor = interaction.NewInteractor(handedness, interaction.WithAttachNode(attach))
	}
	return h, nil
}

func (h *hand) Handedness() common.Handedness {
	return h.handedness
}

func (h *hand) Root() game_object.GameObject {
	return h.root
}

func (h *hand) Interactor() interaction.Interactor {
	return h.interactor
}

func (h *hand) Graph() pose.HandPoseGraph {
	return h.graph
}

func (h *hand) Constraint() grab.PoseConstraint {
	return h.constraint
}

func (h *hand) FreePose() int {
	return h.freePose
}

func (h *hand) SetFreePose(index int) error {
	if index < 0 || index >= h.graph.PoseCount() {
		return fmt.Errorf("%w: free pose %d", pose.ErrPoseIndex, index)
	}
	h.freePose = index
	if h.selecting {
		return nil
	}
	return h.graph.SetPose(index)
}

func (h *hand) Update(_ float32) {
	sel, grabs := h.interactor.IsSelecting(), h.interactor.Grabs()
	switch {
	case sel && h.selecting && grabs != h.grabs:
		// released and regrabbed since the last frame
		h.released()
		h.grabbed()
	case sel && !h.selecting:
		h.grabbed()
	case !sel && h.selecting:
		h.released()
	}
	h.selecting, h.grabs = sel, grabs

	curls := h.input.FingerCurls(h.handedness)
	for f := common.FingerThumb; f <= common.FingerPinky; f++ {
		h.graph.SetFingerValue(f, h.constraint.Clamp(f, curls[f]))
	}
}

func (h *hand) grabbed() {
	h.constraint = h.interactor.Resolver().PoseConstraint(h.handedness)
	if h.constraint.PoseIndex < 0 {
		return
	}
	if err := h.graph.SetPose(h.constraint.PoseIndex); err != nil {
		h.logger.Warn("grab pose unavailable, keeping current pose",
			zap.Stringer("hand", h.handedness), zap.Error(err))
	}
}

func (h *hand) released() {
	h.constraint = grab.FreeConstraint()
	if err := h.graph.SetPose(h.freePose); err != nil {
		h.logger.Warn("free pose unavailable", zap.Stringer("hand", h.handedness), zap.Error(err))
	}
}

func (h *hand) Evaluate(dt float32) []model.Transform {
	return h.graph.Evaluate(dt)
}

func (h *hand) Release() {
	h.graph.Release()
}
