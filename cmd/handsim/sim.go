package main

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-hands/common"
	"github.com/Carmen-Shannon/oxy-hands/config"
	"github.com/Carmen-Shannon/oxy-hands/engine"
	"github.com/Carmen-Shannon/oxy-hands/engine/game_object"
	"github.com/Carmen-Shannon/oxy-hands/engine/grab"
	"github.com/Carmen-Shannon/oxy-hands/engine/hand"
	"github.com/Carmen-Shannon/oxy-hands/engine/interaction"
	"github.com/Carmen-Shannon/oxy-hands/engine/pose"
	"github.com/Carmen-Shannon/oxy-hands/internal/handrig"
)

const curlStep = 0.25

var handOrder = [2]common.Handedness{common.HandLeft, common.HandRight}

type item struct {
	key string
	x   interaction.Interactable
}

type simHand struct {
	hand     hand.Hand
	detector *interaction.VolumeDetector
}

// sim is the demo scene: two procedural hands and a handful of props whose proximity is toggled
// by hand instead of by a physics query.
type sim struct {
	eng   engine.Engine
	hands [2]simHand
	items []item
}

func newSim(cfg config.Config, logger *zap.Logger) (*sim, error) {
	rig := handrig.New()
	poseCount := len(rig.Poses())
	eng := engine.NewEngine(
		engine.WithConfig(cfg),
		engine.WithLogger(logger),
		engine.WithPoseCount(poseCount),
	)
	s := &sim{eng: eng}

	for i, hd := range handOrder {
		g, err := pose.NewHandPoseGraph(rig.Model, eng.Scheduler(), rig.Poses(),
			pose.WithBlendRate(cfg.Pose.BlendRate),
			pose.WithWeightThreshold(cfg.Pose.WeightThreshold),
			pose.WithLoop(cfg.Pose.Loop),
			pose.WithLogger(logger.Named("pose").With(zap.Stringer("hand", hd))),
		)
		if err != nil {
			return nil, fmt.Errorf("%s pose graph: %w", hd, err)
		}

		x := float32(0.2)
		if hd == common.HandLeft {
			x = -x
		}
		root := game_object.NewGameObject(game_object.WithName(hd.String()+"_hand"), game_object.WithPosition(x, 1, 0))
		attach := game_object.NewGameObject(game_object.WithName(hd.String()+"_attach"), game_object.WithParent(root))
		d := interaction.NewVolumeDetector(interaction.WithThrottleInterval(cfg.Interaction.ThrottleInterval))
		ir := interaction.NewInteractor(hd, interaction.WithDetector(d), interaction.WithAttachNode(attach))

		h, err := hand.NewHand(hd, g, eng.Input(),
			hand.WithRoot(root),
			hand.WithInteractor(ir),
			hand.WithLogger(logger.Named("hand")),
		)
		if err != nil {
			return nil, err
		}
		if err := eng.AddHand(h); err != nil {
			return nil, err
		}
		s.hands[i] = simHand{hand: h, detector: d}
	}

	cupped := grab.PoseConstraint{
		PoseIndex: 0,
		Limited:   true,
		Max:       [common.FingerCount]float32{0.6, 0.8, 0.8, 0.8, 0.8},
	}
	pointing := grab.PoseConstraint{PoseIndex: 1}

	mugHandle := grab.GrabPoint{
		LocalPosition:   [3]float32{0.05, 0, 0},
		LocalRotation:   common.QuatIdentity(),
		LeftConstraint:  cupped,
		RightConstraint: cupped,
		LeftOffset:      grab.IdentityOffset(),
		RightOffset:     grab.IdentityOffset(),
	}
	mugRim := mugHandle
	mugRim.LocalPosition = [3]float32{0, 0.06, 0}
	mugRim.LeftConstraint, mugRim.RightConstraint = grab.FreeConstraint(), grab.FreeConstraint()

	remote := grab.NewConstraints()
	remote.DefaultConstraint = pointing

	s.items = []item{
		{key: "m", x: newProp("mug", 0, 1, 0.1, interaction.WithConstraints(grab.NewConstraints(mugHandle, mugRim)))},
		{key: "r", x: newProp("remote", 0.1, 1, 0.1, interaction.WithConstraints(remote))},
		{key: "s", x: newProp("spray", -0.1, 1, 0.1, interaction.WithSelectionButton(common.ButtonTrigger))},
		{key: "b", x: newProp("ball", -0.2, 1, 0.15, interaction.WithAllowedHands(common.HandMaskLeft))},
	}
	for _, it := range s.items {
		if err := eng.Interaction().AddInteractable(it.x); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func newProp(name string, x, y, z float32, opts ...interaction.InteractableBuilderOption) interaction.Interactable {
	node := game_object.NewGameObject(game_object.WithName(name), game_object.WithPosition(x, y, z))
	return interaction.NewInteractable(append([]interaction.InteractableBuilderOption{
		interaction.WithInteractableName(name),
		interaction.WithNode(node),
	}, opts...)...)
}

func (s *sim) hand(hd common.Handedness) simHand {
	if hd == common.HandLeft {
		return s.hands[0]
	}
	return s.hands[1]
}

// toggleNear moves an item into or out of a hand's detection volume.
func (s *sim) toggleNear(hd common.Handedness, x interaction.Interactable) bool {
	d := s.hand(hd).detector
	if s.isNear(hd, x) {
		d.Exit(x)
		return false
	}
	d.Enter(x)
	return true
}

func (s *sim) isNear(hd common.Handedness, x interaction.Interactable) bool {
	return slices.Contains(s.hand(hd).detector.Candidates(), x)
}

func (s *sim) toggleButton(hd common.Handedness, b common.Button) {
	in := s.eng.Input()
	if in.Button(hd, b) == common.ButtonDown {
		in.SetButton(hd, b, common.ButtonUp)
		return
	}
	in.SetButton(hd, b, common.ButtonDown)
}

// bumpCurl advances one finger's curl by a quarter, wrapping back to open.
func (s *sim) bumpCurl(hd common.Handedness, f common.Finger) {
	in := s.eng.Input()
	v := in.FingerCurl(hd, f) + curlStep
	if v > 1 {
		v = 0
	}
	in.SetFingerCurl(hd, f, v)
}

func (s *sim) setCurls(hd common.Handedness, v float32) {
	for f := common.FingerThumb; f <= common.FingerPinky; f++ {
		s.eng.Input().SetFingerCurl(hd, f, v)
	}
}

func (s *sim) step(dt float32) []interaction.Event {
	s.eng.Step(dt)
	return s.eng.Events()
}

func (s *sim) name(id uuid.UUID) string {
	if x := s.eng.Interaction().Interactable(id); x != nil {
		return x.Name()
	}
	return id.String()
}

func (s *sim) describe(e interaction.Event) string {
	switch e.Kind {
	case interaction.EventStateChanged:
		return fmt.Sprintf("%s %s -> %s", s.name(e.Interactable), e.From, e.To)
	default:
		line := fmt.Sprintf("%s %s %s", e.Hand, e.Kind, s.name(e.Interactable))
		if e.Forced {
			line += " (forced)"
		}
		return line
	}
}
