package pose

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-hands/common"
	"github.com/Carmen-Shannon/oxy-hands/engine/model"
	"github.com/Carmen-Shannon/oxy-hands/engine/tween"
)

// handPoseGraph is the implementation of the HandPoseGraph interface.
type handPoseGraph struct {
	logger    *zap.Logger
	scheduler tween.Scheduler
	mdl       model.Model

	poses  []PoseAsset
	active int

	// sub-graph: either fingers (dynamic) or static (static), never both
	fingers [common.FingerCount]*FingerBlend
	static  *clipPlayer

	// staticBones limits the static clip to masked bones; nil drives every bone
	staticBones []int32

	requested [common.FingerCount]float32

	bind []model.Transform
	out  []model.Transform

	rate      float32
	threshold float32
	loop      bool
	released  bool
}

// HandPoseGraph composites one hand's active pose into per-bone local transforms.
//
// Exactly one PoseAsset is realized at a time: five FingerBlend units for a dynamic pose or a
// single clip player for a static pose. Switching pose releases the previous sub-graph, including
// its tweens, before the new one is wired. Each graph is owned by one hand and is not shared;
// it is driven from the presentation phase after the scheduler has ticked.
type HandPoseGraph interface {
	// SetPose switches the active pose. Selecting the active pose again is a no-op.
	// Configuration problems in the new pose are logged and the affected fingers become no-ops.
	//
	// Parameters:
	//   - index: index into the graph's pose list
	//
	// Returns:
	//   - error: ErrPoseIndex when index is out of range; the active pose is unchanged
	SetPose(index int) error

	// SetPoseByName switches to the first pose with the given resolved name.
	//
	// Parameters:
	//   - name: the pose name
	//
	// Returns:
	//   - error: ErrPoseIndex when no pose has that name
	SetPoseByName(name string) error

	// PoseIndex returns the index of the active pose.
	//
	// Returns:
	//   - int: the active pose index
	PoseIndex() int

	// Pose returns a copy of the active pose asset.
	//
	// Returns:
	//   - PoseAsset: the active pose
	Pose() PoseAsset

	// PoseCount returns the number of poses the graph can switch between.
	//
	// Returns:
	//   - int: the pose count
	PoseCount() int

	// SetFingerValue requests a closed weight for one finger. Ignored for static poses and
	// invalid fingers. The request is remembered and re-applied when switching to a dynamic pose.
	//
	// Parameters:
	//   - finger: the finger to drive
	//   - value: closed weight in [0, 1], clamped
	SetFingerValue(finger common.Finger, value float32)

	// FingerValue returns the last requested value for a finger.
	//
	// Parameters:
	//   - finger: the finger to query
	//
	// Returns:
	//   - float32: the requested value, 0 for invalid fingers
	FingerValue(finger common.Finger) float32

	// FingerWeight returns the current blended closed weight of a finger, 0 for static poses.
	//
	// Parameters:
	//   - finger: the finger to query
	//
	// Returns:
	//   - float32: the current weight
	FingerWeight(finger common.Finger) float32

	// Finger returns the blend unit driving a finger, or nil for static poses.
	//
	// Parameters:
	//   - finger: the finger to query
	//
	// Returns:
	//   - *FingerBlend: the unit or nil
	Finger(finger common.Finger) *FingerBlend

	// Evaluate advances clip playback by dt and recomputes the hand's local bone transforms.
	// The returned slice is owned by the graph and overwritten on the next call.
	//
	// Parameters:
	//   - dt: elapsed presentation time in seconds
	//
	// Returns:
	//   - []model.Transform: one local transform per skeleton bone
	Evaluate(dt float32) []model.Transform

	// Output returns the transforms computed by the last Evaluate.
	//
	// Returns:
	//   - []model.Transform: the last evaluated pose
	Output() []model.Transform

	// Model returns the rig the graph was built on.
	//
	// Returns:
	//   - model.Model: the model
	Model() model.Model

	// Release tears down the active sub-graph and removes its tweens from the scheduler.
	// The graph must not be used afterwards.
	Release()
}

var _ HandPoseGraph = &handPoseGraph{}

// NewHandPoseGraph builds a graph over a rig and a pose list and activates pose 0.
// Pose names are resolved; incomplete poses are kept and logged when activated.
//
// Parameters:
//   - m: the hand rig; must carry a skeleton
//   - sched: the scheduler driving finger tweens
//   - poses: the poses the graph can switch between
//   - options: functional options (blend rate, threshold, logger, looping)
//
// Returns:
//   - HandPoseGraph: the graph with pose 0 active
//   - error: ErrNoSkeleton or ErrNoPoses
func NewHandPoseGraph(m model.Model, sched tween.Scheduler, poses []PoseAsset, options ...HandPoseGraphBuilderOption) (HandPoseGraph, error) {
	if m == nil || m.Skeleton() == nil {
		return nil, ErrNoSkeleton
	}
	if len(poses) == 0 {
		return nil, ErrNoPoses
	}
	if sched == nil {
		return nil, fmt.Errorf("pose: nil scheduler")
	}

	g := &handPoseGraph{
		logger:    zap.NewNop(),
		scheduler: sched,
		mdl:       m,
		poses:     make([]PoseAsset, len(poses)),
		active:    -1,
		bind:      m.Skeleton().BindPose(),
		rate:      DefaultBlendRate,
		threshold: DefaultWeightThreshold,
		loop:      true,
	}
	for _, opt := range options {
		opt(g)
	}
	copy(g.poses, poses)
	for i := range g.poses {
		g.poses[i].ResolveName()
	}
	g.out = make([]model.Transform, len(g.bind))
	copy(g.out, g.bind)

	if err := g.SetPose(0); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *handPoseGraph) SetPose(index int) error {
	if index < 0 || index >= len(g.poses) {
		return fmt.Errorf("%w: %d of %d", ErrPoseIndex, index, len(g.poses))
	}
	if index == g.active || g.released {
		return nil
	}

	p := &g.poses[index]
	if err := p.Validate(); err != nil {
		g.logger.Warn("pose incomplete, affected fingers disabled",
			zap.String("pose", p.Name), zap.Int("index", index), zap.Error(err))
	}

	// carry the live weights into the replacement units so a pose switch does not snap
	var carried [common.FingerCount]float32
	for i, f := range g.fingers {
		if f != nil && !f.Disabled() {
			carried[i] = f.Weight()
		}
	}
	g.teardown()

	switch p.Kind {
	case PoseDynamic:
		for i := range g.fingers {
			f := newFingerBlend(common.Finger(i), p.Dynamic.Open, p.Dynamic.Closed, p.Masks[i], g.scheduler, g.rate, g.threshold, carried[i], g.loop)
			f.SetWeight(g.requested[i])
			g.fingers[i] = f
		}
	case PoseStatic:
		g.static = newClipPlayer(p.Static.Clip, g.loop)
		g.staticBones = nil
		for _, m := range p.Masks {
			if m != nil {
				g.staticBones = append(g.staticBones, m.bones...)
			}
		}
	}

	g.active = index
	g.logger.Debug("pose activated", zap.String("pose", p.Name), zap.Stringer("kind", p.Kind))
	return nil
}

func (g *handPoseGraph) SetPoseByName(name string) error {
	for i := range g.poses {
		if g.poses[i].Name == name {
			return g.SetPose(i)
		}
	}
	return fmt.Errorf("%w: no pose named %q", ErrPoseIndex, name)
}

// teardown disconnects the active sub-graph from the output and the scheduler.
func (g *handPoseGraph) teardown() {
	for i, f := range g.fingers {
		if f != nil {
			f.release()
			g.fingers[i] = nil
		}
	}
	g.static = nil
	g.staticBones = nil
}

func (g *handPoseGraph) PoseIndex() int {
	return g.active
}

func (g *handPoseGraph) Pose() PoseAsset {
	return g.poses[g.active]
}

func (g *handPoseGraph) PoseCount() int {
	return len(g.poses)
}

func (g *handPoseGraph) SetFingerValue(finger common.Finger, value float32) {
	if !finger.Valid() {
		return
	}
	value = common.Clamp01(value)
	g.requested[finger] = value
	if f := g.fingers[finger]; f != nil {
		f.SetWeight(value)
	}
}

func (g *handPoseGraph) FingerValue(finger common.Finger) float32 {
	if !finger.Valid() {
		return 0
	}
	return g.requested[finger]
}

func (g *handPoseGraph) FingerWeight(finger common.Finger) float32 {
	if !finger.Valid() || g.fingers[finger] == nil {
		return 0
	}
	return g.fingers[finger].Weight()
}

func (g *handPoseGraph) Finger(finger common.Finger) *FingerBlend {
	if !finger.Valid() {
		return nil
	}
	return g.fingers[finger]
}

func (g *handPoseGraph) Evaluate(dt float32) []model.Transform {
	copy(g.out, g.bind)
	if g.released {
		return g.out
	}

	if g.static != nil {
		g.static.advance(dt)
		if g.staticBones == nil {
			for b := range g.out {
				g.out[b] = g.static.sample(int32(b), g.bind[b])
			}
		} else {
			for _, b := range g.staticBones {
				if int(b) < len(g.out) {
					g.out[b] = g.static.sample(b, g.bind[b])
				}
			}
		}
		return g.out
	}

	for _, f := range g.fingers {
		if f == nil {
			continue
		}
		f.advance(dt)
		f.apply(g.out, g.bind)
	}
	return g.out
}

func (g *handPoseGraph) Output() []model.Transform {
	return g.out
}

func (g *handPoseGraph) Model() model.Model {
	return g.mdl
}

func (g *handPoseGraph) Release() {
	g.teardown()
	g.released = true
}
