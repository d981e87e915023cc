package pose

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/Carmen-Shannon/oxy-hands/common"
	"github.com/Carmen-Shannon/oxy-hands/engine/model"
)

var (
	// ErrMissingClip reports a pose without a clip it requires.
	ErrMissingClip = errors.New("pose: missing clip")

	// ErrMissingMask reports a dynamic pose finger without a mask.
	ErrMissingMask = errors.New("pose: missing finger mask")

	// ErrPoseIndex reports a pose index outside the graph's pose list.
	ErrPoseIndex = errors.New("pose: index out of range")

	// ErrNoSkeleton reports a model without a skeleton.
	ErrNoSkeleton = errors.New("pose: model has no skeleton")

	// ErrNoPoses reports a graph built without any pose.
	ErrNoPoses = errors.New("pose: no poses configured")
)

// PoseKind tags which payload of a PoseAsset is meaningful.
type PoseKind int

const (
	// PoseStatic holds one fixed clip for the whole hand; finger values are ignored.
	PoseStatic PoseKind = iota

	// PoseDynamic cross-fades each finger between an open and a closed clip.
	PoseDynamic
)

func (k PoseKind) String() string {
	switch k {
	case PoseStatic:
		return "static"
	case PoseDynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// StaticPose is the payload of a PoseStatic asset.
type StaticPose struct {
	Clip *model.AnimationClip
}

// DynamicPose is the payload of a PoseDynamic asset.
type DynamicPose struct {
	Open   *model.AnimationClip
	Closed *model.AnimationClip
}

// PoseAsset is the static description of a named hand pose. Kind selects the payload:
// Static for PoseStatic, Dynamic for PoseDynamic. Masks map each finger to its bones and are
// required for dynamic poses; a static pose with masks only drives the masked bones.
type PoseAsset struct {
	Name    string
	Kind    PoseKind
	Static  StaticPose
	Dynamic DynamicPose
	Masks   [common.FingerCount]*FingerMask
}

// NewStaticPose builds a static pose over a single clip.
//
// Parameters:
//   - name: the pose name, or empty to derive it from the clip
//   - clip: the fixed clip
//   - masks: optional finger masks limiting the bones the clip drives
//
// Returns:
//   - PoseAsset: the pose
func NewStaticPose(name string, clip *model.AnimationClip, masks [common.FingerCount]*FingerMask) PoseAsset {
	return PoseAsset{Name: name, Kind: PoseStatic, Static: StaticPose{Clip: clip}, Masks: masks}
}

// NewDynamicPose builds a dynamic pose blending between open and closed clips per finger.
//
// Parameters:
//   - name: the pose name, or empty to derive it from the clips
//   - open: clip at finger value 0
//   - closed: clip at finger value 1
//   - masks: one mask per finger
//
// Returns:
//   - PoseAsset: the pose
func NewDynamicPose(name string, open, closed *model.AnimationClip, masks [common.FingerCount]*FingerMask) PoseAsset {
	return PoseAsset{Name: name, Kind: PoseDynamic, Dynamic: DynamicPose{Open: open, Closed: closed}, Masks: masks}
}

func clipName(c *model.AnimationClip) string {
	if c == nil {
		return ""
	}
	return c.Name
}

// ResolveName fills an empty Name from the clip names and returns it.
// Static poses take the clip name, dynamic poses "open/closed". The result is never empty.
//
// Returns:
//   - string: the resolved name
func (p *PoseAsset) ResolveName() string {
	var derived string
	switch p.Kind {
	case PoseStatic:
		derived = clipName(p.Static.Clip)
	case PoseDynamic:
		open, closed := clipName(p.Dynamic.Open), clipName(p.Dynamic.Closed)
		switch {
		case open != "" && closed != "":
			derived = open + "/" + closed
		default:
			derived = common.Coalesce(open, closed)
		}
	}
	p.Name = common.Coalesce(p.Name, derived, fmt.Sprintf("%s_pose", p.Kind))
	return p.Name
}

// Validate checks the references the pose kind requires and returns every problem found,
// combined with multierr. A nil result means the pose is complete.
//
// Returns:
//   - error: the combined configuration errors, or nil
func (p *PoseAsset) Validate() error {
	var err error
	switch p.Kind {
	case PoseStatic:
		if p.Static.Clip == nil {
			err = multierr.Append(err, fmt.Errorf("%w: static clip", ErrMissingClip))
		}
	case PoseDynamic:
		if p.Dynamic.Open == nil {
			err = multierr.Append(err, fmt.Errorf("%w: open clip", ErrMissingClip))
		}
		if p.Dynamic.Closed == nil {
			err = multierr.Append(err, fmt.Errorf("%w: closed clip", ErrMissingClip))
		}
		for f, m := range p.Masks {
			if m == nil {
				err = multierr.Append(err, fmt.Errorf("%w: %s", ErrMissingMask, common.Finger(f)))
			}
		}
	default:
		err = fmt.Errorf("pose: unknown kind %d", p.Kind)
	}
	return err
}
