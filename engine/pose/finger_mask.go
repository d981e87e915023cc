package pose

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-hands/common"
	"github.com/Carmen-Shannon/oxy-hands/engine/model"
)

// FingerMask is the immutable set of skeleton bones a single finger influences.
// Masks are owned by the authoring asset and shared read-only by every pose graph.
type FingerMask struct {
	finger common.Finger
	bones  []int32
}

// NewFingerMask creates a mask for a finger over the given bone indices.
// Duplicates and negative indices are dropped.
//
// Parameters:
//   - finger: the finger the mask belongs to
//   - bones: skeleton bone indices
//
// Returns:
//   - *FingerMask: the immutable mask
func NewFingerMask(finger common.Finger, bones ...int32) *FingerMask {
	set := make([]int32, 0, len(bones))
	for _, b := range bones {
		if b >= 0 && !slices.Contains(set, b) {
			set = append(set, b)
		}
	}
	slices.Sort(set)
	return &FingerMask{finger: finger, bones: set}
}

// NewFingerMaskByName resolves bone names against a skeleton and builds a mask.
//
// Parameters:
//   - skel: the skeleton to resolve names against
//   - finger: the finger the mask belongs to
//   - names: bone names
//
// Returns:
//   - *FingerMask: the mask
//   - error: an error naming the first bone the skeleton does not contain
func NewFingerMaskByName(skel *model.Skeleton, finger common.Finger, names ...string) (*FingerMask, error) {
	bones := make([]int32, 0, len(names))
	for _, n := range names {
		idx := skel.BoneIndex(n)
		if idx < 0 {
			return nil, fmt.Errorf("finger %s: bone %q not in skeleton", finger, n)
		}
		bones = append(bones, idx)
	}
	return NewFingerMask(finger, bones...), nil
}

// Finger returns the finger this mask belongs to.
func (m *FingerMask) Finger() common.Finger {
	return m.finger
}

// Contains reports whether the bone is influenced by this finger.
func (m *FingerMask) Contains(bone int32) bool {
	_, ok := slices.BinarySearch(m.bones, bone)
	return ok
}

// Bones returns a copy of the bone indices, sorted ascending.
func (m *FingerMask) Bones() []int32 {
	return slices.Clone(m.bones)
}

// Len returns the number of bones in the mask.
func (m *FingerMask) Len() int {
	return len(m.bones)
}
