package interaction

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-hands/common"
)

// DefaultThrottleInterval is the default minimum simulation time, in seconds, between two
// volume re-arbitrations.
const DefaultThrottleInterval float32 = 0.1

// Detector proposes the interactable an interactor should target.
//
// Acquisition and loss are reported by external collider or raycast collaborators; the detector
// turns those reports into a single current candidate. Update runs once per fixed step.
type Detector interface {
	// Update advances the detector and recomputes its current candidate.
	//
	// Parameters:
	//   - dt: fixed step duration in seconds
	//   - origin: the interactor's world position used for distance comparisons
	//   - accept: reports whether a candidate may be targeted by this interactor; nil accepts all
	Update(dt float32, origin [3]float32, accept func(Interactable) bool)

	// Current returns the proposed candidate, or nil.
	Current() Interactable

	// Forget drops every reference to an interactable.
	Forget(x Interactable)
}

func accepted(accept func(Interactable) bool, x Interactable) bool {
	return accept == nil || accept(x)
}

// VolumeDetector tracks interactables overlapping a trigger volume.
//
// With no current candidate the nearest accepted one is acquired on the next Update. While a
// candidate is tracked and others overlap too, the nearest is recomputed at most once per
// throttle interval of accumulated simulation time, and the detector only switches when another
// candidate's interaction point is strictly closer.
type VolumeDetector struct {
	candidates []Interactable
	current    Interactable
	interval   float32
	elapsed    float32
}

var _ Detector = &VolumeDetector{}

// NewVolumeDetector creates a volume detector throttled at DefaultThrottleInterval.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - *VolumeDetector: the detector
func NewVolumeDetector(options ...VolumeDetectorBuilderOption) *VolumeDetector {
	d := &VolumeDetector{interval: DefaultThrottleInterval}
	for _, opt := range options {
		opt(d)
	}
	return d
}

// Interval returns the re-arbitration throttle in seconds.
func (d *VolumeDetector) Interval() float32 {
	return d.interval
}

// Enter reports that an interactable started overlapping the volume.
func (d *VolumeDetector) Enter(x Interactable) {
	if x != nil && !slices.Contains(d.candidates, x) {
		d.candidates = append(d.candidates, x)
	}
}

// Exit reports that an interactable stopped overlapping the volume. Losing the current
// candidate clears it immediately.
func (d *VolumeDetector) Exit(x Interactable) {
	if i := slices.Index(d.candidates, x); i >= 0 {
		d.candidates = slices.Delete(d.candidates, i, i+1)
	}
	if d.current == x {
		d.current = nil
	}
}

// Candidates returns the overlapping interactables in entry order.
func (d *VolumeDetector) Candidates() []Interactable {
	return slices.Clone(d.candidates)
}

func (d *VolumeDetector) Forget(x Interactable) {
	d.Exit(x)
}

func (d *VolumeDetector) Current() Interactable {
	return d.current
}

func (d *VolumeDetector) Update(dt float32, origin [3]float32, accept func(Interactable) bool) {
	d.elapsed += dt
	if d.current != nil && !accepted(accept, d.current) {
		d.current = nil
	}
	if d.current == nil {
		d.current = d.nearest(origin, accept)
		d.elapsed = 0
		return
	}
	if len(d.candidates) < 2 || d.elapsed < d.interval {
		return
	}
	d.elapsed = 0

	best := d.nearest(origin, accept)
	if best == nil || best == d.current {
		return
	}
	if common.DistanceSq3(best.InteractionPoint(), origin) < common.DistanceSq3(d.current.InteractionPoint(), origin) {
		d.current = best
	}
}

func (d *VolumeDetector) nearest(origin [3]float32, accept func(Interactable) bool) Interactable {
	var best Interactable
	var bestD float32
	for _, c := range d.candidates {
		if !accepted(accept, c) {
			continue
		}
		dist := common.DistanceSq3(c.InteractionPoint(), origin)
		if best == nil || dist < bestD {
			best, bestD = c, dist
		}
	}
	return best
}

// RayHit is one interactable intersected by a cast, at a distance along the ray.
type RayHit struct {
	Interactable Interactable
	Distance     float32
}

// RayDetector targets the nearest interactable along a single ray. Hits are supplied by the
// raycast collaborator every step and the nearest accepted hit always wins.
type RayDetector struct {
	hits    []RayHit
	current Interactable
}

var _ Detector = &RayDetector{}

// NewRayDetector creates a ray detector with no hits.
func NewRayDetector() *RayDetector {
	return &RayDetector{}
}

// SetHits replaces the hits of the current cast. An empty slice means nothing is hit.
func (d *RayDetector) SetHits(hits []RayHit) {
	d.hits = append(d.hits[:0], hits...)
}

// Hits returns a copy of the current hits.
func (d *RayDetector) Hits() []RayHit {
	return slices.Clone(d.hits)
}

func (d *RayDetector) Forget(x Interactable) {
	d.hits = slices.DeleteFunc(d.hits, func(h RayHit) bool { return h.Interactable == x })
	if d.current == x {
		d.current = nil
	}
}

func (d *RayDetector) Current() Interactable {
	return d.current
}

func (d *RayDetector) Update(_ float32, _ [3]float32, accept func(Interactable) bool) {
	d.current = nil
	best := float32(0)
	for _, h := range d.hits {
		if h.Interactable == nil || !accepted(accept, h.Interactable) {
			continue
		}
		if d.current == nil || h.Distance < best {
			d.current, best = h.Interactable, h.Distance
		}
	}
}
