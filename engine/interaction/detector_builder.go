package interaction

// VolumeDetectorBuilderOption is a functional option for configuring a VolumeDetector via NewVolumeDetector.
type VolumeDetectorBuilderOption func(*VolumeDetector)

// WithThrottleInterval sets the minimum simulation time between two re-arbitrations.
//
// Parameters:
//   - seconds: the interval; values <= 0 keep DefaultThrottleInterval
//
// Returns:
//   - VolumeDetectorBuilderOption: a function that applies the interval option to a detector
func WithThrottleInterval(seconds float32) VolumeDetectorBuilderOption {
	return func(d *VolumeDetector) {
		if seconds > 0 {
			d.interval = seconds
		}
	}
}
