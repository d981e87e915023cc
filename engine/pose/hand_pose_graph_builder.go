package pose

import "go.uber.org/zap"

// HandPoseGraphBuilderOption is a functional option for configuring a HandPoseGraph via NewHandPoseGraph.
type HandPoseGraphBuilderOption func(*handPoseGraph)

// WithBlendRate sets the tween progress per second used by every finger unit.
//
// Parameters:
//   - rate: progress per second; values <= 0 snap finger weights on the next tick
//
// Returns:
//   - HandPoseGraphBuilderOption: a function that applies the blend rate option to a graph
func WithBlendRate(rate float32) HandPoseGraphBuilderOption {
	return func(g *handPoseGraph) {
		g.rate = rate
	}
}

// WithWeightThreshold sets the smallest finger weight change that retargets a unit's tween.
//
// Parameters:
//   - threshold: the minimum change; negative values are treated as 0
//
// Returns:
//   - HandPoseGraphBuilderOption: a function that applies the threshold option to a graph
func WithWeightThreshold(threshold float32) HandPoseGraphBuilderOption {
	return func(g *handPoseGraph) {
		if threshold < 0 {
			threshold = 0
		}
		g.threshold = threshold
	}
}

// WithLoop sets whether multi-frame pose clips loop (default) or hold their last frame.
//
// Parameters:
//   - loop: true to loop clip playback
//
// Returns:
//   - HandPoseGraphBuilderOption: a function that applies the loop option to a graph
func WithLoop(loop bool) HandPoseGraphBuilderOption {
	return func(g *handPoseGraph) {
		g.loop = loop
	}
}

// WithLogger sets the logger used for configuration warnings and pose switches.
//
// Parameters:
//   - logger: the zap logger; nil keeps the no-op default
//
// Returns:
//   - HandPoseGraphBuilderOption: a function that applies the logger option to a graph
func WithLogger(logger *zap.Logger) HandPoseGraphBuilderOption {
	return func(g *handPoseGraph) {
		if logger != nil {
			g.logger = logger
		}
	}
}
