package tween

import "go.uber.org/zap"

// SchedulerBuilderOption is a functional option for configuring a Scheduler during construction.
type SchedulerBuilderOption func(*scheduler)

// WithLogger sets the logger used to report failing tasks.
//
// Parameters:
//   - logger: the zap logger; nil keeps the no-op default
//
// Returns:
//   - SchedulerBuilderOption: a function that applies the logger option to a scheduler
func WithLogger(logger *zap.Logger) SchedulerBuilderOption {
	return func(s *scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTimeScale sets the initial time scale. Negative values are treated as 0.
//
// Parameters:
//   - scale: the multiplier applied to every Tick's deltaTime
//
// Returns:
//   - SchedulerBuilderOption: a function that applies the time scale option to a scheduler
func WithTimeScale(scale float32) SchedulerBuilderOption {
	return func(s *scheduler) {
		s.SetTimeScale(scale)
	}
}
