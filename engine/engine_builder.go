package engine

import (
	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-hands/config"
	"github.com/Carmen-Shannon/oxy-hands/engine/input"
	"github.com/Carmen-Shannon/oxy-hands/engine/interaction"
	"github.com/Carmen-Shannon/oxy-hands/engine/profiler"
	"github.com/Carmen-Shannon/oxy-hands/engine/tween"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithConfig sets the configuration the engine's rates and default components are built from.
// Explicit rate options win regardless of order.
//
// Parameters:
//   - cfg: the configuration, usually from config.Load
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfig(cfg config.Config) EngineBuilderOption {
	return func(e *engine) {
		e.cfg = cfg
	}
}

// WithLogger sets the logger shared by the engine and the components it builds.
//
// Parameters:
//   - logger: the zap logger; nil keeps the no-op default
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithProfiling enables or disables frame stats logging.
//
// Parameters:
//   - enabled: if true, enables profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the frame stats profiler.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithTickRate sets the Run frame rate in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target frames per second
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.tickRate = rateToDuration(fps)
	}
}

// WithFixedStep sets the fixed phase step and the most steps one frame may run.
//
// Parameters:
//   - dt: fixed step in seconds; values <= 0 keep the configured rate
//   - maxSteps: per-frame step cap; values < 1 keep the configured cap
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFixedStep(dt float32, maxSteps int) EngineBuilderOption {
	return func(e *engine) {
		if dt > 0 {
			e.fixedDT = dt
		}
		if maxSteps >= 1 {
			e.maxFixedSteps = maxSteps
		}
	}
}

// WithPoseCount sets the pose count grab constraints of registered interactables are validated
// against. Ignored when WithInteraction is used.
//
// Parameters:
//   - n: the number of poses every hand's graph holds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithPoseCount(n int) EngineBuilderOption {
	return func(e *engine) {
		e.poseCount = n
	}
}

// WithScheduler injects the scheduler instead of building one from config.
//
// Parameters:
//   - s: the scheduler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScheduler(s tween.Scheduler) EngineBuilderOption {
	return func(e *engine) {
		e.scheduler = s
	}
}

// WithInput injects the input boundary instead of building one.
//
// Parameters:
//   - in: the input manager
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithInput(in input.Manager) EngineBuilderOption {
	return func(e *engine) {
		e.input = in
	}
}

// WithInteraction injects the interaction manager. It must be fed by the same input manager
// the engine dispatches.
//
// Parameters:
//   - m: the interaction manager
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithInteraction(m interaction.Manager) EngineBuilderOption {
	return func(e *engine) {
		e.interaction = m
	}
}
