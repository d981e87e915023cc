package interaction

import (
	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-hands/engine/tween"
)

// ManagerBuilderOption is a functional option for configuring a Manager via NewManager.
type ManagerBuilderOption func(*manager)

// WithLogger sets the logger for transitions and failing callbacks.
//
// Parameters:
//   - logger: the zap logger; nil keeps the no-op default
//
// Returns:
//   - ManagerBuilderOption: a function that applies the logger option to a manager
func WithLogger(logger *zap.Logger) ManagerBuilderOption {
	return func(m *manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithScheduler sets the scheduler that runs attach tweens.
//
// Parameters:
//   - s: the scheduler ticked in the presentation phase
//
// Returns:
//   - ManagerBuilderOption: a function that applies the scheduler option to a manager
func WithScheduler(s tween.Scheduler) ManagerBuilderOption {
	return func(m *manager) {
		m.scheduler = s
	}
}

// WithAttachRate enables attach tweens: a selected object moves into the interactor's attach
// node at this rate and is parented to it once it arrives. Requires WithScheduler.
//
// Parameters:
//   - rate: tween progress per second; values <= 0 snap on the next tick
//
// Returns:
//   - ManagerBuilderOption: a function that applies the attach option to a manager
func WithAttachRate(rate float32) ManagerBuilderOption {
	return func(m *manager) {
		m.attach = true
		m.attachRate = rate
	}
}

// WithPoseCount sets the number of poses holding hands can switch to. When set, grab
// constraints of registered interactables are validated and problems logged.
//
// Parameters:
//   - n: the pose count; 0 disables validation
//
// Returns:
//   - ManagerBuilderOption: a function that applies the pose count option to a manager
func WithPoseCount(n int) ManagerBuilderOption {
	return func(m *manager) {
		m.poseCount = n
	}
}
