package input

import "go.uber.org/zap"

// ManagerBuilderOption is a functional option for configuring a Manager via NewManager.
type ManagerBuilderOption func(*manager)

// WithLogger sets the logger used to report failing listeners.
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
