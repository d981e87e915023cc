package hand

import (
	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-hands/engine/game_object"
	"github.com/Carmen-Shannon/oxy-hands/engine/interaction"
)

// HandBuilderOption is a functional option for configuring a Hand via NewHand.
type HandBuilderOption func(*hand)

// WithLogger sets the logger for pose switch problems.
//
// Parameters:
//   - logger: the zap logger; nil keeps the no-op default
//
// Returns:
//   - HandBuilderOption: a function that applies the logger option to a hand
func WithLogger(logger *zap.Logger) HandBuilderOption {
	return func(h *hand) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithRoot sets the hand's root node, tracked by the device layer.
//
// Parameters:
//   - root: the root node
//
// Returns:
//   - HandBuilderOption: a function that applies the root option to a hand
func WithRoot(root game_object.GameObject) HandBuilderOption {
	return func(h *hand) {
		h.root = root
	}
}

// WithInteractor sets the hand's interactor instead of a default volume-detecting one.
//
// Parameters:
//   - ir: the interactor; it must belong to the same hand
//
// Returns:
//   - HandBuilderOption: a function that applies the interactor option to a hand
func WithInteractor(ir interaction.Interactor) HandBuilderOption {
	return func(h *hand) {
		h.interactor = ir
	}
}
