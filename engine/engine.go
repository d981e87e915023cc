package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-hands/common"
	"github.com/Carmen-Shannon/oxy-hands/config"
	"github.com/Carmen-Shannon/oxy-hands/engine/hand"
	"github.com/Carmen-Shannon/oxy-hands/engine/input"
	"github.com/Carmen-Shannon/oxy-hands/engine/interaction"
	"github.com/Carmen-Shannon/oxy-hands/engine/model"
	"github.com/Carmen-Shannon/oxy-hands/engine/profiler"
	"github.com/Carmen-Shannon/oxy-hands/engine/tween"
)

var (
	// ErrNilHand is returned when AddHand receives nil.
	ErrNilHand = errors.New("engine: nil hand")
	// ErrHandExists is returned when a hand of the same handedness is already registered.
	ErrHandExists = errors.New("engine: hand already registered")
	// ErrNoHand is returned when no hand of the requested handedness is registered.
	ErrNoHand = errors.New("engine: no such hand")
)

// engine implements the Engine interface.
// Every phase runs on the goroutine that calls Step or Run.
type engine struct {
	logger *zap.Logger
	cfg    config.Config

	scheduler   tween.Scheduler
	input       input.Manager
	interaction interaction.Manager
	poseCount   int

	hands []hand.Hand
	poses map[common.Handedness][]model.Transform

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickRate      time.Duration
	fixedDT       float32
	maxFixedSteps int
	accumulator   float32
	frames        uint64
}

// Engine drives the hand interaction core one frame at a time.
//
// A frame has two phases. The fixed phase runs zero or more fixed steps drained from an
// accumulator; each step dispatches queued button edges, updates interaction hover, then dispatches
// again for edges raised by callbacks. The presentation phase updates every hand's finger
// requests, ticks the scheduler once, evaluates every hand's pose and optionally logs frame stats.
type Engine interface {
	// Scheduler returns the interpolation scheduler ticked in the presentation phase.
	Scheduler() tween.Scheduler

	// Input returns the input boundary.
	Input() input.Manager

	// Interaction returns the interaction manager.
	Interaction() interaction.Manager

	// Config returns the configuration the engine was built from.
	Config() config.Config

	// AddHand registers a hand and its interactor.
	//
	// Parameters:
	//   - h: the hand
	//
	// Returns:
	//   - error: ErrNilHand, ErrHandExists or an interaction registration error
	AddHand(h hand.Hand) error

	// RemoveHand unregisters the hand of the given handedness, force-releasing anything it holds
	// and dropping its pose tweens.
	//
	// Parameters:
	//   - handedness: which hand
	//
	// Returns:
	//   - error: ErrNoHand
	RemoveHand(handedness common.Handedness) error

	// Hand returns the registered hand of the given handedness, or nil.
	Hand(handedness common.Handedness) hand.Hand

	// Hands returns the registered hands in registration order.
	Hands() []hand.Hand

	// Pose returns the local bone transforms last evaluated for a hand, or nil.
	Pose(handedness common.Handedness) []model.Transform

	// Step advances one frame.
	//
	// Parameters:
	//   - frameDT: the frame duration in seconds; negative values count as 0
	//
	// Returns:
	//   - int: the number of fixed steps run
	Step(frameDT float32) int

	// Frames returns the number of frames stepped.
	Frames() uint64

	// Events drains the interaction events published since the last call.
	Events() []interaction.Event

	// EnableProfiler enables frame stats logging.
	EnableProfiler()

	// DisableProfiler disables frame stats logging.
	DisableProfiler()

	// SetTickRate sets the Run frame rate. Takes effect on the next frame when called from
	// inside Run's frame callback.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// Run steps frames at the tick rate until ctx is done. onFrame, when non-nil, runs before each
	// Step and may feed input; a panic inside it is logged and the frame still steps.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//   - onFrame: per-frame callback receiving the frame duration in seconds
	//
	// Returns:
	//   - error: the context's error
	Run(ctx context.Context, onFrame func(dt float32)) error
}

var _ Engine = &engine{}

// NewEngine creates an engine. Components not injected through options are built from the
// configuration: a scheduler with its time scale, an input manager and an interaction manager
// with attach tweens when enabled.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		logger:        zap.NewNop(),
		cfg:           config.Default(),
		poses:         make(map[common.Handedness][]model.Transform),
		tickRate:      -1,
		fixedDT:       -1,
		maxFixedSteps: -1,
	}
	for _, opt := range options {
		opt(e)
	}
	if err := e.cfg.Validate(); err != nil {
		e.logger.Warn("invalid config, out-of-range engine values fall back to defaults", zap.Error(err))
		e.cfg = sanitize(e.cfg)
	}

	if e.tickRate < 0 {
		e.tickRate = rateToDuration(e.cfg.Engine.TickRate)
	}
	if e.fixedDT < 0 {
		e.fixedDT = float32(1 / e.cfg.Engine.FixedRate)
	}
	if e.maxFixedSteps < 0 {
		e.maxFixedSteps = max(e.cfg.Engine.MaxFixedSteps, 1)
	}
	e.profilingEnabled = e.profilingEnabled || e.cfg.Engine.Profiling

	if e.scheduler == nil {
		e.scheduler = tween.NewScheduler(
			tween.WithLogger(e.logger.Named("tween")),
			tween.WithTimeScale(e.cfg.Scheduler.TimeScale),
		)
	}
	if e.input == nil {
		e.input = input.NewManager(input.WithLogger(e.logger.Named("input")))
	}
	if e.interaction == nil {
		opts := []interaction.ManagerBuilderOption{
			interaction.WithLogger(e.logger.Named("interaction")),
			interaction.WithScheduler(e.scheduler),
			interaction.WithPoseCount(e.poseCount),
		}
		if e.cfg.Interaction.Attach {
			opts = append(opts, interaction.WithAttachRate(e.cfg.Interaction.AttachRate))
		}
		e.interaction = interaction.NewManager(e.input, opts...)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger.Named("profiler")))
	}
	return e
}

// sanitize replaces the engine and scheduler values the frame loop cannot run with.
func sanitize(cfg config.Config) config.Config {
	def := config.Default()
	if cfg.Engine.TickRate <= 0 {
		cfg.Engine.TickRate = def.Engine.TickRate
	}
	if cfg.Engine.FixedRate <= 0 {
		cfg.Engine.FixedRate = def.Engine.FixedRate
	}
	if cfg.Engine.MaxFixedSteps < 1 {
		cfg.Engine.MaxFixedSteps = def.Engine.MaxFixedSteps
	}
	if cfg.Scheduler.TimeScale < 0 {
		cfg.Scheduler.TimeScale = def.Scheduler.TimeScale
	}
	if cfg.Interaction.AttachRate < 0 {
		cfg.Interaction.AttachRate = def.Interaction.AttachRate
	}
	return cfg
}

func rateToDuration(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

func (e *engine) Scheduler() tween.Scheduler {
	return e.scheduler
}

func (e *engine) Input() input.Manager {
	return e.input
}

func (e *engine) Interaction() interaction.Manager {
	return e.interaction
}

func (e *engine) Config() config.Config {
	return e.cfg
}

func (e *engine) AddHand(h hand.Hand) error {
	if h == nil {
		return ErrNilHand
	}
	if e.Hand(h.Handedness()) != nil {
		return fmt.Errorf("%w: %s", ErrHandExists, h.Handedness())
	}
	if err := e.interaction.AddInteractor(h.Interactor()); err != nil {
		return fmt.Errorf("register %s interactor: %w", h.Handedness(), err)
	}
	e.hands = append(e.hands, h)
	e.logger.Debug("hand added", zap.Stringer("hand", h.Handedness()))
	return nil
}

func (e *engine) RemoveHand(handedness common.Handedness) error {
	i := slices.IndexFunc(e.hands, func(h hand.Hand) bool { return h.Handedness() == handedness })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNoHand, handedness)
	}
	h := e.hands[i]
	if err := e.interaction.RemoveInteractor(h.Interactor()); err != nil {
		e.logger.Warn("hand interactor was not registered", zap.Stringer("hand", handedness), zap.Error(err))
	}
	h.Release()
	e.hands = slices.Delete(e.hands, i, i+1)
	delete(e.poses, handedness)
	return nil
}

func (e *engine) Hand(handedness common.Handedness) hand.Hand {
	for _, h := range e.hands {
		if h.Handedness() == handedness {
			return h
		}
	}
	return nil
}

func (e *engine) Hands() []hand.Hand {
	return slices.Clone(e.hands)
}

func (e *engine) Pose(handedness common.Handedness) []model.Transform {
	return e.poses[handedness]
}

func (e *engine) Step(frameDT float32) int {
	if frameDT < 0 {
		frameDT = 0
	}

	// fixed phase
	e.accumulator += frameDT
	steps := 0
	for e.accumulator >= e.fixedDT && steps < e.maxFixedSteps {
		e.input.Dispatch()
		e.interaction.FixedUpdate(e.fixedDT)
		e.input.Dispatch()
		e.accumulator -= e.fixedDT
		steps++
	}
	if e.accumulator >= e.fixedDT {
		e.logger.Debug("fixed step backlog dropped",
			zap.Int("steps", steps), zap.Float32("backlog", e.accumulator))
		e.accumulator = 0
	}

	// presentation phase
	for _, h := range e.hands {
		h.Update(frameDT)
	}
	e.scheduler.Tick(frameDT)
	for _, h := range e.hands {
		e.poses[h.Handedness()] = h.Evaluate(frameDT)
	}

	e.frames++
	if e.profilingEnabled {
		e.profiler.Tick(zap.Int("tweens", e.scheduler.Len()), zap.Int("hands", len(e.hands)))
	}
	return steps
}

func (e *engine) Frames() uint64 {
	return e.frames
}

func (e *engine) Events() []interaction.Event {
	return e.interaction.Drain()
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickRate(fps float64) {
	e.tickRate = rateToDuration(fps)
}

func (e *engine) Run(ctx context.Context, onFrame func(dt float32)) error {
	rate := e.tickRate
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	lastTick := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			e.frame(onFrame, dt)
			e.Step(dt)

			if e.tickRate != rate {
				rate = e.tickRate
				ticker.Reset(rate)
			}
		}
	}
}

// frame runs the per-frame callback, containing a panic to this frame.
func (e *engine) frame(onFrame func(dt float32), dt float32) {
	if onFrame == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("frame callback failed",
				zap.Uint64("frame", e.frames), zap.Any("panic", r))
		}
	}()
	onFrame(dt)
}
