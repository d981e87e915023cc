package tween

import (
	"fmt"

	"go.uber.org/zap"
)

// scheduler is the implementation of the Scheduler interface.
type scheduler struct {
	logger    *zap.Logger
	timeScale float32

	// tasks keeps registration order; index mirrors membership for O(1) Has/Add.
	tasks []Task
	index map[Task]struct{}

	// scratch is reused by Tick to snapshot the task list without allocating each frame.
	scratch []Task
}

// Scheduler owns the set of active interpolation tasks and advances them once per frame.
//
// Tasks are stepped in registration order. A task whose step reports completion is removed.
// A task whose step panics is logged and removed without interrupting the rest of the tick,
// so one misbehaving tween cannot stall every other blend. The scheduler is not safe for
// concurrent use; it is driven from the presentation phase of a single frame loop.
type Scheduler interface {
	// Add registers a task. Adding an already registered task is a no-op.
	//
	// Parameters:
	//   - task: the task to register
	Add(task Task)

	// Remove unregisters a task. Removing an unknown task is a no-op.
	// A task removed during a Tick is not stepped for the remainder of that tick.
	//
	// Parameters:
	//   - task: the task to unregister
	Remove(task Task)

	// Has reports whether the task is currently registered.
	//
	// Parameters:
	//   - task: the task to look up
	//
	// Returns:
	//   - bool: true if registered
	Has(task Task) bool

	// Len returns the number of registered tasks.
	//
	// Returns:
	//   - int: the active task count
	Len() int

	// Clear unregisters every task without stepping them.
	Clear()

	// TimeScale returns the multiplier applied to deltaTime on every Tick.
	//
	// Returns:
	//   - float32: the time scale
	TimeScale() float32

	// SetTimeScale sets the multiplier applied to deltaTime. Negative values are treated as 0.
	//
	// Parameters:
	//   - scale: the new time scale (1 = real time, 0 = paused)
	SetTimeScale(scale float32)

	// Tick advances every registered task once by deltaTime * TimeScale and removes the
	// completed ones. Tasks added during the tick are first stepped on the next tick.
	//
	// Parameters:
	//   - deltaTime: elapsed frame time in seconds
	Tick(deltaTime float32)
}

var _ Scheduler = &scheduler{}

// NewScheduler creates a new Scheduler with the provided options applied.
// The time scale defaults to 1 and the logger to a no-op logger.
//
// Parameters:
//   - options: functional options to configure the scheduler
//
// Returns:
//   - Scheduler: the newly created scheduler
func NewScheduler(options ...SchedulerBuilderOption) Scheduler {
	s := &scheduler{
		logger:    zap.NewNop(),
		timeScale: 1,
		index:     make(map[Task]struct{}),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scheduler) Add(task Task) {
	if task == nil {
		return
	}
	if _, ok := s.index[task]; ok {
		return
	}
	s.index[task] = struct{}{}
	s.tasks = append(s.tasks, task)
}

func (s *scheduler) Remove(task Task) {
	if task == nil {
		return
	}
	if _, ok := s.index[task]; !ok {
		return
	}
	delete(s.index, task)
	for i, t := range s.tasks {
		if t == task {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
}

func (s *scheduler) Has(task Task) bool {
	if task == nil {
		return false
	}
	_, ok := s.index[task]
	return ok
}

func (s *scheduler) Len() int {
	return len(s.tasks)
}

func (s *scheduler) Clear() {
	s.tasks = s.tasks[:0]
	clear(s.index)
}

func (s *scheduler) TimeScale() float32 {
	return s.timeScale
}

func (s *scheduler) SetTimeScale(scale float32) {
	if scale < 0 {
		scale = 0
	}
	s.timeScale = scale
}

func (s *scheduler) Tick(deltaTime float32) {
	if len(s.tasks) == 0 {
		return
	}
	scaled := deltaTime * s.timeScale

	s.scratch = append(s.scratch[:0], s.tasks...)
	for _, task := range s.scratch {
		// removed earlier in this tick, possibly by another task's callback
		if _, ok := s.index[task]; !ok {
			continue
		}
		done, err := s.step(task, scaled)
		if err != nil {
			s.logger.Error("tween task failed, removing", zap.Error(err), zap.String("task", fmt.Sprintf("%T", task)))
			s.Remove(task)
			continue
		}
		if done {
			s.Remove(task)
		}
	}
	clear(s.scratch)
	s.scratch = s.scratch[:0]
}

// step runs a single task step, converting a panic into an error.
func (s *scheduler) step(task Task, dt float32) (done bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tween step panicked: %v", r)
		}
	}()
	return task.Step(dt), nil
}
