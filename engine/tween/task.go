package tween

// Task is a unit of interpolation progress driven by a Scheduler.
// Step advances the task by an already time-scaled delta and reports whether it has completed.
// A completed task is removed from the scheduler that stepped it.
//
// Schedulers key tasks by identity, so implementations must be comparable (pointer receivers).
type Task interface {
	// Step advances the task.
	//
	// Parameters:
	//   - scaledDeltaTime: elapsed time in seconds, multiplied by the scheduler's time scale
	//
	// Returns:
	//   - bool: true once the task has completed
	Step(scaledDeltaTime float32) bool
}
