package worker

import "errors"

var (
	// ErrNilProcessor is raised when a pool is constructed without a
	// processor function.
	ErrNilProcessor = errors.New("worker pool requires a processor function")

	// ErrPoolNotStarted is returned by Submit before Start.
	ErrPoolNotStarted = errors.New("worker pool not started")

	// ErrPoolStopped is returned by Submit after Stop.
	ErrPoolStopped = errors.New("worker pool stopped")

	// ErrQueueFull is returned by Submit when the work queue is full.
	ErrQueueFull = errors.New("worker pool queue full")

	// ErrStopTimeout is returned by Stop when workers do not drain in time.
	ErrStopTimeout = errors.New("worker pool stop timed out")
)
