package hierembed

import (
	"sync"
	"sync/atomic"
	"time"
)

// StepTiming captures the wall-clock cost of placing a single item.
//
// The first two items are placed directly and report zero durations;
// the third item only performs a sphere intersection. Every later item
// reports all three phases.
type StepTiming struct {
	// Item is the index of the placed item.
	Item int
	// Intersect is the time spent intersecting hyperspheres.
	Intersect time.Duration
	// Solve is the time spent assembling and solving the hyperplane system.
	Solve time.Duration
	// Extend is the time spent lifting the solution into the new dimension.
	Extend time.Duration
}

// Total returns the total placement time of the step.
func (s StepTiming) Total() time.Duration {
	return s.Intersect + s.Solve + s.Extend
}

// Observer receives progress callbacks during embedding runs.
// Implement this interface to integrate with monitoring systems.
// Callbacks run on the embedding goroutine and must be cheap.
type Observer interface {
	// ObserveStep is called after each item has been placed.
	ObserveStep(timing StepTiming)

	// ObserveEmbed is called once per run after it finished.
	// n is the number of items, err is nil on success.
	ObserveEmbed(n int, duration time.Duration, err error)
}

// NoopObserver is a no-op implementation of Observer.
// Use this when run observation is not needed.
type NoopObserver struct{}

func (NoopObserver) ObserveStep(StepTiming)                 {}
func (NoopObserver) ObserveEmbed(int, time.Duration, error) {}

// CollectingObserver records per-step timings and run counters in
// memory. Useful for profiling runs and for tests.
type CollectingObserver struct {
	EmbedCount      atomic.Int64
	EmbedErrors     atomic.Int64
	EmbedTotalNanos atomic.Int64

	mu    sync.Mutex
	steps []StepTiming
}

// ObserveStep implements Observer.
func (c *CollectingObserver) ObserveStep(timing StepTiming) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.steps = append(c.steps, timing)
}

// ObserveEmbed implements Observer.
func (c *CollectingObserver) ObserveEmbed(n int, duration time.Duration, err error) {
	c.EmbedCount.Add(1)
	c.EmbedTotalNanos.Add(duration.Nanoseconds())

	if err != nil {
		c.EmbedErrors.Add(1)
	}
}

// Steps returns a snapshot of the recorded step timings.
func (c *CollectingObserver) Steps() []StepTiming {
	c.mu.Lock()
	defer c.mu.Unlock()

	steps := make([]StepTiming, len(c.steps))
	copy(steps, c.steps)

	return steps
}

// Reset clears all recorded timings and counters.
func (c *CollectingObserver) Reset() {
	c.mu.Lock()
	c.steps = nil
	c.mu.Unlock()

	c.EmbedCount.Store(0)
	c.EmbedErrors.Store(0)
	c.EmbedTotalNanos.Store(0)
}
