// Package timectrl drives simulation time. The cache core never reads a wall
// clock; every request carries an issued-at timestamp supplied by the caller,
// and this package is how the simulator binary produces that monotonically
// increasing input.
package timectrl

import (
	"sync"
	"time"
)

// SimClock is a read-only view of simulation time, for components that need
// the current instant without the ability to advance it.
type SimClock interface {
	// Now returns the current simulation time.
	Now() time.Time
}

// Mode describes how the TimeController advances simulation time.
type Mode int

const (
	// RealTime advances according to wall-clock time.
	RealTime Mode = iota
	// Accelerated advances as quickly as the loop can run while still stepping by Tick.
	Accelerated
)

// TimeController drives simulation time and notifies registered listeners on
// every tick. It implements SimClock.
type TimeController struct {
	mu        sync.RWMutex
	StartTime time.Time
	Tick      time.Duration
	Mode      Mode

	currentTime time.Time

	listeners []func(time.Time)
}

// NewTimeController constructs a controller.
func NewTimeController(start time.Time, tick time.Duration, mode Mode) *TimeController {
	return &TimeController{
		StartTime:   start,
		Tick:        tick,
		Mode:        mode,
		currentTime: start,
	}
}

// Now returns the current simulation time. Implements SimClock.
func (tc *TimeController) Now() time.Time {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.currentTime
}

// SetTime jumps simulation time to a specific instant. Listeners are not
// notified; this is for test setup and scenario replay.
func (tc *TimeController) SetTime(t time.Time) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.currentTime = t
}

// AddListener registers a callback invoked on every tick. Listeners must be
// registered before Start.
func (tc *TimeController) AddListener(fn func(time.Time)) {
	tc.listeners = append(tc.listeners, fn)
}

// Start runs the controller for the specified simulation duration in a
// separate goroutine. It returns a channel that is closed when the controller
// finishes. In Accelerated mode ticks fire back-to-back, so a run over any
// duration completes as fast as the listeners can process it.
func (tc *TimeController) Start(duration time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		tc.mu.Lock()
		simTime := tc.StartTime
		tc.currentTime = simTime
		tc.mu.Unlock()

		var ticker *time.Ticker
		if tc.Mode == RealTime {
			ticker = time.NewTicker(tc.Tick)
			defer ticker.Stop()
		}

		elapsed := time.Duration(0)
		for {
			if duration > 0 && elapsed >= duration {
				return
			}

			if ticker != nil {
				<-ticker.C
			}
			simTime = simTime.Add(tc.Tick)
			elapsed += tc.Tick

			tc.mu.Lock()
			tc.currentTime = simTime
			tc.mu.Unlock()

			for _, fn := range tc.listeners {
				fn(simTime)
			}
		}
	}()
	return done
}
