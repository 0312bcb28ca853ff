package vtable

import (
	"sort"
	"sync"
	"time"
)

// DefaultSettleDelay is the quiet period after the last scroll event
// before the table is considered settled.
const DefaultSettleDelay = 200 * time.Millisecond

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop cancels the timer. It returns false if the timer already fired
	// or was already stopped.
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock schedules callbacks with time.AfterFunc. Callbacks run on
// their own goroutine, so hosts using it must serialize access to the
// table themselves.
type SystemClock struct{}

// AfterFunc implements Clock.
func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualClock is a Clock driven explicitly by Advance. Callbacks run
// synchronously inside Advance, on the caller's goroutine, which keeps a
// frame loop single-threaded:
//
//	clock := vtable.NewManualClock()
//	for !window.ShouldClose() {
//	    clock.Advance(frameTime)
//	    // ...
//	}
type ManualClock struct {
	now    time.Duration
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	clock    *ManualClock
	deadline time.Duration
	seq      uint64
	f        func()
	done     bool
}

// NewManualClock creates a clock at time zero.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Now returns the time elapsed since the clock was created.
func (c *ManualClock) Now() time.Duration { return c.now }

// Pending returns the number of timers that have not fired or been stopped.
func (c *ManualClock) Pending() int { return len(c.timers) }

// AfterFunc implements Clock.
func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.seq++
	t := &manualTimer{clock: c, deadline: c.now + max(d, 0), seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every timer whose deadline
// falls within the step in deadline order. Timers scheduled by a callback
// fire within the same call if their deadline is also reached.
func (c *ManualClock) Advance(d time.Duration) {
	target := c.now + max(d, 0)
	for {
		t := c.next(target)
		if t == nil {
			break
		}
		c.now = t.deadline
		c.remove(t)
		t.done = true
		t.f()
	}
	c.now = target
}

// next returns the earliest timer due at or before target.
func (c *ManualClock) next(target time.Duration) *manualTimer {
	if len(c.timers) == 0 {
		return nil
	}
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].deadline != c.timers[j].deadline {
			return c.timers[i].deadline < c.timers[j].deadline
		}
		return c.timers[i].seq < c.timers[j].seq
	})
	if c.timers[0].deadline > target {
		return nil
	}
	return c.timers[0]
}

func (c *ManualClock) remove(t *manualTimer) {
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}

// Stop implements Timer.
func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.clock.remove(t)
	return true
}

// DebounceOption configures a Debouncer.
type DebounceOption func(*Debouncer)

// WithClock sets the clock used to schedule the quiet-period timer.
func WithClock(c Clock) DebounceOption {
	return func(d *Debouncer) { d.clock = c }
}

// Debouncer coalesces bursts of Schedule calls into one callback that runs
// after delay has passed without another Schedule.
//
// Reset cancels a pending callback. FireNow runs the callback
// synchronously and cancels any pending one, so it runs exactly once.
type Debouncer struct {
	mu      sync.Mutex
	clock   Clock
	delay   time.Duration
	fn      func()
	timer   Timer
	gen     uint64 // bumped on every Schedule/Reset; stale timers ignore themselves
	pending bool
}

// NewDebouncer creates a debouncer calling fn after delay of quiet.
// The default clock is SystemClock.
func NewDebouncer(delay time.Duration, fn func(), opts ...DebounceOption) *Debouncer {
	d := &Debouncer{
		clock: SystemClock{},
		delay: delay,
		fn:    fn,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// Pending reports whether a callback is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Schedule (re)starts the quiet period.
func (d *Debouncer) Schedule() {
	d.mu.Lock()
	d.stopLocked()
	d.gen++
	gen := d.gen
	d.pending = true
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(gen) })
	d.mu.Unlock()
}

// Reset cancels a pending callback without running it.
func (d *Debouncer) Reset() {
	d.mu.Lock()
	d.stopLocked()
	d.gen++
	d.pending = false
	d.mu.Unlock()
}

// FireNow cancels any pending callback and runs the callback immediately.
func (d *Debouncer) FireNow() {
	d.Reset()
	d.fn()
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.timer = nil
	d.mu.Unlock()
	d.fn()
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
