package vtable_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-theft-auto/vtable"
)

func TestDebouncerBurstFiresOnce(t *testing.T) {
	clock := vtable.NewManualClock()
	fired := 0
	d := vtable.NewDebouncer(vtable.DefaultSettleDelay, func() { fired++ }, vtable.WithClock(clock))

	for range 10 {
		clock.Advance(50 * time.Millisecond)
		d.Schedule()
	}
	if fired != 0 {
		t.Fatalf("fired %d times during the burst, want 0", fired)
	}
	if !d.Pending() {
		t.Fatal("expected a pending callback")
	}

	clock.Advance(199 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("fired before the quiet period elapsed")
	}
	clock.Advance(time.Millisecond)
	if fired != 1 {
		t.Fatalf("fired %d times after the quiet period, want 1", fired)
	}
	if d.Pending() {
		t.Error("nothing should be pending after firing")
	}

	clock.Advance(time.Second)
	if fired != 1 {
		t.Errorf("fired %d times, want exactly 1", fired)
	}
}

func TestDebouncerResetThenFireNowRunsOnce(t *testing.T) {
	clock := vtable.NewManualClock()
	fired := 0
	d := vtable.NewDebouncer(vtable.DefaultSettleDelay, func() { fired++ }, vtable.WithClock(clock))

	d.Schedule()
	d.Reset()
	d.FireNow()
	if fired != 1 {
		t.Fatalf("FireNow ran the callback %d times, want 1", fired)
	}
	clock.Advance(time.Second)
	if fired != 1 {
		t.Errorf("callback ran %d times in total, want 1", fired)
	}
	if clock.Pending() != 0 {
		t.Errorf("clock has %d pending timers, want 0", clock.Pending())
	}
}

func TestDebouncerFireNowCancelsPending(t *testing.T) {
	clock := vtable.NewManualClock()
	fired := 0
	d := vtable.NewDebouncer(100*time.Millisecond, func() { fired++ }, vtable.WithClock(clock))

	d.Schedule()
	d.FireNow()
	clock.Advance(time.Second)
	if fired != 1 {
		t.Errorf("callback ran %d times, want 1", fired)
	}
}

func TestDebouncerResetCancels(t *testing.T) {
	clock := vtable.NewManualClock()
	fired := 0
	d := vtable.NewDebouncer(100*time.Millisecond, func() { fired++ }, vtable.WithClock(clock))

	d.Schedule()
	d.Reset()
	clock.Advance(time.Second)
	if fired != 0 {
		t.Errorf("reset debouncer fired %d times", fired)
	}
}

func TestDebouncerCallbackCanReschedule(t *testing.T) {
	clock := vtable.NewManualClock()
	fired := 0
	var d *vtable.Debouncer
	d = vtable.NewDebouncer(100*time.Millisecond, func() {
		fired++
		if fired == 1 {
			d.Schedule()
		}
	}, vtable.WithClock(clock))

	d.Schedule()
	clock.Advance(250 * time.Millisecond)
	if fired != 2 {
		t.Errorf("fired %d times, want 2", fired)
	}
}

func TestManualClockOrder(t *testing.T) {
	clock := vtable.NewManualClock()
	var order []int
	clock.AfterFunc(30*time.Millisecond, func() { order = append(order, 3) })
	clock.AfterFunc(10*time.Millisecond, func() { order = append(order, 1) })
	stopped := clock.AfterFunc(20*time.Millisecond, func() { order = append(order, 2) })
	clock.AfterFunc(10*time.Millisecond, func() { order = append(order, 11) })

	if !stopped.Stop() {
		t.Error("Stop on a pending timer should return true")
	}
	if stopped.Stop() {
		t.Error("second Stop should return false")
	}

	clock.Advance(time.Second)
	want := []int{1, 11, 3}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	if clock.Now() != time.Second {
		t.Errorf("Now() = %v, want 1s", clock.Now())
	}
}

func TestDebouncerSystemClock(t *testing.T) {
	var fired atomic.Int32
	done := make(chan struct{}, 1)
	d := vtable.NewDebouncer(10*time.Millisecond, func() {
		fired.Add(1)
		done <- struct{}{}
	})

	for range 5 {
		d.Schedule()
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debouncer never fired")
	}
	time.Sleep(30 * time.Millisecond)
	if n := fired.Load(); n != 1 {
		t.Errorf("fired %d times, want 1", n)
	}
}
