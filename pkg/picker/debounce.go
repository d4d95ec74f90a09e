package picker

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before a search runs.
const DefaultDebounce = 200 * time.Millisecond

// Debouncer runs only the last of a burst of calls, once no new call arrived
// for the quiet period.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	gen   uint64
	timer *time.Timer
	// waiters are released when their generation fires or is superseded.
	waiters map[uint64]chan bool
}

// NewDebouncer creates a debouncer. A non-positive delay selects DefaultDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{
		delay:   delay,
		waiters: make(map[uint64]chan bool),
	}
}

// Trigger schedules fn after the quiet period, dropping any call still pending.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	gen := d.restartLocked()
	d.timer = time.AfterFunc(d.delay, func() {
		if d.fire(gen) {
			fn()
		}
	})
}

// Settle waits out the quiet period. It reports true when no newer Trigger or
// Settle arrived meanwhile, false when superseded.
func (d *Debouncer) Settle(ctx context.Context) (bool, error) {
	done := make(chan bool, 1)

	d.mu.Lock()
	gen := d.restartLocked()
	d.waiters[gen] = done
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
	d.mu.Unlock()

	select {
	case ok := <-done:
		return ok, nil
	case <-ctx.Done():
		d.mu.Lock()
		delete(d.waiters, gen)
		d.mu.Unlock()
		return false, ctx.Err()
	}
}

// Stop drops any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.restartLocked()
}

// restartLocked stops the pending timer, releases superseded waiters and
// returns the next generation.
func (d *Debouncer) restartLocked() uint64 {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	for g, ch := range d.waiters {
		ch <- false
		delete(d.waiters, g)
	}
	d.gen++
	return d.gen
}

func (d *Debouncer) fire(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	current := gen == d.gen
	if ch, ok := d.waiters[gen]; ok {
		ch <- current
		delete(d.waiters, gen)
	}
	if current {
		d.timer = nil
	}
	return current
}
