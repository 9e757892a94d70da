package watch

import (
	"log/slog"
	"sync"
	"time"
)

// debouncer coalesces bursts of manifest events into one formatting run.
// Editors and package managers tend to touch package.json several times in
// quick succession; only the last event of a burst fires the callback,
// together with the number of events it absorbed.
type debouncer struct {
	interval time.Duration
	fire     func(path string, coalesced int)

	mu       sync.Mutex
	timer    *time.Timer
	lastPath string
	pending  int
}

func newDebouncer(interval time.Duration, fire func(path string, coalesced int)) *debouncer {
	return &debouncer{
		interval: interval,
		fire:     fire,
	}
}

// trigger records a manifest event. The callback fires once the interval
// passes without further events, receiving the last path seen.
func (d *debouncer) trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.lastPath = path
	d.pending++

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, d.flush)
}

// flush claims the pending events and fires the callback. A stale timer that
// lost the race against trigger finds its events already claimed and fires
// nothing instead of reporting an empty run.
func (d *debouncer) flush() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("debounced run panicked", slog.Any("error", r))
		}
	}()

	d.mu.Lock()
	p, n := d.lastPath, d.pending
	d.pending = 0
	d.mu.Unlock()

	if n == 0 {
		return
	}

	d.fire(p, n)
}

// stop cancels any pending callback.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.pending = 0
}
