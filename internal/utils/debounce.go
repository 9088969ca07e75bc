package utils

import (
	"sync"
	"time"
)

// Debouncer collapses bursts of calls into one call after a quiet period.
// The zero value is ready to use.
type Debouncer struct {
	mutex sync.Mutex
	timer *time.Timer
	gen   uint64 // Bumped on every Debounce and Stop
}

// Debounce calls fn after duration, canceling any previous pending call.
// fn runs on its own goroutine.
func (d *Debouncer) Debounce(duration time.Duration, fn func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(duration, func() {
		d.mutex.Lock()
		current := gen == d.gen
		if current {
			d.timer = nil
		}
		d.mutex.Unlock()
		if current {
			fn()
		}
	})
}

// Stop cancels the pending call, if any.
func (d *Debouncer) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
