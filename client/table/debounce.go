package table

import (
	"sync"
	"time"
)

// SearchDebounce is how long search input has to settle before a fetch
// fires.
const SearchDebounce = 500 * time.Millisecond

// Debouncer coalesces a burst of calls into one, invoking only the last
// function passed to Trigger once the window elapses without another call.
type Debouncer struct {
	window time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = SearchDebounce
	}
	return &Debouncer{window: window}
}

// Trigger schedules fn after the debounce window, cancelling any earlier
// pending call. fn runs on the timer goroutine.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, fn)
}

// Stop cancels any pending call without running it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
