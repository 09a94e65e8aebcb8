package services

import (
	"sync"
	"time"
)

// DefaultSearchDebounce is the quiet period before a search input is applied
const DefaultSearchDebounce = 300 * time.Millisecond

// Debouncer delays a callback until no further trigger arrives within the
// window. A newer trigger supersedes the pending one; superseded callbacks
// are dropped, never queued.
type Debouncer struct {
	window time.Duration
	mu     sync.Mutex
	timer  *time.Timer
	ticket uint64
}

// NewDebouncer creates a debouncer with the given window
func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultSearchDebounce
	}
	return &Debouncer{window: window}
}

// Trigger schedules fn to run after the window and returns its ticket.
// fn receives the same ticket so callers that hand the work to another
// goroutine can check IsCurrent before applying it.
func (d *Debouncer) Trigger(fn func(ticket uint64)) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.ticket++
	ticket := d.ticket

	d.timer = time.AfterFunc(d.window, func() {
		if d.IsCurrent(ticket) {
			fn(ticket)
		}
	})
	return ticket
}

// IsCurrent reports whether ticket belongs to the latest trigger
func (d *Debouncer) IsCurrent(ticket uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return ticket == d.ticket
}

// Stop drops any pending callback
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.ticket++
}

// Window returns the debounce window
func (d *Debouncer) Window() time.Duration {
	return d.window
}
