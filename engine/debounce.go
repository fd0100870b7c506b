package engine

import (
	"sync"
	"time"
)

// DebounceWindow is how long a repeat trigger for the same app is
// swallowed. Both observers sample faster than a user can leave a blocked
// app, so without this every cycle would relaunch the intervention.
const DebounceWindow = 2 * time.Second

// Debounce remembers the last triggered app so repeat triggers inside the
// window are suppressed. A small explicit object so observers can share
// one instance and tests can own their own.
type Debounce struct {
	mu          sync.Mutex
	lastApp     string
	lastTrigger time.Time
	window      time.Duration
}

func NewDebounce() *Debounce {
	return &Debounce{window: DebounceWindow}
}

// TryTrigger claims the dispatch slot for appID at now. Returns false
// when the trigger repeats the last one inside the window. Check and mark
// happen under one lock so concurrent observers cannot both claim it.
func (d *Debounce) TryTrigger(appID string, now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if appID == d.lastApp && now.Sub(d.lastTrigger) < d.window {
		return false
	}
	d.lastApp = appID
	d.lastTrigger = now
	return true
}

// ResetIfDifferent clears the marker when the foreground moved to another
// app, so the next visit to the previously blocked app triggers again.
func (d *Debounce) ResetIfDifferent(appID string) {
	d.mu.Lock()
	if appID != d.lastApp {
		d.lastApp = ""
	}
	d.mu.Unlock()
}
