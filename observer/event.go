package observer

import (
	"sync"
	"time"
)

// EventObserver reacts to window-change notifications with no polling
// delay. Purely reactive: it never blocks waiting, and the platform owns
// delivery; disabling the capability at the OS level is the only real
// off switch. Detach only stops our handling.
type EventObserver struct {
	source WindowChangeSource
	pipe   *Pipeline
	clock  func() time.Time

	mu     sync.Mutex
	cancel func()
}

func NewEventObserver(source WindowChangeSource, pipe *Pipeline) *EventObserver {
	return &EventObserver{source: source, pipe: pipe, clock: time.Now}
}

// Start subscribes to window-change notifications. Failure to subscribe
// (capability not granted) is not an engine error; the poll observer
// alone keeps the engine correct.
func (eo *EventObserver) Start() error {
	eo.mu.Lock()
	defer eo.mu.Unlock()
	if eo.cancel != nil {
		return nil
	}
	cancel, err := eo.source.Subscribe(func(appID string, at time.Time) {
		if at.IsZero() {
			at = eo.clock()
		}
		eo.pipe.OnForegroundAppDetected(appID, at)
	})
	if err != nil {
		return err
	}
	eo.cancel = cancel
	return nil
}

// Stop detaches our callback and flushes the open interval.
func (eo *EventObserver) Stop() {
	eo.mu.Lock()
	cancel := eo.cancel
	eo.cancel = nil
	eo.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	eo.pipe.Flush(eo.clock())
}

// Running reports whether the subscription is attached.
func (eo *EventObserver) Running() bool {
	eo.mu.Lock()
	defer eo.mu.Unlock()
	return eo.cancel != nil
}
