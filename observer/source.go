package observer

import "time"

// ResumedEvent is one "activity came to the foreground" platform event.
type ResumedEvent struct {
	AppID     string
	Timestamp time.Time
}

// ForegroundSource is the query primitive: ordered-ish resumed events in
// a time range. Treated as best-effort: events may be missing, delayed,
// or duplicated.
type ForegroundSource interface {
	ResumedEvents(start, end time.Time) ([]ResumedEvent, error)
}

// WindowChangeSource is the subscription primitive: an immediate callback
// whenever the foreground window changes. Requires an elevated capability
// the user may never grant; the engine stays correct without it.
type WindowChangeSource interface {
	// Subscribe registers the callback and returns a detach func. The
	// platform, not the engine, decides when callbacks stop for good.
	Subscribe(fn func(appID string, at time.Time)) (cancel func(), err error)
}

// UnlockSource delivers device-unlock notifications.
type UnlockSource interface {
	Subscribe(fn func(at time.Time)) (cancel func(), err error)
}

// LatestResumed picks the event with the strictly latest timestamp, the
// shared foreground-inference rule for both lookback consumers. Returns
// false when no qualifying event exists.
func LatestResumed(events []ResumedEvent) (ResumedEvent, bool) {
	var best ResumedEvent
	found := false
	for _, ev := range events {
		if !found || ev.Timestamp.After(best.Timestamp) {
			best = ev
			found = true
		}
	}
	return best, found
}
