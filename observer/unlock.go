package observer

import (
	"log"
	"sync"
	"time"

	"main/entity"
	"main/query"
)

// unlockLookback is the window scanned to resolve which app the user saw
// first after unlocking.
const unlockLookback = 3 * time.Second

// UnlockWatcher records an UNLOCK event with the foreground app at the
// moment the device is unlocked.
type UnlockWatcher struct {
	source  UnlockSource
	fg      ForegroundSource
	db      *query.Database
	selfApp string

	mu     sync.Mutex
	cancel func()
}

func NewUnlockWatcher(source UnlockSource, fg ForegroundSource, db *query.Database, selfApp string) *UnlockWatcher {
	return &UnlockWatcher{source: source, fg: fg, db: db, selfApp: selfApp}
}

func (uw *UnlockWatcher) Start() error {
	uw.mu.Lock()
	defer uw.mu.Unlock()
	if uw.cancel != nil {
		return nil
	}
	cancel, err := uw.source.Subscribe(uw.onUnlock)
	if err != nil {
		return err
	}
	uw.cancel = cancel
	return nil
}

func (uw *UnlockWatcher) onUnlock(at time.Time) {
	appID := "unknown"
	events, err := uw.fg.ResumedEvents(at.Add(-unlockLookback), at)
	if err == nil {
		if latest, ok := LatestResumed(events); ok {
			appID = latest.AppID
		}
	}
	if appID == uw.selfApp {
		return
	}
	if err := uw.db.InsertAppEvent(appID, entity.EventUnlock, at); err != nil {
		log.Println("unlock watcher:", err)
	}
}

func (uw *UnlockWatcher) Stop() {
	uw.mu.Lock()
	cancel := uw.cancel
	uw.cancel = nil
	uw.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
