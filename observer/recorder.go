package observer

import (
	"log"
	"sync"
	"time"

	"main/entity"
	"main/query"
)

// Recorder turns the stream of detected foreground apps into ledger rows:
// when the foreground moves, the previous app's dwell is closed out as an
// interval plus an APP_SWITCH event, and the new app gets a FOREGROUND
// event. The engine's own app is never recorded. Safe for concurrent
// observers; storage errors are logged and dropped, never propagated to
// the observer loop.
type Recorder struct {
	db      *query.Database
	selfApp string

	mu       sync.Mutex
	lastApp  string
	lastSeen time.Time
}

func NewRecorder(db *query.Database, selfApp string) *Recorder {
	return &Recorder{db: db, selfApp: selfApp}
}

// Observe records one foreground detection.
func (r *Recorder) Observe(appID string, now time.Time) {
	if appID == r.selfApp {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lastApp == appID {
		// Still on the same app; the interval stays open from the
		// instant it first reached the foreground.
		return
	}

	if r.lastApp != "" {
		if err := r.db.InsertAppEvent(r.lastApp, entity.EventAppSwitch, now); err != nil {
			log.Println("recorder: app switch event:", err)
		}
		// The duration guard rejects zero/negative dwell from duplicate
		// near-simultaneous triggers.
		if err := r.db.InsertAppInterval(r.lastApp, r.lastSeen, now); err != nil {
			log.Println("recorder: interval:", err)
		}
	}
	if err := r.db.InsertAppEvent(appID, entity.EventForeground, now); err != nil {
		log.Println("recorder: foreground event:", err)
	}

	r.lastApp = appID
	r.lastSeen = now
}

// Flush closes out the interval for the currently open app, so dwell time
// is not lost on an explicit stop.
func (r *Recorder) Flush(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lastApp == "" {
		return
	}
	if err := r.db.InsertAppInterval(r.lastApp, r.lastSeen, now); err != nil {
		log.Println("recorder: flush interval:", err)
	}
	r.lastApp = ""
}
