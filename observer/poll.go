package observer

import (
	"context"
	"log"
	"sync"
	"time"

	"main/engine"
	"main/query"
)

const (
	// EnforcePollInterval / EnforceLookback drive the blocking loop.
	EnforcePollInterval = 500 * time.Millisecond
	EnforceLookback     = 3 * time.Second

	// CollectPollInterval / CollectLookback drive baseline-only
	// collection, which can afford to be slower.
	CollectPollInterval = 2 * time.Second
	CollectLookback     = 5 * time.Second

	// RetentionDays is the ledger horizon; pruning rides the collection
	// loop about once a minute.
	RetentionDays = 14
	pruneEvery    = time.Minute
)

// PollObserver samples a short window of resumed events on a fixed timer
// and feeds the latest one through the shared pipeline. The enforcement
// variant stops itself once the session is gone.
type PollObserver struct {
	source   ForegroundSource
	pipe     *Pipeline
	db       *query.Database
	interval time.Duration
	lookback time.Duration
	enforce  bool
	clock    func() time.Time

	// onStop runs after a self-stop, once dwell is flushed; may be nil.
	onStop func()

	mu        sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}
	lastPrune time.Time
}

func NewEnforcementPollObserver(source ForegroundSource, pipe *Pipeline) *PollObserver {
	return &PollObserver{
		source:   source,
		pipe:     pipe,
		interval: EnforcePollInterval,
		lookback: EnforceLookback,
		enforce:  true,
		clock:    time.Now,
	}
}

// NewCollectionPollObserver also owns periodic ledger pruning.
func NewCollectionPollObserver(source ForegroundSource, pipe *Pipeline, db *query.Database) *PollObserver {
	return &PollObserver{
		source:   source,
		pipe:     pipe,
		db:       db,
		interval: CollectPollInterval,
		lookback: CollectLookback,
		clock:    time.Now,
	}
}

// SetOnStop attaches a hook run after the loop stops itself, so the host
// can clear its session display on natural expiry.
func (po *PollObserver) SetOnStop(fn func()) {
	po.onStop = fn
}

// stopWithFlush closes out the open dwell and notifies the host that the
// loop is ending on its own.
func (po *PollObserver) stopWithFlush(now time.Time) {
	po.pipe.Flush(now)
	if po.onStop != nil {
		po.onStop()
	}
}

// Start launches the polling loop. A second Start while running is a
// no-op.
func (po *PollObserver) Start() {
	po.mu.Lock()
	defer po.mu.Unlock()
	if po.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	po.cancel = cancel
	po.done = make(chan struct{})
	go po.run(ctx)
}

func (po *PollObserver) run(ctx context.Context) {
	defer close(po.done)
	ticker := time.NewTicker(po.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if stop := po.tick(); stop {
				po.detach()
				return
			}
		}
	}
}

// tick runs one sampling cycle. Returns true when the loop should end.
func (po *PollObserver) tick() bool {
	now := po.clock()

	// Expiry must stop enforcement even on event-less ticks, so the
	// session is consulted before the foreground query, not after.
	if po.enforce && !po.pipe.SessionActive(now) {
		po.stopWithFlush(now)
		return true
	}

	events, err := po.source.ResumedEvents(now.Add(-po.lookback), now)
	if err != nil {
		// Transient source failure: skip this cycle.
		log.Println("poll observer: source:", err)
		return false
	}
	latest, ok := LatestResumed(events)
	if ok {
		outcome := po.pipe.OnForegroundAppDetected(latest.AppID, now)
		if po.enforce && outcome == engine.OutcomeStopped {
			po.stopWithFlush(now)
			return true
		}
	}

	if po.db != nil && now.Sub(po.lastPrune) >= pruneEvery {
		po.lastPrune = now
		if err := po.db.PruneOldData(RetentionDays, now); err != nil {
			log.Println("poll observer: prune:", err)
		}
	}
	return false
}

// detach clears the cancel handle after a self-stop so Start works again.
func (po *PollObserver) detach() {
	po.mu.Lock()
	if po.cancel != nil {
		po.cancel()
		po.cancel = nil
	}
	po.mu.Unlock()
}

// Stop cancels the pending tick and flushes the in-progress interval for
// the currently open app.
func (po *PollObserver) Stop() {
	po.mu.Lock()
	cancel := po.cancel
	done := po.done
	po.cancel = nil
	po.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	po.pipe.Flush(po.clock())
}

// Running reports whether the loop is active.
func (po *PollObserver) Running() bool {
	po.mu.Lock()
	defer po.mu.Unlock()
	return po.cancel != nil
}
