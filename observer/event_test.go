package observer

import (
	"errors"
	"testing"
	"time"
)

type fakeWindowSource struct {
	fn       func(appID string, at time.Time)
	err      error
	detached bool
}

func (f *fakeWindowSource) Subscribe(fn func(appID string, at time.Time)) (func(), error) {
	if f.err != nil {
		return nil, f.err
	}
	f.fn = fn
	return func() { f.detached = true }, nil
}

func TestEventObserverRecordsCallbacks(t *testing.T) {
	db := openTestDB(t)
	source := &fakeWindowSource{}
	eo := NewEventObserver(source, NewCollectionPipeline(NewRecorder(db, "me.shield")))

	if err := eo.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !eo.Running() {
		t.Fatal("observer should report running")
	}

	t0 := time.Now()
	source.fn("app.one", t0)
	source.fn("app.two", t0.Add(4*time.Second))

	intervals := intervalsNow(t, db)
	if len(intervals) != 1 || intervals[0].AppID != "app.one" || intervals[0].DurationMs != 4_000 {
		t.Errorf("intervals = %+v", intervals)
	}
}

func TestEventObserverZeroTimestampUsesClock(t *testing.T) {
	db := openTestDB(t)
	source := &fakeWindowSource{}
	eo := NewEventObserver(source, NewCollectionPipeline(NewRecorder(db, "me.shield")))
	now := time.Now()
	eo.clock = fixedClock(now)

	if err := eo.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	source.fn("app.one", time.Time{})

	events := eventsNow(t, db)
	if len(events) != 1 {
		t.Fatalf("events = %+v", events)
	}
	if !events[0].Timestamp.Equal(now.Truncate(time.Millisecond)) {
		t.Errorf("timestamp = %v, want clock time", events[0].Timestamp)
	}
}

func TestEventObserverSubscribeFailure(t *testing.T) {
	db := openTestDB(t)
	source := &fakeWindowSource{err: errors.New("capability not granted")}
	eo := NewEventObserver(source, NewCollectionPipeline(NewRecorder(db, "me.shield")))

	if err := eo.Start(); err == nil {
		t.Fatal("expected subscribe error")
	}
	if eo.Running() {
		t.Error("failed subscribe must not report running")
	}
}

func TestEventObserverStopDetachesAndFlushes(t *testing.T) {
	db := openTestDB(t)
	source := &fakeWindowSource{}
	eo := NewEventObserver(source, NewCollectionPipeline(NewRecorder(db, "me.shield")))
	t0 := time.Now()
	eo.clock = fixedClock(t0.Add(12 * time.Second))

	if err := eo.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	source.fn("app.one", t0)
	eo.Stop()

	if !source.detached {
		t.Error("Stop did not detach the subscription")
	}
	if eo.Running() {
		t.Error("observer still reports running")
	}
	intervals := intervalsNow(t, db)
	if len(intervals) != 1 || intervals[0].DurationMs != 12_000 {
		t.Errorf("open dwell not flushed: %+v", intervals)
	}
}
