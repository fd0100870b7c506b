package query

import (
	"testing"
	"time"

	"main/entity"
)

func TestInsertAppIntervalRejectsNonPositive(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"end equals start", now, now},
		{"end before start", now, now.Add(-time.Second)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := db.InsertAppInterval("a.b.c", tc.start, tc.end); err != nil {
				t.Fatalf("reject should be a silent no-op, got %v", err)
			}
		})
	}

	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM app_intervals`); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no stored rows, got %d", count)
	}
}

func TestUsageRoundTrip(t *testing.T) {
	db := openTestDB(t)
	// 2026-08-30 is a Sunday; buckets should come out 1 (Sunday) and 14h.
	base := time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC)
	now := base.Add(time.Hour)

	if err := db.InsertAppEvent("b.later", entity.EventForeground, base.Add(10*time.Second)); err != nil {
		t.Fatalf("insert event: %v", err)
	}
	if err := db.InsertAppEvent("a.earlier", entity.EventUnlock, base); err != nil {
		t.Fatalf("insert event: %v", err)
	}

	events, err := db.EventsSince(1, now)
	if err != nil {
		t.Fatalf("events since: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].AppID != "a.earlier" || events[1].AppID != "b.later" {
		t.Errorf("events not ordered by timestamp: %v, %v", events[0].AppID, events[1].AppID)
	}
	if events[0].Kind != entity.EventUnlock {
		t.Errorf("kind lost: %q", events[0].Kind)
	}
	if !events[0].Timestamp.Equal(base) {
		t.Errorf("timestamp lost: %v != %v", events[0].Timestamp, base)
	}
	if events[0].DayOfWeek != 1 || events[0].HourOfDay != 14 {
		t.Errorf("bucket wrong: day=%d hour=%d", events[0].DayOfWeek, events[0].HourOfDay)
	}

	if err := db.InsertAppInterval("a.b.c", base, base.Add(90*time.Second)); err != nil {
		t.Fatalf("insert interval: %v", err)
	}
	intervals, err := db.IntervalsSince(1, now)
	if err != nil {
		t.Fatalf("intervals since: %v", err)
	}
	if len(intervals) != 1 {
		t.Fatalf("expected 1 interval, got %d", len(intervals))
	}
	iv := intervals[0]
	if iv.AppID != "a.b.c" || iv.DurationMs != 90_000 {
		t.Errorf("interval fields: %+v", iv)
	}
	if !iv.StartTime.Equal(base) || !iv.EndTime.Equal(base.Add(90*time.Second)) {
		t.Errorf("interval times: %+v", iv)
	}
	if iv.DayOfWeek != 1 || iv.HourOfDay != 14 {
		t.Errorf("interval bucket: day=%d hour=%d", iv.DayOfWeek, iv.HourOfDay)
	}
}

func TestSinceWindowExcludesOldRows(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()

	if err := db.InsertAppEvent("old.app", entity.EventForeground, now.Add(-48*time.Hour)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := db.InsertAppEvent("new.app", entity.EventForeground, now.Add(-time.Hour)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	events, err := db.EventsSince(1, now)
	if err != nil {
		t.Fatalf("events since: %v", err)
	}
	if len(events) != 1 || events[0].AppID != "new.app" {
		t.Errorf("expected only new.app, got %+v", events)
	}
}

func TestPruneOldData(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()

	if err := db.InsertAppEvent("old.app", entity.EventForeground, now.Add(-15*24*time.Hour)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := db.InsertAppInterval("old.app", now.Add(-15*24*time.Hour), now.Add(-15*24*time.Hour).Add(time.Minute)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := db.InsertAppEvent("new.app", entity.EventForeground, now.Add(-time.Hour)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := db.InsertAppInterval("new.app", now.Add(-time.Hour), now.Add(-time.Hour).Add(time.Minute)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := db.PruneOldData(14, now); err != nil {
		t.Fatalf("prune: %v", err)
	}

	events, err := db.EventsSince(30, now)
	if err != nil {
		t.Fatalf("events since: %v", err)
	}
	if len(events) != 1 || events[0].AppID != "new.app" {
		t.Errorf("expected only new.app events after prune, got %+v", events)
	}
	intervals, err := db.IntervalsSince(30, now)
	if err != nil {
		t.Fatalf("intervals since: %v", err)
	}
	if len(intervals) != 1 || intervals[0].AppID != "new.app" {
		t.Errorf("expected only new.app intervals after prune, got %+v", intervals)
	}
}

func TestSummaryAndHistogram(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	at := func(h int) time.Time {
		return time.Date(now.Year(), now.Month(), now.Day(), h, 0, 0, 0, time.Local).Add(-24 * time.Hour)
	}

	if err := db.InsertAppInterval("big.app", at(10), at(10).Add(10*time.Minute)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := db.InsertAppInterval("small.app", at(21), at(21).Add(time.Minute)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	items, err := db.GetSummarySince(7, now)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(items) != 2 || items[0].Name != "big.app" {
		t.Errorf("summary order: %+v", items)
	}
	if items[0].Seconds != 600 {
		t.Errorf("summary seconds: %v", items[0].Seconds)
	}

	buckets, err := db.GetHourlyHistogram(7, now)
	if err != nil {
		t.Fatalf("histogram: %v", err)
	}
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %+v", buckets)
	}
	if buckets[0].Hour != 10 || buckets[1].Hour != 21 {
		t.Errorf("bucket hours: %+v", buckets)
	}
}

func TestCountDistinctIntervalDays(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()

	for daysAgo := 1; daysAgo <= 3; daysAgo++ {
		start := now.Add(-time.Duration(daysAgo) * 24 * time.Hour)
		if err := db.InsertAppInterval("a.b.c", start, start.Add(time.Minute)); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	count, err := db.CountDistinctIntervalDays(5, now)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 distinct days, got %d", count)
	}
}
