package entity

import (
	"testing"
	"time"
)

func TestSessionExpiry(t *testing.T) {
	t0 := time.Now()
	s := NewFocusSession([]string{"a.b.c"}, 25, t0)

	if !s.IsActive(t0) {
		t.Error("session inactive at its own start")
	}
	if !s.IsActive(t0.Add(24*time.Minute + 59*time.Second)) {
		t.Error("session inactive just before the end")
	}
	// The boundary itself counts as expired.
	if s.IsActive(s.EndTime()) {
		t.Error("session active at the exact end time")
	}
	if s.IsActive(s.EndTime().Add(time.Second)) {
		t.Error("session active past the end")
	}
}

func TestSessionRemainingClamped(t *testing.T) {
	t0 := time.Now()
	s := NewFocusSession([]string{"a.b.c"}, 25, t0)

	if got := s.RemainingSeconds(t0.Add(100 * time.Second)); got != 1400 {
		t.Errorf("remaining = %d, want 1400", got)
	}
	if got := s.RemainingSeconds(t0.Add(time.Hour)); got != 0 {
		t.Errorf("remaining past end = %d, want 0", got)
	}
}

func TestSessionBlocks(t *testing.T) {
	s := NewFocusSession([]string{"a.b.c", "x.y"}, 25, time.Now())

	if !s.Blocks("a.b.c") || !s.Blocks("x.y") {
		t.Error("listed apps must be blocked")
	}
	if s.Blocks("other.app") {
		t.Error("unlisted app blocked")
	}
}

func TestTimeBucket(t *testing.T) {
	// 2026-08-30 is a Sunday.
	day, hour := TimeBucket(time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC))
	if day != 1 || hour != 14 {
		t.Errorf("bucket = (%d, %d), want (1, 14)", day, hour)
	}
	day, hour = TimeBucket(time.Date(2026, 9, 5, 0, 59, 0, 0, time.UTC))
	if day != 7 || hour != 0 {
		t.Errorf("bucket = (%d, %d), want (7, 0)", day, hour)
	}
}
