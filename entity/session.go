package entity

import "time"

// FocusSession is the single active focus session. All expiry math lives
// here so callers never recompute it against a stale clock.
type FocusSession struct {
	BlockedPackages []string  `json:"blocked_packages"`
	DurationMinutes int       `json:"duration_minutes"`
	StartTime       time.Time `json:"start_time"`
}

func NewFocusSession(blockedPackages []string, durationMinutes int, start time.Time) FocusSession {
	return FocusSession{
		BlockedPackages: blockedPackages,
		DurationMinutes: durationMinutes,
		StartTime:       start,
	}
}

func (s FocusSession) EndTime() time.Time {
	return s.StartTime.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

// IsActive reports whether the session is still running at the given
// instant. The boundary counts as expired: now == EndTime is inactive.
func (s FocusSession) IsActive(now time.Time) bool {
	return now.Before(s.EndTime())
}

func (s FocusSession) Remaining(now time.Time) time.Duration {
	r := s.EndTime().Sub(now)
	if r < 0 {
		return 0
	}
	return r
}

func (s FocusSession) RemainingSeconds(now time.Time) int64 {
	return int64(s.Remaining(now) / time.Second)
}

func (s FocusSession) Blocks(appID string) bool {
	for _, p := range s.BlockedPackages {
		if p == appID {
			return true
		}
	}
	return false
}
