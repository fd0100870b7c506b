package entity

import "time"

// Event kinds stored in the usage ledger.
const (
	EventForeground = "FOREGROUND"
	EventUnlock     = "UNLOCK"
	EventAppSwitch  = "APP_SWITCH"
)

// UsageEvent is a single observed usage event. Append-only, never mutated.
type UsageEvent struct {
	ID        int64     `db:"id" json:"id"`
	AppID     string    `db:"app_id" json:"app_id"`
	Kind      string    `db:"kind" json:"kind"`
	Timestamp time.Time `db:"-" json:"timestamp"`
	DayOfWeek int       `db:"day_of_week" json:"day_of_week"` // 1=Sunday .. 7=Saturday
	HourOfDay int       `db:"hour" json:"hour"`               // 0-23
}

// UsageInterval is the dwell time of one app in the foreground, closed out
// when the next app takes over. Bucketed by the start instant.
type UsageInterval struct {
	ID         int64     `db:"id" json:"id"`
	AppID      string    `db:"app_id" json:"app_id"`
	StartTime  time.Time `db:"-" json:"start_time"`
	EndTime    time.Time `db:"-" json:"end_time"`
	DurationMs int64     `db:"duration_ms" json:"duration_ms"`
	DayOfWeek  int       `db:"day_of_week" json:"day_of_week"`
	HourOfDay  int       `db:"hour" json:"hour"`
}

// TimeBucket returns the (dayOfWeek, hourOfDay) bucket for an instant,
// with days numbered 1=Sunday .. 7=Saturday.
func TimeBucket(t time.Time) (int, int) {
	return int(t.Weekday()) + 1, t.Hour()
}
