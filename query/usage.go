package query

import (
	"fmt"
	"time"

	"main/entity"
)

// Usage Ledger: append-only app_events and app_intervals relations.
// Rows carry epoch-milliseconds plus (day_of_week, hour) buckets derived
// from the timestamp at write time.

type eventRow struct {
	ID          int64  `db:"id"`
	AppID       string `db:"app_id"`
	Kind        string `db:"kind"`
	TimestampMs int64  `db:"timestamp_ms"`
	DayOfWeek   int    `db:"day_of_week"`
	Hour        int    `db:"hour"`
}

type intervalRow struct {
	ID         int64  `db:"id"`
	AppID      string `db:"app_id"`
	StartMs    int64  `db:"start_ms"`
	EndMs      int64  `db:"end_ms"`
	DurationMs int64  `db:"duration_ms"`
	DayOfWeek  int    `db:"day_of_week"`
	Hour       int    `db:"hour"`
}

func (db *Database) InsertAppEvent(appID, kind string, ts time.Time) error {
	day, hour := entity.TimeBucket(ts)
	_, err := db.Exec(`
        INSERT INTO app_events (app_id, kind, timestamp_ms, day_of_week, hour)
        VALUES (?, ?, ?, ?, ?)`,
		appID, kind, ts.UnixMilli(), day, hour,
	)
	return err
}

// InsertAppInterval closes out one app's dwell time. Intervals whose end
// does not come strictly after their start are rejected without error so
// duplicate or reordered observer triggers can never store garbage.
func (db *Database) InsertAppInterval(appID string, start, end time.Time) error {
	durationMs := end.UnixMilli() - start.UnixMilli()
	if durationMs <= 0 {
		return nil
	}
	day, hour := entity.TimeBucket(start)
	_, err := db.Exec(`
        INSERT INTO app_intervals (app_id, start_ms, end_ms, duration_ms, day_of_week, hour)
        VALUES (?, ?, ?, ?, ?, ?)`,
		appID, start.UnixMilli(), end.UnixMilli(), durationMs, day, hour,
	)
	return err
}

// EventsSince returns all events of the last N days, oldest first.
func (db *Database) EventsSince(days int, now time.Time) ([]entity.UsageEvent, error) {
	since := now.Add(-time.Duration(days) * 24 * time.Hour).UnixMilli()
	rows := []eventRow{}
	err := db.Select(&rows, `
        SELECT id, app_id, kind, timestamp_ms, day_of_week, hour
        FROM app_events WHERE timestamp_ms >= ?
        ORDER BY timestamp_ms ASC, id ASC`, since)
	if err != nil {
		return nil, fmt.Errorf("EventsSince: %w", err)
	}
	out := make([]entity.UsageEvent, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.UsageEvent{
			ID:        r.ID,
			AppID:     r.AppID,
			Kind:      r.Kind,
			Timestamp: time.UnixMilli(r.TimestampMs),
			DayOfWeek: r.DayOfWeek,
			HourOfDay: r.Hour,
		})
	}
	return out, nil
}

// IntervalsSince returns all intervals started in the last N days, oldest
// first.
func (db *Database) IntervalsSince(days int, now time.Time) ([]entity.UsageInterval, error) {
	since := now.Add(-time.Duration(days) * 24 * time.Hour).UnixMilli()
	rows := []intervalRow{}
	err := db.Select(&rows, `
        SELECT id, app_id, start_ms, end_ms, duration_ms, day_of_week, hour
        FROM app_intervals WHERE start_ms >= ?
        ORDER BY start_ms ASC, id ASC`, since)
	if err != nil {
		return nil, fmt.Errorf("IntervalsSince: %w", err)
	}
	out := make([]entity.UsageInterval, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.UsageInterval{
			ID:         r.ID,
			AppID:      r.AppID,
			StartTime:  time.UnixMilli(r.StartMs),
			EndTime:    time.UnixMilli(r.EndMs),
			DurationMs: r.DurationMs,
			DayOfWeek:  r.DayOfWeek,
			HourOfDay:  r.Hour,
		})
	}
	return out, nil
}

// PruneOldData drops ledger rows older than the retention horizon.
// Best-effort: called periodically from the collection loop.
func (db *Database) PruneOldData(retentionDays int, now time.Time) error {
	cutoff := now.Add(-time.Duration(retentionDays) * 24 * time.Hour).UnixMilli()
	if _, err := db.Exec(`DELETE FROM app_events WHERE timestamp_ms < ?`, cutoff); err != nil {
		return fmt.Errorf("PruneOldData: %w", err)
	}
	if _, err := db.Exec(`DELETE FROM app_intervals WHERE start_ms < ?`, cutoff); err != nil {
		return fmt.Errorf("PruneOldData: %w", err)
	}
	return nil
}
