package query

import (
	"fmt"
	"time"
)

type SummaryItem struct {
	Name    string  `db:"name" json:"name"`
	Seconds float64 `db:"seconds" json:"seconds"`
}

// HourBucket is one row of the hourly usage histogram.
type HourBucket struct {
	Hour    int     `db:"hour" json:"hour"`
	Name    string  `db:"name" json:"name"`
	Seconds float64 `db:"seconds" json:"seconds"`
}

// GetSummarySince returns aggregated foreground seconds per app over the
// last N days, largest first.
func (db *Database) GetSummarySince(days int, now time.Time) ([]SummaryItem, error) {
	since := now.Add(-time.Duration(days) * 24 * time.Hour).UnixMilli()
	items := []SummaryItem{}
	q := `
	SELECT app_id AS name,
	       SUM(duration_ms) / 1000.0 AS seconds
	FROM app_intervals
	WHERE start_ms >= ?
	GROUP BY app_id
	ORDER BY seconds DESC`
	if err := db.Select(&items, q, since); err != nil {
		return nil, fmt.Errorf("GetSummarySince: %w", err)
	}
	return items, nil
}

// GetHourlyHistogram returns per-app seconds bucketed by hour of day over
// the last N days. Feeds the behaviour chart and mirrors the buckets the
// baseline builder reads.
func (db *Database) GetHourlyHistogram(days int, now time.Time) ([]HourBucket, error) {
	since := now.Add(-time.Duration(days) * 24 * time.Hour).UnixMilli()
	rows := []HourBucket{}
	q := `
	SELECT hour,
	       app_id AS name,
	       SUM(duration_ms) / 1000.0 AS seconds
	FROM app_intervals
	WHERE start_ms >= ?
	GROUP BY hour, app_id
	ORDER BY hour, seconds DESC`
	if err := db.Select(&rows, q, since); err != nil {
		return nil, fmt.Errorf("GetHourlyHistogram: %w", err)
	}
	return rows, nil
}

// CountDistinctIntervalDays returns how many distinct calendar days have
// at least one recorded interval within the last N days. Used to decide
// whether the baseline has enough data behind it.
func (db *Database) CountDistinctIntervalDays(days int, now time.Time) (int, error) {
	since := now.Add(-time.Duration(days) * 24 * time.Hour).UnixMilli()
	var count int
	q := `
	SELECT COUNT(DISTINCT start_ms / 86400000)
	FROM app_intervals
	WHERE start_ms >= ?`
	if err := db.Get(&count, q, since); err != nil {
		return 0, fmt.Errorf("CountDistinctIntervalDays: %w", err)
	}
	return count, nil
}

// GetEventCountsSince returns per-kind event counts over the last N days,
// a quick health view for the dashboard.
func (db *Database) GetEventCountsSince(days int, now time.Time) (map[string]int, error) {
	since := now.Add(-time.Duration(days) * 24 * time.Hour).UnixMilli()
	rows := []struct {
		Kind  string `db:"kind"`
		Count int    `db:"count"`
	}{}
	q := `
	SELECT kind, COUNT(*) AS count
	FROM app_events
	WHERE timestamp_ms >= ?
	GROUP BY kind`
	if err := db.Select(&rows, q, since); err != nil {
		return nil, fmt.Errorf("GetEventCountsSince: %w", err)
	}
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.Kind] = r.Count
	}
	return out, nil
}
