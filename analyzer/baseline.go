package analyzer

import (
	"time"

	"main/entity"
	"main/query"
)

const (
	// MinBaselineDays is the minimum lookback for any baseline query and
	// the lookback used by classification.
	MinBaselineDays = 3
	// DefaultBaselineDays is the rolling window used when callers do not
	// ask for a specific lookback.
	DefaultBaselineDays = 5
)

// Windows holds the two time-of-day buckets the baseline is built over.
// Work is end-exclusive, evening end-inclusive.
type Windows struct {
	WorkStartHour    int
	WorkEndHour      int
	EveningStartHour int
	EveningEndHour   int
}

func DefaultWindows() Windows {
	return Windows{
		WorkStartHour:    9,
		WorkEndHour:      17,
		EveningStartHour: 20,
		EveningEndHour:   23,
	}
}

func (w Windows) InWork(hour int) bool {
	return hour >= w.WorkStartHour && hour < w.WorkEndHour
}

func (w Windows) InEvening(hour int) bool {
	return hour >= w.EveningStartHour && hour <= w.EveningEndHour
}

// Analyzer derives usage baselines and distraction patterns from the
// recorded interval ledger.
type Analyzer struct {
	db      *query.Database
	windows Windows
}

func New(db *query.Database) *Analyzer {
	return &Analyzer{db: db, windows: DefaultWindows()}
}

func NewWithWindows(db *query.Database, w Windows) *Analyzer {
	return &Analyzer{db: db, windows: w}
}

// BuildBaseline scans the interval ledger over the given lookback and
// buckets each app by the hour its intervals started in. Presence only:
// an app with no interval in a bucket is simply absent, and absence is
// the signal. Lookbacks below the minimum are raised to it.
func (a *Analyzer) BuildBaseline(days int, now time.Time) (entity.BaselineProfile, error) {
	if days < MinBaselineDays {
		days = MinBaselineDays
	}
	intervals, err := a.db.IntervalsSince(days, now)
	if err != nil {
		return entity.BaselineProfile{}, err
	}

	workApps := make(map[string]struct{})
	eveningApps := make(map[string]struct{})
	for _, iv := range intervals {
		if a.windows.InWork(iv.HourOfDay) {
			workApps[iv.AppID] = struct{}{}
		}
		if a.windows.InEvening(iv.HourOfDay) {
			eveningApps[iv.AppID] = struct{}{}
		}
	}

	return entity.BaselineProfile{
		WorkHourApps: workApps,
		EveningApps:  eveningApps,
		DaysAnalyzed: days,
	}, nil
}

// HasEnoughBaseline reports whether at least MinBaselineDays distinct days
// of intervals exist inside the default window.
func (a *Analyzer) HasEnoughBaseline(now time.Time) bool {
	count, err := a.db.CountDistinctIntervalDays(DefaultBaselineDays, now)
	if err != nil {
		return false
	}
	return count >= MinBaselineDays
}
