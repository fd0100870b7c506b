package entity

// BaselineProfile describes which apps are "normal" for the user in two
// time-of-day buckets. Presence/absence only; rebuilt on every query.
type BaselineProfile struct {
	WorkHourApps map[string]struct{} `json:"-"`
	EveningApps  map[string]struct{} `json:"-"`
	DaysAnalyzed int                 `json:"days_analyzed"`
}

func (b BaselineProfile) InWorkBaseline(appID string) bool {
	_, ok := b.WorkHourApps[appID]
	return ok
}

func (b BaselineProfile) InEveningBaseline(appID string) bool {
	_, ok := b.EveningApps[appID]
	return ok
}

// DistractionPattern is returned when a foreground app + hour combination
// deviates from the baseline. Result type only, never stored.
type DistractionPattern struct {
	AppID             string `json:"app_id"`
	Reason            string `json:"reason"`
	HourOfDay         int    `json:"hour"`
	IsOutsideBaseline bool   `json:"is_outside_baseline"`
}
