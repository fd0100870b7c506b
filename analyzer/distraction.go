package analyzer

import (
	"time"

	"main/entity"
)

// Classification reasons.
const (
	ReasonEveningDistracting = "Known distracting app during evening hours (8-11pm)"
	ReasonWorkNotBaseline    = "Distracting app during work hours (not in baseline)"
	ReasonUnusualEvening     = "Unusual app during typical evening slot"
)

// IsDistractionLoop classifies one foreground observation. Rules run in a
// fixed order and the first match wins; the baseline is rebuilt from the
// minimum lookback on every call, no caching. Returns nil when nothing
// matches.
func (a *Analyzer) IsDistractionLoop(appID string, hour int, known map[string]struct{}, selfApp string, now time.Time) *entity.DistractionPattern {
	if appID == selfApp {
		return nil
	}

	baseline, err := a.BuildBaseline(MinBaselineDays, now)
	if err != nil {
		// No baseline this cycle; classify nothing rather than guess.
		return nil
	}

	_, isKnown := known[appID]

	if isKnown && a.windows.InEvening(hour) {
		return &entity.DistractionPattern{
			AppID:             appID,
			Reason:            ReasonEveningDistracting,
			HourOfDay:         hour,
			IsOutsideBaseline: !baseline.InEveningBaseline(appID),
		}
	}

	if isKnown && a.windows.InWork(hour) && !baseline.InWorkBaseline(appID) {
		return &entity.DistractionPattern{
			AppID:             appID,
			Reason:            ReasonWorkNotBaseline,
			HourOfDay:         hour,
			IsOutsideBaseline: true,
		}
	}

	if a.windows.InEvening(hour) && len(baseline.EveningApps) > 0 &&
		!baseline.InEveningBaseline(appID) && isKnown {
		return &entity.DistractionPattern{
			AppID:             appID,
			Reason:            ReasonUnusualEvening,
			HourOfDay:         hour,
			IsOutsideBaseline: true,
		}
	}

	return nil
}
