package engine

import (
	"time"

	"main/analyzer"
	"main/manager"
	"main/query"
)

// Outcome tells the calling observer what the decision was.
type Outcome int

const (
	// OutcomeNone: nothing to do for this foreground app.
	OutcomeNone Outcome = iota
	// OutcomeStopped: no active session; an enforcement observer should
	// stop its loop.
	OutcomeStopped
	// OutcomeHardBlock: a blocking intervention was dispatched.
	OutcomeHardBlock
	// OutcomeSoftIntervention: a soft intervention was dispatched.
	OutcomeSoftIntervention
	// OutcomeSuppressed: a repeat trigger inside the debounce window was
	// swallowed; the status display was still refreshed.
	OutcomeSuppressed
)

// Engine runs the blocking decision for one detected foreground app.
// Both observer flavors delegate here so behavior cannot drift.
type Engine struct {
	db         *query.Database
	lists      *manager.ListManager
	prefs      *manager.Prefs
	analyzer   *analyzer.Analyzer
	dispatcher Dispatcher
	debounce   *Debounce
	selfApp    string
	// status refreshes the ongoing remaining-time display; may be nil.
	status func(remainingSeconds int64)
}

func New(db *query.Database, lists *manager.ListManager, prefs *manager.Prefs, an *analyzer.Analyzer, dispatcher Dispatcher, selfApp string) *Engine {
	if dispatcher == nil {
		dispatcher = LogDispatcher{}
	}
	return &Engine{
		db:         db,
		lists:      lists,
		prefs:      prefs,
		analyzer:   an,
		dispatcher: dispatcher,
		debounce:   NewDebounce(),
		selfApp:    selfApp,
	}
}

// SetStatusFunc attaches the remaining-time display refresh hook.
func (e *Engine) SetStatusFunc(fn func(remainingSeconds int64)) {
	e.status = fn
}

func (e *Engine) refreshStatus(remaining int64) {
	if e.status != nil {
		e.status(remaining)
	}
}

// SessionActive reports whether a session is active at the given instant.
// Observers poll this so expiry stops them even when no foreground events
// arrive.
func (e *Engine) SessionActive(now time.Time) bool {
	return e.db.GetActiveSession(now) != nil
}

// Decide runs the blocking decision for appID at the given instant.
// Recording has already happened by the time this is called.
func (e *Engine) Decide(appID string, now time.Time) Outcome {
	session := e.db.GetActiveSession(now)
	if session == nil {
		return OutcomeStopped
	}

	if appID == e.selfApp {
		return OutcomeNone
	}

	remaining := session.RemainingSeconds(now)

	// Psychological mode: a classified distraction short-circuits to a
	// soft intervention, whether or not the app is in the blocked set.
	if e.prefs.PsychologicalMode() {
		pattern := e.analyzer.IsDistractionLoop(appID, now.Hour(), e.lists.DistractingSet(), e.selfApp, now)
		if pattern != nil {
			if !e.debounce.TryTrigger(appID, now) {
				e.refreshStatus(remaining)
				return OutcomeSuppressed
			}
			e.dispatcher.Dispatch(Intervention{
				AppID:            appID,
				RemainingSeconds: remaining,
				Mode:             ModeSoft,
			})
			e.refreshStatus(remaining)
			return OutcomeSoftIntervention
		}
	}

	if session.Blocks(appID) {
		if !e.debounce.TryTrigger(appID, now) {
			e.refreshStatus(remaining)
			return OutcomeSuppressed
		}
		e.dispatcher.Dispatch(Intervention{
			AppID:            appID,
			RemainingSeconds: remaining,
			Mode:             ModeHard,
		})
		e.refreshStatus(remaining)
		return OutcomeHardBlock
	}

	e.debounce.ResetIfDifferent(appID)
	e.refreshStatus(remaining)
	return OutcomeNone
}
