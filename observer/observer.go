package observer

import (
	"time"

	"main/engine"
)

// ForegroundObserver is the shared shape of both observer flavors.
type ForegroundObserver interface {
	OnForegroundAppDetected(appID string, now time.Time) engine.Outcome
}

// Pipeline is the single shared path behind both observers: record first,
// then decide, in that order within a tick. Collection-only pipelines skip
// the decision entirely.
type Pipeline struct {
	recorder *Recorder
	engine   *engine.Engine
	enforce  bool
}

// NewEnforcementPipeline records and runs blocking decisions.
func NewEnforcementPipeline(rec *Recorder, eng *engine.Engine) *Pipeline {
	return &Pipeline{recorder: rec, engine: eng, enforce: true}
}

// NewCollectionPipeline only records, for baseline building.
func NewCollectionPipeline(rec *Recorder) *Pipeline {
	return &Pipeline{recorder: rec}
}

// SessionActive reports whether an enforcement pipeline still has an
// active session behind it. Collection pipelines always report true.
func (p *Pipeline) SessionActive(now time.Time) bool {
	if !p.enforce {
		return true
	}
	return p.engine.SessionActive(now)
}

// OnForegroundAppDetected feeds one detection through record-then-decide.
func (p *Pipeline) OnForegroundAppDetected(appID string, now time.Time) engine.Outcome {
	p.recorder.Observe(appID, now)
	if !p.enforce {
		return engine.OutcomeNone
	}
	return p.engine.Decide(appID, now)
}

// Flush closes the recorder's open interval.
func (p *Pipeline) Flush(now time.Time) {
	p.recorder.Flush(now)
}
