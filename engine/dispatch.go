package engine

import "log"

// Mode selects the intervention the presentation collaborator renders.
type Mode string

const (
	ModeHard Mode = "HARD"
	ModeSoft Mode = "SOFT"
)

// SoftDelaySeconds is the "take a breath" pause a soft intervention may
// apply before letting the app through.
const SoftDelaySeconds = 3

// Intervention is the parameter bag handed to the dispatcher. The engine
// decides that and with what to intervene; rendering happens elsewhere.
type Intervention struct {
	AppID            string `json:"app_id"`
	RemainingSeconds int64  `json:"remaining_seconds"`
	Mode             Mode   `json:"mode"`
}

// Dispatcher presents the block / interstitial surface. Fire-and-forget:
// the engine never waits for or inspects the result.
type Dispatcher interface {
	Dispatch(iv Intervention)
}

// LogDispatcher is the default stand-in used when no presentation
// collaborator is attached.
type LogDispatcher struct{}

func (LogDispatcher) Dispatch(iv Intervention) {
	log.Printf("intervention: mode=%s app=%s remaining=%ds", iv.Mode, iv.AppID, iv.RemainingSeconds)
}
