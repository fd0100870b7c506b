package query

import (
	"encoding/json"
	"time"

	"main/entity"
)

// The active session is a single serialized record under one prefs key,
// last-write-wins.
const keyActiveSession = "active_session"

// SaveSession persists a new session, unconditionally overwriting any
// existing one. No merge semantics.
func (db *Database) SaveSession(s entity.FocusSession) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return db.setPref(keyActiveSession, string(payload))
}

// GetActiveSession returns the active session, or nil if none exists, the
// record is unreadable, or the session expired. Expiry is checked lazily
// against the supplied clock; an expired or corrupt record is deleted so
// we do not keep re-parsing it.
func (db *Database) GetActiveSession(now time.Time) *entity.FocusSession {
	raw, err := db.getPref(keyActiveSession)
	if err != nil {
		// Missing record or transient read failure: either way there is
		// no session this cycle.
		return nil
	}
	var s entity.FocusSession
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		_ = db.ClearSession()
		return nil
	}
	if !s.IsActive(now) {
		_ = db.ClearSession()
		return nil
	}
	return &s
}

// ClearSession ends the session early.
func (db *Database) ClearSession() error {
	return db.deletePref(keyActiveSession)
}

// IsBlocked reports whether appID is blocked by the current active session.
func (db *Database) IsBlocked(appID string, now time.Time) bool {
	s := db.GetActiveSession(now)
	return s != nil && s.Blocks(appID)
}
