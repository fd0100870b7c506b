package manager

import (
	"sync"

	"main/query"
)

// Prefs caches the persisted intervention toggles so the observers never
// touch storage just to read a boolean.
type Prefs struct {
	db    *query.Database
	cache map[string]bool
	mutex sync.RWMutex
}

func NewPrefs(db *query.Database) *Prefs {
	p := &Prefs{db: db, cache: make(map[string]bool)}
	for _, key := range []string{
		query.KeyPsychologicalMode,
		query.KeyGrayscaleMode,
		query.KeyReducedSensitivity,
		query.KeyCollectorActive,
	} {
		p.cache[key] = db.GetBoolPref(key)
	}
	return p
}

func (p *Prefs) get(key string) bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.cache[key]
}

func (p *Prefs) set(key string, enabled bool) error {
	if err := p.db.SetBoolPref(key, enabled); err != nil {
		return err
	}
	p.mutex.Lock()
	p.cache[key] = enabled
	p.mutex.Unlock()
	return nil
}

// PsychologicalMode selects soft interventions over hard blocking when a
// distraction pattern matches. Default off.
func (p *Prefs) PsychologicalMode() bool { return p.get(query.KeyPsychologicalMode) }

func (p *Prefs) SetPsychologicalMode(enabled bool) error {
	return p.set(query.KeyPsychologicalMode, enabled)
}

func (p *Prefs) GrayscaleMode() bool { return p.get(query.KeyGrayscaleMode) }

func (p *Prefs) SetGrayscaleMode(enabled bool) error {
	return p.set(query.KeyGrayscaleMode, enabled)
}

func (p *Prefs) ReducedSensitivity() bool { return p.get(query.KeyReducedSensitivity) }

func (p *Prefs) SetReducedSensitivity(enabled bool) error {
	return p.set(query.KeyReducedSensitivity, enabled)
}

// CollectorActive remembers whether baseline collection should be running,
// so it can resume after a restart.
func (p *Prefs) CollectorActive() bool { return p.get(query.KeyCollectorActive) }

func (p *Prefs) SetCollectorActive(enabled bool) error {
	return p.set(query.KeyCollectorActive, enabled)
}
