package manager

import (
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// ListManager keeps the known-distracting and muted app lists in memory
// for O(1) lookups on the observers' hot path, backed by the database.
type ListManager struct {
	db          *sqlx.DB
	distracting map[string]struct{}
	muted       map[string]struct{}
	mutex       sync.RWMutex
}

func NewListManager(db *sqlx.DB) (*ListManager, error) {
	lm := &ListManager{
		db:          db,
		distracting: make(map[string]struct{}),
		muted:       make(map[string]struct{}),
	}

	if err := lm.RefreshLists(); err != nil {
		return nil, err
	}

	return lm, nil
}

// RefreshLists reloads both lists from the database.
func (lm *ListManager) RefreshLists() error {
	var distractingNames, mutedNames []string

	err := lm.db.Select(&distractingNames, "SELECT name FROM distracting_apps")
	if err != nil {
		return err
	}

	err = lm.db.Select(&mutedNames, "SELECT name FROM muted_apps")
	if err != nil {
		return err
	}

	lm.mutex.Lock()
	defer lm.mutex.Unlock()

	newDistracting := make(map[string]struct{}, len(distractingNames))
	for _, name := range distractingNames {
		newDistracting[name] = struct{}{}
	}

	newMuted := make(map[string]struct{}, len(mutedNames))
	for _, name := range mutedNames {
		newMuted[name] = struct{}{}
	}

	lm.distracting = newDistracting
	lm.muted = newMuted

	return nil
}

func (lm *ListManager) IsDistracting(appID string) bool {
	lm.mutex.RLock()
	defer lm.mutex.RUnlock()
	_, ok := lm.distracting[appID]
	return ok
}

// DistractingSet returns a copy of the current known-distracting set.
func (lm *ListManager) DistractingSet() map[string]struct{} {
	lm.mutex.RLock()
	defer lm.mutex.RUnlock()
	out := make(map[string]struct{}, len(lm.distracting))
	for name := range lm.distracting {
		out[name] = struct{}{}
	}
	return out
}

func (lm *ListManager) AddDistracting(name string) error {
	_, err := lm.db.Exec("INSERT OR IGNORE INTO distracting_apps (name) VALUES (?)", name)
	if err != nil {
		return err
	}
	lm.mutex.Lock()
	lm.distracting[name] = struct{}{}
	lm.mutex.Unlock()
	return nil
}

func (lm *ListManager) RemoveDistracting(name string) error {
	_, err := lm.db.Exec("DELETE FROM distracting_apps WHERE name = ?", name)
	if err != nil {
		return err
	}
	lm.mutex.Lock()
	delete(lm.distracting, name)
	lm.mutex.Unlock()
	return nil
}

func (lm *ListManager) IsMuted(appID string) bool {
	lm.mutex.RLock()
	defer lm.mutex.RUnlock()
	_, ok := lm.muted[appID]
	return ok
}

func (lm *ListManager) MutedList() []string {
	lm.mutex.RLock()
	defer lm.mutex.RUnlock()
	out := make([]string, 0, len(lm.muted))
	for name := range lm.muted {
		out = append(out, name)
	}
	return out
}

func (lm *ListManager) MuteApp(name string) error {
	_, err := lm.db.Exec("INSERT OR IGNORE INTO muted_apps (name) VALUES (?)", name)
	if err != nil {
		return err
	}
	lm.mutex.Lock()
	lm.muted[name] = struct{}{}
	lm.mutex.Unlock()
	return nil
}

func (lm *ListManager) UnmuteApp(name string) error {
	_, err := lm.db.Exec("DELETE FROM muted_apps WHERE name = ?", name)
	if err != nil {
		return err
	}
	lm.mutex.Lock()
	delete(lm.muted, name)
	lm.mutex.Unlock()
	return nil
}
