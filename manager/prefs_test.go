package manager

import "testing"

func TestPrefsDefaultsOff(t *testing.T) {
	db := openTestDB(t)
	p := NewPrefs(db)

	if p.PsychologicalMode() || p.GrayscaleMode() || p.ReducedSensitivity() || p.CollectorActive() {
		t.Error("all toggles must default to off")
	}
}

func TestPrefsPersistAcrossReload(t *testing.T) {
	db := openTestDB(t)
	p := NewPrefs(db)

	if err := p.SetPsychologicalMode(true); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := p.SetCollectorActive(true); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !p.PsychologicalMode() {
		t.Error("toggle not visible through the cache")
	}

	p2 := NewPrefs(db)
	if !p2.PsychologicalMode() || !p2.CollectorActive() {
		t.Error("toggles not persisted")
	}
	if p2.GrayscaleMode() {
		t.Error("untouched toggle flipped")
	}

	if err := p2.SetPsychologicalMode(false); err != nil {
		t.Fatalf("unset: %v", err)
	}
	if p2.PsychologicalMode() {
		t.Error("toggle still on after unset")
	}
}
