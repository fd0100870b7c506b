package query

// Key/value prefs backing the session slot and the persisted toggles.

const (
	KeyPsychologicalMode  = "psychological_mode"
	KeyGrayscaleMode      = "grayscale"
	KeyReducedSensitivity = "reduced_sensitivity"
	KeyCollectorActive    = "collector_active"
)

func (db *Database) setPref(key, value string) error {
	_, err := db.Exec(`INSERT INTO prefs (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value=excluded.value`, key, value)
	return err
}

func (db *Database) getPref(key string) (string, error) {
	var value string
	err := db.Get(&value, "SELECT value FROM prefs WHERE key = ?", key)
	return value, err
}

func (db *Database) deletePref(key string) error {
	_, err := db.Exec("DELETE FROM prefs WHERE key = ?", key)
	return err
}

// SetBoolPref stores a boolean toggle as "1"/"0".
func (db *Database) SetBoolPref(key string, enabled bool) error {
	v := "0"
	if enabled {
		v = "1"
	}
	return db.setPref(key, v)
}

// GetBoolPref reads a boolean toggle; missing keys default to false.
func (db *Database) GetBoolPref(key string) bool {
	v, err := db.getPref(key)
	if err != nil {
		return false
	}
	return v == "1"
}
