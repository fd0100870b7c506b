package query

// Known-distracting app list operations
func (db *Database) InsertDistracting(name string) error {
	_, err := db.Exec("INSERT OR IGNORE INTO distracting_apps (name) VALUES (?)", name)
	return err
}

func (db *Database) DeleteFromDistracting(name string) error {
	_, err := db.Exec("DELETE FROM distracting_apps WHERE name = ?", name)
	return err
}

func (db *Database) SelectFromDistracting(name string) (bool, error) {
	var exists bool
	err := db.Get(&exists, "SELECT EXISTS(SELECT 1 FROM distracting_apps WHERE name = ?)", name)
	return exists, err
}

func (db *Database) GetAllDistracting() ([]string, error) {
	var names []string
	err := db.Select(&names, "SELECT name FROM distracting_apps")
	return names, err
}
