package query

// Muted-notification app list, read by the soft-intervention collaborator.

func (db *Database) InsertMuted(name string) error {
	_, err := db.Exec("INSERT OR IGNORE INTO muted_apps (name) VALUES (?)", name)
	return err
}

func (db *Database) DeleteFromMuted(name string) error {
	_, err := db.Exec("DELETE FROM muted_apps WHERE name = ?", name)
	return err
}

func (db *Database) SelectFromMuted(name string) (bool, error) {
	var exists bool
	err := db.Get(&exists, "SELECT EXISTS(SELECT 1 FROM muted_apps WHERE name = ?)", name)
	return exists, err
}

func (db *Database) GetAllMuted() ([]string, error) {
	var names []string
	err := db.Select(&names, "SELECT name FROM muted_apps")
	return names, err
}
