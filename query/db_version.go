package query

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const (
	TableDatabaseVersion = "database_version"
)

func (db *Database) GetDbVersion() (int, error) {
	var dbVersion int
	query := "SELECT db_version FROM database_version LIMIT 1"
	err := db.Get(&dbVersion, query)
	if err != nil {
		return 0, fmt.Errorf("GetDbVersion: %w", err)
	}
	return dbVersion, nil
}

func (db *Database) TableExists(tableName string) (bool, error) {
	query := `
		SELECT count(name)
		FROM sqlite_master
		WHERE type='table' AND name=?
	`

	var count int
	err := db.QueryRow(query, tableName).Scan(&count)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func getPathFileData() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("getPathFileData: %w", err)
	}
	appDir := filepath.Join(configDir, ".focus_shield")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", fmt.Errorf("getPathFileData: %w", err)
	}
	return appDir, nil
}

// InitDatabase opens (or creates) the engine database at its well-known
// location under the user config dir.
func InitDatabase() (*Database, error) {
	saveFolder, err := getPathFileData()
	if err != nil {
		return nil, err
	}
	return InitDatabaseAt(filepath.Join(saveFolder, "focus_shield.db"))
}

// InitDatabaseAt opens the database at the given path and applies the
// schema. Tests pass a temp-dir path.
func InitDatabaseAt(path string) (*Database, error) {
	dbTemp, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	db := NewDatabase(dbTemp)

	exist, err := db.TableExists(TableDatabaseVersion)
	if err != nil {
		return nil, err
	}
	if exist {
		if err := db.updateDb(); err != nil {
			return nil, err
		}
		return db, nil
	}

	// Fresh install: create the full schema at the current version.
	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS prefs (
            key TEXT PRIMARY KEY,
            value TEXT NOT NULL
        )
    `)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS app_events (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            app_id TEXT NOT NULL,
            kind TEXT NOT NULL,
            timestamp_ms INTEGER NOT NULL,
            day_of_week INTEGER,
            hour INTEGER
        )
    `)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS app_intervals (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            app_id TEXT NOT NULL,
            start_ms INTEGER NOT NULL,
            end_ms INTEGER NOT NULL,
            duration_ms INTEGER NOT NULL,
            day_of_week INTEGER,
            hour INTEGER
        )
    `)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS distracting_apps (
            name TEXT PRIMARY KEY
        );

        CREATE TABLE IF NOT EXISTS muted_apps (
            name TEXT PRIMARY KEY
        );

        CREATE INDEX IF NOT EXISTS idx_events_ts ON app_events(timestamp_ms);
        CREATE INDEX IF NOT EXISTS idx_events_app ON app_events(app_id);
        CREATE INDEX IF NOT EXISTS idx_intervals_ts ON app_intervals(start_ms);
        CREATE INDEX IF NOT EXISTS idx_intervals_app ON app_intervals(app_id);
    `)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS database_version (
		db_version INTEGER default 0)`)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`INSERT INTO database_version VALUES(1)`)
	if err != nil {
		return nil, err
	}

	if err := db.seedDistractingApps(); err != nil {
		return nil, err
	}

	return db, nil
}

func (db *Database) updateDb() error {
	dbVersion, err := db.GetDbVersion()
	if err != nil {
		return fmt.Errorf("updateDb: %w", err)
	}
	tx := db.MustBegin().Tx
	if dbVersion < 1 {
		_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS muted_apps (
			name TEXT PRIMARY KEY
		);

		UPDATE database_version SET db_version=1;
		`)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("updateDb version 1: %w", err)
		}
	}
	err = tx.Commit()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("updateDb: error at commit rollback: %w", err)
	}
	return nil
}

// seedDistractingApps loads the default known-distracting package list on
// first install. The list stays editable afterwards.
func (db *Database) seedDistractingApps() error {
	defaults := []string{
		"com.instagram.android",
		"com.zhiliaoapp.musically",
		"com.snapchat.android",
		"com.twitter.android",
		"com.facebook.katana",
		"com.facebook.orca",
		"com.whatsapp",
		"org.telegram.messenger",
		"com.discord",
		"com.reddit.frontpage",
		"com.pinterest",
		"com.google.android.youtube",
		"com.netflix.mediaclient",
		"tv.twitch.android.app",
		"com.spotify.music",
		"com.king.candycrushsaga",
		"com.roblox.client",
	}
	for _, name := range defaults {
		if _, err := db.Exec(`INSERT OR IGNORE INTO distracting_apps (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("seedDistractingApps: %w", err)
		}
	}
	return nil
}
