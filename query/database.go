package query

import (
	"github.com/jmoiron/sqlx"
)

// Database wraps sqlx.DB with the application's query methods.
type Database struct {
	*sqlx.DB
}

func NewDatabase(db *sqlx.DB) *Database {
	return &Database{DB: db}
}
