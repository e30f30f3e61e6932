package sqlite3adapter

import (
	"database/sql"
	"fmt"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	biosql "github.com/tosinoni/classification/pkg/bio/sql"
)

// Dialect is the SQLite3 dialect for biosql adapters.
var Dialect = biosql.Dialect{
	Placeholder: func(int) string { return "?" },
	IDColumn:    `"id" INTEGER PRIMARY KEY AUTOINCREMENT`,
}

/*
New takes a path to an SQLite3 database file and a maximum number of open
connections (0 for no limit) and returns an Adapter that works on the file's
database or an error if it fails to open as an sqlite3 database.
*/
func New(path string, maxConns int) (biosql.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite3 database %s: %v", path, err)
	}
	db.SetMaxOpenConns(maxConns)
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening sqlite3 database %s: %v", path, err)
	}
	return biosql.NewAdapter(db, Dialect), nil
}
