/*
Package pgadapter provides an implementation of the
Adapter interface in the sql package that works
over a PostgreSQL database.
*/
package pgadapter

import (
	"database/sql"
	"fmt"

	biosql "github.com/tosinoni/classification/pkg/bio/sql"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
)

// Dialect is the PostgreSQL dialect for biosql adapters.
var Dialect = biosql.Dialect{
	Placeholder: func(i int) string { return fmt.Sprintf("$%d", i) },
	IDColumn:    `"id" SERIAL PRIMARY KEY`,
}

/*
New takes a PostgreSQL database connection URL and returns
an Adapter that works on the database or an error if it fails to connect to it.
*/
func New(url string) (biosql.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to PostgreSQL: %v", err)
	}
	return biosql.NewAdapter(db, Dialect), nil
}
