package sql

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
)

const (
	// SampleTable is the name of the table holding the samples.
	SampleTable = "samples"

	/*
		MaxSampleInsertionsPerStatement is the maximum number
		of samples that are allowed to be added with a single
		insert command with the AddSamples method of the adapter.
		Trying to add more will result in making more insertion commands
	*/
	MaxSampleInsertionsPerStatement = 10
)

/*
Adapter is an interface providing the methods needed to keep a set of
samples in a database table with one integer column per feature, an integer
class column and an auto-incremented "id" column preserving insertion order.
*/
type Adapter interface {
	ColumnName(string) (string, error)
	CreateSampleTable(ctx context.Context, featureColumns []string, classColumn string) error
	AddSamples(ctx context.Context, rows [][]int, featureColumns []string, classColumn string) (int, error)
	IterateOnSamples(ctx context.Context, featureColumns []string, classColumn string, lambda func(int, []int, int) (bool, error)) error
	CountSamples(ctx context.Context) (int, error)
	Close() error
}

/*
Dialect holds what differs between database engines for an Adapter: how the
i-th (1-based) statement placeholder is written and the column definition
of the auto-incremented id column.
*/
type Dialect struct {
	Placeholder func(i int) string
	IDColumn    string
}

type adapter struct {
	db      *sql.DB
	dialect Dialect
}

/*
NewAdapter takes an open database and a dialect and returns an Adapter that
works on the database.
*/
func NewAdapter(db *sql.DB, dialect Dialect) Adapter {
	return &adapter{db, dialect}
}

func (a *adapter) ColumnName(name string) (string, error) {
	if name == "id" {
		return "", fmt.Errorf(`'%s' is reserved and cannot be used as column name`, name)
	}
	if name == "" || strings.ContainsAny(name, `"`) {
		return "", fmt.Errorf(`column name '%s' is empty or contains invalid character '"'`, name)
	}
	return fmt.Sprintf(`"%s"`, name), nil
}

func (a *adapter) columns(featureColumns []string, classColumn string) (string, error) {
	quoted := make([]string, 0, len(featureColumns)+1)
	for _, c := range append(append([]string{}, featureColumns...), classColumn) {
		qc, err := a.ColumnName(c)
		if err != nil {
			return "", err
		}
		quoted = append(quoted, qc)
	}
	return strings.Join(quoted, ", "), nil
}

func (a *adapter) CreateSampleTable(ctx context.Context, featureColumns []string, classColumn string) error {
	var createStmtBuf bytes.Buffer
	createStmtBuf.WriteString(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s(", SampleTable))
	for _, c := range append(append([]string{}, featureColumns...), classColumn) {
		qc, err := a.ColumnName(c)
		if err != nil {
			return err
		}
		createStmtBuf.WriteString(fmt.Sprintf(`%s INTEGER NOT NULL, `, qc))
	}
	createStmtBuf.WriteString(a.dialect.IDColumn)
	createStmtBuf.WriteString(")")
	_, err := a.db.ExecContext(ctx, createStmtBuf.String())
	if err != nil {
		return fmt.Errorf("ensuring samples table exists: %v", err)
	}
	return nil
}

func (a *adapter) AddSamples(ctx context.Context, rows [][]int, featureColumns []string, classColumn string) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	columns, err := a.columns(featureColumns, classColumn)
	if err != nil {
		return 0, err
	}
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting samples insertion: %v", err)
	}
	var added int
	for chunkStart := 0; chunkStart < len(rows); chunkStart += MaxSampleInsertionsPerStatement {
		chunkEnd := chunkStart + MaxSampleInsertionsPerStatement
		if chunkEnd > len(rows) {
			chunkEnd = len(rows)
		}
		var insertStmtBuf bytes.Buffer
		insertStmtBuf.WriteString(fmt.Sprintf("INSERT INTO %s (%s) VALUES ", SampleTable, columns))
		var args []interface{}
		for i, row := range rows[chunkStart:chunkEnd] {
			if len(row) != len(featureColumns)+1 {
				tx.Rollback()
				return 0, fmt.Errorf("inserting sample %d: got %d values for %d columns", chunkStart+i, len(row), len(featureColumns)+1)
			}
			if i > 0 {
				insertStmtBuf.WriteString(", ")
			}
			insertStmtBuf.WriteString("(")
			for j, v := range row {
				if j > 0 {
					insertStmtBuf.WriteString(", ")
				}
				args = append(args, v)
				insertStmtBuf.WriteString(a.dialect.Placeholder(len(args)))
			}
			insertStmtBuf.WriteString(")")
		}
		res, err := tx.ExecContext(ctx, insertStmtBuf.String(), args...)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("inserting samples %d to %d: %v", chunkStart, chunkEnd, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			tx.Rollback()
			return 0, err
		}
		added += int(n)
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing samples insertion: %v", err)
	}
	return added, nil
}

func (a *adapter) IterateOnSamples(ctx context.Context, featureColumns []string, classColumn string, lambda func(int, []int, int) (bool, error)) error {
	columns, err := a.columns(featureColumns, classColumn)
	if err != nil {
		return err
	}
	rows, err := a.db.QueryContext(ctx, fmt.Sprintf(`SELECT %s FROM %s ORDER BY "id"`, columns, SampleTable))
	if err != nil {
		return fmt.Errorf("querying samples: %v", err)
	}
	defer rows.Close()
	for i := 0; rows.Next(); i++ {
		values := make([]int, len(featureColumns))
		var class int
		dest := make([]interface{}, 0, len(values)+1)
		for j := range values {
			dest = append(dest, &values[j])
		}
		dest = append(dest, &class)
		if err = rows.Scan(dest...); err != nil {
			return fmt.Errorf("scanning sample %d: %v", i, err)
		}
		ok, err := lambda(i, values, class)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return rows.Err()
}

func (a *adapter) CountSamples(ctx context.Context) (int, error) {
	var count int
	err := a.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", SampleTable)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting samples: %v", err)
	}
	return count, nil
}

func (a *adapter) Close() error {
	return a.db.Close()
}
