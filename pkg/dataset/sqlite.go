package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/ncruces/go-sqlite3/driver" // database/sql driver
	_ "github.com/ncruces/go-sqlite3/embed"  // embedded sqlite build
)

// sqliteDataSet loads and saves a Table against one table of a SQLite
// database file. The table name is taken from the "table" option (load or
// save args). Save replaces the table contents transactionally; all
// columns are stored as TEXT.
type sqliteDataSet struct {
	desc  Descriptor
	table string
}

// NewSQLite creates a SQLite-table dataset from its descriptor.
func NewSQLite(desc Descriptor) (DataSet, error) {
	if desc.Location == "" {
		return nil, fmt.Errorf("sqlite dataset %q: location is required", desc.Name)
	}

	table, err := stringArg(desc.LoadArgs, "table", "")
	if err != nil {
		return nil, fmt.Errorf("sqlite dataset %q: %w", desc.Name, err)
	}
	if table == "" {
		table, err = stringArg(desc.SaveArgs, "table", "")
		if err != nil {
			return nil, fmt.Errorf("sqlite dataset %q: %w", desc.Name, err)
		}
	}
	if table == "" {
		return nil, fmt.Errorf("sqlite dataset %q: option \"table\" is required", desc.Name)
	}

	return &sqliteDataSet{desc: desc, table: table}, nil
}

func (d *sqliteDataSet) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+d.desc.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", d.desc.Location, err)
	}
	return db, nil
}

func (d *sqliteDataSet) Load(ctx context.Context) (any, error) {
	if !fileExists(d.desc.Location) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, d.desc.Location)
	}

	db, err := d.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	present, err := d.tableExists(ctx, db)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, fmt.Errorf("%w: table %q in %s", ErrNotFound, d.table, d.desc.Location)
	}

	//nolint:gosec // Identifier is quoted; value placeholders do not apply to identifiers.
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(d.table))
	if err != nil {
		return nil, fmt.Errorf("%w: querying table %q: %w", ErrFormat, d.table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: reading columns of %q: %w", ErrFormat, d.table, err)
	}

	var records [][]string
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, fmt.Errorf("%w: scanning row of %q: %w", ErrFormat, d.table, err)
		}
		record := make([]string, len(columns))
		for i, v := range values {
			record[i] = v.String
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating rows of %q: %w", ErrFormat, d.table, err)
	}

	return NewTable(columns, records), nil
}

func (d *sqliteDataSet) Save(ctx context.Context, data any) error {
	table, ok := data.(*Table)
	if !ok {
		return fmt.Errorf("%w: sqlite dataset requires *dataset.Table, got %T", ErrFormat, data)
	}
	if len(table.Columns) == 0 {
		return fmt.Errorf("%w: table must have at least one column", ErrFormat)
	}
	for _, record := range table.Records {
		if len(record) != len(table.Columns) {
			return fmt.Errorf("%w: record width %d does not match %d columns",
				ErrFormat, len(record), len(table.Columns))
		}
	}

	db, err := d.open()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %w", ErrWrite, err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit.

	if err := d.replaceTable(ctx, tx, table); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing: %w", ErrWrite, err)
	}
	return nil
}

func (d *sqliteDataSet) replaceTable(ctx context.Context, tx *sql.Tx, table *Table) error {
	ident := quoteIdent(d.table)

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+ident); err != nil {
		return fmt.Errorf("%w: dropping table %q: %w", ErrWrite, d.table, err)
	}

	columnDefs := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		columnDefs[i] = quoteIdent(col) + " TEXT"
	}
	createStmt := fmt.Sprintf("CREATE TABLE %s (%s)", ident, strings.Join(columnDefs, ", "))
	if _, err := tx.ExecContext(ctx, createStmt); err != nil {
		return fmt.Errorf("%w: creating table %q: %w", ErrWrite, d.table, err)
	}

	if len(table.Records) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(table.Columns)), ", ")
	insertStmt := fmt.Sprintf("INSERT INTO %s VALUES (%s)", ident, placeholders)
	stmt, err := tx.PrepareContext(ctx, insertStmt)
	if err != nil {
		return fmt.Errorf("%w: preparing insert for %q: %w", ErrWrite, d.table, err)
	}
	defer stmt.Close()

	for _, record := range table.Records {
		args := make([]any, len(record))
		for i, v := range record {
			args[i] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("%w: inserting into %q: %w", ErrWrite, d.table, err)
		}
	}
	return nil
}

func (d *sqliteDataSet) Exists(ctx context.Context) (bool, error) {
	if !fileExists(d.desc.Location) {
		return false, nil
	}

	db, err := d.open()
	if err != nil {
		return false, nil
	}
	defer db.Close()

	present, err := d.tableExists(ctx, db)
	if err != nil {
		return false, nil
	}
	return present, nil
}

func (d *sqliteDataSet) tableExists(ctx context.Context, db *sql.DB) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?",
		d.table,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check table %q: %w", d.table, err)
	}
	return count > 0, nil
}

func (d *sqliteDataSet) Describe() Description {
	return d.desc.Describe()
}

// quoteIdent quotes a SQL identifier, escaping embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
