// Package datastore manages the per-file SQLite databases that hold the rows
// of one imported spreadsheet each.
//
// Every store has a single table, TableName, whose columns mirror the
// spreadsheet header. Writes always replace the whole table inside one
// transaction. A connection is opened for each operation and closed before
// it returns.
package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"report-catalog/internal/models"
)

// TableName is the data table inside every per-file store.
const TableName = "new_table"

var (
	ErrStoreExists = errors.New("data store already exists")
	ErrNoStore     = errors.New("data store does not exist")
)

// Create writes sheet into a new database at path. It refuses to touch an
// existing file.
func Create(ctx context.Context, path string, sheet *models.Sheet) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrStoreExists, path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := write(ctx, path, sheet); err != nil {
		if _, rmErr := Remove(path); rmErr != nil {
			return errors.Join(err, fmt.Errorf("remove partial store: %w", rmErr))
		}
		return err
	}
	return nil
}

// Replace drops and recreates the data table of an existing store.
func Replace(ctx context.Context, path string, sheet *models.Sheet) error {
	if !Exists(path) {
		return fmt.Errorf("%w: %s", ErrNoStore, path)
	}
	return write(ctx, path, sheet)
}

// Load reads the whole data table. A store without the table yields an empty
// sheet.
func Load(ctx context.Context, path string) (*models.Sheet, error) {
	if !Exists(path) {
		return nil, fmt.Errorf("%w: %s", ErrNoStore, path)
	}

	db, err := open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var name string
	err = db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", TableName).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NewSheet(nil, nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", path, err)
	}

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(TableName))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", path, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	var data [][]models.Cell
	values := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(data), err)
		}
		row := make([]models.Cell, len(columns))
		for i, v := range values {
			row[i] = models.Cell{Value: v.String, Valid: v.Valid}
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return models.NewSheet(columns, data), nil
}

// Exists reports whether a store file is present at path.
func Exists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Remove deletes the store file. A missing file is not an error and reports
// false.
func Remove(path string) (bool, error) {
	if !Exists(path) {
		return false, nil
	}
	if err := os.Remove(path); err != nil {
		return false, fmt.Errorf("remove %s: %w", path, err)
	}
	for _, suffix := range []string{"-journal", "-wal", "-shm"} {
		_ = os.Remove(path + suffix)
	}
	return true, nil
}

func write(ctx context.Context, path string, sheet *models.Sheet) error {
	if sheet == nil {
		sheet = models.NewSheet(nil, nil)
	}
	if err := validateColumns(sheet.Columns); err != nil {
		return err
	}

	db, err := open(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	return fill(ctx, db, sheet)
}

// fill is swapped in tests to fail after the file exists.
var fill = fillTable

func fillTable(ctx context.Context, db *sql.DB, sheet *models.Sheet) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(TableName)); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}

	if len(sheet.Columns) > 0 {
		if _, err := tx.ExecContext(ctx, createTableSQL(sheet.Columns)); err != nil {
			return fmt.Errorf("create table: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, insertSQL(sheet.Columns))
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		args := make([]any, len(sheet.Columns))
		for i, row := range sheet.Rows {
			for j := range args {
				var cell models.Cell
				if j < len(row) {
					cell = row[j]
				}
				args[j] = sql.NullString{String: cell.Value, Valid: cell.Valid}
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("insert row %d: %w", i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open data store %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to data store %s: %w", path, err)
	}
	return db, nil
}

func validateColumns(columns []string) error {
	seen := make(map[string]bool, len(columns))
	for i, c := range columns {
		if c == "" {
			return fmt.Errorf("column %d has no name", i)
		}
		key := strings.ToLower(c)
		if seen[key] {
			return fmt.Errorf("duplicate column %q", c)
		}
		seen[key] = true
	}
	return nil
}

func createTableSQL(columns []string) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = quoteIdent(c) + " TEXT"
	}
	return "CREATE TABLE " + quoteIdent(TableName) + " (" + strings.Join(defs, ", ") + ")"
}

func insertSQL(columns []string) string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = quoteIdent(c)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	return "INSERT INTO " + quoteIdent(TableName) + " (" + strings.Join(names, ", ") + ") VALUES (" + placeholders + ")"
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
