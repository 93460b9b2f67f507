package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/JonMunkholm/jobtracker/internal/core"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS sheet_headers (
	sheet      TEXT PRIMARY KEY,
	columns    TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sheet_rows (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	sheet      TEXT NOT NULL,
	cells      TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY(sheet) REFERENCES sheet_headers(sheet) ON DELETE CASCADE
);
`

// SQLite stores tables as JSON-encoded cell text in a SQLite database.
type SQLite struct {
	DB *sql.DB
}

// OpenSQLite opens a SQLite database, enables foreign keys and creates the
// storage tables.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps writes serialized.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}
	s := &SQLite{DB: db}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the storage tables if they do not exist.
func (s *SQLite) Migrate(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLite) Close() error { return s.DB.Close() }

// ReadTable loads the header and every row of a sheet.
func (s *SQLite) ReadTable(ctx context.Context, name string) (core.Table, error) {
	var rawHeader string
	err := s.DB.QueryRowContext(ctx,
		`SELECT columns FROM sheet_headers WHERE sheet = ?`, name,
	).Scan(&rawHeader)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return core.Table{}, tableNotFound(name)
	case err != nil:
		return core.Table{}, fmt.Errorf("read header %s: %w", name, err)
	}

	var header []string
	if err := json.Unmarshal([]byte(rawHeader), &header); err != nil {
		return core.Table{}, fmt.Errorf("decode header %s: %w", name, err)
	}
	records := [][]string{header}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT cells FROM sheet_rows WHERE sheet = ? ORDER BY id`, name)
	if err != nil {
		return core.Table{}, fmt.Errorf("read rows %s: %w", name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return core.Table{}, err
		}
		var cells []string
		if err := json.Unmarshal([]byte(raw), &cells); err != nil {
			return core.Table{}, fmt.Errorf("decode row %s: %w", name, err)
		}
		records = append(records, cells)
	}
	if err := rows.Err(); err != nil {
		return core.Table{}, err
	}

	return decodeTable(name, records), nil
}

// AppendRow inserts one row.
func (s *SQLite) AppendRow(ctx context.Context, name string, row []core.Value) error {
	cells, err := json.Marshal(core.EncodeRow(row))
	if err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx,
		`INSERT INTO sheet_rows (sheet, cells)
		 SELECT sheet, ? FROM sheet_headers WHERE sheet = ?`,
		string(cells), name)
	if err != nil {
		return fmt.Errorf("append %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return tableNotFound(name)
	}
	return nil
}

// EnsureTable records the registered header for a sheet that has none.
func (s *SQLite) EnsureTable(ctx context.Context, def core.TableDefinition) error {
	cols, err := json.Marshal(def.Info.Columns)
	if err != nil {
		return err
	}
	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO sheet_headers (sheet, columns) VALUES (?, ?)
		 ON CONFLICT(sheet) DO NOTHING`,
		def.Info.Name, string(cols))
	if err != nil {
		return fmt.Errorf("ensure %s: %w", def.Info.Name, err)
	}
	return nil
}
