package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/jobtracker/internal/core"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS sheet_headers (
	sheet      TEXT PRIMARY KEY,
	columns    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS sheet_rows (
	id         BIGSERIAL PRIMARY KEY,
	sheet      TEXT NOT NULL REFERENCES sheet_headers(sheet) ON DELETE CASCADE,
	cells      JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS sheet_rows_sheet_id_idx ON sheet_rows (sheet, id);
`

// Postgres stores tables as JSON arrays of cell text in PostgreSQL.
// Row order is insertion order.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps an open pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate creates the storage tables if they do not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// ReadTable loads the header and every row of a sheet.
func (p *Postgres) ReadTable(ctx context.Context, name string) (core.Table, error) {
	var header []string
	err := p.pool.QueryRow(ctx,
		`SELECT columns FROM sheet_headers WHERE sheet = $1`, name,
	).Scan(&header)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return core.Table{}, tableNotFound(name)
		}
		return core.Table{}, fmt.Errorf("read header %s: %w", name, err)
	}

	rows, err := p.pool.Query(ctx,
		`SELECT cells FROM sheet_rows WHERE sheet = $1 ORDER BY id`, name)
	if err != nil {
		return core.Table{}, fmt.Errorf("read rows %s: %w", name, err)
	}
	cells, err := pgx.CollectRows(rows, pgx.RowTo[[]string])
	if err != nil {
		return core.Table{}, fmt.Errorf("read rows %s: %w", name, err)
	}

	records := make([][]string, 0, len(cells)+1)
	records = append(records, header)
	records = append(records, cells...)
	return decodeTable(name, records), nil
}

// AppendRow inserts one row.
func (p *Postgres) AppendRow(ctx context.Context, name string, row []core.Value) error {
	tag, err := p.pool.Exec(ctx,
		`INSERT INTO sheet_rows (sheet, cells)
		 SELECT sheet, $2::jsonb FROM sheet_headers WHERE sheet = $1`,
		name, core.EncodeRow(row))
	if err != nil {
		return fmt.Errorf("append %s: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return tableNotFound(name)
	}
	return nil
}

// EnsureTable records the registered header for a sheet that has none.
func (p *Postgres) EnsureTable(ctx context.Context, def core.TableDefinition) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO sheet_headers (sheet, columns) VALUES ($1, $2)
		 ON CONFLICT (sheet) DO NOTHING`,
		def.Info.Name, def.Info.Columns)
	if err != nil {
		return fmt.Errorf("ensure %s: %w", def.Info.Name, err)
	}
	return nil
}
