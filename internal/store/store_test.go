package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/jobtracker/internal/core"
	_ "github.com/JonMunkholm/jobtracker/internal/core/tables"
)

// backends returns a fresh instance of every store that can run locally.
func backends(t *testing.T) map[string]Backend {
	t.Helper()
	dir := t.TempDir()

	sq, err := OpenSQLite(context.Background(), filepath.Join(dir, "tracker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })

	out := map[string]Backend{
		DriverMemory: NewMemory(),
		DriverCSV:    NewCSVDir(filepath.Join(dir, "csv")),
		DriverXLSX:   NewXLSX(filepath.Join(dir, "tracker.xlsx")),
		DriverSQLite: sq,
	}

	if url := os.Getenv("TEST_DATABASE_URL"); url != "" {
		pool, err := pgxpool.New(context.Background(), url)
		require.NoError(t, err)
		t.Cleanup(pool.Close)
		_, err = pool.Exec(context.Background(), `DROP TABLE IF EXISTS sheet_rows, sheet_headers`)
		require.NoError(t, err)
		pg := NewPostgres(pool)
		require.NoError(t, pg.Migrate(context.Background()))
		out[DriverPostgres] = pg
	}
	return out
}

func mustDef(t *testing.T, name string) core.TableDefinition {
	t.Helper()
	def, ok := core.Get(name)
	require.True(t, ok, "table %s not registered", name)
	return def
}

func TestStore_ReadUnknownTable(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.ReadTable(context.Background(), core.TableRejections)
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrTableNotFound), "got %v", err)

			err = s.AppendRow(context.Background(), core.TableRejections, []core.Value{core.Text("x")})
			assert.True(t, errors.Is(err, core.ErrTableNotFound), "got %v", err)
		})
	}
}

func TestStore_EnsureAppendRead(t *testing.T) {
	ctx := context.Background()
	applied := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			def := mustDef(t, core.TableRejections)
			require.NoError(t, s.EnsureTable(ctx, def))
			// Second call is a no-op.
			require.NoError(t, s.EnsureTable(ctx, def))

			got, err := s.ReadTable(ctx, core.TableRejections)
			require.NoError(t, err)
			assert.Equal(t, def.Info.Columns, got.Header)
			assert.Empty(t, got.Rows)

			rows := [][]core.Value{
				{core.Text("app-1"), core.Text("Email"), core.Date(applied)},
				{core.Text("app-2"), core.Empty(), core.Empty()},
			}
			for _, r := range rows {
				require.NoError(t, s.AppendRow(ctx, core.TableRejections, r))
			}

			got, err = s.ReadTable(ctx, core.TableRejections)
			require.NoError(t, err)
			require.Len(t, got.Rows, 2)

			assert.Equal(t, "app-1", got.Rows[0][0].String())
			assert.Equal(t, "Email", got.Rows[0][1].String())
			tm, ok := got.Rows[0][2].Time()
			require.True(t, ok, "Status Date should decode as a date, got %v", got.Rows[0][2])
			assert.True(t, tm.Equal(applied))

			assert.Equal(t, "app-2", got.Rows[1][0].String())
			assert.True(t, got.Rows[1][1].IsEmpty())
			assert.True(t, got.Rows[1][2].IsEmpty())
		})
	}
}

func TestStore_TypedColumns(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			def := mustDef(t, core.TableApplications)
			require.NoError(t, s.EnsureTable(ctx, def))

			row := make([]core.Value, len(def.Info.Columns))
			for i, col := range def.Info.Columns {
				switch col {
				case core.ColID:
					row[i] = core.Text("abc")
				case core.ColCompany:
					row[i] = core.Text("Acme")
				case "Salary Min (K)":
					row[i] = core.Number(120000)
				}
			}
			require.NoError(t, s.AppendRow(ctx, core.TableApplications, row))

			got, err := s.ReadTable(ctx, core.TableApplications)
			require.NoError(t, err)
			require.Len(t, got.Rows, 1)

			rec := core.ToRecords(got.Header, got.Rows)[0]
			assert.Equal(t, "Acme", rec.Text(core.ColCompany))
			n, ok := rec.Get("Salary Min (K)").Float()
			require.True(t, ok)
			assert.Equal(t, 120000.0, n)
		})
	}
}

func TestMemory_ReadReturnsCopy(t *testing.T) {
	m := NewMemory()
	m.Put("T", core.Table{Header: []string{"A"}, Rows: [][]core.Value{{core.Text("x")}}})

	got, err := m.ReadTable(context.Background(), "T")
	require.NoError(t, err)
	got.Rows[0][0] = core.Text("changed")

	again, err := m.ReadTable(context.Background(), "T")
	require.NoError(t, err)
	assert.Equal(t, "x", again.Rows[0][0].String())
}

func TestCSVDir_SkipsBlankLines(t *testing.T) {
	dir := t.TempDir()
	data := "Application ID,Notified Date,Reason\napp-1,2024-01-02,Filled\n,,\napp-2,,\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Closures.csv"), []byte(data), 0o644))

	got, err := NewCSVDir(dir).ReadTable(context.Background(), core.TableClosures)
	require.NoError(t, err)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "app-2", got.Rows[1][0].String())
}

func TestCSVDir_BOMAndInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	data := "\xef\xbb\xbfApplication ID,Notified Date,Reason\napp-1,2024-01-02,Caf\xe9\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Closures.csv"), []byte(data), 0o644))

	got, err := NewCSVDir(dir).ReadTable(context.Background(), core.TableClosures)
	require.NoError(t, err)
	assert.Equal(t, core.ColApplicationID, got.Header[0])
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "Caf\uFFFD", got.Rows[0][2].String())
}

func TestXLSX_NewWorkbookHasOnlyTrackerSheets(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sub", "tracker.xlsx")
	x := NewXLSX(path)

	for _, def := range core.All() {
		require.NoError(t, x.EnsureTable(ctx, def))
	}

	for _, def := range core.All() {
		got, err := x.ReadTable(ctx, def.Info.Name)
		require.NoError(t, err)
		assert.Equal(t, def.Info.Columns, got.Header)
	}

	_, err := x.ReadTable(ctx, defaultSheet)
	assert.True(t, errors.Is(err, core.ErrTableNotFound))
}

func TestFixSerialDates(t *testing.T) {
	tbl := core.Table{
		Header: []string{core.ColApplicationID, "Notified Date", "Reason"},
		Rows: [][]core.Value{
			{core.Text("a"), core.Text("45366"), core.Text("Filled")},
			{core.Text("b"), core.Text("12"), core.Text("Other")},
		},
	}
	fixSerialDates(core.TableClosures, tbl)

	tm, ok := tbl.Rows[0][1].Time()
	require.True(t, ok)
	assert.Equal(t, "2024-03-15", tm.Format(core.DateLayout))
	assert.Equal(t, core.KindString, tbl.Rows[1][1].Kind())
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		driver  string
		path    string
		wantErr bool
	}{
		{driver: DriverMemory},
		{driver: DriverCSV, path: dir},
		{driver: DriverXLSX, path: filepath.Join(dir, "t.xlsx")},
		{driver: DriverSQLite, path: filepath.Join(dir, "t.db")},
		{driver: "oracle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			b, closeFn, err := Open(ctx, Options{Driver: tt.driver, Path: tt.path})
			require.NotNil(t, closeFn)
			defer closeFn()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, b)
		})
	}
}
