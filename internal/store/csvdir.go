package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/JonMunkholm/jobtracker/internal/core"
)

// CSVDir stores each table as <dir>/<table>.csv with a header row.
type CSVDir struct {
	dir string
	mu  sync.Mutex
}

// NewCSVDir returns a store over the CSV files in dir.
func NewCSVDir(dir string) *CSVDir {
	return &CSVDir{dir: dir}
}

func (c *CSVDir) file(name string) string {
	return filepath.Join(c.dir, name+".csv")
}

// ReadTable reads the named CSV file.
func (c *CSVDir) ReadTable(_ context.Context, name string) (core.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.Open(c.file(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return core.Table{}, tableNotFound(name)
		}
		return core.Table{}, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	// Spreadsheet exports often carry a BOM or stray Latin-1 bytes.
	r := csv.NewReader(transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return core.Table{}, fmt.Errorf("parse %s: %w", name, err)
	}
	return decodeTable(name, records), nil
}

// AppendRow appends one record to the named CSV file.
func (c *CSVDir) AppendRow(_ context.Context, name string, row []core.Value) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.OpenFile(c.file(name), os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return tableNotFound(name)
		}
		return fmt.Errorf("open %s: %w", name, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(core.EncodeRow(row)); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	return f.Close()
}

// EnsureTable writes a header-only CSV file if the table is missing.
func (c *CSVDir) EnsureTable(_ context.Context, def core.TableDefinition) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(c.file(def.Info.Name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return fmt.Errorf("create %s: %w", def.Info.Name, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(def.Info.Columns); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
