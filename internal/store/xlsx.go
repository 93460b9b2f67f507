package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/jobtracker/internal/core"
)

// defaultSheet is the sheet excelize creates in a new workbook.
const defaultSheet = "Sheet1"

// Excel serial dates outside this range are treated as plain numbers.
const (
	minSerialDate = 20000 // 1954-10-03
	maxSerialDate = 80000 // 2119-01-10
)

// XLSX stores each table as a worksheet of a single workbook file.
// The workbook is opened per call; writes are serialized.
type XLSX struct {
	path string
	mu   sync.Mutex
}

// NewXLSX returns a store over the workbook at path. The file is created by
// EnsureTable if it does not exist.
func NewXLSX(path string) *XLSX {
	return &XLSX{path: path}
}

// Path returns the workbook path.
func (x *XLSX) Path() string { return x.path }

func (x *XLSX) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(x.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: workbook %s", core.ErrTableNotFound, x.path)
		}
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return f, nil
}

func hasSheet(f *excelize.File, name string) bool {
	idx, err := f.GetSheetIndex(name)
	return err == nil && idx != -1
}

// ReadTable reads every row of the named worksheet.
func (x *XLSX) ReadTable(_ context.Context, name string) (core.Table, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	f, err := x.open()
	if err != nil {
		return core.Table{}, err
	}
	defer func() { _ = f.Close() }()

	if !hasSheet(f, name) {
		return core.Table{}, tableNotFound(name)
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return core.Table{}, fmt.Errorf("read sheet %s: %w", name, err)
	}

	t := decodeTable(name, rows)
	fixSerialDates(name, t)
	return t, nil
}

// fixSerialDates converts date columns that came back as Excel serial
// numbers, which happens when a cell has no date number format.
func fixSerialDates(name string, t core.Table) {
	def, ok := core.Get(name)
	if !ok {
		return
	}
	for col, h := range t.Header {
		spec, ok := def.Spec(h)
		if !ok || spec.Type != core.FieldDate {
			continue
		}
		for _, row := range t.Rows {
			if col >= len(row) || row[col].Kind() != core.KindString {
				continue
			}
			serial, err := strconv.ParseFloat(row[col].String(), 64)
			if err != nil || serial < minSerialDate || serial > maxSerialDate {
				continue
			}
			if tm, err := excelize.ExcelDateToTime(serial, false); err == nil {
				row[col] = core.Date(tm)
			}
		}
	}
}

// AppendRow writes row below the last used row of the worksheet.
func (x *XLSX) AppendRow(_ context.Context, name string, row []core.Value) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	f, err := x.open()
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if !hasSheet(f, name) {
		return tableNotFound(name)
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", name, err)
	}

	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return err
	}
	vals := cellValues(row)
	if err := f.SetSheetRow(name, cell, &vals); err != nil {
		return fmt.Errorf("write row to %s: %w", name, err)
	}
	return f.Save()
}

// cellValues converts values to the types excelize writes natively.
// Dates are written as YYYY-MM-DD text.
func cellValues(row []core.Value) []any {
	out := make([]any, len(row))
	for i, v := range row {
		switch v.Kind() {
		case core.KindNumber:
			n, _ := v.Float()
			out[i] = n
		case core.KindBool:
			b, _ := v.Boolean()
			out[i] = b
		case core.KindEmpty:
			out[i] = nil
		default:
			out[i] = v.String()
		}
	}
	return out
}

// EnsureTable adds a worksheet with the registered header if it is missing,
// creating the workbook when needed.
func (x *XLSX) EnsureTable(_ context.Context, def core.TableDefinition) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	f, err := excelize.OpenFile(x.path)
	created := false
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("open workbook: %w", err)
		}
		f = excelize.NewFile()
		created = true
	}
	defer func() { _ = f.Close() }()

	name := def.Info.Name
	if hasSheet(f, name) {
		return nil
	}

	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}
	header := make([]any, len(def.Info.Columns))
	for i, c := range def.Info.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("write header to %s: %w", name, err)
	}

	if created && name != defaultSheet {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return err
		}
	}

	if created {
		if err := os.MkdirAll(filepath.Dir(x.path), 0o755); err != nil {
			return err
		}
		return f.SaveAs(x.path)
	}
	return f.Save()
}
