package store

import (
	"context"
	"sync"

	"github.com/JonMunkholm/jobtracker/internal/core"
)

// Memory keeps tables in process memory.
type Memory struct {
	mu     sync.RWMutex
	tables map[string]core.Table
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{tables: make(map[string]core.Table)}
}

// Put replaces a table.
func (m *Memory) Put(name string, t core.Table) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[name] = copyTable(t)
}

// ReadTable returns a copy of the named table.
func (m *Memory) ReadTable(_ context.Context, name string) (core.Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tables[name]
	if !ok {
		return core.Table{}, tableNotFound(name)
	}
	return copyTable(t), nil
}

// AppendRow appends a row to an existing table.
func (m *Memory) AppendRow(_ context.Context, name string, row []core.Value) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tables[name]
	if !ok {
		return tableNotFound(name)
	}
	r := make([]core.Value, len(row))
	copy(r, row)
	t.Rows = append(t.Rows, r)
	m.tables[name] = t
	return nil
}

// EnsureTable creates the table with the registered header if it is missing.
func (m *Memory) EnsureTable(_ context.Context, def core.TableDefinition) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tables[def.Info.Name]; ok {
		return nil
	}
	header := make([]string, len(def.Info.Columns))
	copy(header, def.Info.Columns)
	m.tables[def.Info.Name] = core.Table{Header: header}
	return nil
}

func copyTable(t core.Table) core.Table {
	out := core.Table{}
	if t.Header != nil {
		out.Header = make([]string, len(t.Header))
		copy(out.Header, t.Header)
	}
	if t.Rows != nil {
		out.Rows = make([][]core.Value, len(t.Rows))
		for i, r := range t.Rows {
			out.Rows[i] = make([]core.Value, len(r))
			copy(out.Rows[i], r)
		}
	}
	return out
}
