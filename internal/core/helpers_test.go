package core

import (
	"context"
	"fmt"
	"sync"
)

// countingStore is an in-memory Store that records how often each table is read.
type countingStore struct {
	mu     sync.Mutex
	tables map[string]Table
	reads  map[string]int
}

func newCountingStore() *countingStore {
	return &countingStore{
		tables: make(map[string]Table),
		reads:  make(map[string]int),
	}
}

func (s *countingStore) put(name string, header []string, rows ...[]Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[name] = Table{Header: header, Rows: rows}
}

func (s *countingStore) readCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads[name]
}

func (s *countingStore) ReadTable(_ context.Context, name string) (Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads[name]++
	t, ok := s.tables[name]
	if !ok {
		return Table{}, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	rows := make([][]Value, len(t.Rows))
	copy(rows, t.Rows)
	return Table{Header: t.Header, Rows: rows}, nil
}

func (s *countingStore) AppendRow(_ context.Context, name string, row []Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	t.Rows = append(t.Rows, row)
	s.tables[name] = t
	return nil
}

// texts builds a row of text values.
func texts(cells ...string) []Value {
	row := make([]Value, len(cells))
	for i, c := range cells {
		row[i] = Text(c)
	}
	return row
}

// relatedHeader is the minimal header of a related table.
var relatedHeader = []string{ColApplicationID}

// appHeader is a reduced Applications header used by core tests.
var appHeader = []string{ColID, ColCompany, ColAppliedDate, ColLocation, ColListingJobTitle, ColNotes}
