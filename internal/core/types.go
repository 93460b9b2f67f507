// Package core provides the business logic for the job application tracker.
// This package has no UI dependencies and can be used by any frontend.
package core

import (
	"context"
	"encoding/json"
	"sort"
)

// Column names referenced by the core. They must match sheet headers exactly.
const (
	ColID              = "ID"
	ColCompany         = "Company"
	ColAppliedDate     = "Applied Date"
	ColLocation        = "Location"
	ColListingJobTitle = "Listing Job Title"
	ColNotes           = "Notes"
	ColApplicationID   = "Application ID"
)

// Table names of the tracker workbook.
const (
	TableApplications   = "Applications"
	TableRejections     = "Rejections"
	TableClosures       = "Closures"
	TableConsiderations = "Considerations"
	TableInterviews     = "Interviews"
	TableResumeLinks    = "ResumeLinks"
)

// Table is a header row plus data rows aligned positionally to it.
// The zero Table means "no data".
type Table struct {
	Header []string
	Rows   [][]Value
}

// IsEmpty reports whether t has neither a header nor rows.
func (t Table) IsEmpty() bool {
	return len(t.Header) == 0 && len(t.Rows) == 0
}

// Len returns the number of data rows.
func (t Table) Len() int { return len(t.Rows) }

// ColumnIndex returns the position of name in the header, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Column returns every data cell in the named column.
// Short rows contribute empty values.
func (t Table) Column(name string) ([]Value, error) {
	idx := t.ColumnIndex(name)
	if idx == -1 {
		return nil, &MissingColumnError{Column: name}
	}
	out := make([]Value, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out, nil
}

// Record is one data row keyed by column name.
type Record map[string]Value

// Get returns the value of a column, or the empty Value.
func (r Record) Get(col string) Value { return r[col] }

// Text returns the stringified value of a column.
func (r Record) Text(col string) string { return r[col].String() }

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Criteria maps column names to case-insensitive substring targets.
type Criteria map[string]string

// Keys returns the criteria columns in sorted order.
func (c Criteria) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders the criteria as JSON with sorted keys.
func (c Criteria) String() string {
	b, err := json.Marshal(map[string]string(c))
	if err != nil {
		return "{}"
	}
	return string(b)
}

// Status is the derived lifecycle state of an application.
type Status string

const (
	StatusRejected   Status = "Rejected"
	StatusClosed     Status = "Closed"
	StatusConsidered Status = "Considered"
	StatusNoResponse Status = "No Response"
)

// Statuses lists every status in precedence order.
var Statuses = []Status{StatusRejected, StatusClosed, StatusConsidered, StatusNoResponse}

// Application is an application record with its derived status attached.
// The record is a copy; enriching never mutates the source.
type Application struct {
	Record Record
	Status Status
}

// ID returns the application identifier.
func (a Application) ID() string { return a.Record.Text(ColID) }

// MarshalJSON flattens the record and adds a Status field.
func (a Application) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(a.Record)+1)
	for k, v := range a.Record {
		out[k] = v
	}
	out["Status"] = a.Status
	return json.Marshal(out)
}

// TableReader reads a full table by name.
// Implementations return an error wrapping ErrTableNotFound for unknown tables.
type TableReader interface {
	ReadTable(ctx context.Context, name string) (Table, error)
}

// RowAppender appends one row. The row must be aligned to the table header.
type RowAppender interface {
	AppendRow(ctx context.Context, name string, row []Value) error
}

// Store is the row store the workflows run against.
type Store interface {
	TableReader
	RowAppender
}

// TableInitializer is implemented by stores that can create missing tables.
type TableInitializer interface {
	EnsureTable(ctx context.Context, def TableDefinition) error
}

// Prompter shows a message to the user. It is best-effort and must not block.
type Prompter interface {
	Prompt(ctx context.Context, message string)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(ctx context.Context, message string)

// Prompt calls f.
func (f PrompterFunc) Prompt(ctx context.Context, message string) { f(ctx, message) }
