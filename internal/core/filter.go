package core

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter returns the header of t followed by every row that matches all
// criteria, in their original order. A row matches when, for each
// column/target pair, the stringified cell contains the target as a
// case-insensitive substring.
//
// A table with no header and no rows yields an empty result without checking
// criteria. Every criteria key must name a header column; otherwise a
// *MissingColumnError is returned. When nothing matches the result is the
// zero Table, header dropped.
func Filter(t Table, c Criteria) (Table, error) {
	if t.IsEmpty() {
		return Table{}, nil
	}

	fold := cases.Fold()

	type cond struct {
		idx    int
		target string
	}
	conds := make([]cond, 0, len(c))
	for _, col := range c.Keys() {
		idx := t.ColumnIndex(col)
		if idx == -1 {
			return Table{}, &MissingColumnError{Column: col}
		}
		conds = append(conds, cond{idx: idx, target: fold.String(c[col])})
	}

	var matches [][]Value
	for _, row := range t.Rows {
		ok := true
		for _, cd := range conds {
			var cell string
			if cd.idx < len(row) {
				cell = row[cd.idx].String()
			}
			if !strings.Contains(fold.String(cell), cd.target) {
				ok = false
				break
			}
		}
		if ok {
			matches = append(matches, row)
		}
	}

	if len(matches) == 0 {
		return Table{}, nil
	}

	header := make([]string, len(t.Header))
	copy(header, t.Header)
	return Table{Header: header, Rows: matches}, nil
}
