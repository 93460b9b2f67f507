package core

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ValueComparer orders cell values for the sorted views.
// A ValueComparer is not safe for concurrent use.
type ValueComparer struct {
	col *collate.Collator
}

// NewValueComparer returns a comparer using English collation for text.
func NewValueComparer() *ValueComparer {
	return &ValueComparer{col: collate.New(language.English)}
}

// Compare returns -1, 0 or +1. Blank values sort after everything else.
// Two numeric values compare as numbers, two dates by time, and anything
// else by collated text.
func (c *ValueComparer) Compare(a, b Value) int {
	switch {
	case a.IsEmpty() && b.IsEmpty():
		return 0
	case a.IsEmpty():
		return 1
	case b.IsEmpty():
		return -1
	}

	if at, ok := a.Time(); ok {
		if bt, ok := b.Time(); ok {
			return at.Compare(bt)
		}
	}

	if af, ok := numeric(a); ok {
		if bf, ok := numeric(b); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}

	return c.col.CompareString(a.String(), b.String())
}

func numeric(v Value) (float64, bool) {
	if f, ok := v.Float(); ok {
		return f, true
	}
	if v.Kind() == KindString {
		return ParseNumber(v.String())
	}
	return 0, false
}

// SortApplications stable-sorts apps by field. Blank values stay last in both
// directions.
func SortApplications(apps []Application, field string, descending bool) {
	if field == "" {
		return
	}
	cmp := NewValueComparer()
	sort.SliceStable(apps, func(i, j int) bool {
		a, b := fieldValue(apps[i], field), fieldValue(apps[j], field)
		if a.IsEmpty() || b.IsEmpty() {
			return cmp.Compare(a, b) < 0
		}
		if descending {
			return cmp.Compare(b, a) < 0
		}
		return cmp.Compare(a, b) < 0
	})
}

// sortByAppliedDesc orders apps newest Applied Date first.
func sortByAppliedDesc(apps []Application) {
	SortApplications(apps, ColAppliedDate, true)
}

func fieldValue(app Application, field string) Value {
	if field == "Status" {
		return Text(string(app.Status))
	}
	return app.Record.Get(field)
}
