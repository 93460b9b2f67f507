package core

// convert.go turns raw sheet cells into typed Values.
//
// Spreadsheet exports are messy:
//   - Multiple date formats (US, ISO, spelled-out months)
//   - Currency symbols and thousand separators in numbers
//   - Various boolean representations (yes/no, true/false, TRUE/FALSE)
//   - Excel formula prefixes (="value")
//
// Cells that fail to parse as their declared type are kept as text rather
// than rejected; the filter matches on the stringified value either way.

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// TwoDigitYearPivot defines how 2-digit years are interpreted.
// Years that would result in dates more than this many years in the future
// are assumed to be in the previous century.
var TwoDigitYearPivot = 20

// CompactDateLayout is the file-name style date used in summaries and version keys.
const CompactDateLayout = "20060102"

var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "01-02-06",
	}
	fourDigitYearLayouts = []string{
		"2006-01-02", "2006/01/02",
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006",
		"Jan 2, 2006", "2 Jan 2006", "January 2, 2006",
		"2006-01-02T15:04:05Z07:00", "2006-01-02 15:04:05",
		"20060102",
	}
)

// ParseCell converts a raw cell string to a Value of the given type.
// Unparseable input falls back to text.
func ParseCell(raw string, ft FieldType) Value {
	s := CleanCell(raw)
	if s == "" {
		return Empty()
	}

	switch ft {
	case FieldDate:
		if t, ok := ParseDate(s); ok {
			return Date(t)
		}
	case FieldNumeric:
		if n, ok := ParseNumber(s); ok {
			return Number(n)
		}
	case FieldBool:
		if b, ok := ParseBool(s); ok {
			return Bool(b)
		}
	}
	return Text(s)
}

// ParseDate parses the date layouts commonly found in sheet exports.
// Two-digit years are resolved with TwoDigitYearPivot.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	// Try 4-digit year layouts first (unambiguous)
	for _, layout := range fourDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	pivotYear := time.Now().Year() + TwoDigitYearPivot
	for _, layout := range twoDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return t, true
		}
	}

	return time.Time{}, false
}

// ParseNumber parses a number, tolerating currency symbols, thousands
// separators and accounting negatives "(123.45)".
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if isNegative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return 0, false
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseBool accepts true/false, yes/no, t/f, y/n, 1/0 in any case.
func ParseBool(s string) (bool, bool) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "true", "t", "yes", "y", "1":
		return true, true
	case "false", "f", "no", "n", "0":
		return false, true
	default:
		return false, false
	}
}

// CleanCell removes common spreadsheet artifacts from a cell value:
// surrounding whitespace, the Excel formula prefix (="...") and
// surrounding quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	}

	return strings.Trim(s, `"`)
}

// CompactDate renders a date-like value as YYYYMMDD.
// Text that parses as a date is reformatted; anything else is returned as-is.
func CompactDate(v Value) string {
	if t, ok := v.Time(); ok {
		return t.Format(CompactDateLayout)
	}
	if t, ok := ParseDate(v.String()); ok {
		return t.Format(CompactDateLayout)
	}
	return v.String()
}

// DecodeRow converts raw string cells into Values using the column types of
// def. Columns unknown to def are decoded as text. The result is padded or
// truncated to the header length.
func DecodeRow(def TableDefinition, header []string, cells []string) []Value {
	row := make([]Value, len(header))
	for i, col := range header {
		if i >= len(cells) {
			break
		}
		ft := FieldText
		if spec, ok := def.Spec(col); ok {
			ft = spec.Type
		}
		row[i] = ParseCell(cells[i], ft)
	}
	return row
}

// EncodeRow renders a row of Values as strings for text-backed stores.
func EncodeRow(row []Value) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = v.String()
	}
	return out
}
