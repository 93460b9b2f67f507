package core

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) Value {
	return Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func TestValueComparer(t *testing.T) {
	cmp := NewValueComparer()

	tests := []struct {
		name string
		a, b Value
		want int
	}{
		{"both empty", Empty(), Empty(), 0},
		{"empty after text", Empty(), Text("a"), 1},
		{"text before empty", Text("a"), Empty(), -1},
		{"dates", day(2024, 1, 1), day(2024, 2, 1), -1},
		{"equal dates", day(2024, 1, 1), day(2024, 1, 1), 0},
		{"numbers", Number(10), Number(9), 1},
		{"numeric text compares as number", Text("9"), Text("10"), -1},
		{"number vs numeric text", Number(100), Text("$20"), 1},
		{"collated text ignores case first", Text("apple"), Text("Banana"), -1},
		{"collated text", Text("beta"), Text("Alpha"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cmp.Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func apps(values ...Value) []Application {
	out := make([]Application, len(values))
	for i, v := range values {
		out[i] = Application{Record: Record{ColID: Text(string(rune('a' + i))), "F": v}}
	}
	return out
}

func ids(list []Application) string {
	var s string
	for _, a := range list {
		s += a.ID()
	}
	return s
}

func TestSortApplications(t *testing.T) {
	tests := []struct {
		name       string
		values     []Value
		descending bool
		want       string
	}{
		{
			name:   "ascending numbers",
			values: []Value{Number(3), Number(1), Number(2)},
			want:   "bca",
		},
		{
			name:       "descending numbers",
			values:     []Value{Number(3), Number(1), Number(2)},
			descending: true,
			want:       "acb",
		},
		{
			name:   "blanks last ascending",
			values: []Value{Empty(), Number(2), Number(1)},
			want:   "cba",
		},
		{
			name:       "blanks last descending",
			values:     []Value{Empty(), Number(1), Number(2)},
			descending: true,
			want:       "cba",
		},
		{
			name:   "stable for ties",
			values: []Value{Text("x"), Text("x"), Text("a")},
			want:   "cab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := apps(tt.values...)
			SortApplications(list, "F", tt.descending)
			if got := ids(list); got != tt.want {
				t.Errorf("order = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSortApplications_ByStatus(t *testing.T) {
	list := []Application{
		{Record: Record{ColID: Text("a")}, Status: StatusRejected},
		{Record: Record{ColID: Text("b")}, Status: StatusClosed},
		{Record: Record{ColID: Text("c")}, Status: StatusConsidered},
	}
	SortApplications(list, "Status", false)
	if got := ids(list); got != "bca" {
		t.Errorf("order = %q, want %q", got, "bca")
	}
}

func TestSortApplications_NoField(t *testing.T) {
	list := apps(Number(2), Number(1))
	SortApplications(list, "", false)
	if got := ids(list); got != "ab" {
		t.Errorf("empty field should keep order, got %q", got)
	}
}
