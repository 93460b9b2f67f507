package tables

import "testing"

func TestNormalizeSalary(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "thousands scaled", input: "120", want: "120000"},
		{name: "decimal thousands", input: "97.5", want: "97500"},
		{name: "full amount kept", input: "150000", want: "150000"},
		{name: "cutoff kept", input: "1000", want: "1000"},
		{name: "currency stripped", input: "$1,500", want: "1500"},
		{name: "non-numeric kept", input: "DOE", want: "DOE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSalary(tt.input); got != tt.want {
				t.Errorf("NormalizeSalary(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "state name abbreviated", input: "Austin, Texas", want: "Austin, TX"},
		{name: "lowercase state", input: "Seattle, washington", want: "Seattle, WA"},
		{name: "already abbreviated", input: "Denver, co", want: "Denver, CO"},
		{name: "no state", input: "Remote", want: "Remote"},
		{name: "unknown region kept", input: "Berlin, Germany", want: "Berlin, Germany"},
		{name: "trailing comma", input: "Boston,", want: "Boston"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLocation(tt.input); got != tt.want {
				t.Errorf("NormalizeLocation(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
