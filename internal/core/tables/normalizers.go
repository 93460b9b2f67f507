package tables

import (
	"strconv"
	"strings"

	"github.com/JonMunkholm/jobtracker/internal/core"
)

// UsStates maps US state full names to their abbreviations.
var UsStates = map[string]string{
	"alabama":        "AL",
	"alaska":         "AK",
	"arizona":        "AZ",
	"arkansas":       "AR",
	"california":     "CA",
	"colorado":       "CO",
	"connecticut":    "CT",
	"delaware":       "DE",
	"florida":        "FL",
	"georgia":        "GA",
	"hawaii":         "HI",
	"idaho":          "ID",
	"illinois":       "IL",
	"indiana":        "IN",
	"iowa":           "IA",
	"kansas":         "KS",
	"kentucky":       "KY",
	"louisiana":      "LA",
	"maine":          "ME",
	"maryland":       "MD",
	"massachusetts":  "MA",
	"michigan":       "MI",
	"minnesota":      "MN",
	"mississippi":    "MS",
	"missouri":       "MO",
	"montana":        "MT",
	"nebraska":       "NE",
	"nevada":         "NV",
	"new hampshire":  "NH",
	"new jersey":     "NJ",
	"new mexico":     "NM",
	"new york":       "NY",
	"north carolina": "NC",
	"north dakota":   "ND",
	"ohio":           "OH",
	"oklahoma":       "OK",
	"oregon":         "OR",
	"pennsylvania":   "PA",
	"rhode island":   "RI",
	"south carolina": "SC",
	"south dakota":   "SD",
	"tennessee":      "TN",
	"texas":          "TX",
	"utah":           "UT",
	"vermont":        "VT",
	"virginia":       "VA",
	"washington":     "WA",
	"west virginia":  "WV",
	"wisconsin":      "WI",
	"wyoming":        "WY",
}

// NormalizeUsState converts US state names to their 2-letter abbreviations.
// If the input is already an abbreviation or not recognized, returns as-is.
func NormalizeUsState(s string) string {
	s = strings.TrimSpace(s)
	sLower := strings.ToLower(s)

	// Check if it's a full name
	if code, ok := UsStates[sLower]; ok {
		return code
	}

	// Check if already a valid 2-letter code
	sUpper := strings.ToUpper(s)
	for _, code := range UsStates {
		if sUpper == code {
			return code
		}
	}

	// Fallback: return original
	return s
}

// NormalizeLocation abbreviates a trailing US state name in "City, State"
// locations. Other locations are returned trimmed.
func NormalizeLocation(s string) string {
	s = strings.TrimSpace(s)
	i := strings.LastIndex(s, ",")
	if i == -1 {
		return s
	}
	city := strings.TrimSpace(s[:i])
	state := NormalizeUsState(s[i+1:])
	if state == "" {
		return city
	}
	return city + ", " + state
}

// SalaryThousandsCutoff is the value below which a salary input is taken to
// be in thousands.
const SalaryThousandsCutoff = 1000

// NormalizeSalary scales salaries entered in thousands ("120") to full
// amounts ("120000"). Non-numeric input is returned as-is.
func NormalizeSalary(s string) string {
	n, ok := core.ParseNumber(s)
	if !ok {
		return s
	}
	if n < SalaryThousandsCutoff {
		n *= 1000
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
