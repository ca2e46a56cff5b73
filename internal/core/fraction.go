package core

import (
	"math"
	"strconv"
	"strings"
)

// DefaultUndefined is displayed in place of a missing value.
const DefaultUndefined = "-"

// ConvertFraction parses a challenge rating such as "1/4", "0.5" or "3".
// Returns 0 for anything it cannot parse, negative values and division by zero.
func ConvertFraction(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil {
			return 0
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err != nil || d == 0 || n/d < 0 {
			return 0
		}
		return finite(n / d)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return finite(v)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// CRToString renders a numeric challenge rating, using fraction notation
// for the three sub-1 ratings.
func CRToString(cr float64) string {
	switch cr {
	case 0.125:
		return "1/8"
	case 0.25:
		return "1/4"
	case 0.5:
		return "1/2"
	}
	return strconv.FormatFloat(cr, 'f', -1, 64)
}
