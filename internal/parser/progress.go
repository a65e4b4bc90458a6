package parser

import (
	"strconv"
	"strings"
)

// ParseProgress coerces a Progress cell to a number in [0,100]. Blank,
// unparseable and out-of-range values all coerce to 0.
func ParseProgress(input string) float64 {
	input = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(input), "%"))
	if input == "" {
		return 0
	}

	v, err := strconv.ParseFloat(input, 64)
	if err != nil || v < 0 || v > 100 {
		return 0
	}
	return v
}

// FormatProgress renders a progress value as a canonical cell string,
// dropping a trailing ".0" for whole numbers.
func FormatProgress(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
