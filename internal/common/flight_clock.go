package common

import (
	"strings"
	"time"

	"flight-ops/dispatch/internal/constants"
)

// ParseFlightDate validates a DD/MM/YYYY literal and returns its storage form (YYYY-MM-DD).
// Impossible calendar dates such as 31/02/2025 fail to parse.
func ParseFlightDate(input string) (string, error) {
	t, err := time.Parse(constants.DateInputLayout, strings.TrimSpace(input))
	if err != nil {
		return "", err
	}
	return t.Format(constants.DateStoreLayout), nil
}

// ParseFlightTime validates a 24-hour HH:MM literal and returns it zero-padded
func ParseFlightTime(input string) (string, error) {
	t, err := time.Parse(constants.TimeLayout, strings.TrimSpace(input))
	if err != nil {
		return "", err
	}
	return t.Format(constants.TimeLayout), nil
}

// DisplayDate renders a stored date back as DD/MM/YYYY. Unparseable values are returned as-is.
func DisplayDate(stored string) string {
	t, err := time.Parse(constants.DateStoreLayout, stored)
	if err != nil {
		return stored
	}
	return t.Format(constants.DateInputLayout)
}

// NormalizeIATA trims and upper-cases an airport code
func NormalizeIATA(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsIATACode reports whether code is exactly three ASCII letters
func IsIATACode(code string) bool {
	if len(code) != constants.IATACodeLength {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}
