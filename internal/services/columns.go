package services

import (
	"strconv"
	"strings"
)

// ParseColumnSelection turns "1,3,4" into zero-based indexes below count.
// Blank selects every column; out-of-range numbers are skipped, but a
// selection that leaves nothing, or holds a non-number, is invalid.
func ParseColumnSelection(selection string, count int) ([]int, error) {
	selection = strings.TrimSpace(selection)
	if selection == "" {
		all := make([]int, count)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}

	var indexes []int
	for _, part := range strings.Split(selection, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, &ValidationError{Field: "columns", Reason: "expected comma separated column numbers"}
		}
		if n >= 1 && n <= count {
			indexes = append(indexes, n-1)
		}
	}

	if len(indexes) == 0 {
		return nil, &ValidationError{Field: "columns", Reason: "no valid column selected"}
	}
	return indexes, nil
}
