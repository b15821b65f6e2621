package period

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMonthKey returns a month key like "01/2026".
func FormatMonthKey(year, month int) string {
	return fmt.Sprintf("%02d/%04d", month, year)
}

// ParseMonthKey parses "MM/YYYY" into year and month.
func ParseMonthKey(key string) (year, month int, err error) {
	parts := strings.SplitN(key, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid month key format: %q", key)
	}

	month, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month in key %q: %w", key, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month %d out of range in key %q", month, key)
	}

	year, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year in key %q: %w", key, err)
	}

	return year, month, nil
}

// Less orders two (year, month) pairs chronologically.
func Less(year1, month1, year2, month2 int) bool {
	if year1 != year2 {
		return year1 < year2
	}
	return month1 < month2
}
