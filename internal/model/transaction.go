package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cleared-dev/tally/internal/period"
)

// Date is a calendar day as written in a chat log. Year may have been inferred.
type Date struct {
	Day   int
	Month int
	Year  int
}

// String formats the date as "DD/MM/YYYY".
func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, d.Month, d.Year)
}

// MonthKey returns the "MM/YYYY" bucket the date falls in.
func (d Date) MonthKey() string {
	return period.FormatMonthKey(d.Year, d.Month)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year || d.Month != other.Month {
		return period.Less(d.Year, d.Month, other.Year, other.Month)
	}
	return d.Day < other.Day
}

// Transaction is one expense note extracted from a chat line.
type Transaction struct {
	Date     Date
	Category string // raw code, e.g. "F" or "Tng"
	Amount   int64  // whole units, never negative
}

// ParseDate parses "DD/MM/YYYY".
func ParseDate(s string) (Date, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date %q: want DD/MM/YYYY", s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
		}
		nums[i] = n
	}
	return Date{Day: nums[0], Month: nums[1], Year: nums[2]}, nil
}
