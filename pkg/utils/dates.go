package utils

import (
	"strings"
	"time"
	"unicode"
)

// MonthNumber maps an English month name ("May", "may") to 1..12.
// Returns 0 for anything it doesn't recognize.
func MonthNumber(name string) int {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(name, m.String()) {
			return int(m)
		}
	}
	return 0
}

// MonthName maps 1..12 to the English month name.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return time.Month(month).String()
}

// DaysInMonth returns the number of days in the given month of the given
// year. Day zero of the following month normalizes to the last day.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of the first of the month,
// 0 = Sunday .. 6 = Saturday.
func FirstWeekday(year, month int) int {
	return int(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// DisplayName capitalizes each word of a stored lowercase name, so
// "ada lovelace" renders as "Ada Lovelace".
func DisplayName(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
