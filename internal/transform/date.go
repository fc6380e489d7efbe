package transform

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateStyle is the output layout of NormalizeDate.
type DateStyle int

const (
	DateISO DateStyle = iota // YYYY-MM-DD
	DateUS                   // MM/DD/YYYY
	DateEU                   // DD/MM/YYYY
)

// NormalizeDate re-emits a date in the requested layout.
//
// The input is split on "/" or "-" into three numeric parts. A four-digit
// first part means year-first (YYYY-MM-DD, YYYY/MM/DD); otherwise the parts
// are read as month/day/year. A time-of-day after a space is carried over
// untouched. Anything else, including days the month does not have
// ("2/31/2025"), is returned unchanged.
func NormalizeDate(s string, style DateStyle) string {
	t := strings.TrimSpace(s)
	datePart, timePart, _ := strings.Cut(t, " ")

	parts := strings.Split(strings.ReplaceAll(datePart, "-", "/"), "/")
	if len(parts) != 3 {
		return s
	}

	var ys, ms, ds string
	if len(parts[0]) == 4 {
		ys, ms, ds = parts[0], parts[1], parts[2]
	} else {
		ms, ds, ys = parts[0], parts[1], parts[2]
	}

	if len(ys) != 4 || len(ms) < 1 || len(ms) > 2 || len(ds) < 1 || len(ds) > 2 {
		return s
	}
	year, ok1 := atoiDigits(ys)
	month, ok2 := atoiDigits(ms)
	day, ok3 := atoiDigits(ds)
	if !ok1 || !ok2 || !ok3 || !validDate(year, month, day) {
		return s
	}

	var out string
	switch style {
	case DateUS:
		out = fmt.Sprintf("%02d/%02d/%04d", month, day, year)
	case DateEU:
		out = fmt.Sprintf("%02d/%02d/%04d", day, month, year)
	default:
		out = fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	}

	if timePart = strings.TrimSpace(timePart); timePart != "" {
		out += " " + timePart
	}
	return out
}

// validDate reports whether year-month-day names a real calendar day.
func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return d.Year() == year && int(d.Month()) == month && d.Day() == day
}

// atoiDigits parses an unsigned run of ASCII digits.
func atoiDigits(s string) (int, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}
