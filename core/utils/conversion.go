package utils

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ToFloat coerces a cell value to a finite float64.
// It accepts plain numbers, currency prefixes ("R", "$") and a trailing unit ("L").
// A comma is a thousands separator when it splits three-digit groups ("1,250.50")
// and a decimal separator when it is the only one and one or two digits follow
// ("22,50"). The second return value is false for anything else, including
// other comma placements, NaN and infinities.
func ToFloat(val string) (float64, bool) {
	s := strings.TrimSpace(val)
	if s == "" {
		return 0, false
	}

	s = strings.TrimPrefix(s, "R")
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "L")
	s = strings.TrimSuffix(s, "l")
	s = strings.ReplaceAll(s, " ", "")
	s, ok := commaSeparators(s)
	if !ok {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// commaSeparators rewrites commas so strconv can parse s.
func commaSeparators(s string) (string, bool) {
	groups := strings.Split(s, ",")
	if len(groups) == 1 {
		return s, true
	}

	last := groups[len(groups)-1]
	if len(groups) == 2 && !strings.Contains(s, ".") && len(last) >= 1 && len(last) <= 2 {
		return groups[0] + "." + last, true
	}

	intPart, _, _ := strings.Cut(last, ".")
	if len(intPart) != 3 || strings.Contains(strings.Join(groups[:len(groups)-1], ""), ".") {
		return "", false
	}
	for _, g := range groups[1 : len(groups)-1] {
		if len(g) != 3 {
			return "", false
		}
	}
	lead := strings.TrimLeft(groups[0], "+-")
	if lead == "" || len(lead) > 3 {
		return "", false
	}
	return strings.Join(groups, ""), true
}

// timeLayouts are tried in order by ParseTime.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2, 2006",
}

// ParseTime parses a timestamp or date cell.
// Strings without a zone are interpreted in loc. Bare numbers are treated as
// Excel serial dates, which is what XLSX date cells decode to.
func ParseTime(val string, loc *time.Location) (time.Time, bool) {
	s := strings.TrimSpace(val)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}

	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 && serial < 2958466 {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			// Serial dates carry no zone; they are wall-clock values in loc.
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), true
		}
	}

	return time.Time{}, false
}
