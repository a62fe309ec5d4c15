package stay

import (
	"errors"
	"math"
	"time"
)

var ErrInvalidDate = errors.New("stay: invalid calendar date")

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Nights returns the stay length for a (check-in, check-out) pair.
// Either date missing yields 1. Both dates are normalized to noon before
// differencing so daylight-saving shifts cannot produce fractional days.
func Nights(checkIn, checkOut time.Time) int {
	if checkIn.IsZero() || checkOut.IsZero() {
		return 1
	}
	start := atNoon(checkIn)
	end := atNoon(checkOut)
	days := int(math.Round(end.Sub(start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// Marker tags a calendar day inside a highlighted range.
type Marker string

const (
	MarkerStart   Marker = "start"
	MarkerEnd     Marker = "end"
	MarkerBetween Marker = "between"
)

// HighlightMap produces the day-by-day markers a calendar renders for the
// selected range. Keys are YYYY-MM-DD. No check-in means an empty map; a
// check-in without a check-out marks that single day as the start.
func HighlightMap(checkIn, checkOut time.Time) map[string]Marker {
	marks := make(map[string]Marker)
	if checkIn.IsZero() {
		return marks
	}
	if checkOut.IsZero() {
		marks[FormatDate(checkIn)] = MarkerStart
		return marks
	}
	start := atNoon(checkIn)
	end := atNoon(checkOut)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := FormatDate(d)
		switch {
		case d.Equal(start):
			marks[key] = MarkerStart
		case d.Equal(end):
			marks[key] = MarkerEnd
		default:
			marks[key] = MarkerBetween
		}
	}
	return marks
}

func atNoon(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
}
