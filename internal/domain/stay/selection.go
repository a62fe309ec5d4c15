package stay

import "time"

// Selection models in-progress date picking. Zero value is the empty state;
// a set CheckIn without a CheckOut means only the start has been chosen.
type Selection struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// Complete reports whether both ends of the range are selected.
func (s Selection) Complete() bool {
	return !s.CheckIn.IsZero() && !s.CheckOut.IsZero()
}

// Tap advances the selection with a tapped calendar day and reports whether
// the picker should close. Tapping with no start, or with a full range
// already chosen, starts a new range at the tapped day. Tapping a day on or
// after the pending start completes the range; an earlier day restarts at it.
func (s Selection) Tap(day time.Time) (Selection, bool) {
	if day.IsZero() {
		return s, false
	}
	if s.CheckIn.IsZero() || s.Complete() {
		return Selection{CheckIn: day}, false
	}
	if day.Before(s.CheckIn) {
		return Selection{CheckIn: day}, false
	}
	return Selection{CheckIn: s.CheckIn, CheckOut: day}, true
}
