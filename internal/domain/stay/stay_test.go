package stay_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CristhianAlv-ing/HotelFind/internal/domain/stay"
)

func date(s string) time.Time {
	t, err := stay.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func Test_Nights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     int
	}{
		{name: "three_nights", checkIn: "2025-06-10", checkOut: "2025-06-13", want: 3},
		{name: "single_night", checkIn: "2025-06-10", checkOut: "2025-06-11", want: 1},
		{name: "same_day_counts_as_one", checkIn: "2025-06-10", checkOut: "2025-06-10", want: 1},
		{name: "across_dst_boundary", checkIn: "2025-03-08", checkOut: "2025-03-10", want: 2},
		{name: "across_month", checkIn: "2025-01-30", checkOut: "2025-02-02", want: 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stay.Nights(date(tc.checkIn), date(tc.checkOut)))
		})
	}
}

func Test_Nights_MissingDates(t *testing.T) {
	assert.Equal(t, 1, stay.Nights(time.Time{}, time.Time{}))
	assert.Equal(t, 1, stay.Nights(date("2025-06-10"), time.Time{}))
	assert.Equal(t, 1, stay.Nights(time.Time{}, date("2025-06-13")))
}

func Test_HighlightMap_EmptyWithoutCheckIn(t *testing.T) {
	assert.Empty(t, stay.HighlightMap(time.Time{}, time.Time{}))
}

func Test_HighlightMap_StartOnly(t *testing.T) {
	marks := stay.HighlightMap(date("2025-06-10"), time.Time{})
	require.Len(t, marks, 1)
	assert.Equal(t, stay.MarkerStart, marks["2025-06-10"])
}

func Test_HighlightMap_FullRange(t *testing.T) {
	marks := stay.HighlightMap(date("2025-06-10"), date("2025-06-13"))
	require.Len(t, marks, 4)
	assert.Equal(t, stay.MarkerStart, marks["2025-06-10"])
	assert.Equal(t, stay.MarkerBetween, marks["2025-06-11"])
	assert.Equal(t, stay.MarkerBetween, marks["2025-06-12"])
	assert.Equal(t, stay.MarkerEnd, marks["2025-06-13"])
}

func Test_Selection_Tap(t *testing.T) {
	var sel stay.Selection

	sel, closed := sel.Tap(date("2025-06-10"))
	assert.False(t, closed)
	assert.Equal(t, date("2025-06-10"), sel.CheckIn)
	assert.False(t, sel.Complete())

	// earlier day restarts the range
	sel, closed = sel.Tap(date("2025-06-08"))
	assert.False(t, closed)
	assert.Equal(t, date("2025-06-08"), sel.CheckIn)
	assert.True(t, sel.CheckOut.IsZero())

	// same-or-later day completes and closes the picker
	sel, closed = sel.Tap(date("2025-06-12"))
	assert.True(t, closed)
	require.True(t, sel.Complete())
	assert.Equal(t, date("2025-06-08"), sel.CheckIn)
	assert.Equal(t, date("2025-06-12"), sel.CheckOut)

	// tapping again with a full range starts over
	sel, closed = sel.Tap(date("2025-07-01"))
	assert.False(t, closed)
	assert.Equal(t, date("2025-07-01"), sel.CheckIn)
	assert.True(t, sel.CheckOut.IsZero())
}

func Test_Selection_TapSameDayCompletes(t *testing.T) {
	sel := stay.Selection{CheckIn: date("2025-06-10")}
	sel, closed := sel.Tap(date("2025-06-10"))
	assert.True(t, closed)
	assert.Equal(t, sel.CheckIn, sel.CheckOut)
}
