package reservation

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/CristhianAlv-ing/HotelFind/internal/domain/stay"
)

var (
	ErrGuestNameRequired = errors.New("reservation: guest name is required")
	ErrDatesRequired     = errors.New("reservation: check-in and check-out are required")
	ErrHotelNameRequired = errors.New("reservation: hotel name is required")
	ErrInvalidNights     = errors.New("reservation: stay must cover at least one night")
	ErrCapacityExceeded  = errors.New("reservation: guests exceed the selected room capacity")
	ErrNotFound          = errors.New("reservation: not found")
)

// AdjustmentType marks a post-creation change to the stay length.
type AdjustmentType string

const (
	AdjustmentNone      AdjustmentType = ""
	AdjustmentPenalty   AdjustmentType = "penalty"
	AdjustmentExtension AdjustmentType = "extension"
)

// Reservation is a user's booking intent for a hotel over a date range,
// with derived pricing.
type Reservation struct {
	ID        string
	UserID    string
	HotelName string
	PlaceID   string

	// Date mirrors CheckIn for records created before ranges existed.
	Date     time.Time
	CheckIn  time.Time
	CheckOut time.Time
	Nights   int

	Guests      int
	UserName    string
	PhoneNumber string
	Notes       string

	RoomType     string
	RoomCapacity int
	PricePerNight float64
	TotalPrice    float64

	AdjustmentType   AdjustmentType
	AdjustmentAmount float64

	CreatedAt time.Time
}

// Repository stores reservations scoped to a user.
type Repository interface {
	Add(ctx context.Context, r *Reservation) error
	Remove(ctx context.Context, userID, id string) error
	Update(ctx context.Context, r *Reservation) error
	ByID(ctx context.Context, userID, id string) (*Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]*Reservation, error)
}

type CreateParams struct {
	ID            string
	UserID        string
	HotelName     string
	PlaceID       string
	CheckIn       time.Time
	CheckOut      time.Time
	Guests        int
	UserName      string
	PhoneNumber   string
	Notes         string
	RoomType      string
	RoomCapacity  int
	PricePerNight float64
	CreatedAt     time.Time
}

// New validates the booking form and builds the record. Every failure maps
// to a specific sentinel so the caller can report it; nothing is written on
// failure.
func New(params CreateParams) (*Reservation, error) {
	userName := strings.TrimSpace(params.UserName)
	if userName == "" {
		return nil, ErrGuestNameRequired
	}
	if params.CheckIn.IsZero() || params.CheckOut.IsZero() {
		return nil, ErrDatesRequired
	}
	hotelName := strings.TrimSpace(params.HotelName)
	if hotelName == "" {
		return nil, ErrHotelNameRequired
	}
	nights := stay.Nights(params.CheckIn, params.CheckOut)
	if nights < 1 {
		return nil, ErrInvalidNights
	}
	guests := params.Guests
	if guests <= 0 {
		guests = 1
	}
	if params.RoomType != "" && params.RoomCapacity > 0 && guests > params.RoomCapacity {
		return nil, ErrCapacityExceeded
	}
	createdAt := params.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return &Reservation{
		ID:            params.ID,
		UserID:        params.UserID,
		HotelName:     hotelName,
		PlaceID:       params.PlaceID,
		Date:          params.CheckIn,
		CheckIn:       params.CheckIn,
		CheckOut:      params.CheckOut,
		Nights:        nights,
		Guests:        guests,
		UserName:      userName,
		PhoneNumber:   strings.TrimSpace(params.PhoneNumber),
		Notes:         params.Notes,
		RoomType:      params.RoomType,
		RoomCapacity:  params.RoomCapacity,
		PricePerNight: params.PricePerNight,
		TotalPrice:    params.PricePerNight * float64(nights),
		CreatedAt:     createdAt.UTC(),
	}, nil
}

// EffectiveDate is the check-in when present, falling back to the legacy
// single date field.
func (r *Reservation) EffectiveDate() time.Time {
	if !r.CheckIn.IsZero() {
		return r.CheckIn
	}
	return r.Date
}

// Partition splits reservations around now. Upcoming entries are ordered by
// ascending effective date, past ones descending.
func Partition(items []*Reservation, now time.Time) (upcoming, past []*Reservation) {
	for _, r := range items {
		if r.EffectiveDate().Before(now) {
			past = append(past, r)
		} else {
			upcoming = append(upcoming, r)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].EffectiveDate().Before(upcoming[j].EffectiveDate())
	})
	sort.SliceStable(past, func(i, j int) bool {
		return past[i].EffectiveDate().After(past[j].EffectiveDate())
	})
	return upcoming, past
}
