package dto

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/CristhianAlv-ing/HotelFind/internal/domain/reservation"
	"github.com/CristhianAlv-ing/HotelFind/internal/domain/stay"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("staydate", stayDateField); err != nil {
		panic(err)
	}
	return v
}

// stayDateField accepts calendar dates in the YYYY-MM-DD wire format.
func stayDateField(fl validator.FieldLevel) bool {
	_, err := stay.ParseDate(fl.Field().String())
	return err == nil
}

type CreateReservationRequest struct {
	HotelName   string  `json:"hotel_name" validate:"required"`
	PlaceID     string  `json:"place_id"`
	CheckIn     string  `json:"check_in" validate:"required,staydate"`
	CheckOut    string  `json:"check_out" validate:"required,staydate"`
	Guests      int     `json:"guests" validate:"omitempty,min=1,max=10"`
	UserName    string  `json:"user_name" validate:"required"`
	PhoneNumber string  `json:"phone_number"`
	Notes       string  `json:"notes" validate:"omitempty,max=500"`
	RoomTierID  string  `json:"room_tier_id" validate:"omitempty,oneof=std dlx ste"`
	HotelRating float64 `json:"hotel_rating" validate:"omitempty,min=0,max=5"`
}

func (r CreateReservationRequest) Validate() error {
	return validate.Struct(r)
}

// Dates returns the parsed check-in and check-out. Call Validate first.
func (r CreateReservationRequest) Dates() (checkIn, checkOut time.Time) {
	checkIn, _ = stay.ParseDate(r.CheckIn)
	checkOut, _ = stay.ParseDate(r.CheckOut)
	return checkIn, checkOut
}

type ReservationView struct {
	ID        string `json:"id"`
	HotelName string `json:"hotel_name"`
	PlaceID   string `json:"place_id,omitempty"`

	CheckIn  string `json:"check_in,omitempty"`
	CheckOut string `json:"check_out,omitempty"`
	Nights   int    `json:"nights"`

	Guests      int    `json:"guests"`
	UserName    string `json:"user_name"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Notes       string `json:"notes,omitempty"`

	RoomType      string  `json:"room_type,omitempty"`
	RoomCapacity  int     `json:"room_capacity,omitempty"`
	PricePerNight float64 `json:"price_per_night"`
	TotalPrice    float64 `json:"total_price"`

	AdjustmentType   string  `json:"adjustment_type,omitempty"`
	AdjustmentAmount float64 `json:"adjustment_amount,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type TripListResponse struct {
	Upcoming []ReservationView `json:"upcoming"`
	Past     []ReservationView `json:"past"`
}

type RemoveReservationResponse struct {
	RefundEstimate float64 `json:"refund_estimate"`
}

func MapReservation(r *reservation.Reservation) ReservationView {
	if r == nil {
		return ReservationView{}
	}
	view := ReservationView{
		ID:               r.ID,
		HotelName:        r.HotelName,
		PlaceID:          r.PlaceID,
		Nights:           r.Nights,
		Guests:           r.Guests,
		UserName:         r.UserName,
		PhoneNumber:      r.PhoneNumber,
		Notes:            r.Notes,
		RoomType:         r.RoomType,
		RoomCapacity:     r.RoomCapacity,
		PricePerNight:    r.PricePerNight,
		TotalPrice:       r.TotalPrice,
		AdjustmentType:   string(r.AdjustmentType),
		AdjustmentAmount: r.AdjustmentAmount,
		CreatedAt:        r.CreatedAt,
	}
	if !r.CheckIn.IsZero() {
		view.CheckIn = stay.FormatDate(r.CheckIn)
	}
	if !r.CheckOut.IsZero() {
		view.CheckOut = stay.FormatDate(r.CheckOut)
	}
	return view
}

func MapReservations(items []*reservation.Reservation) []ReservationView {
	views := make([]ReservationView, 0, len(items))
	for _, item := range items {
		views = append(views, MapReservation(item))
	}
	return views
}
