package trips

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/CristhianAlv-ing/HotelFind/internal/domain/pricing"
	"github.com/CristhianAlv-ing/HotelFind/internal/domain/reservation"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/offers"
)

const (
	EventReservationCreated   = "reservation.created"
	EventReservationExtended  = "reservation.extended"
	EventReservationShortened = "reservation.shortened"
	EventReservationRemoved   = "reservation.removed"
)

// OfferFinder looks up a live promotional price for a hotel; nil when there
// is no matching deal.
type OfferFinder interface {
	FindForHotel(ctx context.Context, hotelName string) *offers.Offer
}

// Publisher emits reservation lifecycle events. Publishing is best effort;
// failures are logged and never block the booking path.
type Publisher interface {
	Publish(ctx context.Context, eventType, key string, payload any) error
}

// Service owns the reservation lifecycle from quote to removal.
type Service struct {
	Reservations reservation.Repository
	Offers       OfferFinder
	Events       Publisher
	Logger       *slog.Logger

	// Now is swappable for tests; zero value means time.Now.
	Now func() time.Time
}

type CreateParams struct {
	UserID      string
	HotelName   string
	PlaceID     string
	CheckIn     time.Time
	CheckOut    time.Time
	Guests      int
	UserName    string
	PhoneNumber string
	Notes       string

	// RoomTierID picks one of the quoted tiers; empty books the standard room.
	RoomTierID string

	// HotelRating seeds the nightly price when no offer matches.
	HotelRating float64
}

// Quote is the priced room selection for a hotel, shown before booking.
type Quote struct {
	HotelName string
	BasePrice float64
	Tiers     []pricing.RoomTier
}

// TripList is a user's reservations split around the current date.
type TripList struct {
	Upcoming []*reservation.Reservation
	Past     []*reservation.Reservation
}

type reservationEvent struct {
	ReservationID string  `json:"reservation_id"`
	UserID        string  `json:"user_id"`
	HotelName     string  `json:"hotel_name"`
	CheckIn       string  `json:"check_in,omitempty"`
	CheckOut      string  `json:"check_out,omitempty"`
	Nights        int     `json:"nights,omitempty"`
	TotalPrice    float64 `json:"total_price,omitempty"`
	RefundAmount  float64 `json:"refund_amount,omitempty"`
}

// QuoteHotel prices the room tiers for a hotel. A live offer for the hotel
// wins over the rating heuristic.
func (s *Service) QuoteHotel(ctx context.Context, hotelName string, rating float64) Quote {
	var offerPrice float64
	if s.Offers != nil {
		if offer := s.Offers.FindForHotel(ctx, hotelName); offer != nil {
			offerPrice = offer.Price
		}
	}
	base := pricing.BasePrice(offerPrice, rating)
	return Quote{
		HotelName: hotelName,
		BasePrice: base,
		Tiers:     pricing.RoomTiers(base),
	}
}

// Create books a stay. The nightly rate comes from the quoted tier for the
// hotel at booking time.
func (s *Service) Create(ctx context.Context, params CreateParams) (*reservation.Reservation, error) {
	if s.Reservations == nil {
		return nil, errors.New("trips: reservation repository required")
	}

	quote := s.QuoteHotel(ctx, params.HotelName, params.HotelRating)
	tierID := params.RoomTierID
	if tierID == "" {
		tierID = pricing.TierStandard
	}
	tier, ok := pricing.TierByID(quote.BasePrice, tierID)
	if !ok {
		return nil, pricing.ErrUnknownTier
	}

	created, err := reservation.New(reservation.CreateParams{
		ID:            uuid.NewString(),
		UserID:        params.UserID,
		HotelName:     params.HotelName,
		PlaceID:       params.PlaceID,
		CheckIn:       params.CheckIn,
		CheckOut:      params.CheckOut,
		Guests:        params.Guests,
		UserName:      params.UserName,
		PhoneNumber:   params.PhoneNumber,
		Notes:         params.Notes,
		RoomType:      tier.Name,
		RoomCapacity:  tier.Capacity,
		PricePerNight: tier.Price,
		CreatedAt:     s.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.Reservations.Add(ctx, created); err != nil {
		return nil, err
	}
	s.publish(ctx, EventReservationCreated, created, 0)
	if s.Logger != nil {
		s.Logger.Info("reservation created",
			"reservation_id", created.ID, "user_id", created.UserID,
			"hotel", created.HotelName, "nights", created.Nights, "total", created.TotalPrice)
	}
	return created, nil
}

// Extend adds one night to the end of the stay.
func (s *Service) Extend(ctx context.Context, userID, id string) (*reservation.Reservation, error) {
	return s.adjust(ctx, userID, id, EventReservationExtended, func(r *reservation.Reservation) error {
		r.Extend()
		return nil
	})
}

// Shorten removes the last night, charging the cancellation penalty.
func (s *Service) Shorten(ctx context.Context, userID, id string) (*reservation.Reservation, error) {
	return s.adjust(ctx, userID, id, EventReservationShortened, func(r *reservation.Reservation) error {
		return r.ShortenWithPenalty()
	})
}

func (s *Service) adjust(ctx context.Context, userID, id, eventType string, mutate func(*reservation.Reservation) error) (*reservation.Reservation, error) {
	current, err := s.Reservations.ByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(current); err != nil {
		return nil, err
	}
	if err := s.Reservations.Update(ctx, current); err != nil {
		return nil, err
	}
	s.publish(ctx, eventType, current, 0)
	if s.Logger != nil {
		s.Logger.Info("reservation adjusted",
			"reservation_id", current.ID, "user_id", userID,
			"adjustment", string(current.AdjustmentType), "total", current.TotalPrice)
	}
	return current, nil
}

// RefundEstimate previews the advisory refund for removing a reservation.
func (s *Service) RefundEstimate(ctx context.Context, userID, id string) (float64, error) {
	current, err := s.Reservations.ByID(ctx, userID, id)
	if err != nil {
		return 0, err
	}
	return current.RefundEstimate(s.now()), nil
}

// Remove deletes a reservation and returns the refund estimate that applied
// at removal time. Removing an unknown id is a no-op returning zero.
func (s *Service) Remove(ctx context.Context, userID, id string) (float64, error) {
	current, err := s.Reservations.ByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, reservation.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	refund := current.RefundEstimate(s.now())
	if err := s.Reservations.Remove(ctx, userID, id); err != nil {
		return 0, err
	}
	s.publish(ctx, EventReservationRemoved, current, refund)
	if s.Logger != nil {
		s.Logger.Info("reservation removed",
			"reservation_id", id, "user_id", userID, "refund_estimate", refund)
	}
	return refund, nil
}

// List returns the user's trips split into upcoming and past stays.
func (s *Service) List(ctx context.Context, userID string) (TripList, error) {
	items, err := s.Reservations.ListByUser(ctx, userID)
	if err != nil {
		return TripList{}, err
	}
	upcoming, past := reservation.Partition(items, s.now())
	return TripList{Upcoming: upcoming, Past: past}, nil
}

func (s *Service) publish(ctx context.Context, eventType string, r *reservation.Reservation, refund float64) {
	if s.Events == nil {
		return
	}
	event := reservationEvent{
		ReservationID: r.ID,
		UserID:        r.UserID,
		HotelName:     r.HotelName,
		Nights:        r.Nights,
		TotalPrice:    r.TotalPrice,
		RefundAmount:  refund,
	}
	if !r.CheckIn.IsZero() {
		event.CheckIn = r.CheckIn.Format(time.DateOnly)
	}
	if !r.CheckOut.IsZero() {
		event.CheckOut = r.CheckOut.Format(time.DateOnly)
	}
	if err := s.Events.Publish(ctx, eventType, r.UserID, event); err != nil && s.Logger != nil {
		s.Logger.Warn("reservation event publish failed", "event", eventType, "reservation_id", r.ID, "error", err)
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
