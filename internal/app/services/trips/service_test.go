package trips

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CristhianAlv-ing/HotelFind/internal/domain/pricing"
	"github.com/CristhianAlv-ing/HotelFind/internal/domain/reservation"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/offers"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/storage/memory"
)

type fakeOffers struct {
	byHotel map[string]*offers.Offer
}

func (f *fakeOffers) FindForHotel(_ context.Context, hotelName string) *offers.Offer {
	return f.byHotel[hotelName]
}

type capturedEvent struct {
	eventType string
	key       string
	payload   any
}

type fakePublisher struct {
	events []capturedEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, eventType, key string, payload any) error {
	f.events = append(f.events, capturedEvent{eventType: eventType, key: key, payload: payload})
	return f.err
}

func date(value string) time.Time {
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func newService(publisher *fakePublisher) *Service {
	service := &Service{
		Reservations: memory.NewReservationRepository(),
		Offers: &fakeOffers{byHotel: map[string]*offers.Offer{
			"Hotel Copantl": {ID: "1", Title: "Oferta: Copantl", Price: 59},
		}},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:    func() time.Time { return date("2025-06-01") },
	}
	if publisher != nil {
		service.Events = publisher
	}
	return service
}

func TestQuoteHotelPrefersOfferPrice(t *testing.T) {
	service := newService(nil)

	quote := service.QuoteHotel(context.Background(), "Hotel Copantl", 4.5)

	assert.Equal(t, 59.0, quote.BasePrice)
	require.Len(t, quote.Tiers, 3)
	assert.Equal(t, 59.0, quote.Tiers[0].Price)
	assert.Equal(t, 77.0, quote.Tiers[1].Price)
	assert.Equal(t, 106.0, quote.Tiers[2].Price)
}

func TestQuoteHotelFallsBackToRating(t *testing.T) {
	service := newService(nil)

	quote := service.QuoteHotel(context.Background(), "Hotel Desconocido", 4)

	assert.Equal(t, 100.0, quote.BasePrice)
}

func TestCreateBooksQuotedTier(t *testing.T) {
	publisher := &fakePublisher{}
	service := newService(publisher)

	created, err := service.Create(context.Background(), CreateParams{
		UserID:     "u1",
		HotelName:  "Hotel Copantl",
		CheckIn:    date("2025-07-10"),
		CheckOut:   date("2025-07-13"),
		Guests:     2,
		UserName:   "Ana",
		RoomTierID: pricing.TierDeluxe,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Deluxe", created.RoomType)
	assert.Equal(t, 77.0, created.PricePerNight)
	assert.Equal(t, 3, created.Nights)
	assert.Equal(t, 231.0, created.TotalPrice)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, EventReservationCreated, publisher.events[0].eventType)
	assert.Equal(t, "u1", publisher.events[0].key)
}

func TestCreateDefaultsToStandardTier(t *testing.T) {
	service := newService(nil)

	created, err := service.Create(context.Background(), CreateParams{
		UserID:    "u1",
		HotelName: "Hotel Copantl",
		CheckIn:   date("2025-07-10"),
		CheckOut:  date("2025-07-12"),
		UserName:  "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, "Standard", created.RoomType)
	assert.Equal(t, 59.0, created.PricePerNight)
}

func TestCreateRejectsUnknownTier(t *testing.T) {
	service := newService(nil)

	_, err := service.Create(context.Background(), CreateParams{
		UserID:     "u1",
		HotelName:  "Hotel Copantl",
		CheckIn:    date("2025-07-10"),
		CheckOut:   date("2025-07-12"),
		UserName:   "Ana",
		RoomTierID: "penthouse",
	})
	assert.ErrorIs(t, err, pricing.ErrUnknownTier)
}

func TestCreateRejectsOvercapacity(t *testing.T) {
	service := newService(nil)

	_, err := service.Create(context.Background(), CreateParams{
		UserID:     "u1",
		HotelName:  "Hotel Copantl",
		CheckIn:    date("2025-07-10"),
		CheckOut:   date("2025-07-12"),
		Guests:     5,
		UserName:   "Ana",
		RoomTierID: pricing.TierStandard,
	})
	assert.ErrorIs(t, err, reservation.ErrCapacityExceeded)
}

func TestExtendAddsNightAndCharge(t *testing.T) {
	publisher := &fakePublisher{}
	service := newService(publisher)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateParams{
		UserID:    "u1",
		HotelName: "Hotel Copantl",
		CheckIn:   date("2025-07-10"),
		CheckOut:  date("2025-07-12"),
		UserName:  "Ana",
	})
	require.NoError(t, err)

	extended, err := service.Extend(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, extended.Nights)
	assert.Equal(t, reservation.AdjustmentExtension, extended.AdjustmentType)
	assert.Equal(t, 59.0, extended.AdjustmentAmount)
	assert.Equal(t, 59.0*3+59.0, extended.TotalPrice)

	stored, err := service.Reservations.ByID(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, extended.TotalPrice, stored.TotalPrice)
	assert.Equal(t, EventReservationExtended, publisher.events[len(publisher.events)-1].eventType)
}

func TestShortenRejectedAtOneNight(t *testing.T) {
	service := newService(nil)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateParams{
		UserID:    "u1",
		HotelName: "Hotel Copantl",
		CheckIn:   date("2025-07-10"),
		CheckOut:  date("2025-07-11"),
		UserName:  "Ana",
	})
	require.NoError(t, err)

	_, err = service.Shorten(ctx, "u1", created.ID)
	assert.ErrorIs(t, err, reservation.ErrShortenBelowCheckIn)

	stored, err := service.Reservations.ByID(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Nights)
	assert.Equal(t, reservation.AdjustmentNone, stored.AdjustmentType)
}

func TestRemoveReturnsRefundEstimate(t *testing.T) {
	publisher := &fakePublisher{}
	service := newService(publisher)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateParams{
		UserID:    "u1",
		HotelName: "Hotel Copantl",
		CheckIn:   date("2025-06-15"),
		CheckOut:  date("2025-06-17"),
		UserName:  "Ana",
	})
	require.NoError(t, err)

	refund, err := service.Remove(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.TotalPrice*0.75, refund)

	_, err = service.Reservations.ByID(ctx, "u1", created.ID)
	assert.ErrorIs(t, err, reservation.ErrNotFound)
	assert.Equal(t, EventReservationRemoved, publisher.events[len(publisher.events)-1].eventType)
}

func TestRemoveInsideCutoffRefundsNothing(t *testing.T) {
	service := newService(nil)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateParams{
		UserID:    "u1",
		HotelName: "Hotel Copantl",
		CheckIn:   date("2025-06-03"),
		CheckOut:  date("2025-06-05"),
		UserName:  "Ana",
	})
	require.NoError(t, err)

	refund, err := service.Remove(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.Zero(t, refund)
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	service := newService(nil)

	refund, err := service.Remove(context.Background(), "u1", "missing")
	require.NoError(t, err)
	assert.Zero(t, refund)
}

func TestListPartitionsTrips(t *testing.T) {
	service := newService(nil)
	ctx := context.Background()

	for _, stay := range []struct{ in, out string }{
		{"2025-05-10", "2025-05-12"},
		{"2025-07-01", "2025-07-03"},
		{"2025-06-10", "2025-06-12"},
	} {
		_, err := service.Create(ctx, CreateParams{
			UserID:    "u1",
			HotelName: "Hotel Copantl",
			CheckIn:   date(stay.in),
			CheckOut:  date(stay.out),
			UserName:  "Ana",
		})
		require.NoError(t, err)
	}

	trips, err := service.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, trips.Upcoming, 2)
	require.Len(t, trips.Past, 1)
	assert.Equal(t, date("2025-06-10"), trips.Upcoming[0].CheckIn)
	assert.Equal(t, date("2025-07-01"), trips.Upcoming[1].CheckIn)
	assert.Equal(t, date("2025-05-10"), trips.Past[0].CheckIn)
}

func TestPublishFailureDoesNotBlockBooking(t *testing.T) {
	publisher := &fakePublisher{err: assert.AnError}
	service := newService(publisher)

	created, err := service.Create(context.Background(), CreateParams{
		UserID:    "u1",
		HotelName: "Hotel Copantl",
		CheckIn:   date("2025-07-10"),
		CheckOut:  date("2025-07-12"),
		UserName:  "Ana",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}
