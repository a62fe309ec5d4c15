package pricing

import (
	"errors"
	"math"
)

const (
	defaultRating = 3
	floorPrice    = 40
)

// Tier identifiers for the fixed room presets.
const (
	TierStandard = "std"
	TierDeluxe   = "dlx"
	TierSuite    = "ste"
)

var ErrUnknownTier = errors.New("pricing: unknown room tier")

// BasePrice derives the nightly base rate from the hotel's external signal.
// A positive offer price wins; otherwise the rate is estimated from the
// rating, never dropping below the floor.
func BasePrice(offerPrice, rating float64) float64 {
	if offerPrice > 0 {
		return offerPrice
	}
	if rating <= 0 {
		rating = defaultRating
	}
	return math.Max(floorPrice, math.Round(rating*25))
}

// RoomTier is one of the fixed pricing and capacity presets offered for a
// hotel, derived deterministically from its base nightly rate.
type RoomTier struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Capacity int     `json:"capacity"`
	Price    float64 `json:"price"`
}

// RoomTiers returns the three fixed tiers for a base rate, ordered by
// ascending price and capacity.
func RoomTiers(base float64) []RoomTier {
	return []RoomTier{
		{ID: TierStandard, Name: "Standard", Capacity: 2, Price: base},
		{ID: TierDeluxe, Name: "Deluxe", Capacity: 3, Price: math.Round(base * 1.3)},
		{ID: TierSuite, Name: "Suite", Capacity: 4, Price: math.Round(base * 1.8)},
	}
}

// TierByID looks up a tier within the fixed set for a base rate.
func TierByID(base float64, id string) (RoomTier, bool) {
	for _, tier := range RoomTiers(base) {
		if tier.ID == id {
			return tier, true
		}
	}
	return RoomTier{}, false
}

// Total charges at least one night.
func Total(perNight float64, nights int) float64 {
	if nights < 1 {
		nights = 1
	}
	return perNight * float64(nights)
}
