package reservation

import (
	"errors"
	"time"

	"github.com/CristhianAlv-ing/HotelFind/internal/domain/stay"
)

var ErrShortenBelowCheckIn = errors.New("reservation: cannot shorten the stay below the check-in date")

const (
	penaltyFactor      = 0.5
	refundFactor       = 0.75
	refundCutoffInDays = 7
)

// Extend pushes check-out one day later. The extra night's rate is recorded
// as the adjustment charge on top of the recomputed nightly total; the
// resulting total therefore counts the added night twice. That matches the
// billing behavior this service replaces and is kept on purpose.
func (r *Reservation) Extend() {
	r.CheckOut = r.CheckOut.AddDate(0, 0, 1)
	r.applyAdjustment(AdjustmentExtension, r.PricePerNight)
}

// ShortenWithPenalty pulls check-out one day earlier, charging half a night
// as the cancellation penalty. A stay cannot shrink below one night.
func (r *Reservation) ShortenWithPenalty() error {
	newCheckOut := r.CheckOut.AddDate(0, 0, -1)
	if !newCheckOut.After(r.CheckIn) {
		return ErrShortenBelowCheckIn
	}
	r.CheckOut = newCheckOut
	r.applyAdjustment(AdjustmentPenalty, r.PricePerNight*penaltyFactor)
	return nil
}

// applyAdjustment recomputes nights and total; only one adjustment is kept,
// a later edit overwrites the previous one instead of compounding.
func (r *Reservation) applyAdjustment(kind AdjustmentType, amount float64) {
	r.Nights = stay.Nights(r.CheckIn, r.CheckOut)
	r.AdjustmentType = kind
	r.AdjustmentAmount = amount
	r.TotalPrice = r.PricePerNight*float64(r.Nights) + amount
}

// RefundEstimate is the advisory amount shown before deletion: 75% of the
// total when the check-in is at least a week out, nothing otherwise. It is
// never persisted and never enforced.
func (r *Reservation) RefundEstimate(now time.Time) float64 {
	cutoff := now.AddDate(0, 0, refundCutoffInDays)
	if r.EffectiveDate().Before(cutoff) {
		return 0
	}
	return r.TotalPrice * refundFactor
}
