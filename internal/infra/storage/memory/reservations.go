package memory

import (
	"context"
	"sync"

	domainreservation "github.com/CristhianAlv-ing/HotelFind/internal/domain/reservation"
)

// ReservationRepository keeps reservations in memory, bucketed by user.
type ReservationRepository struct {
	mu     sync.RWMutex
	byUser map[string][]*domainreservation.Reservation
}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{
		byUser: make(map[string][]*domainreservation.Reservation),
	}
}

// Add appends the reservation. An entry with the same id already present
// makes this a silent no-op, so repeated submissions stay idempotent.
func (r *ReservationRepository) Add(ctx context.Context, res *domainreservation.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.byUser[res.UserID]
	for _, existing := range items {
		if existing.ID == res.ID {
			return nil
		}
	}
	copyRes := *res
	r.byUser[res.UserID] = append(items, &copyRes)
	return nil
}

// Remove drops the matching entry; absent ids are a no-op.
func (r *ReservationRepository) Remove(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.byUser[userID]
	kept := items[:0]
	for _, existing := range items {
		if existing.ID != id {
			kept = append(kept, existing)
		}
	}
	r.byUser[userID] = kept
	return nil
}

// Update replaces the entry whose id matches; it never inserts.
func (r *ReservationRepository) Update(ctx context.Context, res *domainreservation.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.byUser[res.UserID]
	for i, existing := range items {
		if existing.ID == res.ID {
			copyRes := *res
			items[i] = &copyRes
			return nil
		}
	}
	return nil
}

func (r *ReservationRepository) ByID(ctx context.Context, userID, id string) (*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, existing := range r.byUser[userID] {
		if existing.ID == id {
			copyRes := *existing
			return &copyRes, nil
		}
	}
	return nil, domainreservation.ErrNotFound
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID string) ([]*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := r.byUser[userID]
	out := make([]*domainreservation.Reservation, 0, len(items))
	for _, existing := range items {
		copyRes := *existing
		out = append(out, &copyRes)
	}
	return out, nil
}

var _ domainreservation.Repository = (*ReservationRepository)(nil)
