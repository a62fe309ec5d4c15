package memory

import (
	"context"
	"log/slog"
	"sync"

	domainfavorites "github.com/CristhianAlv-ing/HotelFind/internal/domain/favorites"
)

// Snapshotter persists the favorites portion of the store after mutations.
// Persistence failures are logged and never fail the mutation.
type Snapshotter interface {
	SaveFavorites(snapshot map[string]domainfavorites.List) error
}

// FavoritesStore keeps per-user favorite collections in memory, optionally
// writing a snapshot through to local storage after every mutation.
type FavoritesStore struct {
	mu       sync.RWMutex
	byUser   map[string]*domainfavorites.List
	snapshot Snapshotter
	logger   *slog.Logger
}

func NewFavoritesStore(snapshot Snapshotter, logger *slog.Logger) *FavoritesStore {
	return &FavoritesStore{
		byUser:   make(map[string]*domainfavorites.List),
		snapshot: snapshot,
		logger:   logger,
	}
}

// Restore replaces the store's contents with a previously saved snapshot.
// Called once at startup before the server accepts traffic.
func (s *FavoritesStore) Restore(snapshot map[string]domainfavorites.List) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser = make(map[string]*domainfavorites.List, len(snapshot))
	for userID, list := range snapshot {
		copyList := list.Copy()
		s.byUser[userID] = &copyList
	}
}

func (s *FavoritesStore) AddHotel(ctx context.Context, userID string, h domainfavorites.Hotel) error {
	s.mu.Lock()
	s.listFor(userID).AddHotel(h)
	s.mu.Unlock()
	s.persist()
	return nil
}

func (s *FavoritesStore) RemoveHotel(ctx context.Context, userID string, key domainfavorites.HotelKey) error {
	s.mu.Lock()
	s.listFor(userID).RemoveHotel(key)
	s.mu.Unlock()
	s.persist()
	return nil
}

func (s *FavoritesStore) AddOffer(ctx context.Context, userID string, o domainfavorites.Offer) error {
	s.mu.Lock()
	s.listFor(userID).AddOffer(o)
	s.mu.Unlock()
	s.persist()
	return nil
}

func (s *FavoritesStore) RemoveOffer(ctx context.Context, userID string, key domainfavorites.OfferKey) error {
	s.mu.Lock()
	s.listFor(userID).RemoveOffer(key)
	s.mu.Unlock()
	s.persist()
	return nil
}

func (s *FavoritesStore) ListByUser(ctx context.Context, userID string) (domainfavorites.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if list, ok := s.byUser[userID]; ok {
		return list.Copy(), nil
	}
	return domainfavorites.List{}, nil
}

func (s *FavoritesStore) listFor(userID string) *domainfavorites.List {
	if list, ok := s.byUser[userID]; ok {
		return list
	}
	list := &domainfavorites.List{}
	s.byUser[userID] = list
	return list
}

func (s *FavoritesStore) persist() {
	if s.snapshot == nil {
		return
	}
	s.mu.RLock()
	out := make(map[string]domainfavorites.List, len(s.byUser))
	for userID, list := range s.byUser {
		out[userID] = list.Copy()
	}
	s.mu.RUnlock()
	if err := s.snapshot.SaveFavorites(out); err != nil && s.logger != nil {
		s.logger.Warn("favorites snapshot write failed", "error", err)
	}
}

var _ domainfavorites.Store = (*FavoritesStore)(nil)
