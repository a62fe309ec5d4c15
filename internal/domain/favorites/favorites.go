package favorites

import "context"

// Hotel is a user-pinned reference to an externally sourced hotel. Records
// arrive partial from the places provider, so most fields are optional.
type Hotel struct {
	ID          string   `json:"id,omitempty"`
	PlaceID     string   `json:"place_id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
	Photos      []string `json:"photos,omitempty"`
	Price       float64  `json:"price,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Website     string   `json:"website,omitempty"`
	Lat         float64  `json:"lat,omitempty"`
	Lng         float64  `json:"lng,omitempty"`
}

// Offer is a user-pinned promotional offer.
type Offer struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency,omitempty"`
	URL         string  `json:"url"`
	Image       string  `json:"image,omitempty"`
	Provider    string  `json:"provider,omitempty"`
	Description string  `json:"description,omitempty"`
}

// SameHotel reports whether two hotels share an identity: the place id when
// both carry one, otherwise the (name, lat, lng) composite.
func SameHotel(a, b Hotel) bool {
	if a.PlaceID != "" && b.PlaceID != "" && a.PlaceID == b.PlaceID {
		return true
	}
	return a.Name == b.Name && a.Lat == b.Lat && a.Lng == b.Lng
}

// SameOffer reports whether two offers share an identity: the id, or the URL
// when both carry one.
func SameOffer(a, b Offer) bool {
	if a.ID == b.ID {
		return true
	}
	return a.URL != "" && b.URL != "" && a.URL == b.URL
}

// HotelKey selects favorite hotels for removal. Matching precedence per
// entry: place id, then id, then name; an empty key matches nothing.
type HotelKey struct {
	PlaceID string
	ID      string
	Name    string
}

// Matches reports whether the key selects the given entry.
func (k HotelKey) Matches(h Hotel) bool {
	if k.PlaceID != "" && h.PlaceID != "" {
		return h.PlaceID == k.PlaceID
	}
	if k.ID != "" && h.ID != "" {
		return h.ID == k.ID
	}
	if k.Name != "" {
		return h.Name == k.Name
	}
	return false
}

// OfferKey selects favorite offers for removal, by id first, then URL.
type OfferKey struct {
	ID  string
	URL string
}

func (k OfferKey) Matches(o Offer) bool {
	if k.ID != "" {
		return o.ID == k.ID
	}
	if k.URL != "" {
		return o.URL == k.URL
	}
	return false
}

// List holds a user's pinned hotels and offers and enforces the identity
// de-duplication invariant. All operations are total: duplicate adds and
// removals of absent keys are no-ops.
type List struct {
	Hotels []Hotel `json:"hotels"`
	Offers []Offer `json:"offers"`
}

// AddHotel appends unless an entry with the same identity already exists.
func (l *List) AddHotel(h Hotel) {
	for _, existing := range l.Hotels {
		if SameHotel(existing, h) {
			return
		}
	}
	l.Hotels = append(l.Hotels, h)
}

// RemoveHotel drops every entry the key selects.
func (l *List) RemoveHotel(key HotelKey) {
	kept := l.Hotels[:0]
	for _, h := range l.Hotels {
		if !key.Matches(h) {
			kept = append(kept, h)
		}
	}
	l.Hotels = kept
}

// AddOffer appends unless an entry with the same identity already exists.
func (l *List) AddOffer(o Offer) {
	for _, existing := range l.Offers {
		if SameOffer(existing, o) {
			return
		}
	}
	l.Offers = append(l.Offers, o)
}

// RemoveOffer drops every entry the key selects.
func (l *List) RemoveOffer(key OfferKey) {
	kept := l.Offers[:0]
	for _, o := range l.Offers {
		if !key.Matches(o) {
			kept = append(kept, o)
		}
	}
	l.Offers = kept
}

// Clear empties both collections.
func (l *List) Clear() {
	l.Hotels = nil
	l.Offers = nil
}

// Copy returns an independent snapshot of the list.
func (l List) Copy() List {
	return List{
		Hotels: append([]Hotel(nil), l.Hotels...),
		Offers: append([]Offer(nil), l.Offers...),
	}
}

// Store keeps per-user favorite collections.
type Store interface {
	AddHotel(ctx context.Context, userID string, h Hotel) error
	RemoveHotel(ctx context.Context, userID string, key HotelKey) error
	AddOffer(ctx context.Context, userID string, o Offer) error
	RemoveOffer(ctx context.Context, userID string, key OfferKey) error
	ListByUser(ctx context.Context, userID string) (List, error)
}
