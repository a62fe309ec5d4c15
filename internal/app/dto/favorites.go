package dto

import "github.com/CristhianAlv-ing/HotelFind/internal/domain/favorites"

// Favorite payloads reuse the domain shapes directly; entries arrive partial
// from external providers and round-trip unchanged.

type AddFavoriteHotelRequest struct {
	Hotel favorites.Hotel `json:"hotel"`
}

func (r AddFavoriteHotelRequest) Validate() error {
	return validate.Var(r.Hotel.Name, "required")
}

type RemoveFavoriteHotelRequest struct {
	PlaceID string `json:"place_id"`
	ID      string `json:"id"`
	Name    string `json:"name"`
}

func (r RemoveFavoriteHotelRequest) Key() favorites.HotelKey {
	return favorites.HotelKey{PlaceID: r.PlaceID, ID: r.ID, Name: r.Name}
}

type AddFavoriteOfferRequest struct {
	Offer favorites.Offer `json:"offer"`
}

func (r AddFavoriteOfferRequest) Validate() error {
	return validate.Var(r.Offer.ID, "required")
}

type RemoveFavoriteOfferRequest struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func (r RemoveFavoriteOfferRequest) Key() favorites.OfferKey {
	return favorites.OfferKey{ID: r.ID, URL: r.URL}
}

type FavoritesResponse struct {
	Hotels []favorites.Hotel `json:"hotels"`
	Offers []favorites.Offer `json:"offers"`
}

func NewFavoritesResponse(list favorites.List) FavoritesResponse {
	response := FavoritesResponse{
		Hotels: list.Hotels,
		Offers: list.Offers,
	}
	if response.Hotels == nil {
		response.Hotels = []favorites.Hotel{}
	}
	if response.Offers == nil {
		response.Offers = []favorites.Offer{}
	}
	return response
}
