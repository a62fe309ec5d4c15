package dto

import (
	"github.com/CristhianAlv-ing/HotelFind/internal/domain/pricing"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/offers"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/places"
)

type HotelSearchResponse struct {
	Results []places.Hotel `json:"results"`
}

func NewHotelSearchResponse(hotels []places.Hotel) HotelSearchResponse {
	if hotels == nil {
		hotels = []places.Hotel{}
	}
	return HotelSearchResponse{Results: hotels}
}

type AutocompleteResponse struct {
	Predictions []places.Prediction `json:"predictions"`
}

func NewAutocompleteResponse(predictions []places.Prediction) AutocompleteResponse {
	if predictions == nil {
		predictions = []places.Prediction{}
	}
	return AutocompleteResponse{Predictions: predictions}
}

type QuoteResponse struct {
	HotelName string             `json:"hotel_name"`
	BasePrice float64            `json:"base_price"`
	Tiers     []pricing.RoomTier `json:"tiers"`
}

type OffersResponse struct {
	Offers []offers.Offer `json:"offers"`
}

func NewOffersResponse(items []offers.Offer) OffersResponse {
	if items == nil {
		items = []offers.Offer{}
	}
	return OffersResponse{Offers: items}
}
