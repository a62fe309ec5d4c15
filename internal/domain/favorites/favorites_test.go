package favorites_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CristhianAlv-ing/HotelFind/internal/domain/favorites"
)

func Test_AddHotel_DeduplicatesByPlaceID(t *testing.T) {
	var list favorites.List
	list.AddHotel(favorites.Hotel{PlaceID: "p-1", Name: "Copantl"})
	list.AddHotel(favorites.Hotel{PlaceID: "p-1", Name: "Copantl Hotel"})
	assert.Len(t, list.Hotels, 1)
}

func Test_AddHotel_DeduplicatesByComposite(t *testing.T) {
	var list favorites.List
	list.AddHotel(favorites.Hotel{Name: "Playa Bonita", Lat: 9.36, Lng: -79.89})
	list.AddHotel(favorites.Hotel{Name: "Playa Bonita", Lat: 9.36, Lng: -79.89})
	require.Len(t, list.Hotels, 1)

	// same name at different coordinates is a distinct hotel
	list.AddHotel(favorites.Hotel{Name: "Playa Bonita", Lat: 10.0, Lng: -80.0})
	assert.Len(t, list.Hotels, 2)
}

func Test_RemoveHotel_KeyPrecedence(t *testing.T) {
	var list favorites.List
	list.AddHotel(favorites.Hotel{PlaceID: "p-1", ID: "a", Name: "Copantl"})
	list.AddHotel(favorites.Hotel{ID: "b", Name: "Central"})

	list.RemoveHotel(favorites.HotelKey{PlaceID: "p-1"})
	require.Len(t, list.Hotels, 1)
	assert.Equal(t, "Central", list.Hotels[0].Name)

	list.RemoveHotel(favorites.HotelKey{Name: "Central"})
	assert.Empty(t, list.Hotels)
}

func Test_RemoveHotel_AbsentKeyIsNoOp(t *testing.T) {
	var list favorites.List
	list.AddHotel(favorites.Hotel{PlaceID: "p-1", Name: "Copantl"})
	list.RemoveHotel(favorites.HotelKey{PlaceID: "unknown"})
	assert.Len(t, list.Hotels, 1)

	list.RemoveHotel(favorites.HotelKey{})
	assert.Len(t, list.Hotels, 1)
}

func Test_AddOffer_DeduplicatesByIDThenURL(t *testing.T) {
	var list favorites.List
	list.AddOffer(favorites.Offer{ID: "1", URL: "https://a.example"})
	list.AddOffer(favorites.Offer{ID: "1", URL: "https://other.example"})
	require.Len(t, list.Offers, 1)

	list.AddOffer(favorites.Offer{ID: "2", URL: "https://a.example"})
	assert.Len(t, list.Offers, 1)
}

func Test_RemoveOffer(t *testing.T) {
	var list favorites.List
	list.AddOffer(favorites.Offer{ID: "1", URL: "https://a.example"})
	list.AddOffer(favorites.Offer{ID: "2", URL: "https://b.example"})

	list.RemoveOffer(favorites.OfferKey{URL: "https://b.example"})
	require.Len(t, list.Offers, 1)

	list.RemoveOffer(favorites.OfferKey{ID: "unknown"})
	assert.Len(t, list.Offers, 1)

	list.RemoveOffer(favorites.OfferKey{ID: "1"})
	assert.Empty(t, list.Offers)
}

func Test_Copy_IsIndependent(t *testing.T) {
	var list favorites.List
	list.AddHotel(favorites.Hotel{PlaceID: "p-1", Name: "Copantl"})
	snapshot := list.Copy()
	list.Clear()
	assert.Len(t, snapshot.Hotels, 1)
	assert.Empty(t, list.Hotels)
}
