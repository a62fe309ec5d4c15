package ginserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	"github.com/CristhianAlv-ing/HotelFind/internal/app/dto"
	tripsvc "github.com/CristhianAlv-ing/HotelFind/internal/app/services/trips"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/places"
)

type HotelHTTP interface {
	Search(c *gin.Context)
	Autocomplete(c *gin.Context)
	Details(c *gin.Context)
	Quote(c *gin.Context)
}

// PlacesProvider is the slice of the places client the hotel handler needs.
type PlacesProvider interface {
	SearchHotels(ctx context.Context, query string, location *places.LatLng) ([]places.Hotel, error)
	Autocomplete(ctx context.Context, input string, location *places.LatLng) ([]places.Prediction, error)
	Details(ctx context.Context, placeID string) (*places.Details, error)
}

type HotelHandler struct {
	Places PlacesProvider
	Trips  *tripsvc.Service
	Logger *slog.Logger
}

// Search degrades to an empty list when the provider is down; the client
// keeps its last rendered results.
func (h HotelHandler) Search(c *gin.Context) {
	location := parseLocation(c)
	hotels, err := h.Places.SearchHotels(c.Request.Context(), c.Query("q"), location)
	if err != nil {
		h.logProviderFailure("hotel search", err)
		c.JSON(http.StatusOK, dto.NewHotelSearchResponse(nil))
		return
	}
	c.JSON(http.StatusOK, dto.NewHotelSearchResponse(hotels))
}

func (h HotelHandler) Autocomplete(c *gin.Context) {
	location := parseLocation(c)
	predictions, err := h.Places.Autocomplete(c.Request.Context(), c.Query("q"), location)
	if err != nil {
		h.logProviderFailure("autocomplete", err)
		c.JSON(http.StatusOK, dto.NewAutocompleteResponse(nil))
		return
	}
	c.JSON(http.StatusOK, dto.NewAutocompleteResponse(predictions))
}

func (h HotelHandler) Details(c *gin.Context) {
	details, err := h.Places.Details(c.Request.Context(), c.Param("placeID"))
	if err != nil {
		if errors.Is(err, places.ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "places provider unavailable"})
			return
		}
		h.logProviderFailure("hotel details", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "places provider failed"})
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h HotelHandler) Quote(c *gin.Context) {
	hotelName := c.Query("hotel_name")
	if hotelName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hotel_name is required"})
		return
	}
	rating, _ := strconv.ParseFloat(c.Query("rating"), 64)
	quote := h.Trips.QuoteHotel(c.Request.Context(), hotelName, rating)
	c.JSON(http.StatusOK, dto.QuoteResponse{
		HotelName: quote.HotelName,
		BasePrice: quote.BasePrice,
		Tiers:     quote.Tiers,
	})
}

func (h HotelHandler) logProviderFailure(operation string, err error) {
	if h.Logger != nil {
		h.Logger.Warn("places provider degraded", "operation", operation, "error", err)
	}
}

func parseLocation(c *gin.Context) *places.LatLng {
	latRaw, lngRaw := c.Query("lat"), c.Query("lng")
	if latRaw == "" || lngRaw == "" {
		return nil
	}
	lat, errLat := strconv.ParseFloat(latRaw, 64)
	lng, errLng := strconv.ParseFloat(lngRaw, 64)
	if errLat != nil || errLng != nil {
		return nil
	}
	return &places.LatLng{Lat: lat, Lng: lng}
}

var _ HotelHTTP = (*HotelHandler)(nil)
