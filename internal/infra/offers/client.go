package offers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// Offer is a promotional deal from the public feed.
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

// SampleOffers is served whenever the feed is unreachable or malformed, so
// browsing keeps working while the provider is degraded.
var SampleOffers = []Offer{
	{
		ID:          "1",
		Title:       "Oferta: Copantl Hotel - 30% descuento",
		Price:       59,
		Currency:    "USD",
		URL:         "https://www.booking.com/searchresults.html?ss=Copantl+Hotel",
		Image:       "https://via.placeholder.com/800x450.png?text=Copantl+Hotel",
		Provider:    "Booking",
		Description: "Descuento especial por tiempo limitado en Copantl Hotel & Convention Center.",
	},
	{
		ID:          "2",
		Title:       "Oferta: Resort Playa Bonita - Promo fin de semana",
		Price:       89,
		Currency:    "USD",
		URL:         "https://www.expedia.com/Hotel-Search",
		Image:       "https://via.placeholder.com/800x450.png?text=Resort+Playa+Bonita",
		Provider:    "Expedia",
		Description: "Paquete con desayuno y acceso a piscina.",
	},
	{
		ID:          "3",
		Title:       "Oferta: Hotel Central - Reserva anticipada",
		Price:       45,
		Currency:    "USD",
		URL:         "https://www.hotels.com/",
		Image:       "https://via.placeholder.com/800x450.png?text=Hotel+Central",
		Provider:    "Hotels.com",
		Description: "Reserva anticipada con cancelación gratis.",
	},
}

// Client fetches the public offers feed.
type Client struct {
	HTTP   *http.Client
	URL    string
	Logger *slog.Logger
}

// rawOffer tolerates the loose field naming third-party feeds use; default
// substitution happens here so nothing partial leaks into the domain.
type rawOffer struct {
	ID          any     `json:"id"`
	PlaceID     any     `json:"place_id"`
	Title       string  `json:"title"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost"`
	Currency    string  `json:"currency"`
	URL         string  `json:"url"`
	Link        string  `json:"link"`
	Image       string  `json:"image"`
	Photo       string  `json:"photo"`
	Provider    string  `json:"provider"`
	Source      string  `json:"source"`
	Description string  `json:"description"`
	Desc        string  `json:"desc"`
}

// Fetch returns the live feed, or the fixed samples on any transport or
// shape failure. It never fails the caller.
func (c *Client) Fetch(ctx context.Context) []Offer {
	parsed, err := c.fetchLive(ctx)
	if err != nil {
		if c.Logger != nil {
			c.Logger.Warn("offers feed unavailable, serving samples", "error", err)
		}
		return append([]Offer(nil), SampleOffers...)
	}
	return parsed
}

func (c *Client) fetchLive(ctx context.Context) ([]Offer, error) {
	if c.HTTP == nil || c.URL == "" {
		return nil, errors.New("offers: client not configured")
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("offers feed returned status %d: %s", resp.StatusCode, string(snippet))
	}
	var raws []rawOffer
	if err := json.NewDecoder(resp.Body).Decode(&raws); err != nil {
		return nil, fmt.Errorf("offers feed shape: %w", err)
	}
	offers := make([]Offer, 0, len(raws))
	for i, raw := range raws {
		offers = append(offers, raw.normalize(i))
	}
	return offers, nil
}

func (raw rawOffer) normalize(index int) Offer {
	offer := Offer{
		ID:          stringID(raw.ID),
		Title:       raw.Title,
		Price:       raw.Price,
		Currency:    raw.Currency,
		URL:         raw.URL,
		Image:       raw.Image,
		Provider:    raw.Provider,
		Description: raw.Description,
	}
	if offer.ID == "" {
		offer.ID = stringID(raw.PlaceID)
	}
	if offer.ID == "" {
		offer.ID = strconv.Itoa(index)
	}
	if offer.Title == "" {
		offer.Title = raw.Name
	}
	if offer.Title == "" {
		offer.Title = "Oferta"
	}
	if offer.Price == 0 {
		offer.Price = raw.Cost
	}
	if offer.Currency == "" {
		offer.Currency = "USD"
	}
	if offer.URL == "" {
		offer.URL = raw.Link
	}
	if offer.URL == "" {
		offer.URL = "#"
	}
	if offer.Image == "" {
		offer.Image = raw.Photo
	}
	if offer.Provider == "" {
		offer.Provider = raw.Source
	}
	if offer.Description == "" {
		offer.Description = raw.Desc
	}
	return offer
}

func stringID(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatInt(int64(value), 10)
	default:
		return ""
	}
}

// FindForHotel returns the first offer whose title mentions the hotel,
// case-insensitively; nil when nothing matches. Used to seed the nightly
// base rate before falling back to the rating heuristic.
func (c *Client) FindForHotel(ctx context.Context, hotelName string) *Offer {
	name := strings.ToLower(strings.TrimSpace(hotelName))
	if name == "" {
		return nil
	}
	for _, offer := range c.Fetch(ctx) {
		if strings.Contains(strings.ToLower(offer.Title), name) {
			match := offer
			return &match
		}
	}
	return nil
}
