package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

var ErrNotConfigured = errors.New("places: api key not configured")

// Hotel is one search result from the places provider.
type Hotel struct {
	ID      string  `json:"id"`
	PlaceID string  `json:"place_id,omitempty"`
	Name    string  `json:"name"`
	Address string  `json:"address,omitempty"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Rating  float64 `json:"rating,omitempty"`
}

// Prediction is one ranked autocomplete suggestion.
type Prediction struct {
	Description   string `json:"description"`
	PlaceID       string `json:"place_id"`
	MainText      string `json:"main_text,omitempty"`
	SecondaryText string `json:"secondary_text,omitempty"`
}

// Details carries the lightweight field set shown on a hotel page.
type Details struct {
	PlaceID   string   `json:"place_id"`
	Name      string   `json:"name"`
	Address   string   `json:"address,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Website   string   `json:"website,omitempty"`
	Rating    float64  `json:"rating,omitempty"`
	Lat       float64  `json:"lat,omitempty"`
	Lng       float64  `json:"lng,omitempty"`
	PhotoURLs []string `json:"photo_urls,omitempty"`
}

// LatLng biases searches around a point.
type LatLng struct {
	Lat float64
	Lng float64
}

// Client talks to a Google-Places-shaped provider. Calls run through a
// circuit breaker so a degraded provider stops burning request budget; the
// read path treats every failure as an empty result anyway.
type Client struct {
	http    *http.Client
	apiKey  string
	baseURL string
	radius  int
	logger  *slog.Logger
	breaker *gobreaker.CircuitBreaker
}

func NewClient(httpClient *http.Client, apiKey, baseURL string, radius int, logger *slog.Logger) *Client {
	if radius <= 0 {
		radius = 5000
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "places",
		MaxRequests: 1,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 2
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
			}
		},
	})
	return &Client{
		http:    httpClient,
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		radius:  radius,
		logger:  logger,
		breaker: breaker,
	}
}

type searchResponse struct {
	Results []struct {
		PlaceID          string  `json:"place_id"`
		Name             string  `json:"name"`
		FormattedAddress string  `json:"formatted_address"`
		Vicinity         string  `json:"vicinity"`
		Rating           float64 `json:"rating"`
		Geometry         struct {
			Location struct {
				Lat *float64 `json:"lat"`
				Lng *float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// SearchHotels runs a text search. Results without coordinates are dropped.
func (c *Client) SearchHotels(ctx context.Context, query string, location *LatLng) ([]Hotel, error) {
	if query == "" {
		query = "hotels"
	}
	params := url.Values{}
	params.Set("query", query)
	c.applyLocation(params, location, c.radius)

	var decoded searchResponse
	if err := c.get(ctx, "/textsearch/json", params, &decoded); err != nil {
		return nil, err
	}

	hotels := make([]Hotel, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		if r.Geometry.Location.Lat == nil || r.Geometry.Location.Lng == nil {
			continue
		}
		lat, lng := *r.Geometry.Location.Lat, *r.Geometry.Location.Lng
		id := r.PlaceID
		if id == "" {
			id = formatCoord(lat) + "_" + formatCoord(lng)
		}
		address := r.FormattedAddress
		if address == "" {
			address = r.Vicinity
		}
		hotels = append(hotels, Hotel{
			ID:      id,
			PlaceID: r.PlaceID,
			Name:    r.Name,
			Address: address,
			Lat:     lat,
			Lng:     lng,
			Rating:  r.Rating,
		})
	}
	return hotels, nil
}

type autocompleteResponse struct {
	Predictions []struct {
		Description          string `json:"description"`
		PlaceID              string `json:"place_id"`
		StructuredFormatting struct {
			MainText      string `json:"main_text"`
			SecondaryText string `json:"secondary_text"`
		} `json:"structured_formatting"`
	} `json:"predictions"`
}

// Autocomplete returns ranked predictions for a partial input.
func (c *Client) Autocomplete(ctx context.Context, input string, location *LatLng) ([]Prediction, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	params := url.Values{}
	params.Set("input", input)
	params.Set("types", "establishment")
	c.applyLocation(params, location, 50000)

	var decoded autocompleteResponse
	if err := c.get(ctx, "/autocomplete/json", params, &decoded); err != nil {
		return nil, err
	}

	predictions := make([]Prediction, 0, len(decoded.Predictions))
	for _, p := range decoded.Predictions {
		predictions = append(predictions, Prediction{
			Description:   p.Description,
			PlaceID:       p.PlaceID,
			MainText:      p.StructuredFormatting.MainText,
			SecondaryText: p.StructuredFormatting.SecondaryText,
		})
	}
	return predictions, nil
}

type detailsResponse struct {
	Result struct {
		PlaceID              string  `json:"place_id"`
		Name                 string  `json:"name"`
		FormattedAddress     string  `json:"formatted_address"`
		FormattedPhoneNumber string  `json:"formatted_phone_number"`
		Website              string  `json:"website"`
		Rating               float64 `json:"rating"`
		Geometry             struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Photos []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"result"`
}

// Details fetches the place page fields for one hotel.
func (c *Client) Details(ctx context.Context, placeID string) (*Details, error) {
	if strings.TrimSpace(placeID) == "" {
		return nil, errors.New("places: place id is required")
	}
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "place_id,name,formatted_address,formatted_phone_number,website,rating,geometry,photos")

	var decoded detailsResponse
	if err := c.get(ctx, "/details/json", params, &decoded); err != nil {
		return nil, err
	}

	result := decoded.Result
	details := &Details{
		PlaceID: result.PlaceID,
		Name:    result.Name,
		Address: result.FormattedAddress,
		Phone:   result.FormattedPhoneNumber,
		Website: result.Website,
		Rating:  result.Rating,
		Lat:     result.Geometry.Location.Lat,
		Lng:     result.Geometry.Location.Lng,
	}
	for _, photo := range result.Photos {
		if photo.PhotoReference == "" {
			continue
		}
		details.PhotoURLs = append(details.PhotoURLs, c.photoURL(photo.PhotoReference))
	}
	return details, nil
}

func (c *Client) photoURL(reference string) string {
	return fmt.Sprintf("%s/photo?maxwidth=800&photo_reference=%s&key=%s", c.baseURL, url.QueryEscape(reference), url.QueryEscape(c.apiKey))
}

func (c *Client) applyLocation(params url.Values, location *LatLng, radius int) {
	if location == nil {
		return
	}
	params.Set("location", formatCoord(location.Lat)+","+formatCoord(location.Lng))
	params.Set("radius", strconv.Itoa(radius))
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.apiKey == "" {
		return ErrNotConfigured
	}
	if c.http == nil {
		return errors.New("places: http client not configured")
	}
	params.Set("key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	_, err := c.breaker.Execute(func() (interface{}, error) {
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.http.Do(request)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= http.StatusBadRequest {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return nil, fmt.Errorf("places provider returned status %d: %s", resp.StatusCode, string(snippet))
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("places response shape: %w", err)
		}
		return nil, nil
	})
	if err != nil && c.logger != nil {
		c.logger.Warn("places request failed", "path", path, "error", err)
	}
	return err
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
