package offers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CristhianAlv-ing/HotelFind/internal/infra/offers"
)

func newClient(t *testing.T, handler http.HandlerFunc) *offers.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &offers.Client{HTTP: server.Client(), URL: server.URL}
}

func Test_Fetch_MapsLooseRecords(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 7, "name": "Hotel Central", "cost": 45, "link": "https://deals.example/central", "source": "Hotels.com"},
			{"title": "Promo sin enlace", "price": 30}
		]`))
	})

	got := client.Fetch(context.Background())

	require.Len(t, got, 2)
	assert.Equal(t, "7", got[0].ID)
	assert.Equal(t, "Hotel Central", got[0].Title)
	assert.Equal(t, 45.0, got[0].Price)
	assert.Equal(t, "https://deals.example/central", got[0].URL)
	assert.Equal(t, "Hotels.com", got[0].Provider)
	assert.Equal(t, "USD", got[0].Currency)

	// missing fields fall back to defaults at the boundary
	assert.Equal(t, "1", got[1].ID)
	assert.Equal(t, "#", got[1].URL)
}

func Test_Fetch_FallsBackToSamplesOnServerError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	got := client.Fetch(context.Background())

	require.Len(t, got, 3)
	assert.Equal(t, offers.SampleOffers, got)
}

func Test_Fetch_FallsBackToSamplesOnNonArray(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"offers": []}`))
	})

	got := client.Fetch(context.Background())
	assert.Equal(t, offers.SampleOffers, got)
}

func Test_FindForHotel(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	// samples include a Copantl promotion
	offer := client.FindForHotel(context.Background(), "copantl hotel")
	require.NotNil(t, offer)
	assert.Equal(t, 59.0, offer.Price)

	assert.Nil(t, client.FindForHotel(context.Background(), "Hotel Inexistente"))
	assert.Nil(t, client.FindForHotel(context.Background(), "  "))
}
