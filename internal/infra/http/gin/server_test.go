package ginserver

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CristhianAlv-ing/HotelFind/internal/app/dto"
	authsvc "github.com/CristhianAlv-ing/HotelFind/internal/app/services/auth"
	tripsvc "github.com/CristhianAlv-ing/HotelFind/internal/app/services/trips"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/config"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/obs"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/security"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/storage/file"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/storage/memory"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	authService := &authsvc.Service{
		Users:      memory.NewUserRepository(),
		Sessions:   memory.NewSessionStore(),
		Passwords:  security.BcryptHasher{Cost: 4},
		Tokens:     security.RandomTokenGenerator{},
		SessionTTL: time.Hour,
		Logger:     logger,
	}
	tripService := &tripsvc.Service{
		Reservations: memory.NewReservationRepository(),
		Logger:       logger,
	}
	prefsStore, err := file.OpenPrefs(filepath.Join(t.TempDir(), "prefs.json"), logger)
	require.NoError(t, err)

	server := NewServer(
		config.Config{Env: "test", HTTPAddr: ":0"},
		obs.Middleware{Logger: logger},
		obs.HealthHandlers{},
		Handlers{
			Auth:           AuthHandler{Service: authService, Logger: logger},
			Reservations:   ReservationHandler{Service: tripService, Logger: logger},
			Favorites:      FavoritesHandler{Store: memory.NewFavoritesStore(nil, logger), Logger: logger},
			Preferences:    PreferencesHandler{Store: prefsStore},
			AuthMiddleware: AuthMiddleware{Service: authService, Logger: logger}.Handle,
		},
	)
	return server.Handler
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	request := httptest.NewRequest(method, path, &payload)
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func registerUser(t *testing.T, handler http.Handler) dto.AuthResponse {
	t.Helper()
	recorder := doJSON(t, handler, http.MethodPost, "/api/v1/auth/register", "", jsonBody{
		"email": "ana@example.com", "name": "Ana", "password": "correcthorse",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)
	var response dto.AuthResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return response
}

type jsonBody = map[string]any

func TestHealthEndpoints(t *testing.T) {
	handler := newTestServer(t)

	assert.Equal(t, http.StatusOK, doJSON(t, handler, http.MethodGet, "/livez", "", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, handler, http.MethodGet, "/readyz", "", nil).Code)
}

func TestAuthFlow(t *testing.T) {
	handler := newTestServer(t)
	auth := registerUser(t, handler)

	me := doJSON(t, handler, http.MethodGet, "/api/v1/auth/me", auth.Token, nil)
	require.Equal(t, http.StatusOK, me.Code)

	var profile dto.UserProfile
	require.NoError(t, json.Unmarshal(me.Body.Bytes(), &profile))
	assert.Equal(t, "ana@example.com", profile.Email)

	logout := doJSON(t, handler, http.MethodPost, "/api/v1/auth/logout", auth.Token, nil)
	assert.Equal(t, http.StatusNoContent, logout.Code)

	meAfter := doJSON(t, handler, http.MethodGet, "/api/v1/auth/me", auth.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, meAfter.Code)
}

func TestReservationLifecycle(t *testing.T) {
	handler := newTestServer(t)
	auth := registerUser(t, handler)

	create := doJSON(t, handler, http.MethodPost, "/api/v1/reservations", auth.Token, jsonBody{
		"hotel_name": "Hotel Copantl",
		"check_in":   "2099-07-10",
		"check_out":  "2099-07-12",
		"user_name":  "Ana",
		"guests":     2,
	})
	require.Equal(t, http.StatusCreated, create.Code)

	var created dto.ReservationView
	require.NoError(t, json.Unmarshal(create.Body.Bytes(), &created))
	assert.Equal(t, 2, created.Nights)
	assert.Equal(t, "Standard", created.RoomType)

	extend := doJSON(t, handler, http.MethodPost, "/api/v1/reservations/"+created.ID+"/extend", auth.Token, nil)
	require.Equal(t, http.StatusOK, extend.Code)
	var extended dto.ReservationView
	require.NoError(t, json.Unmarshal(extend.Body.Bytes(), &extended))
	assert.Equal(t, 3, extended.Nights)
	assert.Equal(t, "extension", extended.AdjustmentType)

	list := doJSON(t, handler, http.MethodGet, "/api/v1/reservations", auth.Token, nil)
	require.Equal(t, http.StatusOK, list.Code)
	var trips dto.TripListResponse
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &trips))
	require.Len(t, trips.Upcoming, 1)
	assert.Empty(t, trips.Past)

	remove := doJSON(t, handler, http.MethodDelete, "/api/v1/reservations/"+created.ID, auth.Token, nil)
	require.Equal(t, http.StatusOK, remove.Code)
	var removed dto.RemoveReservationResponse
	require.NoError(t, json.Unmarshal(remove.Body.Bytes(), &removed))
	assert.Equal(t, extended.TotalPrice*0.75, removed.RefundEstimate)
}

func TestReservationValidation(t *testing.T) {
	handler := newTestServer(t)
	auth := registerUser(t, handler)

	missingName := doJSON(t, handler, http.MethodPost, "/api/v1/reservations", auth.Token, jsonBody{
		"hotel_name": "Hotel Copantl",
		"check_in":   "2099-07-10",
		"check_out":  "2099-07-12",
	})
	assert.Equal(t, http.StatusBadRequest, missingName.Code)

	badDate := doJSON(t, handler, http.MethodPost, "/api/v1/reservations", auth.Token, jsonBody{
		"hotel_name": "Hotel Copantl",
		"check_in":   "10/07/2099",
		"check_out":  "2099-07-12",
		"user_name":  "Ana",
	})
	assert.Equal(t, http.StatusBadRequest, badDate.Code)

	unauthorized := doJSON(t, handler, http.MethodPost, "/api/v1/reservations", "", jsonBody{
		"hotel_name": "Hotel Copantl",
		"check_in":   "2099-07-10",
		"check_out":  "2099-07-12",
		"user_name":  "Ana",
	})
	assert.Equal(t, http.StatusUnauthorized, unauthorized.Code)
}

func TestFavoritesEndpoints(t *testing.T) {
	handler := newTestServer(t)
	auth := registerUser(t, handler)

	add := doJSON(t, handler, http.MethodPost, "/api/v1/favorites/hotels", auth.Token, jsonBody{
		"hotel": jsonBody{"place_id": "pl1", "name": "Hotel Copantl", "lat": 15.47, "lng": -88.01},
	})
	require.Equal(t, http.StatusOK, add.Code)

	// Same identity again stays deduplicated.
	again := doJSON(t, handler, http.MethodPost, "/api/v1/favorites/hotels", auth.Token, jsonBody{
		"hotel": jsonBody{"place_id": "pl1", "name": "Hotel Copantl"},
	})
	require.Equal(t, http.StatusOK, again.Code)
	var favoritesList dto.FavoritesResponse
	require.NoError(t, json.Unmarshal(again.Body.Bytes(), &favoritesList))
	assert.Len(t, favoritesList.Hotels, 1)

	remove := doJSON(t, handler, http.MethodDelete, "/api/v1/favorites/hotels", auth.Token, jsonBody{
		"place_id": "pl1",
	})
	require.Equal(t, http.StatusOK, remove.Code)
	require.NoError(t, json.Unmarshal(remove.Body.Bytes(), &favoritesList))
	assert.Empty(t, favoritesList.Hotels)
}

func TestPreferencesEndpoints(t *testing.T) {
	handler := newTestServer(t)

	initial := doJSON(t, handler, http.MethodGet, "/api/v1/preferences", "", nil)
	require.Equal(t, http.StatusOK, initial.Code)
	var prefsResponse dto.PreferencesResponse
	require.NoError(t, json.Unmarshal(initial.Body.Bytes(), &prefsResponse))
	assert.Equal(t, "es", prefsResponse.Language)
	assert.Equal(t, "light", prefsResponse.Theme)

	update := doJSON(t, handler, http.MethodPut, "/api/v1/preferences", "", jsonBody{
		"language": "fr", "theme": "dark",
	})
	require.Equal(t, http.StatusOK, update.Code)
	require.NoError(t, json.Unmarshal(update.Body.Bytes(), &prefsResponse))
	assert.Equal(t, "fr", prefsResponse.Language)
	assert.Equal(t, "dark", prefsResponse.Theme)

	invalid := doJSON(t, handler, http.MethodPut, "/api/v1/preferences", "", jsonBody{
		"language": "de",
	})
	assert.Equal(t, http.StatusBadRequest, invalid.Code)
}
