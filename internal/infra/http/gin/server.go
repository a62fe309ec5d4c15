package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"github.com/CristhianAlv-ing/HotelFind/internal/infra/config"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/obs"
)

type Handlers struct {
	Auth           AuthHTTP
	Profile        ProfileHTTP
	Hotels         HotelHTTP
	Offers         OffersHTTP
	Reservations   ReservationHTTP
	Favorites      FavoritesHTTP
	Preferences    PreferencesHTTP
	AuthMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Auth != nil {
		api.POST("/auth/register", h.Auth.Register)
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/logout", h.Auth.Logout)
		api.GET("/auth/me", h.Auth.Me)
	}
	if h.Profile != nil {
		api.PUT("/me", h.Profile.Update)
		api.POST("/me/avatar", h.Profile.UploadAvatar)
	}
	if h.Hotels != nil {
		api.GET("/hotels", h.Hotels.Search)
		api.GET("/hotels/autocomplete", h.Hotels.Autocomplete)
		api.GET("/hotels/quote", h.Hotels.Quote)
		api.GET("/hotels/:placeID", h.Hotels.Details)
	}
	if h.Offers != nil {
		api.GET("/offers", h.Offers.List)
	}
	if h.Reservations != nil {
		api.POST("/reservations", h.Reservations.Create)
		api.GET("/reservations", h.Reservations.List)
		api.POST("/reservations/:id/extend", h.Reservations.Extend)
		api.POST("/reservations/:id/shorten", h.Reservations.Shorten)
		api.GET("/reservations/:id/refund-estimate", h.Reservations.RefundEstimate)
		api.DELETE("/reservations/:id", h.Reservations.Remove)
	}
	if h.Favorites != nil {
		favoritesGroup := api.Group("/favorites")
		favoritesGroup.GET("", h.Favorites.List)
		favoritesGroup.POST("/hotels", h.Favorites.AddHotel)
		favoritesGroup.DELETE("/hotels", h.Favorites.RemoveHotel)
		favoritesGroup.POST("/offers", h.Favorites.AddOffer)
		favoritesGroup.DELETE("/offers", h.Favorites.RemoveOffer)
	}
	if h.Preferences != nil {
		api.GET("/preferences", h.Preferences.Get)
		api.PUT("/preferences", h.Preferences.Update)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
