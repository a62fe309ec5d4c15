package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/IBM/sarama"

	authsvc "github.com/CristhianAlv-ing/HotelFind/internal/app/services/auth"
	tripsvc "github.com/CristhianAlv-ing/HotelFind/internal/app/services/trips"
	domainauth "github.com/CristhianAlv-ing/HotelFind/internal/domain/auth"
	"github.com/CristhianAlv-ing/HotelFind/internal/domain/reservation"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/broker/kafka"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/config"
	ginserver "github.com/CristhianAlv-ing/HotelFind/internal/infra/http/gin"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/obs"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/offers"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/places"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/security"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/storage/file"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/storage/memory"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/storage/mongo"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/storage/redis"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/storage/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("using fallback configuration", "error", err)
		cfg.Env = env
		cfg.HTTPAddr = getenv("HTTP_ADDR", ":8080")
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	app, cleanup := buildApplication(ctx, cfg, logger)
	defer cleanup()

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	ready    func() error
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, func()) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}

	reservations, readyCheck := buildReservationStore(ctx, cfg, logger)
	sessions := buildSessionStore(cfg, logger)
	favoritesStore := buildFavoritesStore(cfg, logger)

	prefsPath := cfg.PrefsPath
	if prefsPath == "" {
		prefsPath = filepath.Join("data", "prefs.json")
	}
	prefsStore, err := file.OpenPrefs(prefsPath, logger)
	if err != nil {
		logger.Error("cannot open preferences store", "error", err, "path", prefsPath)
		os.Exit(1)
	}

	offersClient := &offers.Client{HTTP: httpClient, URL: cfg.OffersURL, Logger: logger}
	placesClient := places.NewClient(httpClient, cfg.PlacesAPIKey, cfg.PlacesBaseURL, cfg.PlacesRadius, logger)

	authService := &authsvc.Service{
		Users:      memory.NewUserRepository(),
		Sessions:   sessions,
		Passwords:  security.BcryptHasher{},
		Tokens:     security.RandomTokenGenerator{},
		SessionTTL: cfg.SessionTTL,
		Logger:     logger,
	}

	tripService := &tripsvc.Service{
		Reservations: reservations,
		Offers:       offersClient,
		Logger:       logger,
	}
	if producer := buildEventProducer(cfg, logger); producer != nil {
		tripService.Events = producer
		closers = append(closers, func() {
			if err := producer.Close(); err != nil {
				logger.Warn("kafka producer close failed", "error", err)
			}
		})
	}

	avatars := buildAvatarUploader(cfg, logger)

	return application{
		handlers: ginserver.Handlers{
			Auth:    ginserver.AuthHandler{Service: authService, Logger: logger},
			Profile: ginserver.ProfileHandler{Users: authService.Users, Avatars: avatars, Logger: logger},
			Hotels:  ginserver.HotelHandler{Places: placesClient, Trips: tripService, Logger: logger},
			Offers:  ginserver.OffersHandler{Feed: offersClient},
			Reservations: ginserver.ReservationHandler{
				Service: tripService,
				Logger:  logger,
			},
			Favorites:      ginserver.FavoritesHandler{Store: favoritesStore, Logger: logger},
			Preferences:    ginserver.PreferencesHandler{Store: prefsStore},
			AuthMiddleware: ginserver.AuthMiddleware{Service: authService, Logger: logger}.Handle,
		},
		ready: readyCheck,
	}, cleanup
}

// buildReservationStore prefers the configured document store and degrades
// to process memory, which loses data on restart.
func buildReservationStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (reservation.Repository, func() error) {
	if cfg.MongoURI == "" {
		logger.Info("reservation store: in-memory")
		return memory.NewReservationRepository(), func() error { return nil }
	}
	client, err := mongo.New(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Warn("mongo unavailable, falling back to in-memory reservations", "error", err)
		return memory.NewReservationRepository(), func() error { return nil }
	}
	if err := client.Ping(ctx); err != nil {
		logger.Warn("mongo ping failed, falling back to in-memory reservations", "error", err)
		return memory.NewReservationRepository(), func() error { return nil }
	}
	logger.Info("reservation store: mongo", "database", cfg.MongoDB)
	pingCtx := func() error {
		checkCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return client.Ping(checkCtx)
	}
	return mongo.NewReservationRepository(client.DB), pingCtx
}

func buildSessionStore(cfg config.Config, logger *slog.Logger) domainauth.SessionStore {
	if cfg.RedisAddr == "" {
		logger.Info("session store: in-memory")
		return memory.NewSessionStore()
	}
	store, err := redis.NewSessionStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Warn("redis unavailable, falling back to in-memory sessions", "error", err)
		return memory.NewSessionStore()
	}
	logger.Info("session store: redis", "addr", cfg.RedisAddr)
	return store
}

func buildFavoritesStore(cfg config.Config, logger *slog.Logger) *memory.FavoritesStore {
	snapshot, err := file.NewSnapshotStore(cfg.SnapshotPath)
	if err != nil {
		logger.Warn("favorites snapshot unavailable, favorites will not survive restarts", "error", err, "path", cfg.SnapshotPath)
		return memory.NewFavoritesStore(nil, logger)
	}
	store := memory.NewFavoritesStore(snapshot, logger)
	saved, err := snapshot.LoadFavorites()
	if err != nil {
		logger.Warn("favorites snapshot load failed, starting empty", "error", err, "path", cfg.SnapshotPath)
		return store
	}
	store.Restore(saved)
	logger.Info("favorites restored from snapshot", "users", len(saved), "path", cfg.SnapshotPath)
	return store
}

func buildEventProducer(cfg config.Config, logger *slog.Logger) *kafka.Producer {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("reservation events disabled, no brokers configured")
		return nil
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, sarama.NewConfig())
	if err != nil {
		logger.Warn("kafka unavailable, reservation events disabled", "error", err)
		return nil
	}
	logger.Info("reservation events: kafka", "topic", cfg.KafkaTopic)
	return producer
}

func buildAvatarUploader(cfg config.Config, logger *slog.Logger) s3.AvatarUploader {
	if cfg.S3Endpoint == "" {
		logger.Info("avatar storage disabled, no endpoint configured")
		return s3.NoopUploader{}
	}
	client, err := s3.NewClient(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicEndpoint, logger)
	if err != nil {
		logger.Warn("avatar storage unavailable", "error", err)
		return s3.NoopUploader{}
	}
	logger.Info("avatar storage: s3", "bucket", cfg.S3Bucket)
	return client
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
