package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/CristhianAlv-ing/HotelFind/internal/domain/auth"
	domainuser "github.com/CristhianAlv-ing/HotelFind/internal/domain/user"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/security"
	"github.com/CristhianAlv-ing/HotelFind/internal/infra/storage/memory"
)

func newService() *Service {
	return &Service{
		Users:      memory.NewUserRepository(),
		Sessions:   memory.NewSessionStore(),
		Passwords:  security.BcryptHasher{Cost: 4},
		Tokens:     security.RandomTokenGenerator{},
		SessionTTL: time.Hour,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestRegisterIssuesSession(t *testing.T) {
	service := newService()
	ctx := context.Background()

	result, err := service.Register(ctx, RegisterParams{
		Email:    "  Ana@Example.COM ",
		Name:     "Ana",
		Phone:    "+504 9999 0000",
		Password: "correcthorse",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", result.User.Email)
	assert.Equal(t, "+504 9999 0000", result.User.Phone)
	require.NotEmpty(t, result.Token)

	resolved, err := service.ResolveToken(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, resolved.User.ID)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	service := newService()

	_, err := service.Register(context.Background(), RegisterParams{
		Email:    "ana@example.com",
		Name:     "Ana",
		Password: "short",
	})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	service := newService()
	ctx := context.Background()

	_, err := service.Register(ctx, RegisterParams{Email: "ana@example.com", Name: "Ana", Password: "correcthorse"})
	require.NoError(t, err)

	_, err = service.Register(ctx, RegisterParams{Email: "ANA@example.com", Name: "Otra", Password: "correcthorse"})
	assert.ErrorIs(t, err, domainuser.ErrEmailAlreadyUsed)
}

func TestLogin(t *testing.T) {
	service := newService()
	ctx := context.Background()

	registered, err := service.Register(ctx, RegisterParams{Email: "ana@example.com", Name: "Ana", Password: "correcthorse"})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		result, err := service.Login(ctx, LoginParams{Email: "ana@example.com", Password: "correcthorse"})
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, result.User.ID)
		assert.NotEqual(t, registered.Token, result.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(ctx, LoginParams{Email: "ana@example.com", Password: "incorrect1"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := service.Login(ctx, LoginParams{Email: "nadie@example.com", Password: "correcthorse"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLogoutInvalidatesToken(t *testing.T) {
	service := newService()
	ctx := context.Background()

	result, err := service.Register(ctx, RegisterParams{Email: "ana@example.com", Name: "Ana", Password: "correcthorse"})
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, result.Token))

	_, err = service.ResolveToken(ctx, result.Token)
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)
}

func TestLogoutUnknownTokenIsNoop(t *testing.T) {
	service := newService()
	assert.NoError(t, service.Logout(context.Background(), "never-issued"))
}
