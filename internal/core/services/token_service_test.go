package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

func TestTokenService_GenerateAndValidate(t *testing.T) {
	ctx := context.Background()
	existing := &domain.User{ID: "user-123"}

	t.Run("Success: Round trip", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByID", mock.Anything, "user-123").Return(existing, nil)
		svc := NewTokenService("my-secret-key", "kanso-test", time.Hour, repo)

		token, err := svc.GenerateToken("user-123")
		require.NoError(t, err)

		userID, err := svc.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "user-123", userID)
	})

	t.Run("Fail: Expired token", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewTokenService("my-secret-key", "kanso-test", time.Hour, repo)

		issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		svc.clock = func() time.Time { return issued }
		token, err := svc.GenerateToken("user-123")
		require.NoError(t, err)

		svc.clock = func() time.Time { return issued.Add(2 * time.Hour) }
		_, err = svc.ValidateToken(ctx, token)

		assert.ErrorIs(t, err, ErrInvalidToken)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Fail: Wrong secret", func(t *testing.T) {
		repo := new(MockUserRepository)
		signer := NewTokenService("secret-a", "kanso-test", time.Hour, repo)
		verifier := NewTokenService("secret-b", "kanso-test", time.Hour, repo)

		token, _ := signer.GenerateToken("user-123")
		_, err := verifier.ValidateToken(ctx, token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Fail: Wrong issuer", func(t *testing.T) {
		repo := new(MockUserRepository)
		signer := NewTokenService("shared", "someone-else", time.Hour, repo)
		verifier := NewTokenService("shared", "kanso-test", time.Hour, repo)

		token, _ := signer.GenerateToken("user-123")
		_, err := verifier.ValidateToken(ctx, token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Fail: Unsigned token is rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewTokenService("my-secret-key", "kanso-test", time.Hour, repo)

		claims := jwt.RegisteredClaims{
			Subject:   "user-123",
			Issuer:    "kanso-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Fail: Deleted user", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByID", mock.Anything, "user-123").Return(nil, domain.ErrUserNotFound)
		svc := NewTokenService("my-secret-key", "kanso-test", time.Hour, repo)

		token, _ := svc.GenerateToken("user-123")
		_, err := svc.ValidateToken(ctx, token)

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
