package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type TokenService struct {
	secretKey     []byte
	issuer        string
	tokenDuration time.Duration
	userRepo      domain.UserRepository
	clock         func() time.Time
}

func NewTokenService(secretKey string, issuer string, tokenDuration time.Duration, userRepo domain.UserRepository) *TokenService {
	return &TokenService{
		secretKey:     []byte(secretKey),
		issuer:        issuer,
		tokenDuration: tokenDuration,
		userRepo:      userRepo,
		clock:         time.Now,
	}
}

func (s *TokenService) GenerateToken(userID string) (string, error) {
	now := s.clock()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("token service: failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken checks signature, issuer and expiry, and that the subject
// still exists. It returns the user id.
func (s *TokenService) ValidateToken(ctx context.Context, tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if _, err := s.userRepo.GetByID(ctx, claims.Subject); err != nil {
		return "", fmt.Errorf("user no longer exists or db error: %w", err)
	}

	return claims.Subject, nil
}
