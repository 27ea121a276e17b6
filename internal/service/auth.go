package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL is how long an access token stays valid.
const tokenTTL = 30 * 24 * time.Hour

// AuthService gates the API behind a single shared password. This is an
// access gate, not a credential system: there are no users, only one
// password compared against a bcrypt hash computed at startup.
type AuthService struct {
	passwordHash []byte
	jwtSecret    []byte
	logger       *zap.Logger
}

// NewAuthService hashes the configured password and keeps the JWT secret
// for signing and verification.
func NewAuthService(accessPassword, jwtSecret string, logger *zap.Logger) (*AuthService, error) {
	if accessPassword == "" {
		return nil, fmt.Errorf("access password is not configured")
	}
	if jwtSecret == "" {
		return nil, fmt.Errorf("jwt secret is not configured")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(accessPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash access password: %w", err)
	}

	return &AuthService{
		passwordHash: hash,
		jwtSecret:    []byte(jwtSecret),
		logger:       logger.Named("AuthService"),
	}, nil
}

// Login checks the shared password and issues a 30-day token.
func (s *AuthService) Login(password string) (string, time.Time, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		s.logger.Warn("Failed login attempt")
		return "", time.Time{}, ErrInvalidPassword
	}

	expiresAt := time.Now().Add(tokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   "access",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info("Access token issued", zap.Time("expiresAt", expiresAt))
	return signed, expiresAt, nil
}

// VerifyToken validates a token's signature and expiry.
func (s *AuthService) VerifyToken(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return fmt.Errorf("invalid token")
	}
	return nil
}
