package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/ajaybhatia/xync-server/internal/apperrors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService issues and verifies HS256-signed identity tokens. It holds
// no mutable state: both operations are pure functions over the token, the
// secret and the clock, so rotating the secret simply invalidates every
// outstanding token.
type TokenService struct {
	secret      []byte
	expireHours int
}

type TokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func NewTokenService(secret string, expireHours int) *TokenService {
	if expireHours <= 0 {
		expireHours = 24
	}
	return &TokenService{
		secret:      []byte(secret),
		expireHours: expireHours,
	}
}

// Issue signs a token for the user, valid for the configured number of
// hours from now.
func (s *TokenService) Issue(userID uuid.UUID, email string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.expireHours) * time.Hour)

	claims := TokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return token, expiresAt, nil
}

// Parse verifies signature and expiry and returns the claims. Expired
// tokens produce an error distinguishable (via errors.Is against
// jwt.ErrTokenExpired) from malformed or tampered ones; both map to 401.
func (s *TokenService) Parse(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.Wrap(apperrors.KindUnauthorized, "token expired", err)
		}
		return nil, apperrors.Wrap(apperrors.KindUnauthorized, "invalid token", err)
	}

	return claims, nil
}

// UserID parses the subject claim back into the user id.
func (c *TokenClaims) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, apperrors.Wrap(apperrors.KindUnauthorized, "invalid token subject", err)
	}
	return id, nil
}
