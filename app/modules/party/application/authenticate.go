package partyservice

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	partydb "github.com/FamilyVerse/party-os/app/modules/party/infrastructure/repositories"
)

// SessionClaims are the JWT claims embedded in a guest session token.
type SessionClaims struct {
	DisplayName string `json:"display_name"`
	jwt.RegisteredClaims
}

// Authenticate checks a guest's display name and PIN and returns a signed
// session token. Attempts are rate limited per display name.
func (s *PartyService) Authenticate(ctx context.Context, displayName, pin string) (string, *partydb.PartyUser, error) {
	if !s.limiterFor(displayName).Allow() {
		s.logger.Warn("PIN attempt rate limit hit", slog.String("display_name", displayName))
		return "", nil, ErrTooManyAttempts
	}

	guest, err := s.PartyUserDB.GetGuestByName(ctx, displayName)
	if errors.Is(err, partydb.ErrGuestNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		s.logger.Error("Failed to look up guest", slog.Any("error", err))
		return "", nil, fmt.Errorf("failed to look up guest: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(guest.PIN), []byte(pin)) != 1 {
		return "", nil, ErrInvalidCredentials
	}
	if guest.Status != partydb.GuestStatusApproved {
		return "", nil, ErrGuestNotApproved
	}

	now := time.Now()
	claims := SessionClaims{
		DisplayName: guest.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   guest.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		s.logger.Error("Failed to sign session token", slog.Any("error", err))
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	s.logger.Info("Guest authenticated", slog.String("display_name", displayName))
	return token, guest, nil
}

// VerifySession parses and validates a session token, returning its claims.
func (s *PartyService) VerifySession(tokenString string) (*SessionClaims, error) {
	claims := new(SessionClaims)
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}
	return claims, nil
}
