package models

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pohonku/pohonku/internal/common"
)

// Session is the pair of tokens issued by the backend after login.
type Session struct {
	AccessToken  string
	RefreshToken string
}

// ExpiresAt reads the exp claim of the access token without verifying the
// signature; the client has no key and only uses it to warn early. A token
// without exp yields the zero time.
func (s Session) ExpiresAt() (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, &claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}

// Expired reports whether the access token is past its exp claim at now.
// Opaque or exp-less tokens are never considered expired.
func (s Session) Expired(now time.Time) bool {
	exp, err := s.ExpiresAt()
	if err != nil || exp.IsZero() {
		return false
	}
	return !now.Before(exp)
}
