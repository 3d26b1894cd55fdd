package client

import (
	"context"

	"github.com/pohonku/pohonku/internal/client/models"
)

type sessionKey struct{}

// WithSession returns a context whose requests are authenticated with s.
// A nil s or an empty access token removes authentication.
func WithSession(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session stored by WithSession, if any.
func SessionFrom(ctx context.Context) (*models.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*models.Session)
	if !ok || s == nil || s.AccessToken == "" {
		return nil, false
	}
	return s, true
}
