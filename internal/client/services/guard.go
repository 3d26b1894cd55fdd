package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pohonku/pohonku/internal/client/client"
	"github.com/pohonku/pohonku/internal/logging"
)

var (
	ErrNoSession      = errors.New("not logged in")
	ErrSessionExpired = fmt.Errorf("%w: session expired", ErrNoSession)
	ErrLoginFailed    = errors.New("login failed")
	ErrPaymentBusy    = errors.New("a payment is already in progress")
)

// guard attaches the stored session to outgoing calls and drops it once the
// backend rejects it.
type guard struct {
	store SessionStore
	log   logging.Logger
	now   func() time.Time
}

func newGuard(store SessionStore, log logging.Logger) *guard {
	if log == nil {
		log = logging.Nop()
	}
	return &guard{store: store, log: log, now: time.Now}
}

// authorize returns ctx carrying the stored session. A session whose access
// token is already past exp is cleared instead of being sent.
func (g *guard) authorize(ctx context.Context) (context.Context, error) {
	sess, err := g.store.Get(ctx)
	if err != nil {
		return ctx, err
	}
	if sess == nil {
		return ctx, ErrNoSession
	}
	if sess.Expired(g.now()) {
		g.log.Info(ctx, "stored session expired")
		if err := g.store.Clear(ctx); err != nil {
			return ctx, err
		}
		return ctx, ErrSessionExpired
	}
	return client.WithSession(ctx, sess), nil
}

// check clears the session when err is an authentication failure and
// returns err unchanged.
func (g *guard) check(ctx context.Context, err error) error {
	if err == nil || !client.IsAuthError(err) {
		return err
	}
	g.log.Info(ctx, "session rejected by backend, clearing")
	if cerr := g.store.Clear(ctx); cerr != nil {
		g.log.Error(ctx, "clear session", "error", cerr)
	}
	return err
}
