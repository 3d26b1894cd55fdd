// Package services contains application services for the PohonKu client.
// They sit between the CLI and the resource clients and own the session
// rules: which calls carry a token, and what happens when it is rejected.
package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/pohonku/pohonku/internal/client/models"
	"github.com/pohonku/pohonku/internal/common"
	"github.com/pohonku/pohonku/internal/logging"
)

// DefaultRedirect is where the user lands after login when nothing else was
// requested.
const DefaultRedirect = "/dashboard"

// AuthService drives the Google sign-in flow and the local session.
//
// Contract:
//   - LoginURL: return the OAuth entry URL and remember redirect, when
//     given, as the destination after login.
//   - HandleCallback: accept or reject the callback parameters; returns the
//     remembered redirect on success.
//   - Me: fetch the profile; a rejected session is cleared.
//   - Logout: forget the session.
//   - Session: the stored session, or nil.
//   - Authorize: ctx carrying the session, or ErrNoSession.
type AuthService interface {
	LoginURL(ctx context.Context, redirect string) (string, error)
	HandleCallback(ctx context.Context, params url.Values) (string, error)
	Me(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) (*models.Session, error)
	Authorize(ctx context.Context) (context.Context, error)
}

type authService struct {
	*guard
	api AuthAPI
}

func NewAuthService(api AuthAPI, store SessionStore, log logging.Logger) AuthService {
	return &authService{guard: newGuard(store, log), api: api}
}

func (a *authService) LoginURL(ctx context.Context, redirect string) (string, error) {
	u, err := a.api.GoogleLoginURL()
	if err != nil {
		return "", err
	}
	if redirect == "" {
		return u, nil
	}
	if err := a.store.SetRedirect(ctx, redirect); err != nil {
		return "", err
	}
	return u, nil
}

// HandleCallback stores the tokens when the callback reports success and
// carries both of them. Anything else is ErrLoginFailed with the reported
// reason, or common.DefaultLoginError when none was given.
func (a *authService) HandleCallback(ctx context.Context, params url.Values) (string, error) {
	access := params.Get("accessToken")
	refresh := params.Get("refreshToken")

	if params.Get("success") != "true" || access == "" || refresh == "" {
		reason := params.Get("error")
		if reason == "" {
			reason = common.DefaultLoginError
		}
		a.log.Warn(ctx, "google login failed", "reason", reason)
		return "", fmt.Errorf("%w: %s", ErrLoginFailed, reason)
	}

	if err := a.store.Set(ctx, models.Session{AccessToken: access, RefreshToken: refresh}); err != nil {
		return "", err
	}
	a.log.Info(ctx, "google login succeeded")

	redirect, err := a.store.PopRedirect(ctx)
	if err != nil {
		return "", err
	}
	if redirect == "" {
		redirect = DefaultRedirect
	}
	return redirect, nil
}

func (a *authService) Me(ctx context.Context) (*models.User, error) {
	ctx, err := a.authorize(ctx)
	if err != nil {
		return nil, err
	}
	env, err := a.api.Me(ctx)
	if err != nil {
		return nil, a.check(ctx, err)
	}
	return &env.Data, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}

func (a *authService) Session(ctx context.Context) (*models.Session, error) {
	return a.store.Get(ctx)
}

func (a *authService) Authorize(ctx context.Context) (context.Context, error) {
	return a.authorize(ctx)
}
