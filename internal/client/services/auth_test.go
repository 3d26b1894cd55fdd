package services

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pohonku/pohonku/internal/client/client"
	"github.com/pohonku/pohonku/internal/client/models"
)

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return tok
}

func TestAuthService_LoginURL(t *testing.T) {
	store := setupStore(t)
	api := &fakeAuthAPI{LoginURL: "https://api.example/api/v1/auth/google"}
	svc := NewAuthService(api, store, nil)
	ctx := context.Background()

	u, err := svc.LoginURL(ctx, "/adopt/sp-1")
	require.NoError(t, err)
	assert.Equal(t, api.LoginURL, u)

	_, err = svc.LoginURL(ctx, "")
	require.NoError(t, err)

	redirect, err := store.PopRedirect(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/adopt/sp-1", redirect, "an empty redirect keeps the pending one")

	api.LoginURLErr = &client.ConfigurationError{}
	_, err = svc.LoginURL(ctx, "/adopt/sp-1")
	require.ErrorIs(t, err, client.ErrNotConfigured)
}

func TestAuthService_HandleCallback(t *testing.T) {
	ctx := context.Background()

	t.Run("success stores both tokens and returns the saved redirect", func(t *testing.T) {
		store := setupStore(t)
		svc := NewAuthService(&fakeAuthAPI{LoginURL: "x"}, store, nil)
		_, err := svc.LoginURL(ctx, "/adopt/sp-1")
		require.NoError(t, err)

		redirect, err := svc.HandleCallback(ctx, url.Values{
			"success": {"true"}, "accessToken": {"acc"}, "refreshToken": {"ref"},
		})
		require.NoError(t, err)
		assert.Equal(t, "/adopt/sp-1", redirect)

		sess, err := svc.Session(ctx)
		require.NoError(t, err)
		assert.Equal(t, &models.Session{AccessToken: "acc", RefreshToken: "ref"}, sess)
	})

	t.Run("no saved redirect goes to the dashboard", func(t *testing.T) {
		svc := NewAuthService(&fakeAuthAPI{}, setupStore(t), nil)
		redirect, err := svc.HandleCallback(ctx, url.Values{
			"success": {"true"}, "accessToken": {"acc"}, "refreshToken": {"ref"},
		})
		require.NoError(t, err)
		assert.Equal(t, DefaultRedirect, redirect)
	})

	tests := []struct {
		name   string
		params url.Values
		reason string
	}{
		{"explicit failure", url.Values{"success": {"false"}, "error": {"access_denied"}}, "access_denied"},
		{"missing refresh token", url.Values{"success": {"true"}, "accessToken": {"acc"}}, "google_failed"},
		{"no parameters", url.Values{}, "google_failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := setupStore(t)
			svc := NewAuthService(&fakeAuthAPI{}, store, nil)

			_, err := svc.HandleCallback(ctx, tt.params)
			require.ErrorIs(t, err, ErrLoginFailed)
			assert.Contains(t, err.Error(), tt.reason)

			sess, err := store.Get(ctx)
			require.NoError(t, err)
			assert.Nil(t, sess)
		})
	}
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()

	t.Run("no session never calls the backend", func(t *testing.T) {
		api := &fakeAuthAPI{}
		svc := NewAuthService(api, setupStore(t), nil)

		_, err := svc.Me(ctx)
		require.ErrorIs(t, err, ErrNoSession)
		assert.Zero(t, api.MeCalls)
	})

	t.Run("sends the stored token", func(t *testing.T) {
		store := setupStore(t)
		loggedIn(t, store)
		api := &fakeAuthAPI{MeRet: &models.Envelope[models.User]{Success: true, Data: models.User{ID: "u1", FullName: "Budi"}}}
		svc := NewAuthService(api, store, nil)

		u, err := svc.Me(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Budi", u.FullName)
		assert.Equal(t, "access-1", api.LastToken)
	})

	t.Run("401 clears the session", func(t *testing.T) {
		store := setupStore(t)
		loggedIn(t, store)
		require.NoError(t, store.SetRedirect(ctx, "/dashboard"))
		svc := NewAuthService(&fakeAuthAPI{MeErr: unauthorized}, store, nil)

		_, err := svc.Me(ctx)
		require.True(t, client.IsAuthError(err))

		sess, err := store.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, sess)

		redirect, err := store.PopRedirect(ctx)
		require.NoError(t, err)
		assert.Equal(t, "/dashboard", redirect, "intended destination survives")
	})

	t.Run("other errors keep the session", func(t *testing.T) {
		store := setupStore(t)
		loggedIn(t, store)
		svc := NewAuthService(&fakeAuthAPI{MeErr: &client.NetworkError{Err: errors.New("refused")}}, store, nil)

		_, err := svc.Me(ctx)
		require.Error(t, err)

		sess, err := store.Get(ctx)
		require.NoError(t, err)
		assert.NotNil(t, sess)
	})
}

func TestAuthService_Authorize(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	svc := NewAuthService(&fakeAuthAPI{}, store, nil)

	_, err := svc.Authorize(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	fresh := signed(t, time.Now().Add(time.Hour))
	require.NoError(t, store.Set(ctx, models.Session{AccessToken: fresh, RefreshToken: "r"}))
	actx, err := svc.Authorize(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh, tokenFrom(actx))

	require.NoError(t, store.Set(ctx, models.Session{AccessToken: signed(t, time.Now().Add(-time.Minute)), RefreshToken: "r"}))
	_, err = svc.Authorize(ctx)
	require.ErrorIs(t, err, ErrSessionExpired)
	require.ErrorIs(t, err, ErrNoSession)

	sess, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	loggedIn(t, store)
	svc := NewAuthService(&fakeAuthAPI{}, store, nil)

	require.NoError(t, svc.Logout(ctx))
	require.NoError(t, svc.Logout(ctx))

	sess, err := svc.Session(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)
}
