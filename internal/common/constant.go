// Package common contains constants and sentinel errors shared by the
// PohonKu client packages.
package common

// APIPrefix is prepended to every backend resource path.
const APIPrefix = "/api/v1"

// Outbound HTTP header names.
const (
	AuthorizationHeader = "Authorization"
	RequestIDHeader     = "X-Request-ID"
)

// Keys of the persistent session store.
const (
	AccessTokenKey       = "access_token"
	RefreshTokenKey      = "refresh_token"
	PostLoginRedirectKey = "post_login_redirect"
)

// DefaultLoginError is reported when the OAuth callback signals failure
// without naming a reason.
const DefaultLoginError = "google_failed"
