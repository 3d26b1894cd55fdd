package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pohonku/pohonku/internal/client/client"
	"github.com/pohonku/pohonku/internal/client/services"
	"github.com/pohonku/pohonku/internal/validate"
)

func TestRenderError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"usage", usageError("adopt <speciesId>"), "Usage: adopt <speciesId>"},
		{"configuration", &client.ConfigurationError{}, "The backend address is not configured. Set POHONKU_API_URL or start with -a <url>."},
		{"validation", &validate.ValidationError{Fields: map[string]string{
			"speciesId": "speciesId is required",
			"nameOnTag": "nameOnTag must be at most 100 characters",
		}}, "Please fix the following:\n  - nameOnTag must be at most 100 characters\n  - speciesId is required"},
		{"expired", services.ErrSessionExpired, "Your session has expired. Run `login` to sign in again."},
		{"401", fmt.Errorf("create order: %w", &client.HTTPError{Status: 401, Message: "Token expired"}), "Your session has expired. Run `login` to sign in again."},
		{"no session", services.ErrNoSession, "You are not logged in. Run `login` first."},
		{"google failed", fmt.Errorf("%w: google_failed", services.ErrLoginFailed), "Google authentication failed. Please try again."},
		{"login reason", fmt.Errorf("%w: access_denied", services.ErrLoginFailed), "Sign-in failed: access_denied"},
		{"http", &client.HTTPError{Status: 409, Message: "Species out of stock"}, "Species out of stock"},
		{"network", &client.NetworkError{Method: "GET", URL: "http://x", Err: context.DeadlineExceeded}, genericFailure},
		{"decode", &client.DecodeError{Err: errors.New("unexpected EOF")}, genericFailure},
		{"other", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderError(tt.err))
		})
	}
}
