package cli

import (
	"errors"
	"sort"
	"strings"

	"github.com/pohonku/pohonku/internal/client/client"
	"github.com/pohonku/pohonku/internal/client/services"
	"github.com/pohonku/pohonku/internal/common"
	"github.com/pohonku/pohonku/internal/validate"
)

// usageError is returned for malformed command arguments.
type usageError string

func (e usageError) Error() string { return "Usage: " + string(e) }

const genericFailure = "Something went wrong, please try again."

// renderError turns a command error into the line shown to the user.
func renderError(err error) string {
	var (
		usage   usageError
		cfgErr  *client.ConfigurationError
		valErr  *validate.ValidationError
		httpErr *client.HTTPError
		netErr  *client.NetworkError
		decErr  *client.DecodeError
	)

	switch {
	case errors.As(err, &usage):
		return usage.Error()

	case errors.As(err, &cfgErr):
		return "The backend address is not configured. Set POHONKU_API_URL or start with -a <url>."

	case errors.As(err, &valErr):
		keys := make([]string, 0, len(valErr.Fields))
		for k := range valErr.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, "  - "+valErr.Fields[k])
		}
		return "Please fix the following:\n" + strings.Join(lines, "\n")

	case errors.Is(err, services.ErrSessionExpired), client.IsAuthError(err):
		return "Your session has expired. Run `login` to sign in again."

	case errors.Is(err, services.ErrNoSession):
		return "You are not logged in. Run `login` first."

	case errors.Is(err, services.ErrLoginFailed):
		if strings.HasSuffix(err.Error(), ": "+common.DefaultLoginError) {
			return "Google authentication failed. Please try again."
		}
		return "Sign-in failed: " + strings.TrimPrefix(err.Error(), services.ErrLoginFailed.Error()+": ")

	case errors.As(err, &httpErr):
		return httpErr.Message

	case errors.As(err, &netErr), errors.As(err, &decErr):
		return genericFailure

	default:
		return err.Error()
	}
}
