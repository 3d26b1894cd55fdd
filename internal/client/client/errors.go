package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotConfigured = errors.New("api url is not configured")
	ErrUnauthorized  = errors.New("unauthorized")
)

// ConfigurationError means the client cannot build a request URL.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason == "" {
		return "API URL is not configured"
	}
	return "API URL is not configured: " + e.Reason
}

func (e *ConfigurationError) Unwrap() error { return ErrNotConfigured }

// HTTPError is a non-2xx response. Message is taken from the body's
// "message" or "error" field when present.
type HTTPError struct {
	Status     int
	StatusText string
	Message    string
}

func (e *HTTPError) Error() string { return e.Message }

func (e *HTTPError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// NetworkError is a transport failure: DNS, refused connection, timeout or
// a cancelled context.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError is a successful response whose body could not be decoded.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode response: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

// IsAuthError reports whether err is a 401 from the backend.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status
	}
	return 0
}
