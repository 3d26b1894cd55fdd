package common

import "errors"

// ErrInvalidToken is returned when a stored token cannot be parsed. Match it
// with errors.Is.
var ErrInvalidToken = errors.New("invalid token")
