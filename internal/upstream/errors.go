package upstream

import "errors"

// Errors the rating service's HTTP contract maps onto. Handlers branch on
// these to pick the user-facing failure signal.
var (
	// ErrUnauthorized covers both rejected credentials at login and an
	// invalid or expired token on any later call.
	ErrUnauthorized = errors.New("upstream rejected the credentials")
	ErrForbidden    = errors.New("upstream denied access for this role")
	ErrNotFound     = errors.New("upstream resource not found")
	ErrUpstream     = errors.New("upstream request failed")
)
