// Package gate decides whether a navigation to a role-restricted view is
// permitted. It is a pure function of the session snapshot and the
// caller's role set; it performs no network access.
package gate

import (
	"ratehub/internal/models"
	"ratehub/internal/session"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	// Allow renders the guarded view.
	Allow Decision = iota
	// RedirectToLogin sends an unauthenticated visitor to the login view.
	RedirectToLogin
	// RedirectToHome sends an authenticated user of the wrong role home.
	RedirectToHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect-to-login"
	case RedirectToHome:
		return "redirect-to-home"
	}
	return "unknown"
}

// Decide evaluates the gate for one navigation. It must be consulted on
// every navigation to a guarded view, never cached: the session can change
// between navigations.
func Decide(snap session.Session, allowed ...models.Role) Decision {
	if !snap.Active() {
		return RedirectToLogin
	}
	for _, role := range allowed {
		if snap.User.Role == role {
			return Allow
		}
	}
	return RedirectToHome
}
