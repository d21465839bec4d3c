package session

import (
	"fmt"
	"log"
	"sync"
	"time"

	"ratehub/internal/models"

	"github.com/dgrijalva/jwt-go"
)

// Session is the authenticated identity plus its credential token. Token
// and User are always set or cleared together.
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Active reports whether the session carries an authenticated identity.
func (s Session) Active() bool {
	return s.Token != "" && s.User != nil
}

// Store is the single process-wide session holder. Every mutation writes
// through to the configured persistence so the session survives a restart.
type Store struct {
	mu      sync.RWMutex
	current Session
	persist Persistence
}

// NewStore initializes the store from persisted state, or to the empty
// session on a cold start. A persisted token that turns out to be an
// already expired JWT is discarded and the cleared state written back.
func NewStore(p Persistence) (*Store, error) {
	sess, err := p.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load persisted session: %w", err)
	}
	if !sess.Active() {
		// Never carry a half-written session forward.
		sess = Session{}
	} else if tokenExpired(sess.Token) {
		log.Printf("Persisted session for %s has an expired token, clearing it", sess.User.Email)
		sess = Session{}
		if err := p.Save(sess); err != nil {
			return nil, fmt.Errorf("failed to clear expired session: %w", err)
		}
	}
	return &Store{current: sess, persist: p}, nil
}

// Login replaces the current session with the given identity and token and
// persists it. Inputs are assumed validated by the caller.
func (s *Store) Login(user models.User, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := user
	s.current = Session{Token: token, User: &u}
	if err := s.persist.Save(s.current); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Logout clears the session and persists the cleared state. Calling it
// while already logged out is a no-op.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.current.Active() {
		return nil
	}
	s.current = Session{}
	if err := s.persist.Save(s.current); err != nil {
		return fmt.Errorf("failed to persist cleared session: %w", err)
	}
	return nil
}

// Current returns a read-only snapshot of the session.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.current
	if snap.User != nil {
		u := *snap.User
		snap.User = &u
	}
	return snap
}

// Token returns the current credential token, empty when logged out. It
// satisfies the upstream client's token source.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

// tokenExpired inspects the token without verifying its signature. The
// token is opaque to the client; only when it happens to be a JWT can the
// expiry be read. Anything unparseable is left for the server to reject.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return false
	}
	return !claims.VerifyExpiresAt(time.Now().Unix(), false)
}
