package services

import (
	"context"
	"fmt"

	"ratehub/internal/models"
	"ratehub/internal/session"
	"ratehub/internal/upstream"
)

// AccountService handles login, logout, registration and password changes,
// keeping the session store in step with the upstream auth endpoints.
type AccountService struct {
	client   upstream.Client
	sessions *session.Store
}

// NewAccountService creates an AccountService.
func NewAccountService(client upstream.Client, sessions *session.Store) *AccountService {
	return &AccountService{
		client:   client,
		sessions: sessions,
	}
}

// Login authenticates against the upstream service and, on success,
// replaces the process session. A rejected login leaves the session empty.
func (s *AccountService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	user, token, err := s.client.Login(ctx, req)
	if err != nil {
		return models.User{}, fmt.Errorf("login failed: %w", err)
	}
	if err := s.sessions.Login(user, token); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Logout clears the session. Safe to call when already logged out.
func (s *AccountService) Logout() error {
	return s.sessions.Logout()
}

// Register creates a normal-user account. It does not log the user in.
func (s *AccountService) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := s.client.Register(ctx, req); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	return nil
}

// UpdatePassword changes the logged-in user's password via the endpoint
// matching their role.
func (s *AccountService) UpdatePassword(ctx context.Context, req models.UpdatePasswordRequest) error {
	snap := s.sessions.Current()
	if !snap.Active() {
		return fmt.Errorf("no active session: %w", upstream.ErrUnauthorized)
	}
	if err := s.client.UpdatePassword(ctx, snap.User.Role, req); err != nil {
		return fmt.Errorf("password update failed: %w", err)
	}
	return nil
}
