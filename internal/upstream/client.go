// Package upstream is the client side of the store-rating service's fixed
// HTTP contract. Nothing in this process talks to the backend except
// through a Client.
package upstream

import (
	"context"

	"ratehub/internal/models"
)

// TokenSource supplies the bearer token for authenticated calls; an empty
// token means the call goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Client mirrors the rating service's endpoints one method per operation.
type Client interface {
	// Login exchanges credentials for the identity and its token.
	Login(ctx context.Context, req models.LoginRequest) (models.User, string, error)
	Register(ctx context.Context, req models.RegisterRequest) error
	// UpdatePassword targets the role-specific endpoint: store owners use
	// /store-owner/update-password, everyone else /user/update-password.
	UpdatePassword(ctx context.Context, role models.Role, req models.UpdatePasswordRequest) error

	ListRatedStores(ctx context.Context) ([]models.RatedStore, error)
	CreateRating(ctx context.Context, req models.RateRequest) error
	UpdateRating(ctx context.Context, req models.RateRequest) error

	AdminDashboard(ctx context.Context) (models.DashboardStats, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListStores(ctx context.Context) ([]models.Store, error)
	AddUser(ctx context.Context, req models.AddUserRequest) (models.User, error)
	AddStore(ctx context.Context, req models.AddStoreRequest) error

	OwnerDashboard(ctx context.Context) (models.OwnerDashboard, error)
}
