package services

import (
	"context"
	"fmt"

	"ratehub/internal/models"
	"ratehub/internal/upstream"
)

// AdminService drives the administration views: platform counts, the
// user and store lists, and the account-creation workflow.
type AdminService struct {
	client upstream.Client
}

// NewAdminService creates an AdminService.
func NewAdminService(client upstream.Client) *AdminService {
	return &AdminService{client: client}
}

// Dashboard fetches the platform-wide counts.
func (s *AdminService) Dashboard(ctx context.Context) (models.DashboardStats, error) {
	stats, err := s.client.AdminDashboard(ctx)
	if err != nil {
		return models.DashboardStats{}, fmt.Errorf("failed to fetch dashboard counts: %w", err)
	}
	return stats, nil
}

// Users fetches every account.
func (s *AdminService) Users(ctx context.Context) ([]models.User, error) {
	users, err := s.client.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}

// Stores fetches every registered store.
func (s *AdminService) Stores(ctx context.Context) ([]models.Store, error) {
	stores, err := s.client.ListStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stores: %w", err)
	}
	return stores, nil
}

// AddUser creates an account and, for store owners, the linked store in
// one explicit workflow step. When store creation fails after the account
// was created the returned error is a *StoreCreationError: the account
// exists without its store and is not rolled back.
func (s *AdminService) AddUser(ctx context.Context, req models.AddUserRequest) (models.User, error) {
	user, err := s.client.AddUser(ctx, req)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	if req.Role == models.RoleStoreOwner {
		store := models.AddStoreRequest{
			Name:    req.Name,
			Email:   req.Email,
			Address: req.Address,
			OwnerID: user.ID,
		}
		if err := s.client.AddStore(ctx, store); err != nil {
			return user, &StoreCreationError{UserID: user.ID, Err: err}
		}
	}
	return user, nil
}
