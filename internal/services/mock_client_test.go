package services_test

import (
	"context"

	"ratehub/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockClient is a testify mock of upstream.Client.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Login(ctx context.Context, req models.LoginRequest) (models.User, string, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.User), args.String(1), args.Error(2)
}

func (m *MockClient) Register(ctx context.Context, req models.RegisterRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockClient) UpdatePassword(ctx context.Context, role models.Role, req models.UpdatePasswordRequest) error {
	args := m.Called(ctx, role, req)
	return args.Error(0)
}

func (m *MockClient) ListRatedStores(ctx context.Context) ([]models.RatedStore, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RatedStore), args.Error(1)
}

func (m *MockClient) CreateRating(ctx context.Context, req models.RateRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockClient) UpdateRating(ctx context.Context, req models.RateRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockClient) AdminDashboard(ctx context.Context) (models.DashboardStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.DashboardStats), args.Error(1)
}

func (m *MockClient) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockClient) ListStores(ctx context.Context) ([]models.Store, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Store), args.Error(1)
}

func (m *MockClient) AddUser(ctx context.Context, req models.AddUserRequest) (models.User, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockClient) AddStore(ctx context.Context, req models.AddStoreRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockClient) OwnerDashboard(ctx context.Context) (models.OwnerDashboard, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.OwnerDashboard), args.Error(1)
}
