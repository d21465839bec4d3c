package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ratehub/internal/models"
	"ratehub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdminService_AddNormalUserSkipsStoreCreation(t *testing.T) {
	mockClient := new(MockClient)
	service := services.NewAdminService(mockClient)

	req := models.AddUserRequest{
		Name:     "A Perfectly Ordinary Customer",
		Email:    "customer@example.com",
		Password: "Sup3rSecret!",
		Role:     models.RoleNormal,
	}
	created := models.User{ID: 42, Name: req.Name, Email: req.Email, Role: models.RoleNormal}
	mockClient.On("AddUser", mock.Anything, req).Return(created, nil).Once()

	user, err := service.AddUser(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	mockClient.AssertExpectations(t)
	mockClient.AssertNotCalled(t, "AddStore", mock.Anything, mock.Anything)
}

func TestAdminService_AddStoreOwnerCreatesLinkedStore(t *testing.T) {
	mockClient := new(MockClient)
	service := services.NewAdminService(mockClient)

	req := models.AddUserRequest{
		Name:     "Future Proprietor Of Acme Hardware",
		Email:    "owner@example.com",
		Password: "Sup3rSecret!",
		Address:  "12 Main Street",
		Role:     models.RoleStoreOwner,
	}
	created := models.User{ID: 9, Name: req.Name, Email: req.Email, Role: models.RoleStoreOwner}
	mockClient.On("AddUser", mock.Anything, req).Return(created, nil).Once()
	mockClient.On("AddStore", mock.Anything, models.AddStoreRequest{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: 9,
	}).Return(nil).Once()

	_, err := service.AddUser(context.Background(), req)

	require.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func TestAdminService_StoreCreationFailureIsPartial(t *testing.T) {
	mockClient := new(MockClient)
	service := services.NewAdminService(mockClient)

	req := models.AddUserRequest{
		Name:     "Future Proprietor Of Acme Hardware",
		Email:    "owner@example.com",
		Password: "Sup3rSecret!",
		Role:     models.RoleStoreOwner,
	}
	created := models.User{ID: 9, Role: models.RoleStoreOwner}
	mockClient.On("AddUser", mock.Anything, req).Return(created, nil).Once()
	mockClient.On("AddStore", mock.Anything, mock.Anything).
		Return(fmt.Errorf("store rejected")).Once()

	user, err := service.AddUser(context.Background(), req)

	// The user exists without its store; the error must say so distinctly
	// and carry the orphaned account's ID.
	var partial *services.StoreCreationError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, int64(9), partial.UserID)
	assert.Equal(t, int64(9), user.ID)
	mockClient.AssertExpectations(t)
}

func TestAdminService_AddUserFailureIsTotal(t *testing.T) {
	mockClient := new(MockClient)
	service := services.NewAdminService(mockClient)

	req := models.AddUserRequest{Role: models.RoleStoreOwner}
	mockClient.On("AddUser", mock.Anything, req).
		Return(models.User{}, fmt.Errorf("duplicate email")).Once()

	_, err := service.AddUser(context.Background(), req)

	assert.Error(t, err)
	var partial *services.StoreCreationError
	assert.False(t, errors.As(err, &partial),
		"a total failure must not look like a partial one")
	mockClient.AssertNotCalled(t, "AddStore", mock.Anything, mock.Anything)
}
