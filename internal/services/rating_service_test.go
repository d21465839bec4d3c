package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"ratehub/internal/models"
	"ratehub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ratingOf(v int) *int { return &v }

func TestRatingService_FirstSubmissionTakesCreatePath(t *testing.T) {
	mockClient := new(MockClient)
	service := services.NewRatingService(mockClient)

	refreshed := []models.RatedStore{
		{ID: 1, Name: "Acme", AverageRating: 3.5, YourRating: ratingOf(4)},
	}
	mockClient.On("CreateRating", mock.Anything, models.RateRequest{StoreID: 1, Rating: 4}).Return(nil).Once()
	mockClient.On("ListRatedStores", mock.Anything).Return(refreshed, nil).Once()

	result, err := service.Submit(context.Background(), 1, 4, false, 0)

	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.False(t, result.Updated)
	assert.Equal(t, refreshed, result.Stores)
	mockClient.AssertExpectations(t)
	mockClient.AssertNotCalled(t, "UpdateRating", mock.Anything, mock.Anything)
}

func TestRatingService_SecondSubmissionTakesUpdatePath(t *testing.T) {
	mockClient := new(MockClient)
	service := services.NewRatingService(mockClient)

	refreshed := []models.RatedStore{
		{ID: 1, Name: "Acme", AverageRating: 4.0, YourRating: ratingOf(5)},
	}
	mockClient.On("UpdateRating", mock.Anything, models.RateRequest{StoreID: 1, Rating: 5}).Return(nil).Once()
	mockClient.On("ListRatedStores", mock.Anything).Return(refreshed, nil).Once()

	result, err := service.Submit(context.Background(), 1, 5, true, 4)

	require.NoError(t, err)
	assert.True(t, result.Updated)
	mockClient.AssertExpectations(t)
	mockClient.AssertNotCalled(t, "CreateRating", mock.Anything, mock.Anything)
}

func TestRatingService_RejectsOutOfRangeValues(t *testing.T) {
	mockClient := new(MockClient)
	service := services.NewRatingService(mockClient)

	for _, value := range []int{0, -1, 6} {
		_, err := service.Submit(context.Background(), 1, value, false, 0)
		assert.ErrorIs(t, err, services.ErrInvalidRating)
	}
	// No request may be issued for an invalid value.
	mockClient.AssertNotCalled(t, "CreateRating", mock.Anything, mock.Anything)
	mockClient.AssertNotCalled(t, "UpdateRating", mock.Anything, mock.Anything)
}

func TestRatingService_SkipsRedundantWrite(t *testing.T) {
	mockClient := new(MockClient)
	service := services.NewRatingService(mockClient)

	result, err := service.Submit(context.Background(), 1, 4, true, 4)

	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Nil(t, result.Stores)
	mockClient.AssertNotCalled(t, "UpdateRating", mock.Anything, mock.Anything)
	mockClient.AssertNotCalled(t, "ListRatedStores", mock.Anything)
}

func TestRatingService_FailureLeavesNothingBehind(t *testing.T) {
	mockClient := new(MockClient)
	service := services.NewRatingService(mockClient)

	mockClient.On("CreateRating", mock.Anything, mock.Anything).
		Return(fmt.Errorf("network down")).Once()

	result, err := service.Submit(context.Background(), 1, 4, false, 0)

	assert.Error(t, err)
	assert.Nil(t, result.Stores)
	// The authoritative refresh only runs after a successful submission.
	mockClient.AssertNotCalled(t, "ListRatedStores", mock.Anything)
	mockClient.AssertExpectations(t)

	// The service stays usable after a failure.
	refreshed := []models.RatedStore{{ID: 1, YourRating: ratingOf(4)}}
	mockClient.On("CreateRating", mock.Anything, mock.Anything).Return(nil).Once()
	mockClient.On("ListRatedStores", mock.Anything).Return(refreshed, nil).Once()
	result, err = service.Submit(context.Background(), 1, 4, false, 0)
	require.NoError(t, err)
	assert.Equal(t, refreshed, result.Stores)
}

func TestRatingService_RefreshFailureSurfaces(t *testing.T) {
	mockClient := new(MockClient)
	service := services.NewRatingService(mockClient)

	mockClient.On("CreateRating", mock.Anything, mock.Anything).Return(nil).Once()
	mockClient.On("ListRatedStores", mock.Anything).
		Return(nil, fmt.Errorf("refresh failed")).Once()

	_, err := service.Submit(context.Background(), 1, 4, false, 0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "refresh")
}

func TestRatingService_BlocksReentrantSubmissionPerStore(t *testing.T) {
	mockClient := new(MockClient)
	service := services.NewRatingService(mockClient)

	entered := make(chan struct{})
	release := make(chan struct{})
	mockClient.On("CreateRating", mock.Anything, models.RateRequest{StoreID: 1, Rating: 4}).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).Return(nil).Once()
	mockClient.On("ListRatedStores", mock.Anything).Return([]models.RatedStore{}, nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := service.Submit(context.Background(), 1, 4, false, 0)
		done <- err
	}()

	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("first submission never reached the client")
	}

	// Same store while the first submission is suspended: rejected.
	_, err := service.Submit(context.Background(), 1, 5, false, 0)
	assert.ErrorIs(t, err, services.ErrSubmissionInFlight)

	close(release)
	require.NoError(t, <-done)

	// The guard is released once the submission completes.
	mockClient.On("UpdateRating", mock.Anything, mock.Anything).Return(nil).Once()
	mockClient.On("ListRatedStores", mock.Anything).Return([]models.RatedStore{}, nil).Once()
	_, err = service.Submit(context.Background(), 1, 5, true, 4)
	require.NoError(t, err)
	mockClient.AssertExpectations(t)
}
