package services

import (
	"context"
	"fmt"
	"sync"

	"ratehub/internal/models"
	"ratehub/internal/upstream"
)

// RatingService orchestrates the read-modify-write of one rating value per
// (user, store) pair, picking create or update semantics from the prior
// state.
type RatingService struct {
	client upstream.Client

	mu       sync.Mutex
	inflight map[int64]bool
}

// NewRatingService creates a RatingService.
func NewRatingService(client upstream.Client) *RatingService {
	return &RatingService{
		client:   client,
		inflight: make(map[int64]bool),
	}
}

// RatingResult is the outcome of a submission.
type RatingResult struct {
	// Skipped is set when the chosen value already matched and no request
	// was issued.
	Skipped bool
	// Updated distinguishes the update path from the create path.
	Updated bool
	// Stores is the authoritative refreshed catalog after a successful
	// submission; the local list is not trusted for server-computed
	// averages.
	Stores []models.RatedStore
}

// Submit sends the rating for storeID. hasRated selects the create or the
// update path; current is the value currently displayed and guards the
// redundant-write skip. A failed submission changes no local state.
func (s *RatingService) Submit(ctx context.Context, storeID int64, value int, hasRated bool, current int) (RatingResult, error) {
	if value < 1 || value > 5 {
		return RatingResult{}, ErrInvalidRating
	}
	if hasRated && value == current {
		return RatingResult{Skipped: true}, nil
	}
	if !s.begin(storeID) {
		return RatingResult{}, ErrSubmissionInFlight
	}
	defer s.end(storeID)

	req := models.RateRequest{StoreID: storeID, Rating: value}
	var err error
	if hasRated {
		err = s.client.UpdateRating(ctx, req)
	} else {
		err = s.client.CreateRating(ctx, req)
	}
	if err != nil {
		return RatingResult{}, fmt.Errorf("failed to submit rating for store %d: %w", storeID, err)
	}

	stores, err := s.client.ListRatedStores(ctx)
	if err != nil {
		return RatingResult{}, fmt.Errorf("rating saved but refreshing store %d failed: %w", storeID, err)
	}
	return RatingResult{Updated: hasRated, Stores: stores}, nil
}

// begin marks storeID busy; false when a submission is already in flight.
func (s *RatingService) begin(storeID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[storeID] {
		return false
	}
	s.inflight[storeID] = true
	return true
}

func (s *RatingService) end(storeID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, storeID)
}
