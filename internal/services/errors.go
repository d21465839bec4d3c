package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRating rejects a rating value outside [1,5] before any
	// request is issued.
	ErrInvalidRating = errors.New("rating must be an integer between 1 and 5")
	// ErrSubmissionInFlight rejects a re-entrant submission for a store
	// whose previous submission has not completed.
	ErrSubmissionInFlight = errors.New("a rating submission for this store is already in flight")
)

// StoreCreationError is the partial-failure state of the add-user
// workflow: the user record was created but its linked store was not.
// There is no automatic rollback; the caller must report the orphaned
// account distinctly from a total failure.
type StoreCreationError struct {
	UserID int64
	Err    error
}

func (e *StoreCreationError) Error() string {
	return fmt.Sprintf("user %d was created but store creation failed: %v", e.UserID, e.Err)
}

func (e *StoreCreationError) Unwrap() error {
	return e.Err
}
