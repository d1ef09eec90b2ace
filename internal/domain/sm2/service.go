package sm2

import (
	"time"

	"github.com/studyplanhq/studyplan-api/internal/domain"
)

// Service defines the interface for scheduling operations. It wraps the pure
// Review function with the defensive outcome validation that the bare
// function leaves to its callers.
type Service interface {
	// NextReview computes the next scheduling state for a review outcome.
	// Returns domain.ErrInvalidReviewOutcome if the outcome is not one of
	// the four defined levels.
	NextReview(state State, outcome domain.ReviewOutcome, now time.Time) (State, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct{}

// Verify interface compliance at compile time
var _ Service = (*defaultService)(nil)

// NewService creates a new SM-2 scheduling service.
func NewService() Service {
	return &defaultService{}
}

// NextReview implements the Service interface.
func (s *defaultService) NextReview(
	state State,
	outcome domain.ReviewOutcome,
	now time.Time,
) (State, error) {
	if err := outcome.Validate(); err != nil {
		return State{}, err
	}

	return Review(state, outcome, now), nil
}
