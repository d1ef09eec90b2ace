// Package review mediates between the SM-2 scheduler and the flashcard
// collection: it answers "which cards are due for this learner" and applies
// review outcomes, persisting the scheduler's output back onto the card.
package review

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/studyplanhq/studyplan-api/internal/domain"
)

// Common error types for ReviewService
var (
	// ErrCardNotFound indicates that the card does not exist or is not
	// owned by the requesting learner.
	ErrCardNotFound = errors.New("flashcard not found")

	// ErrInvalidOutcome indicates the supplied outcome is not one of the
	// four defined levels. It is rejected before reaching the scheduler.
	ErrInvalidOutcome = errors.New("invalid review outcome")
)

// ReviewService provides the two operations this subsystem exposes to the
// surrounding application.
type ReviewService interface {
	// DueCards returns every card owned by ownerID whose next review
	// timestamp is at or before now (inclusive boundary), ordered by
	// ascending next review time with card ID as tiebreak. The result is a
	// snapshot; no card is mutated.
	DueCards(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]*domain.Flashcard, error)

	// SubmitReview applies a review outcome to a card: it loads the card,
	// invokes the scheduler with the card's current scheduling fields and
	// the current instant, and writes the four returned fields back
	// atomically. The load-compute-store sequence is serialized per card,
	// so two concurrent reviews of the same card cannot lose an update;
	// reviews of different cards proceed in parallel.
	//
	// Returns the card with its updated scheduling fields on success,
	// ErrCardNotFound if the card does not exist or belongs to another
	// owner (no mutation, no partial effect), or ErrInvalidOutcome if the
	// outcome is outside the four-entry table.
	SubmitReview(
		ctx context.Context,
		ownerID uuid.UUID,
		cardID uuid.UUID,
		outcome domain.ReviewOutcome,
	) (*domain.Flashcard, error)
}
