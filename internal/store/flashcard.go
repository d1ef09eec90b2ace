package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/studyplanhq/studyplan-api/internal/domain"
)

// FlashcardStore defines the interface for flashcard persistence. The review
// service depends only on this interface, so it can run against PostgreSQL in
// production and the in-memory implementation in tests.
type FlashcardStore interface {
	// Create saves a new flashcard.
	// Returns validation errors if the card data is invalid, or ErrDuplicate
	// if a card with the same ID already exists.
	Create(ctx context.Context, card *domain.Flashcard) error

	// GetByID retrieves a flashcard by its unique ID.
	// Returns ErrFlashcardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error)

	// ListDue returns every card owned by ownerID whose NextReviewAt is at
	// or before now (inclusive boundary), ordered by ascending NextReviewAt
	// with card ID as tiebreak for determinism. The result is a snapshot;
	// no card is mutated.
	ListDue(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]*domain.Flashcard, error)

	// UpdateScheduling writes back the four scheduling fields (easiness,
	// interval, repetitions, next review timestamp) of an existing card in a
	// single atomic write. Content fields are never touched.
	// Returns ErrFlashcardNotFound if the card does not exist.
	UpdateScheduling(ctx context.Context, card *domain.Flashcard) error
}
