package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Flashcard-specific validation errors
var (
	// ErrFlashcardIDEmpty is returned when a flashcard ID is empty or nil.
	ErrFlashcardIDEmpty = errors.New("flashcard ID cannot be empty")

	// ErrFlashcardOwnerIDEmpty is returned when a flashcard's owner ID is empty or nil.
	ErrFlashcardOwnerIDEmpty = errors.New("flashcard owner ID cannot be empty")

	// ErrFlashcardTopicIDEmpty is returned when a flashcard's topic ID is empty or nil.
	ErrFlashcardTopicIDEmpty = errors.New("flashcard topic ID cannot be empty")

	// ErrFlashcardFrontEmpty is returned when a flashcard's prompt side is empty.
	ErrFlashcardFrontEmpty = errors.New("flashcard front cannot be empty")

	// ErrFlashcardBackEmpty is returned when a flashcard's answer side is empty.
	ErrFlashcardBackEmpty = errors.New("flashcard back cannot be empty")

	// ErrInvalidEasiness is returned when the easiness factor falls below the floor.
	ErrInvalidEasiness = errors.New("easiness factor must be at least 1.3")

	// ErrInvalidInterval is returned when the interval is negative.
	ErrInvalidInterval = errors.New("interval must be greater than or equal to 0")

	// ErrInvalidRepetitions is returned when the repetition count is negative.
	ErrInvalidRepetitions = errors.New("repetitions must be greater than or equal to 0")
)

// Scheduling defaults for newly created flashcards.
const (
	// DefaultEasiness is the starting easiness factor for a new card.
	DefaultEasiness = 2.5

	// DefaultInterval is the starting review interval in days for a new card.
	DefaultInterval = 1

	// MinEasiness is the lower bound for the easiness factor. The scheduler
	// never produces a value below this floor.
	MinEasiness = 1.3
)

// Flashcard is a spaced-repetition learning unit. The front/back content is
// immutable once created; only the scheduling fields change, and only through
// the review service.
type Flashcard struct {
	ID      uuid.UUID `json:"id"`
	OwnerID uuid.UUID `json:"owner_id"`
	TopicID uuid.UUID `json:"topic_id"`
	Front   string    `json:"front"`
	Back    string    `json:"back"`

	// Scheduling state, owned by the scheduler.
	Easiness     float64   `json:"easiness"`       // Easiness factor, >= 1.3
	Interval     int       `json:"interval"`       // Days until next review
	Repetitions  int       `json:"repetitions"`    // Consecutive successful reviews
	NextReviewAt time.Time `json:"next_review_at"` // Card is due when this is <= now

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFlashcard creates a new Flashcard with the scheduling defaults: easiness
// 2.5, interval 1 day, zero repetitions, first review due one day out.
// Returns an error if validation fails.
func NewFlashcard(ownerID, topicID uuid.UUID, front, back string) (*Flashcard, error) {
	now := time.Now().UTC()
	card := &Flashcard{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		TopicID:      topicID,
		Front:        front,
		Back:         back,
		Easiness:     DefaultEasiness,
		Interval:     DefaultInterval,
		Repetitions:  0,
		NextReviewAt: now.AddDate(0, 0, DefaultInterval),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
// Returns an error if any field fails validation.
func (c *Flashcard) Validate() error {
	if c.ID == uuid.Nil {
		return ErrFlashcardIDEmpty
	}

	if c.OwnerID == uuid.Nil {
		return ErrFlashcardOwnerIDEmpty
	}

	if c.TopicID == uuid.Nil {
		return ErrFlashcardTopicIDEmpty
	}

	if c.Front == "" {
		return ErrFlashcardFrontEmpty
	}

	if c.Back == "" {
		return ErrFlashcardBackEmpty
	}

	if c.Easiness < MinEasiness {
		return ErrInvalidEasiness
	}

	if c.Interval < 0 {
		return ErrInvalidInterval
	}

	if c.Repetitions < 0 {
		return ErrInvalidRepetitions
	}

	return nil
}

// IsDue reports whether the card is due for review at the given instant.
// The boundary is inclusive: a card whose NextReviewAt equals now is due.
func (c *Flashcard) IsDue(now time.Time) bool {
	return !c.NextReviewAt.After(now)
}
