package memory

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/studyplanhq/studyplan-api/internal/domain"
	"github.com/studyplanhq/studyplan-api/internal/store"
)

// FlashcardStore is an in-memory implementation of store.FlashcardStore
// backed by a mutex-guarded map. It is an explicitly constructed, owned
// instance rather than process-wide shared state, so tests can run in
// parallel with independent stores.
type FlashcardStore struct {
	mu    sync.RWMutex
	cards map[uuid.UUID]domain.Flashcard
}

// Ensure FlashcardStore implements store.FlashcardStore interface
var _ store.FlashcardStore = (*FlashcardStore)(nil)

// NewFlashcardStore creates an empty in-memory flashcard store.
func NewFlashcardStore() *FlashcardStore {
	return &FlashcardStore{
		cards: make(map[uuid.UUID]domain.Flashcard),
	}
}

// Create implements store.FlashcardStore.Create.
func (s *FlashcardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.cards[card.ID]; exists {
		return store.ErrDuplicate
	}

	s.cards[card.ID] = *card
	return nil
}

// GetByID implements store.FlashcardStore.GetByID.
// The returned card is a copy; mutating it does not affect the store.
func (s *FlashcardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	card, ok := s.cards[id]
	if !ok {
		return nil, store.ErrFlashcardNotFound
	}

	return &card, nil
}

// ListDue implements store.FlashcardStore.ListDue with the inclusive
// boundary and deterministic ordering the interface requires.
func (s *FlashcardStore) ListDue(
	ctx context.Context,
	ownerID uuid.UUID,
	now time.Time,
) ([]*domain.Flashcard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	due := []*domain.Flashcard{}
	for _, card := range s.cards {
		if card.OwnerID == ownerID && card.IsDue(now) {
			c := card
			due = append(due, &c)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		if !due[i].NextReviewAt.Equal(due[j].NextReviewAt) {
			return due[i].NextReviewAt.Before(due[j].NextReviewAt)
		}
		return bytes.Compare(due[i].ID[:], due[j].ID[:]) < 0
	})

	return due, nil
}

// UpdateScheduling implements store.FlashcardStore.UpdateScheduling.
// The whole record is swapped under the lock, so concurrent readers never
// observe a partially updated schedule.
func (s *FlashcardStore) UpdateScheduling(ctx context.Context, card *domain.Flashcard) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.cards[card.ID]
	if !ok {
		return store.ErrFlashcardNotFound
	}

	existing.Easiness = card.Easiness
	existing.Interval = card.Interval
	existing.Repetitions = card.Repetitions
	existing.NextReviewAt = card.NextReviewAt
	existing.UpdatedAt = card.UpdatedAt
	s.cards[card.ID] = existing

	return nil
}

// Len returns the number of stored cards. Used by tests.
func (s *FlashcardStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cards)
}
