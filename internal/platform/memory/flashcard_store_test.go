package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyplanhq/studyplan-api/internal/domain"
	"github.com/studyplanhq/studyplan-api/internal/platform/memory"
	"github.com/studyplanhq/studyplan-api/internal/store"
)

func newTestCard(t *testing.T, ownerID uuid.UUID) *domain.Flashcard {
	t.Helper()
	card, err := domain.NewFlashcard(ownerID, uuid.New(), "front", "back")
	require.NoError(t, err)
	return card
}

func TestFlashcardStoreCreateAndGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := memory.NewFlashcardStore()

	card := newTestCard(t, uuid.New())
	require.NoError(t, s.Create(ctx, card))

	got, err := s.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, card.ID, got.ID)
	assert.Equal(t, card.Front, got.Front)

	// Duplicate IDs are rejected.
	assert.ErrorIs(t, s.Create(ctx, card), store.ErrDuplicate)

	// The returned card is a copy, not a live reference.
	got.Repetitions = 99
	again, err := s.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Repetitions)
}

func TestFlashcardStoreGetNotFound(t *testing.T) {
	t.Parallel()
	s := memory.NewFlashcardStore()

	_, err := s.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrFlashcardNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestFlashcardStoreUpdateScheduling(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := memory.NewFlashcardStore()

	card := newTestCard(t, uuid.New())
	require.NoError(t, s.Create(ctx, card))

	card.Easiness = 2.6
	card.Interval = 6
	card.Repetitions = 2
	card.NextReviewAt = card.NextReviewAt.AddDate(0, 0, 6)
	require.NoError(t, s.UpdateScheduling(ctx, card))

	got, err := s.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2.6, got.Easiness, 1e-9)
	assert.Equal(t, 6, got.Interval)
	assert.Equal(t, 2, got.Repetitions)

	// Content is never touched by scheduling updates.
	assert.Equal(t, "front", got.Front)
	assert.Equal(t, "back", got.Back)

	missing := newTestCard(t, uuid.New())
	assert.ErrorIs(t, s.UpdateScheduling(ctx, missing), store.ErrFlashcardNotFound)
}

func TestFlashcardStoreListDue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := memory.NewFlashcardStore()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	ownerID := uuid.New()
	otherOwner := uuid.New()

	overdue := newTestCard(t, ownerID)
	overdue.NextReviewAt = now.Add(-48 * time.Hour)
	onBoundary := newTestCard(t, ownerID)
	onBoundary.NextReviewAt = now
	future := newTestCard(t, ownerID)
	future.NextReviewAt = now.Add(time.Hour)
	otherOwners := newTestCard(t, otherOwner)
	otherOwners.NextReviewAt = now.Add(-time.Hour)

	for _, c := range []*domain.Flashcard{future, onBoundary, overdue, otherOwners} {
		require.NoError(t, s.Create(ctx, c))
	}

	due, err := s.ListDue(ctx, ownerID, now)
	require.NoError(t, err)
	require.Len(t, due, 2)

	// Ordered by ascending next review time; boundary card included.
	assert.Equal(t, overdue.ID, due[0].ID)
	assert.Equal(t, onBoundary.ID, due[1].ID)
}

func TestFlashcardStoreListDueEmpty(t *testing.T) {
	t.Parallel()
	s := memory.NewFlashcardStore()

	due, err := s.ListDue(context.Background(), uuid.New(), time.Now().UTC())
	require.NoError(t, err)
	assert.Empty(t, due)
	assert.NotNil(t, due)
}
