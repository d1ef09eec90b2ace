package review

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyplanhq/studyplan-api/internal/domain"
	"github.com/studyplanhq/studyplan-api/internal/domain/sm2"
	"github.com/studyplanhq/studyplan-api/internal/platform/memory"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*reviewServiceImpl, *memory.FlashcardStore) {
	t.Helper()
	cardStore := memory.NewFlashcardStore()
	svc := NewReviewService(cardStore, sm2.NewService(), nil).(*reviewServiceImpl)
	svc.timeFunc = func() time.Time { return fixedNow }
	return svc, cardStore
}

func createCard(t *testing.T, cardStore *memory.FlashcardStore, ownerID uuid.UUID) *domain.Flashcard {
	t.Helper()
	card, err := domain.NewFlashcard(ownerID, uuid.New(), "front", "back")
	require.NoError(t, err)
	require.NoError(t, cardStore.Create(context.Background(), card))
	return card
}

func TestDueCardsPassesThroughStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, cardStore := newTestService(t)
	ownerID := uuid.New()

	due := createCard(t, cardStore, ownerID)
	due.NextReviewAt = fixedNow.Add(-time.Hour)
	require.NoError(t, cardStore.UpdateScheduling(ctx, due))

	notDue := createCard(t, cardStore, ownerID)
	notDue.NextReviewAt = fixedNow.Add(time.Hour)
	require.NoError(t, cardStore.UpdateScheduling(ctx, notDue))

	cards, err := svc.DueCards(ctx, ownerID, fixedNow)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, due.ID, cards[0].ID)
}

func TestSubmitReviewUpdatesScheduling(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, cardStore := newTestService(t)
	ownerID := uuid.New()
	card := createCard(t, cardStore, ownerID)

	updated, err := svc.SubmitReview(ctx, ownerID, card.ID, domain.ReviewOutcomeGood)
	require.NoError(t, err)

	assert.Equal(t, 1, updated.Interval)
	assert.Equal(t, 1, updated.Repetitions)
	assert.InDelta(t, 2.5, updated.Easiness, 1e-9)
	assert.Equal(t, fixedNow.Add(24*time.Hour), updated.NextReviewAt)
	assert.Equal(t, fixedNow, updated.UpdatedAt)

	// The update is persisted, not just returned.
	stored, err := cardStore.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Repetitions)
	assert.Equal(t, fixedNow.Add(24*time.Hour), stored.NextReviewAt)

	// Content is untouched.
	assert.Equal(t, card.Front, stored.Front)
	assert.Equal(t, card.Back, stored.Back)
}

func TestSubmitReviewLapse(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, cardStore := newTestService(t)
	ownerID := uuid.New()

	card := createCard(t, cardStore, ownerID)
	card.Easiness = 2.0
	card.Interval = 20
	card.Repetitions = 5
	require.NoError(t, cardStore.UpdateScheduling(ctx, card))

	updated, err := svc.SubmitReview(ctx, ownerID, card.ID, domain.ReviewOutcomeAgain)
	require.NoError(t, err)

	assert.Equal(t, 0, updated.Repetitions)
	assert.Equal(t, 1, updated.Interval)
	assert.InDelta(t, 1.3, updated.Easiness, 1e-9)
	assert.Equal(t, fixedNow.Add(24*time.Hour), updated.NextReviewAt)
}

func TestSubmitReviewUnknownCard(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	_, err := svc.SubmitReview(context.Background(), uuid.New(), uuid.New(), domain.ReviewOutcomeGood)
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestSubmitReviewWrongOwner(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, cardStore := newTestService(t)

	card := createCard(t, cardStore, uuid.New())

	// Another learner's card looks like a missing card, and the failed
	// attempt must not change its scheduling state.
	_, err := svc.SubmitReview(ctx, uuid.New(), card.ID, domain.ReviewOutcomeGood)
	assert.ErrorIs(t, err, ErrCardNotFound)

	stored, err := cardStore.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Repetitions)
	assert.Equal(t, card.NextReviewAt, stored.NextReviewAt)
}

func TestSubmitReviewInvalidOutcome(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, cardStore := newTestService(t)
	ownerID := uuid.New()
	card := createCard(t, cardStore, ownerID)

	for _, outcome := range []domain.ReviewOutcome{"", "great", "GOOD"} {
		_, err := svc.SubmitReview(ctx, ownerID, card.ID, outcome)
		assert.ErrorIs(t, err, ErrInvalidOutcome, "outcome %q", outcome)
	}

	stored, err := cardStore.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Repetitions)
}

func TestSubmitReviewConcurrentSameCard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, cardStore := newTestService(t)
	ownerID := uuid.New()
	card := createCard(t, cardStore, ownerID)

	// Every concurrent review must land; a lost update would leave the
	// repetition count short.
	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SubmitReview(ctx, ownerID, card.ID, domain.ReviewOutcomeGood)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := cardStore.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, workers, stored.Repetitions)
}

func TestCardLocksSameCardSameMutex(t *testing.T) {
	t.Parallel()
	var locks cardLocks

	id := uuid.New()
	assert.Same(t, locks.forCard(id), locks.forCard(id))
}

func TestNewReviewServicePanicsOnNilDeps(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewReviewService(nil, sm2.NewService(), nil)
	})
	assert.Panics(t, func() {
		NewReviewService(memory.NewFlashcardStore(), nil, nil)
	})
}
