package sm2_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyplanhq/studyplan-api/internal/domain"
	"github.com/studyplanhq/studyplan-api/internal/domain/sm2"
)

func TestServiceNextReview(t *testing.T) {
	t.Parallel()
	svc := sm2.NewService()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	state := sm2.State{Easiness: 2.5, Interval: 1, Repetitions: 0}

	next, err := svc.NextReview(state, domain.ReviewOutcomeGood, now)
	require.NoError(t, err)
	assert.Equal(t, 1, next.Interval)
	assert.Equal(t, 1, next.Repetitions)
	assert.Equal(t, now.Add(24*time.Hour), next.NextReviewAt)
}

func TestServiceRejectsInvalidOutcome(t *testing.T) {
	t.Parallel()
	svc := sm2.NewService()
	now := time.Now().UTC()

	testCases := []domain.ReviewOutcome{"", "ok", "AGAIN", "perfect"}
	for _, outcome := range testCases {
		t.Run(string(outcome), func(t *testing.T) {
			_, err := svc.NextReview(sm2.State{Easiness: 2.5, Interval: 1}, outcome, now)
			assert.ErrorIs(t, err, domain.ErrInvalidReviewOutcome)
		})
	}
}

func TestStateOf(t *testing.T) {
	t.Parallel()

	card, err := domain.NewFlashcard(
		uuid.New(), uuid.New(), "What is the capital of France?", "Paris")
	require.NoError(t, err)

	state := sm2.StateOf(card)
	assert.Equal(t, card.Easiness, state.Easiness)
	assert.Equal(t, card.Interval, state.Interval)
	assert.Equal(t, card.Repetitions, state.Repetitions)
	assert.Equal(t, card.NextReviewAt, state.NextReviewAt)
}
