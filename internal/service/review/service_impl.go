package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/studyplanhq/studyplan-api/internal/domain"
	"github.com/studyplanhq/studyplan-api/internal/domain/sm2"
	"github.com/studyplanhq/studyplan-api/internal/platform/logger"
	"github.com/studyplanhq/studyplan-api/internal/store"
)

// Verify interface compliance at compile time
var _ ReviewService = (*reviewServiceImpl)(nil)

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	cardStore store.FlashcardStore
	scheduler sm2.Service
	logger    *slog.Logger
	locks     cardLocks
	timeFunc  func() time.Time
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(
	cardStore store.FlashcardStore,
	scheduler sm2.Service,
	log *slog.Logger,
) ReviewService {
	if cardStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cardStore cannot be nil")
	}
	if scheduler == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("scheduler cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &reviewServiceImpl{
		cardStore: cardStore,
		scheduler: scheduler,
		logger:    log.With(slog.String("component", "review_service")),
		timeFunc:  time.Now,
	}
}

// DueCards implements ReviewService.DueCards.
func (s *reviewServiceImpl) DueCards(
	ctx context.Context,
	ownerID uuid.UUID,
	now time.Time,
) ([]*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.cardStore.ListDue(ctx, ownerID, now)
	if err != nil {
		log.Error("failed to list due flashcards",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("failed to list due flashcards: %w", err)
	}

	log.Debug("listed due flashcards",
		slog.String("owner_id", ownerID.String()),
		slog.Int("count", len(cards)))
	return cards, nil
}

// SubmitReview implements ReviewService.SubmitReview.
func (s *reviewServiceImpl) SubmitReview(
	ctx context.Context,
	ownerID uuid.UUID,
	cardID uuid.UUID,
	outcome domain.ReviewOutcome,
) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Reject unknown outcomes before touching storage or the scheduler.
	if err := outcome.Validate(); err != nil {
		log.Warn("invalid review outcome",
			slog.String("owner_id", ownerID.String()),
			slog.String("card_id", cardID.String()),
			slog.String("outcome", string(outcome)))
		return nil, ErrInvalidOutcome
	}

	// Serialize the load-compute-store sequence per card. Without this, two
	// concurrent reviews of the same card could interleave and silently
	// discard one review's effect on repetitions and easiness.
	mu := s.locks.forCard(cardID)
	mu.Lock()
	defer mu.Unlock()

	card, err := s.cardStore.GetByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, store.ErrFlashcardNotFound) {
			log.Debug("flashcard not found for review",
				slog.String("owner_id", ownerID.String()),
				slog.String("card_id", cardID.String()))
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get flashcard: %w", err)
	}

	// A card owned by someone else is indistinguishable from a missing one.
	if card.OwnerID != ownerID {
		log.Warn("learner does not own flashcard",
			slog.String("owner_id", ownerID.String()),
			slog.String("card_id", cardID.String()))
		return nil, ErrCardNotFound
	}

	now := s.timeFunc().UTC()
	next, err := s.scheduler.NextReview(sm2.StateOf(card), outcome, now)
	if err != nil {
		// Unreachable after the validation above, but the scheduler's
		// contract is its own.
		return nil, fmt.Errorf("failed to compute next review: %w", err)
	}

	card.Easiness = next.Easiness
	card.Interval = next.Interval
	card.Repetitions = next.Repetitions
	card.NextReviewAt = next.NextReviewAt
	card.UpdatedAt = now

	if err := s.cardStore.UpdateScheduling(ctx, card); err != nil {
		if errors.Is(err, store.ErrFlashcardNotFound) {
			return nil, ErrCardNotFound
		}
		log.Error("failed to persist review",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()),
			slog.String("card_id", cardID.String()))
		return nil, fmt.Errorf("failed to persist review: %w", err)
	}

	log.Debug("review applied",
		slog.String("owner_id", ownerID.String()),
		slog.String("card_id", cardID.String()),
		slog.String("outcome", string(outcome)),
		slog.Float64("easiness", card.Easiness),
		slog.Int("interval", card.Interval),
		slog.Int("repetitions", card.Repetitions),
		slog.Time("next_review_at", card.NextReviewAt))

	return card, nil
}
