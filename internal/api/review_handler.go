package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/studyplanhq/studyplan-api/internal/api/shared"
	"github.com/studyplanhq/studyplan-api/internal/domain"
	"github.com/studyplanhq/studyplan-api/internal/platform/logger"
	"github.com/studyplanhq/studyplan-api/internal/service/review"
)

// FlashcardResponse represents the response data for a flashcard.
type FlashcardResponse struct {
	ID           string    `json:"id"`
	TopicID      string    `json:"topic_id"`
	Front        string    `json:"front"`
	Back         string    `json:"back"`
	Easiness     float64   `json:"easiness"`
	Interval     int       `json:"interval"`
	Repetitions  int       `json:"repetitions"`
	NextReviewAt time.Time `json:"next_review_at"`
}

// SubmitReviewRequest represents the request body for reviewing a flashcard.
type SubmitReviewRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=again hard good easy"`
}

// ReviewHandler handles flashcard review HTTP requests.
type ReviewHandler struct {
	reviewService review.ReviewService
	validator     *validator.Validate
	logger        *slog.Logger
	timeFunc      func() time.Time
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService review.ReviewService, log *slog.Logger) *ReviewHandler {
	if reviewService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("reviewService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
		logger:        log.With(slog.String("component", "review_handler")),
		timeFunc:      time.Now,
	}
}

// GetDueCards handles GET /flashcards/due requests.
// It returns every card owned by the authenticated learner that is due for
// review at the current instant, ordered by next review time. The response
// is a JSON array; no cards due yields an empty array, not an error.
func (h *ReviewHandler) GetDueCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ownerID, ok := r.Context().Value(shared.OwnerIDContextKey).(uuid.UUID)
	if !ok || ownerID == uuid.Nil {
		log.Warn("owner ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Owner ID not found or invalid")
		return
	}

	now := h.timeFunc().UTC()
	cards, err := h.reviewService.DueCards(r.Context(), ownerID, now)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to list due flashcards", err)
		return
	}

	response := make([]FlashcardResponse, 0, len(cards))
	for _, card := range cards {
		response = append(response, flashcardToResponse(card))
	}

	log.Debug("listed due flashcards",
		slog.String("owner_id", ownerID.String()),
		slog.Int("count", len(response)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// SubmitReview handles POST /flashcards/{id}/review requests.
// It applies the learner's review outcome to the card and responds with the
// card's updated scheduling fields.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ownerID, ok := r.Context().Value(shared.OwnerIDContextKey).(uuid.UUID)
	if !ok || ownerID == uuid.Nil {
		log.Warn("owner ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Owner ID not found or invalid")
		return
	}

	cardID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid flashcard ID")
		return
	}

	var req SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Invalid review outcome: must be one of again, hard, good, easy")
		return
	}

	card, err := h.reviewService.SubmitReview(
		r.Context(),
		ownerID,
		cardID,
		domain.ReviewOutcome(req.Outcome),
	)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("review submitted",
		slog.String("owner_id", ownerID.String()),
		slog.String("card_id", cardID.String()),
		slog.String("outcome", req.Outcome))
	shared.RespondWithJSON(w, r, http.StatusOK, flashcardToResponse(card))
}

// flashcardToResponse converts a domain flashcard to its API representation.
// The owner ID is omitted: the caller is the owner.
func flashcardToResponse(card *domain.Flashcard) FlashcardResponse {
	return FlashcardResponse{
		ID:           card.ID.String(),
		TopicID:      card.TopicID.String(),
		Front:        card.Front,
		Back:         card.Back,
		Easiness:     card.Easiness,
		Interval:     card.Interval,
		Repetitions:  card.Repetitions,
		NextReviewAt: card.NextReviewAt,
	}
}
