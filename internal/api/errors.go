package api

import (
	"errors"
	"net/http"

	"github.com/studyplanhq/studyplan-api/internal/service/auth"
	"github.com/studyplanhq/studyplan-api/internal/service/review"
	"github.com/studyplanhq/studyplan-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, review.ErrCardNotFound),
		errors.Is(err, store.ErrFlashcardNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, review.ErrInvalidOutcome),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, review.ErrCardNotFound),
		errors.Is(err, store.ErrFlashcardNotFound):
		return "Flashcard not found"

	case errors.Is(err, review.ErrInvalidOutcome):
		return "Invalid review outcome: must be one of again, hard, good, easy"

	default:
		return "An unexpected error occurred"
	}
}
