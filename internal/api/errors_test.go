package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/studyplanhq/studyplan-api/internal/api"
	"github.com/studyplanhq/studyplan-api/internal/service/auth"
	"github.com/studyplanhq/studyplan-api/internal/service/review"
	"github.com/studyplanhq/studyplan-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"card not found", review.ErrCardNotFound, http.StatusNotFound},
		{"store not found", store.ErrFlashcardNotFound, http.StatusNotFound},
		{"invalid outcome", review.ErrInvalidOutcome, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"wrapped card not found", fmt.Errorf("context: %w", review.ErrCardNotFound), http.StatusNotFound},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"nil error", nil, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, api.MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessageNeverLeaksInternals(t *testing.T) {
	t.Parallel()

	internal := errors.New("pq: connection to 10.0.0.7:5432 refused")
	msg := api.GetSafeErrorMessage(internal)
	assert.Equal(t, "An unexpected error occurred", msg)
	assert.NotContains(t, msg, "10.0.0.7")

	assert.Equal(t, "Flashcard not found", api.GetSafeErrorMessage(review.ErrCardNotFound))
	assert.Equal(t, "Invalid token", api.GetSafeErrorMessage(auth.ErrExpiredToken))
}
