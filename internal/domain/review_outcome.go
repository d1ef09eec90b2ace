package domain

import "errors"

// ReviewOutcome is the learner's recall-quality judgment for a single review,
// ordered worst to best.
type ReviewOutcome string

// Possible review outcome values
const (
	ReviewOutcomeAgain ReviewOutcome = "again"
	ReviewOutcomeHard  ReviewOutcome = "hard"
	ReviewOutcomeGood  ReviewOutcome = "good"
	ReviewOutcomeEasy  ReviewOutcome = "easy"
)

// ErrInvalidReviewOutcome is returned when a review outcome is not one of the
// four defined levels.
var ErrInvalidReviewOutcome = errors.New("invalid review outcome")

// Validate returns ErrInvalidReviewOutcome unless the outcome is one of the
// four defined levels.
func (o ReviewOutcome) Validate() error {
	switch o {
	case ReviewOutcomeAgain, ReviewOutcomeHard, ReviewOutcomeGood, ReviewOutcomeEasy:
		return nil
	default:
		return ErrInvalidReviewOutcome
	}
}
