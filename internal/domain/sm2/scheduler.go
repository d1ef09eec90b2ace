package sm2

import (
	"math"
	"time"

	"github.com/studyplanhq/studyplan-api/internal/domain"
)

// Algorithm constants. These are fixed by the SM-2 definition rather than
// tunable parameters: changing them changes the algorithm.
const (
	// minEasiness is the floor below which the easiness factor never drops.
	// Without it, persistently failed cards would stop growing their
	// intervals entirely.
	minEasiness = domain.MinEasiness

	// rememberedThreshold is the quality value at or above which a review
	// counts as a successful recall.
	rememberedThreshold = 3

	// firstInterval and secondInterval are the classic SM-2 bootstrap:
	// one day after the first successful review, six days after the second.
	// Multiplicative growth by the easiness factor takes over afterwards.
	firstInterval  = 1
	secondInterval = 6

	// day is a fixed 24h offset. Scheduling adds whole days to an instant;
	// there is no calendar or timezone arithmetic.
	day = 24 * time.Hour
)

// State is the scheduler's view of a card: the three fields the algorithm
// reads and writes, plus the resulting next-review timestamp.
type State struct {
	Easiness     float64
	Interval     int
	Repetitions  int
	NextReviewAt time.Time
}

// StateOf extracts the scheduling state from a flashcard.
func StateOf(card *domain.Flashcard) State {
	return State{
		Easiness:     card.Easiness,
		Interval:     card.Interval,
		Repetitions:  card.Repetitions,
		NextReviewAt: card.NextReviewAt,
	}
}

// qualityOf maps a review outcome to the internal 0-5 quality scale.
// The table is closed: exactly four entries, no silent default. Callers must
// validate the outcome first; an unknown value maps to -1, which the caller
// is expected to have made unreachable.
func qualityOf(outcome domain.ReviewOutcome) int {
	switch outcome {
	case domain.ReviewOutcomeAgain:
		return 0
	case domain.ReviewOutcomeHard:
		return 3
	case domain.ReviewOutcomeGood:
		return 4
	case domain.ReviewOutcomeEasy:
		return 5
	default:
		return -1
	}
}

// nextEasiness applies the SM-2 easiness update for the given quality:
//
//	EF' = max(1.3, EF + (0.1 - (5-q) * (0.08 + (5-q)*0.02)))
//
// The update uses the pre-review easiness and the original quality integer
// regardless of which interval branch was taken.
func nextEasiness(easiness float64, quality int) float64 {
	miss := float64(5 - quality)
	next := easiness + (0.1 - miss*(0.08+miss*0.02))
	if next < minEasiness {
		next = minEasiness
	}
	return next
}

// roundInterval rounds interval*easiness to the nearest whole day.
// Ties round away from zero (math.Round semantics): 13.5 becomes 14.
func roundInterval(interval int, easiness float64) int {
	return int(math.Round(float64(interval) * easiness))
}

// Review computes the next scheduling state for a card given a review
// outcome and the current instant. It is pure and deterministic: the caller
// supplies now, so no clock is read internally.
//
// Preconditions (caller obligation, not validated here): the outcome is one
// of the four defined levels, easiness >= 1.3, interval >= 0, and
// repetitions >= 0. The Service wrapper enforces the outcome check.
//
// A quality at or above 3 (Hard, Good, Easy) counts as remembered: the
// repetition counter advances and the interval follows the SM-2 bootstrap
// (1 day, then 6 days, then interval*easiness rounded). Anything below 3
// (Again) is a lapse: repetitions reset to zero and the interval resets to
// one day regardless of its prior magnitude. The easiness factor is updated
// in both branches from the original quality.
func Review(s State, outcome domain.ReviewOutcome, now time.Time) State {
	quality := qualityOf(outcome)

	next := s
	if quality >= rememberedThreshold {
		switch s.Repetitions {
		case 0:
			next.Interval = firstInterval
		case 1:
			next.Interval = secondInterval
		default:
			next.Interval = roundInterval(s.Interval, s.Easiness)
		}
		next.Repetitions = s.Repetitions + 1
	} else {
		next.Repetitions = 0
		next.Interval = firstInterval
	}

	next.Easiness = nextEasiness(s.Easiness, quality)
	next.NextReviewAt = now.Add(time.Duration(next.Interval) * day)

	return next
}
