package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/studyplanhq/studyplan-api/internal/domain"
	"github.com/studyplanhq/studyplan-api/internal/store"
)

// PostgresFlashcardStore implements the store.FlashcardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresFlashcardStore implements store.FlashcardStore interface
var _ store.FlashcardStore = (*PostgresFlashcardStore)(nil)

// NewPostgresFlashcardStore creates a new PostgreSQL implementation of the
// FlashcardStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, the default logger is used.
func NewPostgresFlashcardStore(db store.DBTX, logger *slog.Logger) *PostgresFlashcardStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

// Create implements store.FlashcardStore.Create.
// Returns store.ErrDuplicate if a card with the same ID already exists and
// wrapped validation errors if the card data is invalid.
func (s *PostgresFlashcardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO flashcards
			(id, owner_id, topic_id, front, back,
			 easiness, interval_days, repetitions, next_review_at,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := s.db.ExecContext(ctx, query,
		card.ID,
		card.OwnerID,
		card.TopicID,
		card.Front,
		card.Back,
		card.Easiness,
		card.Interval,
		card.Repetitions,
		card.NextReviewAt,
		card.CreatedAt,
		card.UpdatedAt,
	)
	if err != nil {
		s.logger.Error("failed to create flashcard",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.FlashcardStore.GetByID.
// Returns store.ErrFlashcardNotFound if the card does not exist.
func (s *PostgresFlashcardStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Flashcard, error) {
	query := `
		SELECT id, owner_id, topic_id, front, back,
		       easiness, interval_days, repetitions, next_review_at,
		       created_at, updated_at
		FROM flashcards
		WHERE id = $1`

	card, err := scanFlashcard(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(MapError(err), store.ErrNotFound) {
			return nil, store.ErrFlashcardNotFound
		}
		return nil, MapError(err)
	}

	return card, nil
}

// ListDue implements store.FlashcardStore.ListDue.
// The boundary is inclusive (next_review_at <= now) and the order is
// ascending next_review_at with card ID as tiebreak.
func (s *PostgresFlashcardStore) ListDue(
	ctx context.Context,
	ownerID uuid.UUID,
	now time.Time,
) ([]*domain.Flashcard, error) {
	query := `
		SELECT id, owner_id, topic_id, front, back,
		       easiness, interval_days, repetitions, next_review_at,
		       created_at, updated_at
		FROM flashcards
		WHERE owner_id = $1 AND next_review_at <= $2
		ORDER BY next_review_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, ownerID, now)
	if err != nil {
		s.logger.Error("failed to list due flashcards",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	cards := []*domain.Flashcard{}
	for rows.Next() {
		card, err := scanFlashcard(rows)
		if err != nil {
			return nil, MapError(err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return cards, nil
}

// UpdateScheduling implements store.FlashcardStore.UpdateScheduling.
// The four scheduling fields are written in a single UPDATE statement, so
// concurrent readers see either the old or the new schedule, never a mix.
// Returns store.ErrFlashcardNotFound if the card does not exist.
func (s *PostgresFlashcardStore) UpdateScheduling(
	ctx context.Context,
	card *domain.Flashcard,
) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE flashcards
		SET easiness = $2,
		    interval_days = $3,
		    repetitions = $4,
		    next_review_at = $5,
		    updated_at = $6
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		card.ID,
		card.Easiness,
		card.Interval,
		card.Repetitions,
		card.NextReviewAt,
		card.UpdatedAt,
	)
	if err != nil {
		s.logger.Error("failed to update flashcard scheduling",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrFlashcardNotFound
	}

	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanFlashcard(row rowScanner) (*domain.Flashcard, error) {
	var card domain.Flashcard
	err := row.Scan(
		&card.ID,
		&card.OwnerID,
		&card.TopicID,
		&card.Front,
		&card.Back,
		&card.Easiness,
		&card.Interval,
		&card.Repetitions,
		&card.NextReviewAt,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &card, nil
}
