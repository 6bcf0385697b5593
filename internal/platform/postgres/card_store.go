package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
)

const (
	cardColumns = `id, course, chapter, notion, question, answer, score`

	insertCardQuery = `
		INSERT INTO flashcards (course, chapter, notion, question, answer, score)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*domain.Flashcard, error) {
	var card domain.Flashcard
	if err := row.Scan(
		&card.ID,
		&card.Course,
		&card.Chapter,
		&card.Notion,
		&card.Question,
		&card.Answer,
		&card.Score,
	); err != nil {
		return nil, err
	}
	return &card, nil
}

// List implements store.CardStore.List
// It returns all cards ordered by ID; an empty table yields an empty slice.
func (s *PostgresCardStore) List(ctx context.Context) ([]domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT `+cardColumns+` FROM flashcards ORDER BY id`)
	if err != nil {
		log.Error("failed to list cards", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	cards := make([]domain.Flashcard, 0)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			log.Error("failed to scan card row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		cards = append(cards, *card)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating card rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return cards, nil
}

// GetByID implements store.CardStore.GetByID
// It retrieves a card by its unique ID.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) GetByID(ctx context.Context, id int64) (*domain.Flashcard, error) {
	return s.getByID(ctx, id, `SELECT `+cardColumns+` FROM flashcards WHERE id = $1`)
}

// GetByIDForUpdate implements store.CardStore.GetByIDForUpdate
// The row stays locked until the surrounding transaction commits or rolls back.
func (s *PostgresCardStore) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Flashcard, error) {
	return s.getByID(ctx, id, `SELECT `+cardColumns+` FROM flashcards WHERE id = $1 FOR UPDATE`)
}

func (s *PostgresCardStore) getByID(ctx context.Context, id int64, query string) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving card by ID", slog.Int64("card_id", id))

	card, err := scanCard(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found", slog.Int64("card_id", id))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card by ID",
			slog.String("error", err.Error()),
			slog.Int64("card_id", id))
		return nil, MapError(err)
	}

	return card, nil
}

// Create implements store.CardStore.Create
// It saves a new card, handling domain validation, and sets card.ID.
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during create", slog.String("error", err.Error()))
		return err
	}

	err := s.db.QueryRowContext(
		ctx,
		insertCardQuery,
		card.Course,
		card.Chapter,
		card.Notion,
		card.Question,
		card.Answer,
		card.Score,
	).Scan(&card.ID)
	if err != nil {
		log.Error("failed to create card", slog.String("error", err.Error()))
		return store.NewStoreError("card", "create", "failed to insert card", MapError(err))
	}

	log.Debug("card created", slog.Int64("card_id", card.ID))
	return nil
}

// CreateMultiple implements store.CardStore.CreateMultiple
// Cards are validated up front; nothing is written if any card is invalid.
func (s *PostgresCardStore) CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(cards) == 0 {
		return nil
	}

	for _, card := range cards {
		if err := card.Validate(); err != nil {
			log.Warn("card validation failed during batch create", slog.String("error", err.Error()))
			return err
		}
	}

	stmt, err := s.db.PrepareContext(ctx, insertCardQuery)
	if err != nil {
		log.Error("failed to prepare card insert", slog.String("error", err.Error()))
		return store.NewStoreError("card", "create_multiple", "failed to prepare insert", MapError(err))
	}
	defer func() { _ = stmt.Close() }()

	for _, card := range cards {
		err := stmt.QueryRowContext(
			ctx,
			card.Course,
			card.Chapter,
			card.Notion,
			card.Question,
			card.Answer,
			card.Score,
		).Scan(&card.ID)
		if err != nil {
			log.Error("failed to insert card in batch", slog.String("error", err.Error()))
			return store.NewStoreError("card", "create_multiple", "failed to insert card", MapError(err))
		}
	}

	log.Info("cards created", slog.Int("count", len(cards)))
	return nil
}

// Update implements store.CardStore.Update
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) Update(ctx context.Context, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during update", slog.String("error", err.Error()))
		return err
	}

	query := `
		UPDATE flashcards
		SET course = $1, chapter = $2, notion = $3, question = $4, answer = $5, score = $6
		WHERE id = $7
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		card.Course,
		card.Chapter,
		card.Notion,
		card.Question,
		card.Answer,
		card.Score,
		card.ID,
	)
	if err != nil {
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.Int64("card_id", card.ID))
		return store.NewStoreError("card", "update", "failed to update card", MapError(err))
	}

	return CheckRowsAffected(result, store.ErrCardNotFound)
}

// UpdateScore implements store.CardStore.UpdateScore
func (s *PostgresCardStore) UpdateScore(ctx context.Context, id int64, score int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateScore(score); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `UPDATE flashcards SET score = $1 WHERE id = $2`, score, id)
	if err != nil {
		log.Error("failed to update card score",
			slog.String("error", err.Error()),
			slog.Int64("card_id", id))
		return store.NewStoreError("card", "update_score", "failed to update score", MapError(err))
	}

	return CheckRowsAffected(result, store.ErrCardNotFound)
}

// Delete implements store.CardStore.Delete
// It removes a card from the store by its ID.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM flashcards WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.Int64("card_id", id))
		return store.NewStoreError("card", "delete", "failed to delete card", MapError(err))
	}

	return CheckRowsAffected(result, store.ErrCardNotFound)
}

// WithTxCardStore implements store.CardStore.WithTxCardStore
// It returns a new CardStore instance that uses the provided transaction.
func (s *PostgresCardStore) WithTxCardStore(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}
