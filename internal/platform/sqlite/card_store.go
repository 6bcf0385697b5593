package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
)

const cardColumns = `id, course, chapter, notion, question, answer, score`

// SQLiteCardStore implements the store.CardStore interface
// using a SQLite database file as the storage backend.
type SQLiteCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSQLiteCardStore creates a new SQLite implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewSQLiteCardStore(db store.DBTX, logger *slog.Logger) *SQLiteCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SQLiteCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure SQLiteCardStore implements store.CardStore interface
var _ store.CardStore = (*SQLiteCardStore)(nil)

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
func (s *SQLiteCardStore) List(ctx context.Context) ([]domain.Flashcard, error) {
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

	log.Debug("listed cards", slog.Int("count", len(cards)))
	return cards, nil
}

// GetByID implements store.CardStore.GetByID
// Returns store.ErrCardNotFound if the card does not exist.
func (s *SQLiteCardStore) GetByID(ctx context.Context, id int64) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving card by ID", slog.Int64("card_id", id))

	row := s.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM flashcards WHERE id = ?`, id)
	card, err := scanCard(row)
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

// GetByIDForUpdate implements store.CardStore.GetByIDForUpdate.
// SQLite has no row locks; transactions on this store are opened with
// BEGIN IMMEDIATE, so the surrounding transaction already holds the
// database write lock when this read runs.
func (s *SQLiteCardStore) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Flashcard, error) {
	return s.GetByID(ctx, id)
}

// Create implements store.CardStore.Create
// It saves a new card and sets card.ID to the assigned value.
func (s *SQLiteCardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO flashcards (course, chapter, notion, question, answer, score)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
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
func (s *SQLiteCardStore) CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error {
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

	stmt, err := s.db.PrepareContext(ctx, `
		INSERT INTO flashcards (course, chapter, notion, question, answer, score)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
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
func (s *SQLiteCardStore) Update(ctx context.Context, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during update", slog.String("error", err.Error()))
		return err
	}

	query := `
		UPDATE flashcards
		SET course = ?, chapter = ?, notion = ?, question = ?, answer = ?, score = ?
		WHERE id = ?
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
// Only the score column is written.
func (s *SQLiteCardStore) UpdateScore(ctx context.Context, id int64, score int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateScore(score); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `UPDATE flashcards SET score = ? WHERE id = ?`, score, id)
	if err != nil {
		log.Error("failed to update card score",
			slog.String("error", err.Error()),
			slog.Int64("card_id", id))
		return store.NewStoreError("card", "update_score", "failed to update score", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrCardNotFound); err != nil {
		return err
	}

	log.Debug("card score updated", slog.Int64("card_id", id), slog.Int("score", score))
	return nil
}

// Delete implements store.CardStore.Delete
// Returns store.ErrCardNotFound if the card does not exist.
func (s *SQLiteCardStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM flashcards WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.Int64("card_id", id))
		return store.NewStoreError("card", "delete", "failed to delete card", MapError(err))
	}

	return CheckRowsAffected(result, store.ErrCardNotFound)
}

// WithTxCardStore implements store.CardStore.WithTxCardStore
func (s *SQLiteCardStore) WithTxCardStore(tx *sql.Tx) store.CardStore {
	return &SQLiteCardStore{
		db:     tx,
		logger: s.logger,
	}
}
