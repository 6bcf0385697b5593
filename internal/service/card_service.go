package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"

	"github.com/phrazzld/flashdeck/internal/csvimport"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
)

// CardRepository defines the repository interface for the service layer
type CardRepository interface {
	// List returns every card ordered by ID
	List(ctx context.Context) ([]domain.Flashcard, error)

	// GetByID retrieves a card by its unique ID
	GetByID(ctx context.Context, id int64) (*domain.Flashcard, error)

	// Create saves a new card and assigns its ID
	Create(ctx context.Context, card *domain.Flashcard) error

	// CreateMultiple saves multiple cards to the store
	CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error

	// Update replaces every field of an existing card
	Update(ctx context.Context, card *domain.Flashcard) error

	// Delete removes a card by its ID
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new repository instance that uses the provided transaction
	// This is used for transactional operations
	WithTx(tx *sql.Tx) CardRepository

	// DB returns the handle transactions are started on
	DB() store.TxBeginner
}

// CardService provides card-related operations
type CardService interface {
	// ListCards returns every card ordered by ID
	ListCards(ctx context.Context) ([]domain.Flashcard, error)

	// GetCard retrieves a card by its ID
	GetCard(ctx context.Context, cardID int64) (*domain.Flashcard, error)

	// CreateCard stores a new card; the store assigns its ID
	CreateCard(ctx context.Context, card *domain.Flashcard) error

	// UpdateCard replaces every field of the card identified by cardID
	UpdateCard(ctx context.Context, cardID int64, card *domain.Flashcard) error

	// DeleteCard removes a card. Deleting a card that does not exist succeeds.
	DeleteCard(ctx context.Context, cardID int64) error

	// ImportCards parses tabular card data from r and stores every card in a
	// single transaction. It returns the number of cards stored.
	ImportCards(ctx context.Context, r io.Reader) (int, error)
}

// cardServiceImpl implements the CardService interface
type cardServiceImpl struct {
	cardRepo CardRepository
	logger   *slog.Logger
}

// NewCardService creates a new CardService
// It returns an error if any of the required dependencies are nil.
func NewCardService(cardRepo CardRepository, logger *slog.Logger) (CardService, error) {
	if cardRepo == nil {
		return nil, domain.NewValidationError("cardRepo", "cannot be nil", domain.ErrValidation)
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &cardServiceImpl{
		cardRepo: cardRepo,
		logger:   logger.With(slog.String("component", "card_service")),
	}, nil
}

// ListCards implements CardService.ListCards
func (s *cardServiceImpl) ListCards(ctx context.Context) ([]domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.cardRepo.List(ctx)
	if err != nil {
		log.Error("failed to list cards", slog.String("error", err.Error()))
		return nil, NewCardServiceError("list_cards", "failed to list cards", err)
	}

	log.Debug("listed cards", slog.Int("card_count", len(cards)))
	return cards, nil
}

// GetCard implements CardService.GetCard
// It retrieves a card by its ID
func (s *cardServiceImpl) GetCard(ctx context.Context, cardID int64) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving card", slog.Int64("card_id", cardID))

	card, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("card not found", slog.Int64("card_id", cardID))
			return nil, NewCardServiceError("get_card", "card not found", store.ErrCardNotFound)
		}

		log.Error("failed to retrieve card",
			slog.String("error", err.Error()),
			slog.Int64("card_id", cardID))
		return nil, NewCardServiceError("get_card", "failed to retrieve card", err)
	}

	return card, nil
}

// CreateCard implements CardService.CreateCard
func (s *cardServiceImpl) CreateCard(ctx context.Context, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Debug("rejected invalid card", slog.String("error", err.Error()))
		return NewCardServiceError("create_card", "invalid card", err)
	}

	if err := s.cardRepo.Create(ctx, card); err != nil {
		log.Error("failed to create card", slog.String("error", err.Error()))
		return NewCardServiceError("create_card", "failed to save card", err)
	}

	log.Info("card created", slog.Int64("card_id", card.ID))
	return nil
}

// UpdateCard implements CardService.UpdateCard
// The ID in the path wins over any ID carried by card.
func (s *cardServiceImpl) UpdateCard(ctx context.Context, cardID int64, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card.ID = cardID
	if err := card.Validate(); err != nil {
		log.Debug("rejected invalid card", slog.String("error", err.Error()))
		return NewCardServiceError("update_card", "invalid card", err)
	}

	if err := s.cardRepo.Update(ctx, card); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("card to update not found", slog.Int64("card_id", cardID))
			return NewCardServiceError("update_card", "card not found", store.ErrCardNotFound)
		}
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.Int64("card_id", cardID))
		return NewCardServiceError("update_card", "failed to save card", err)
	}

	log.Info("card updated", slog.Int64("card_id", cardID))
	return nil
}

// DeleteCard implements CardService.DeleteCard
func (s *cardServiceImpl) DeleteCard(ctx context.Context, cardID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.cardRepo.Delete(ctx, cardID); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("card to delete already absent", slog.Int64("card_id", cardID))
			return nil
		}
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.Int64("card_id", cardID))
		return NewCardServiceError("delete_card", "failed to delete card", err)
	}

	log.Info("card deleted", slog.Int64("card_id", cardID))
	return nil
}

// ImportCards implements CardService.ImportCards
// Nothing is stored unless every row parses and every insert succeeds.
func (s *cardServiceImpl) ImportCards(ctx context.Context, r io.Reader) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := csvimport.Parse(r)
	if err != nil {
		log.Debug("rejected malformed import", slog.String("error", err.Error()))
		return 0, NewCardServiceError("import_cards", "malformed input", err)
	}

	if len(cards) == 0 {
		log.Debug("import contained no cards")
		return 0, nil
	}

	err = store.RunInTransaction(
		ctx,
		s.cardRepo.DB(),
		func(ctx context.Context, tx *sql.Tx) error {
			if err := s.cardRepo.WithTx(tx).CreateMultiple(ctx, cards); err != nil {
				log.Error("failed to create cards in transaction",
					slog.String("error", err.Error()))
				return NewCardServiceError("import_cards", "failed to save cards", err)
			}
			return nil
		},
	)
	if err != nil {
		var serviceErr *CardServiceError
		if errors.As(err, &serviceErr) {
			return 0, err
		}
		return 0, NewCardServiceError("import_cards", "failed to import cards", err)
	}

	log.Info("imported cards", slog.Int("card_count", len(cards)))
	return len(cards), nil
}
