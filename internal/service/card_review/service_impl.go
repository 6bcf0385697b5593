package card_review

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/domain/srs"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
)

// Verify interface compliance at compile time
var _ CardReviewService = (*cardReviewServiceImpl)(nil)

// cardReviewServiceImpl implements the CardReviewService interface.
type cardReviewServiceImpl struct {
	cardRepo   CardRepository
	srsService srs.Service
	logger     *slog.Logger
}

// NewCardReviewService creates a new CardReviewService implementation.
func NewCardReviewService(
	cardRepo CardRepository,
	srsService srs.Service,
	logger *slog.Logger,
) CardReviewService {
	// Validate inputs
	if cardRepo == nil {
		panic("cardRepo cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &cardReviewServiceImpl{
		cardRepo:   cardRepo,
		srsService: srsService,
		logger:     logger.With(slog.String("component", "card_review_service")),
	}
}

// GetNextCard implements CardReviewService.GetNextCard.
func (s *cardReviewServiceImpl) GetNextCard(ctx context.Context) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.cardRepo.List(ctx)
	if err != nil {
		log.Error("failed to list cards for review", slog.String("error", err.Error()))
		return nil, NewGetNextCardError("failed to list cards", err)
	}

	card, err := s.srsService.SelectNext(cards)
	if err != nil {
		if errors.Is(err, srs.ErrEmptyCollection) {
			log.Debug("no cards available for review")
			return nil, ErrNoCardsAvailable
		}
		log.Error("failed to select next card", slog.String("error", err.Error()))
		return nil, NewGetNextCardError("failed to select card", err)
	}

	log.Debug("selected next review card",
		slog.Int64("card_id", card.ID),
		slog.Int("score", card.Score),
		slog.Int("card_count", len(cards)))
	return &card, nil
}

// SubmitAnswer implements CardReviewService.SubmitAnswer.
func (s *cardReviewServiceImpl) SubmitAnswer(
	ctx context.Context,
	cardID int64,
	answer ReviewAnswer,
) (*ReviewResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("processing review answer",
		slog.Int64("card_id", cardID),
		slog.Bool("correct", answer.Correct))

	var result *ReviewResult
	err := store.RunInTransaction(ctx, s.cardRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.cardRepo.WithTx(tx)

		card, err := txRepo.GetByIDForUpdate(ctx, cardID)
		if err != nil {
			return err
		}

		newScore := s.srsService.AdjustScore(card.Score, answer.Correct)
		if err := txRepo.UpdateScore(ctx, cardID, newScore); err != nil {
			return err
		}

		result = &ReviewResult{ID: cardID, NewScore: newScore}
		return nil
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("card not found for review", slog.Int64("card_id", cardID))
			return nil, store.ErrCardNotFound
		}

		log.Error("failed to submit answer",
			slog.String("error", err.Error()),
			slog.Int64("card_id", cardID))
		return nil, NewSubmitAnswerError("failed to record review", err)
	}

	log.Info("review recorded",
		slog.Int64("card_id", cardID),
		slog.Bool("correct", answer.Correct),
		slog.Int("new_score", result.NewScore))
	return result, nil
}
