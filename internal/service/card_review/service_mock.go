package card_review

import (
	"context"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// MockCardReviewService is a mock implementation of the CardReviewService interface for testing.
type MockCardReviewService struct {
	GetNextCardFunc  func(ctx context.Context) (*domain.Flashcard, error)
	SubmitAnswerFunc func(ctx context.Context, cardID int64, answer ReviewAnswer) (*ReviewResult, error)
}

// GetNextCard returns the next card for review.
func (m *MockCardReviewService) GetNextCard(ctx context.Context) (*domain.Flashcard, error) {
	if m.GetNextCardFunc != nil {
		return m.GetNextCardFunc(ctx)
	}
	return nil, nil
}

// SubmitAnswer submits an answer for a card and returns its new score.
func (m *MockCardReviewService) SubmitAnswer(
	ctx context.Context,
	cardID int64,
	answer ReviewAnswer,
) (*ReviewResult, error) {
	if m.SubmitAnswerFunc != nil {
		return m.SubmitAnswerFunc(ctx, cardID, answer)
	}
	return nil, nil
}
