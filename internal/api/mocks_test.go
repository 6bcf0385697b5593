package api

import (
	"context"
	"io"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// mockCardService is a function-field CardService for handler tests.
type mockCardService struct {
	ListCardsFunc   func(ctx context.Context) ([]domain.Flashcard, error)
	GetCardFunc     func(ctx context.Context, cardID int64) (*domain.Flashcard, error)
	CreateCardFunc  func(ctx context.Context, card *domain.Flashcard) error
	UpdateCardFunc  func(ctx context.Context, cardID int64, card *domain.Flashcard) error
	DeleteCardFunc  func(ctx context.Context, cardID int64) error
	ImportCardsFunc func(ctx context.Context, r io.Reader) (int, error)
}

func (m *mockCardService) ListCards(ctx context.Context) ([]domain.Flashcard, error) {
	if m.ListCardsFunc != nil {
		return m.ListCardsFunc(ctx)
	}
	return nil, nil
}

func (m *mockCardService) GetCard(ctx context.Context, cardID int64) (*domain.Flashcard, error) {
	if m.GetCardFunc != nil {
		return m.GetCardFunc(ctx, cardID)
	}
	return nil, nil
}

func (m *mockCardService) CreateCard(ctx context.Context, card *domain.Flashcard) error {
	if m.CreateCardFunc != nil {
		return m.CreateCardFunc(ctx, card)
	}
	return nil
}

func (m *mockCardService) UpdateCard(ctx context.Context, cardID int64, card *domain.Flashcard) error {
	if m.UpdateCardFunc != nil {
		return m.UpdateCardFunc(ctx, cardID, card)
	}
	return nil
}

func (m *mockCardService) DeleteCard(ctx context.Context, cardID int64) error {
	if m.DeleteCardFunc != nil {
		return m.DeleteCardFunc(ctx, cardID)
	}
	return nil
}

func (m *mockCardService) ImportCards(ctx context.Context, r io.Reader) (int, error) {
	if m.ImportCardsFunc != nil {
		return m.ImportCardsFunc(ctx, r)
	}
	return 0, nil
}
