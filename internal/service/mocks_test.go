package service

import (
	"context"
	"database/sql"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockCardRepository mocks the CardRepository interface
type MockCardRepository struct {
	mock.Mock
	db store.TxBeginner
}

func (m *MockCardRepository) List(ctx context.Context) ([]domain.Flashcard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flashcard), args.Error(1)
}

func (m *MockCardRepository) GetByID(ctx context.Context, id int64) (*domain.Flashcard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flashcard), args.Error(1)
}

func (m *MockCardRepository) Create(ctx context.Context, card *domain.Flashcard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error {
	args := m.Called(ctx, cards)
	return args.Error(0)
}

func (m *MockCardRepository) Update(ctx context.Context, card *domain.Flashcard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx returns the same mock so expectations set on it cover
// transactional calls too.
func (m *MockCardRepository) WithTx(tx *sql.Tx) CardRepository {
	return m
}

func (m *MockCardRepository) DB() store.TxBeginner {
	return m.db
}
