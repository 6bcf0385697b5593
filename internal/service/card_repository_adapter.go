package service

import (
	"context"
	"database/sql"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/store"
)

// NewCardRepositoryAdapter creates a new adapter that allows a store.CardStore
// to be used where a CardRepository is expected.
func NewCardRepositoryAdapter(cardStore store.CardStore, db *sql.DB) CardRepository {
	return &cardRepositoryAdapter{
		cardStore: cardStore,
		db:        db,
	}
}

// cardRepositoryAdapter adapts a store.CardStore to the CardRepository interface
type cardRepositoryAdapter struct {
	cardStore store.CardStore
	db        *sql.DB
}

// List implements CardRepository.List
func (a *cardRepositoryAdapter) List(ctx context.Context) ([]domain.Flashcard, error) {
	return a.cardStore.List(ctx)
}

// GetByID implements CardRepository.GetByID
func (a *cardRepositoryAdapter) GetByID(ctx context.Context, id int64) (*domain.Flashcard, error) {
	return a.cardStore.GetByID(ctx, id)
}

// Create implements CardRepository.Create
func (a *cardRepositoryAdapter) Create(ctx context.Context, card *domain.Flashcard) error {
	return a.cardStore.Create(ctx, card)
}

// CreateMultiple implements CardRepository.CreateMultiple
func (a *cardRepositoryAdapter) CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error {
	return a.cardStore.CreateMultiple(ctx, cards)
}

// Update implements CardRepository.Update
func (a *cardRepositoryAdapter) Update(ctx context.Context, card *domain.Flashcard) error {
	return a.cardStore.Update(ctx, card)
}

// Delete implements CardRepository.Delete
func (a *cardRepositoryAdapter) Delete(ctx context.Context, id int64) error {
	return a.cardStore.Delete(ctx, id)
}

// WithTx implements CardRepository.WithTx
func (a *cardRepositoryAdapter) WithTx(tx *sql.Tx) CardRepository {
	return &cardRepositoryAdapter{
		cardStore: a.cardStore.WithTxCardStore(tx),
		db:        a.db,
	}
}

// DB implements CardRepository.DB
func (a *cardRepositoryAdapter) DB() store.TxBeginner {
	return a.db
}
