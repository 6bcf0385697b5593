package card_review

import (
	"context"
	"database/sql"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/store"
)

// CardRepository defines the interface for repositories that can provide
// card data and support transactions.
type CardRepository interface {
	// List returns every card.
	List(ctx context.Context) ([]domain.Flashcard, error)

	// GetByIDForUpdate retrieves a card and locks it for the rest of the transaction.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Flashcard, error)

	// UpdateScore replaces only the score of a card.
	UpdateScore(ctx context.Context, id int64, score int) error

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) CardRepository

	// DB returns the handle transactions are started on.
	DB() store.TxBeginner
}

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

// GetByIDForUpdate implements CardRepository.GetByIDForUpdate
func (a *cardRepositoryAdapter) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Flashcard, error) {
	return a.cardStore.GetByIDForUpdate(ctx, id)
}

// UpdateScore implements CardRepository.UpdateScore
func (a *cardRepositoryAdapter) UpdateScore(ctx context.Context, id int64, score int) error {
	return a.cardStore.UpdateScore(ctx, id, score)
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
