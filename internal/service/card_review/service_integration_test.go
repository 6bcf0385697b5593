package card_review_test

import (
	"context"
	"sync"
	"testing"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/domain/srs"
	"github.com/phrazzld/flashdeck/internal/platform/sqlite"
	"github.com/phrazzld/flashdeck/internal/service/card_review"
	"github.com/phrazzld/flashdeck/internal/store"
	"github.com/phrazzld/flashdeck/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupReview(t *testing.T) (card_review.CardReviewService, store.CardStore) {
	t.Helper()
	db := testdb.NewSQLiteDB(t)

	cardStore := sqlite.NewSQLiteCardStore(db, nil)
	repo := card_review.NewCardRepositoryAdapter(cardStore, db)
	return card_review.NewCardReviewService(repo, srs.NewSeededService(1), nil), cardStore
}

func createCard(t *testing.T, cardStore store.CardStore, score int) *domain.Flashcard {
	t.Helper()
	card := domain.NewFlashcard("Math", "Algebra", "Equations", "What is x?", "42")
	card.Score = score
	require.NoError(t, cardStore.Create(context.Background(), card))
	return card
}

func TestSubmitAnswer_IncorrectAtZeroStaysZero(t *testing.T) {
	svc, cardStore := setupReview(t)
	card := createCard(t, cardStore, 0)

	result, err := svc.SubmitAnswer(context.Background(), card.ID, card_review.ReviewAnswer{Correct: false})
	require.NoError(t, err)
	assert.Equal(t, 0, result.NewScore)

	stored, err := cardStore.GetByID(context.Background(), card.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Score)
}

func TestSubmitAnswer_OnlyScoreChanges(t *testing.T) {
	svc, cardStore := setupReview(t)
	card := createCard(t, cardStore, 2)

	result, err := svc.SubmitAnswer(context.Background(), card.ID, card_review.ReviewAnswer{Correct: true})
	require.NoError(t, err)
	assert.Equal(t, card_review.ReviewResult{ID: card.ID, NewScore: 3}, *result)

	stored, err := cardStore.GetByID(context.Background(), card.ID)
	require.NoError(t, err)
	assert.Equal(t, card.WithScore(3), *stored)
}

func TestSubmitAnswer_MissingCard(t *testing.T) {
	svc, _ := setupReview(t)

	_, err := svc.SubmitAnswer(context.Background(), 99, card_review.ReviewAnswer{Correct: true})
	assert.ErrorIs(t, err, store.ErrCardNotFound)
}

func TestGetNextCard_WeakestFirst(t *testing.T) {
	svc, cardStore := setupReview(t)

	_, err := svc.GetNextCard(context.Background())
	require.ErrorIs(t, err, card_review.ErrNoCardsAvailable)

	createCard(t, cardStore, 3)
	weak1 := createCard(t, cardStore, 1)
	weak2 := createCard(t, cardStore, 1)

	for i := 0; i < 20; i++ {
		card, err := svc.GetNextCard(context.Background())
		require.NoError(t, err)
		assert.Contains(t, []int64{weak1.ID, weak2.ID}, card.ID)
		assert.Equal(t, 1, card.Score)
	}
}

func TestSubmitAnswer_ConcurrentReviewsLoseNoUpdate(t *testing.T) {
	svc, cardStore := setupReview(t)
	card := createCard(t, cardStore, 10)

	const correct, incorrect = 15, 5
	var wg sync.WaitGroup
	errs := make(chan error, correct+incorrect)
	submit := func(ok bool) {
		defer wg.Done()
		_, err := svc.SubmitAnswer(context.Background(), card.ID, card_review.ReviewAnswer{Correct: ok})
		errs <- err
	}

	for i := 0; i < correct; i++ {
		wg.Add(1)
		go submit(true)
	}
	for i := 0; i < incorrect; i++ {
		wg.Add(1)
		go submit(false)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := cardStore.GetByID(context.Background(), card.ID)
	require.NoError(t, err)
	assert.Equal(t, 10+correct-incorrect, stored.Score)
}
