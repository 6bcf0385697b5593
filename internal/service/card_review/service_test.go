package card_review

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/domain/srs"
	"github.com/phrazzld/flashdeck/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCardRepository implements CardRepository with function fields.
type mockCardRepository struct {
	db                 store.TxBeginner
	listFn             func(ctx context.Context) ([]domain.Flashcard, error)
	getByIDForUpdateFn func(ctx context.Context, id int64) (*domain.Flashcard, error)
	updateScoreFn      func(ctx context.Context, id int64, score int) error
	withTxCalls        int
}

func (m *mockCardRepository) List(ctx context.Context) ([]domain.Flashcard, error) {
	return m.listFn(ctx)
}

func (m *mockCardRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Flashcard, error) {
	return m.getByIDForUpdateFn(ctx, id)
}

func (m *mockCardRepository) UpdateScore(ctx context.Context, id int64, score int) error {
	return m.updateScoreFn(ctx, id, score)
}

func (m *mockCardRepository) WithTx(tx *sql.Tx) CardRepository {
	m.withTxCalls++
	return m
}

func (m *mockCardRepository) DB() store.TxBeginner {
	return m.db
}

func newSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func TestNewCardReviewService_PanicsOnNilDependencies(t *testing.T) {
	assert.Panics(t, func() { NewCardReviewService(nil, srs.NewDefaultService(), nil) })
	assert.Panics(t, func() { NewCardReviewService(&mockCardRepository{}, nil, nil) })
}

func TestGetNextCard(t *testing.T) {
	repo := &mockCardRepository{
		listFn: func(ctx context.Context) ([]domain.Flashcard, error) {
			return []domain.Flashcard{{ID: 1, Score: 3}, {ID: 2, Score: 1}, {ID: 3, Score: 1}}, nil
		},
	}
	svc := NewCardReviewService(repo, srs.NewServiceWithChooser(func(n int) int { return n - 1 }), nil)

	card, err := svc.GetNextCard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), card.ID)
	assert.Equal(t, 1, card.Score)
}

func TestGetNextCard_Empty(t *testing.T) {
	repo := &mockCardRepository{
		listFn: func(ctx context.Context) ([]domain.Flashcard, error) {
			return []domain.Flashcard{}, nil
		},
	}
	svc := NewCardReviewService(repo, srs.NewDefaultService(), nil)

	card, err := svc.GetNextCard(context.Background())
	assert.Nil(t, card)
	assert.ErrorIs(t, err, ErrNoCardsAvailable)
	assert.ErrorIs(t, err, srs.ErrEmptyCollection)
}

func TestGetNextCard_ListError(t *testing.T) {
	boom := errors.New("db down")
	repo := &mockCardRepository{
		listFn: func(ctx context.Context) ([]domain.Flashcard, error) { return nil, boom },
	}
	svc := NewCardReviewService(repo, srs.NewDefaultService(), nil)

	_, err := svc.GetNextCard(context.Background())
	assert.ErrorIs(t, err, boom)

	var serviceErr *ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "get_next_card", serviceErr.Operation)
}

func TestSubmitAnswer(t *testing.T) {
	tests := []struct {
		name      string
		score     int
		correct   bool
		wantScore int
	}{
		{name: "correct raises score", score: 2, correct: true, wantScore: 3},
		{name: "incorrect lowers score", score: 2, correct: false, wantScore: 1},
		{name: "incorrect at zero stays zero", score: 0, correct: false, wantScore: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newSQLMock(t)
			mock.ExpectBegin()
			mock.ExpectCommit()

			var written int
			repo := &mockCardRepository{
				db: db,
				getByIDForUpdateFn: func(ctx context.Context, id int64) (*domain.Flashcard, error) {
					return &domain.Flashcard{ID: id, Score: tt.score}, nil
				},
				updateScoreFn: func(ctx context.Context, id int64, score int) error {
					written = score
					return nil
				},
			}
			svc := NewCardReviewService(repo, srs.NewDefaultService(), nil)

			result, err := svc.SubmitAnswer(context.Background(), 5, ReviewAnswer{Correct: tt.correct})
			require.NoError(t, err)
			assert.Equal(t, &ReviewResult{ID: 5, NewScore: tt.wantScore}, result)
			assert.Equal(t, tt.wantScore, written)
			assert.Equal(t, 1, repo.withTxCalls)
		})
	}
}

func TestSubmitAnswer_NotFound(t *testing.T) {
	db, mock := newSQLMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	updated := false
	repo := &mockCardRepository{
		db: db,
		getByIDForUpdateFn: func(ctx context.Context, id int64) (*domain.Flashcard, error) {
			return nil, store.ErrCardNotFound
		},
		updateScoreFn: func(ctx context.Context, id int64, score int) error {
			updated = true
			return nil
		},
	}
	svc := NewCardReviewService(repo, srs.NewDefaultService(), nil)

	result, err := svc.SubmitAnswer(context.Background(), 99, ReviewAnswer{Correct: true})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, store.ErrCardNotFound)
	assert.False(t, updated)
}

func TestSubmitAnswer_UpdateFailure(t *testing.T) {
	db, mock := newSQLMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("write failed")
	repo := &mockCardRepository{
		db: db,
		getByIDForUpdateFn: func(ctx context.Context, id int64) (*domain.Flashcard, error) {
			return &domain.Flashcard{ID: id, Score: 1}, nil
		},
		updateScoreFn: func(ctx context.Context, id int64, score int) error { return boom },
	}
	svc := NewCardReviewService(repo, srs.NewDefaultService(), nil)

	_, err := svc.SubmitAnswer(context.Background(), 1, ReviewAnswer{Correct: true})
	assert.ErrorIs(t, err, boom)

	var serviceErr *ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "submit_answer", serviceErr.Operation)
}

func TestServiceError_Error(t *testing.T) {
	err := NewGetNextCardError("failed to list cards", errors.New("boom"))
	assert.Equal(t, "get_next_card operation failed: failed to list cards: boom", err.Error())

	err = NewSubmitAnswerError("failed", nil)
	assert.Equal(t, "submit_answer operation failed: failed", err.Error())
}
