package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/flashdeck/internal/csvimport"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, repo *MockCardRepository) CardService {
	t.Helper()
	svc, err := NewCardService(repo, nil)
	require.NoError(t, err)
	return svc
}

func TestNewCardService_NilRepository(t *testing.T) {
	svc, err := NewCardService(nil, nil)
	assert.Nil(t, svc)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCardService_ListCards(t *testing.T) {
	repo := &MockCardRepository{}
	cards := []domain.Flashcard{{ID: 1, Question: "q"}}
	repo.On("List", mock.Anything).Return(cards, nil)

	got, err := newTestService(t, repo).ListCards(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cards, got)
	repo.AssertExpectations(t)
}

func TestCardService_ListCards_Error(t *testing.T) {
	repo := &MockCardRepository{}
	boom := errors.New("db down")
	repo.On("List", mock.Anything).Return(nil, boom)

	_, err := newTestService(t, repo).ListCards(context.Background())
	assert.ErrorIs(t, err, boom)

	var serviceErr *CardServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "list_cards", serviceErr.Operation)
}

func TestCardService_GetCard(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := &MockCardRepository{}
		card := &domain.Flashcard{ID: 3, Question: "q"}
		repo.On("GetByID", mock.Anything, int64(3)).Return(card, nil)

		got, err := newTestService(t, repo).GetCard(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, card, got)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &MockCardRepository{}
		repo.On("GetByID", mock.Anything, int64(99)).Return(nil, store.ErrCardNotFound)

		_, err := newTestService(t, repo).GetCard(context.Background(), 99)
		assert.ErrorIs(t, err, store.ErrCardNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := &MockCardRepository{}
		boom := errors.New("boom")
		repo.On("GetByID", mock.Anything, int64(1)).Return(nil, boom)

		_, err := newTestService(t, repo).GetCard(context.Background(), 1)
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, store.ErrNotFound)
	})
}

func TestCardService_CreateCard(t *testing.T) {
	repo := &MockCardRepository{}
	card := domain.NewFlashcard("c", "ch", "n", "q", "a")
	repo.On("Create", mock.Anything, card).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Flashcard).ID = 1
	}).Return(nil)

	require.NoError(t, newTestService(t, repo).CreateCard(context.Background(), card))
	assert.Equal(t, int64(1), card.ID)
}

func TestCardService_CreateCard_Invalid(t *testing.T) {
	repo := &MockCardRepository{}
	card := domain.NewFlashcard("c", "ch", "n", "q", "a")
	card.Score = -3

	err := newTestService(t, repo).CreateCard(context.Background(), card)
	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCardService_UpdateCard(t *testing.T) {
	t.Run("uses path id", func(t *testing.T) {
		repo := &MockCardRepository{}
		repo.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Flashcard) bool {
			return c.ID == 5
		})).Return(nil)

		card := &domain.Flashcard{ID: 77, Question: "q"}
		require.NoError(t, newTestService(t, repo).UpdateCard(context.Background(), 5, card))
		assert.Equal(t, int64(5), card.ID)
		repo.AssertExpectations(t)
	})

	t.Run("missing card", func(t *testing.T) {
		repo := &MockCardRepository{}
		repo.On("Update", mock.Anything, mock.Anything).Return(store.ErrCardNotFound)

		err := newTestService(t, repo).UpdateCard(context.Background(), 42, &domain.Flashcard{})
		assert.ErrorIs(t, err, store.ErrCardNotFound)
	})
}

func TestCardService_DeleteCard_Idempotent(t *testing.T) {
	repo := &MockCardRepository{}
	repo.On("Delete", mock.Anything, int64(1)).Return(nil).Once()
	repo.On("Delete", mock.Anything, int64(1)).Return(store.ErrCardNotFound).Once()

	svc := newTestService(t, repo)
	assert.NoError(t, svc.DeleteCard(context.Background(), 1))
	assert.NoError(t, svc.DeleteCard(context.Background(), 1))
	repo.AssertExpectations(t)
}

func TestCardService_DeleteCard_Error(t *testing.T) {
	repo := &MockCardRepository{}
	boom := errors.New("boom")
	repo.On("Delete", mock.Anything, int64(1)).Return(boom)

	assert.ErrorIs(t, newTestService(t, repo).DeleteCard(context.Background(), 1), boom)
}

func TestCardService_ImportCards(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	repo := &MockCardRepository{db: db}
	repo.On("CreateMultiple", mock.Anything, mock.MatchedBy(func(cards []*domain.Flashcard) bool {
		return len(cards) == 2 && cards[1].Score == 2
	})).Return(nil)

	input := "Course,Chapter,Notion,Question,Answer,Score\nc,ch,n,q1,a1,\nc,ch,n,q2,a2,2\n"
	n, err := newTestService(t, repo).ImportCards(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestCardService_ImportCards_Malformed(t *testing.T) {
	repo := &MockCardRepository{}

	input := "Course,Chapter,Notion,Question,Answer,Score\nc,ch,n,q,a,x\n"
	n, err := newTestService(t, repo).ImportCards(context.Background(), strings.NewReader(input))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, domain.ErrMalformedInput)

	var rowErr *csvimport.RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 2, rowErr.Line)
	repo.AssertNotCalled(t, "CreateMultiple", mock.Anything, mock.Anything)
}

func TestCardService_ImportCards_RollsBack(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	boom := errors.New("insert failed")
	repo := &MockCardRepository{db: db}
	repo.On("CreateMultiple", mock.Anything, mock.Anything).Return(boom)

	input := "Course,Chapter,Notion,Question,Answer\nc,ch,n,q,a\n"
	n, err := newTestService(t, repo).ImportCards(context.Background(), strings.NewReader(input))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestCardService_ImportCards_Empty(t *testing.T) {
	repo := &MockCardRepository{}

	n, err := newTestService(t, repo).ImportCards(context.Background(),
		strings.NewReader("Course,Chapter,Notion,Question,Answer\n"))
	require.NoError(t, err)
	assert.Zero(t, n)
}
