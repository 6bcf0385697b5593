package srs

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// Common errors
var (
	// ErrEmptyCollection is returned when a card must be selected from an empty set.
	ErrEmptyCollection = errors.New("no cards to select from")

	// ErrChooserOutOfRange is returned when a Chooser yields an index outside [0, n).
	ErrChooserOutOfRange = errors.New("chooser returned an index out of range")
)

// Chooser returns an index in [0, n). n is always at least 2.
type Chooser func(n int) int

// Service defines the interface for review scheduling operations
type Service interface {
	// AdjustScore computes a card's score after a review outcome
	AdjustScore(current int, correct bool) int

	// SelectNext picks the card to present next, favouring the weakest cards
	SelectNext(cards []domain.Flashcard) (domain.Flashcard, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	choose Chooser
}

// NewDefaultService creates a review service that breaks ties with the
// process-wide pseudo-random source.
func NewDefaultService() Service {
	return NewServiceWithChooser(nil)
}

// NewServiceWithChooser creates a review service that breaks ties with the
// given chooser. A nil chooser falls back to math/rand/v2.
func NewServiceWithChooser(choose Chooser) Service {
	if choose == nil {
		choose = rand.IntN
	}
	return &defaultService{choose: choose}
}

// NewSeededService creates a review service whose tie-breaking is fully
// determined by seed. Two services built from the same seed make the same
// choices in the same order.
func NewSeededService(seed uint64) Service {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return NewServiceWithChooser(rng.IntN)
}

// AdjustScore implements Service.AdjustScore
func (s *defaultService) AdjustScore(current int, correct bool) int {
	return AdjustScore(current, correct)
}

// SelectNext implements Service.SelectNext.
//
// It narrows the set to the cards holding the minimum score and picks one of
// them uniformly at random. The chooser is not consulted when a single card
// holds the minimum. The returned card is a copy; nothing is mutated.
func (s *defaultService) SelectNext(cards []domain.Flashcard) (domain.Flashcard, error) {
	weakest := weakestCards(cards)
	switch len(weakest) {
	case 0:
		return domain.Flashcard{}, ErrEmptyCollection
	case 1:
		return weakest[0], nil
	}

	i := s.choose(len(weakest))
	if i < 0 || i >= len(weakest) {
		return domain.Flashcard{}, fmt.Errorf("%w: %d not in [0, %d)", ErrChooserOutOfRange, i, len(weakest))
	}
	return weakest[i], nil
}
