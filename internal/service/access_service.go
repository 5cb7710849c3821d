package service

import (
	"context"
	"errors"

	"github.com/alex/deckshare/internal/domain"
	"github.com/alex/deckshare/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessService decides view and edit permission for decks. Denial is a
// false return, never an error; callers choose how to report it (403 for an
// authenticated caller, 401 for an anonymous one). Errors are reserved for
// store failures.
type AccessService struct {
	deckRepo   repository.DeckRepository
	viewerRepo repository.DeckViewerRepository
}

func NewAccessService(deckRepo repository.DeckRepository, viewerRepo repository.DeckViewerRepository) *AccessService {
	return &AccessService{
		deckRepo:   deckRepo,
		viewerRepo: viewerRepo,
	}
}

// CanEditDeck is true iff the deck exists and callerID owns it.
func (s *AccessService) CanEditDeck(ctx context.Context, deckID, callerID uuid.UUID) (bool, error) {
	deck, err := s.deckRepo.GetByID(ctx, deckID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return deck.OwnerID == callerID, nil
}

// CanViewDeck evaluates, in order, short-circuiting on the first match:
// deck existence, ownership, public visibility, exact share-token match,
// then the viewer allow-list. The ordering means an owner never needs a
// share token and a public deck needs no credentials at all.
func (s *AccessService) CanViewDeck(ctx context.Context, deckID uuid.UUID, callerID *uuid.UUID, shareToken string) (bool, error) {
	deck, err := s.deckRepo.GetByID(ctx, deckID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if callerID != nil && deck.OwnerID == *callerID {
		return true, nil
	}

	if deck.Visibility == domain.VisibilityPublic {
		return true, nil
	}

	if shareToken != "" && deck.ShareToken != nil && *deck.ShareToken == shareToken {
		return true, nil
	}

	if callerID != nil {
		listed, err := s.viewerRepo.Exists(ctx, deckID, *callerID)
		if err != nil {
			return false, err
		}
		if listed {
			return true, nil
		}
	}

	return false, nil
}
