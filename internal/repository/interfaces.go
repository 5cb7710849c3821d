package repository

import (
	"context"

	"github.com/alex/deckshare/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type DeckRepository interface {
	Create(ctx context.Context, deck *domain.Deck) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*domain.Deck, error)
	Update(ctx context.Context, deck *domain.Deck) error
}

type SlideRepository interface {
	Create(ctx context.Context, slide *domain.Slide) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Slide, error)
	GetByDeckID(ctx context.Context, deckID uuid.UUID) ([]*domain.Slide, error)
	Update(ctx context.Context, slide *domain.Slide) error
	Delete(ctx context.Context, id uuid.UUID) error
	MaxPosition(ctx context.Context, deckID uuid.UUID) (int, error)
	ShiftPositionsAfter(ctx context.Context, deckID uuid.UUID, position int) error
}

type DeckViewerRepository interface {
	Create(ctx context.Context, viewer *domain.DeckViewer) error
	Exists(ctx context.Context, deckID, userID uuid.UUID) (bool, error)
	GetByDeckID(ctx context.Context, deckID uuid.UUID) ([]*domain.DeckViewer, error)
	Delete(ctx context.Context, deckID, userID uuid.UUID) error
}

type Repositories struct {
	User       UserRepository
	Deck       DeckRepository
	Slide      SlideRepository
	DeckViewer DeckViewerRepository
}
