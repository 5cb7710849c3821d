package postgres

import (
	"context"

	"github.com/alex/deckshare/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type deckRepository struct {
	db *gorm.DB
}

func NewDeckRepository(db *gorm.DB) *deckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Create(ctx context.Context, deck *domain.Deck) error {
	return r.db.WithContext(ctx).Create(deck).Error
}

func (r *deckRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	var deck domain.Deck
	err := r.db.WithContext(ctx).First(&deck, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &deck, nil
}

func (r *deckRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*domain.Deck, error) {
	var decks []*domain.Deck
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&decks).Error
	if err != nil {
		return nil, err
	}
	return decks, nil
}

func (r *deckRepository) Update(ctx context.Context, deck *domain.Deck) error {
	return r.db.WithContext(ctx).Save(deck).Error
}
