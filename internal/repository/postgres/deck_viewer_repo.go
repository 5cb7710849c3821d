package postgres

import (
	"context"

	"github.com/alex/deckshare/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type deckViewerRepository struct {
	db *gorm.DB
}

func NewDeckViewerRepository(db *gorm.DB) *deckViewerRepository {
	return &deckViewerRepository{db: db}
}

// Create is idempotent: granting the same viewer twice is a no-op.
func (r *deckViewerRepository) Create(ctx context.Context, viewer *domain.DeckViewer) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(viewer).Error
}

func (r *deckViewerRepository) Exists(ctx context.Context, deckID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.DeckViewer{}).
		Where("deck_id = ? AND user_id = ?", deckID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *deckViewerRepository) GetByDeckID(ctx context.Context, deckID uuid.UUID) ([]*domain.DeckViewer, error) {
	var viewers []*domain.DeckViewer
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("deck_id = ?", deckID).
		Order("created_at ASC").
		Find(&viewers).Error
	if err != nil {
		return nil, err
	}
	return viewers, nil
}

func (r *deckViewerRepository) Delete(ctx context.Context, deckID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.DeckViewer{}, "deck_id = ? AND user_id = ?", deckID, userID).Error
}
