package postgres

import (
	"context"

	"github.com/alex/deckshare/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type slideRepository struct {
	db *gorm.DB
}

func NewSlideRepository(db *gorm.DB) *slideRepository {
	return &slideRepository{db: db}
}

func (r *slideRepository) Create(ctx context.Context, slide *domain.Slide) error {
	return r.db.WithContext(ctx).Create(slide).Error
}

func (r *slideRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Slide, error) {
	var slide domain.Slide
	err := r.db.WithContext(ctx).First(&slide, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &slide, nil
}

func (r *slideRepository) GetByDeckID(ctx context.Context, deckID uuid.UUID) ([]*domain.Slide, error) {
	var slides []*domain.Slide
	err := r.db.WithContext(ctx).
		Where("deck_id = ?", deckID).
		Order("position ASC").
		Find(&slides).Error
	if err != nil {
		return nil, err
	}
	return slides, nil
}

func (r *slideRepository) Update(ctx context.Context, slide *domain.Slide) error {
	return r.db.WithContext(ctx).Save(slide).Error
}

func (r *slideRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Slide{}, "id = ?", id).Error
}

// MaxPosition returns -1 for a deck with no slides.
func (r *slideRepository) MaxPosition(ctx context.Context, deckID uuid.UUID) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&domain.Slide{}).
		Where("deck_id = ?", deckID).
		Select("MAX(position)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

// ShiftPositionsAfter closes the gap left by a deleted slide, keeping the
// deck's positions dense.
func (r *slideRepository) ShiftPositionsAfter(ctx context.Context, deckID uuid.UUID, position int) error {
	return r.db.WithContext(ctx).
		Model(&domain.Slide{}).
		Where("deck_id = ? AND position > ?", deckID, position).
		UpdateColumn("position", gorm.Expr("position - 1")).Error
}
