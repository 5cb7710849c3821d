package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/alex/deckshare/internal/domain"
	"github.com/alex/deckshare/internal/email"
	"github.com/alex/deckshare/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DeckService struct {
	deckRepo   repository.DeckRepository
	slideRepo  repository.SlideRepository
	viewerRepo repository.DeckViewerRepository
	userRepo   repository.UserRepository
	emails     email.Sender
}

func NewDeckService(deckRepo repository.DeckRepository, slideRepo repository.SlideRepository, viewerRepo repository.DeckViewerRepository, userRepo repository.UserRepository, emails email.Sender) *DeckService {
	return &DeckService{
		deckRepo:   deckRepo,
		slideRepo:  slideRepo,
		viewerRepo: viewerRepo,
		userRepo:   userRepo,
		emails:     emails,
	}
}

func (s *DeckService) ListOwned(ctx context.Context, ownerID uuid.UUID) ([]*domain.Deck, error) {
	return s.deckRepo.GetByOwnerID(ctx, ownerID)
}

func (s *DeckService) Create(ctx context.Context, ownerID uuid.UUID, title string) (*domain.Deck, error) {
	deck := &domain.Deck{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Title:      title,
		Visibility: domain.VisibilityPrivate,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := s.deckRepo.Create(ctx, deck); err != nil {
		return nil, err
	}
	return deck, nil
}

func (s *DeckService) Get(ctx context.Context, deckID uuid.UUID) (*domain.Deck, error) {
	deck, err := s.deckRepo.GetByID(ctx, deckID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDeckNotFound
		}
		return nil, err
	}
	return deck, nil
}

// UpdateDeckInput carries the PATCH payload. Nil means the field was not
// supplied and is left unchanged. An empty ShareToken clears the token.
type UpdateDeckInput struct {
	Title      *string
	Visibility *string
	ShareToken *string
}

func (in UpdateDeckInput) empty() bool {
	return in.Title == nil && in.Visibility == nil && in.ShareToken == nil
}

// Update applies a partial update. A patch with no recognized fields
// returns the current row without bumping updated_at.
func (s *DeckService) Update(ctx context.Context, deckID uuid.UUID, input UpdateDeckInput) (*domain.Deck, error) {
	deck, err := s.Get(ctx, deckID)
	if err != nil {
		return nil, err
	}

	if input.empty() {
		return deck, nil
	}

	if input.Title != nil {
		deck.Title = *input.Title
	}
	if input.Visibility != nil {
		v := domain.Visibility(*input.Visibility)
		if !v.Valid() {
			return nil, domain.ErrInvalidVisibility
		}
		deck.Visibility = v
	}
	if input.ShareToken != nil {
		if *input.ShareToken == "" {
			deck.ShareToken = nil
		} else {
			deck.ShareToken = input.ShareToken
		}
	}

	deck.UpdatedAt = time.Now()
	if err := s.deckRepo.Update(ctx, deck); err != nil {
		return nil, err
	}
	return deck, nil
}

func (s *DeckService) ListSlides(ctx context.Context, deckID uuid.UUID) ([]*domain.Slide, error) {
	return s.slideRepo.GetByDeckID(ctx, deckID)
}

// AddSlide appends a slide after the deck's current last position.
func (s *DeckService) AddSlide(ctx context.Context, deckID uuid.UUID, content datatypes.JSON) (*domain.Slide, error) {
	if _, err := s.Get(ctx, deckID); err != nil {
		return nil, err
	}

	max, err := s.slideRepo.MaxPosition(ctx, deckID)
	if err != nil {
		return nil, err
	}

	slide := &domain.Slide{
		ID:       uuid.New(),
		DeckID:   deckID,
		Position: max + 1,
		Content:  content,
	}
	if err := s.slideRepo.Create(ctx, slide); err != nil {
		return nil, err
	}
	return slide, nil
}

func (s *DeckService) UpdateSlide(ctx context.Context, deckID, slideID uuid.UUID, content datatypes.JSON) (*domain.Slide, error) {
	slide, err := s.getDeckSlide(ctx, deckID, slideID)
	if err != nil {
		return nil, err
	}

	slide.Content = content
	if err := s.slideRepo.Update(ctx, slide); err != nil {
		return nil, err
	}
	return slide, nil
}

// DeleteSlide removes a slide and shifts later slides down, keeping
// positions dense.
func (s *DeckService) DeleteSlide(ctx context.Context, deckID, slideID uuid.UUID) error {
	slide, err := s.getDeckSlide(ctx, deckID, slideID)
	if err != nil {
		return err
	}

	if err := s.slideRepo.Delete(ctx, slide.ID); err != nil {
		return err
	}
	return s.slideRepo.ShiftPositionsAfter(ctx, deckID, slide.Position)
}

func (s *DeckService) getDeckSlide(ctx context.Context, deckID, slideID uuid.UUID) (*domain.Slide, error) {
	slide, err := s.slideRepo.GetByID(ctx, slideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSlideNotFound
		}
		return nil, err
	}
	if slide.DeckID != deckID {
		return nil, domain.ErrSlideNotFound
	}
	return slide, nil
}

func (s *DeckService) ListViewers(ctx context.Context, deckID uuid.UUID) ([]*domain.DeckViewer, error) {
	return s.viewerRepo.GetByDeckID(ctx, deckID)
}

// GrantViewer adds the user with the given email to the deck's allow-list.
// The grant is idempotent; the notification email is best-effort.
func (s *DeckService) GrantViewer(ctx context.Context, deck *domain.Deck, granteeEmail string) (*domain.User, error) {
	grantee, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(granteeEmail))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	viewer := &domain.DeckViewer{
		DeckID:    deck.ID,
		UserID:    grantee.ID,
		CreatedAt: time.Now(),
	}
	if err := s.viewerRepo.Create(ctx, viewer); err != nil {
		return nil, err
	}

	if s.emails != nil {
		if err := s.emails.SendDeckShared(grantee.Email, deck.Title); err != nil {
			log.Printf("ERROR [DeckService.GrantViewer] notification email failed: %v", err)
		}
	}

	return grantee, nil
}

func (s *DeckService) RevokeViewer(ctx context.Context, deckID, userID uuid.UUID) error {
	return s.viewerRepo.Delete(ctx, deckID, userID)
}
