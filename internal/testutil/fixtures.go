package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/alex/deckshare/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email    string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:    fmt.Sprintf("testuser_%s@example.com", uuid.New().String()[:8]),
		password: "testpassword123",
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// BuildAndAuthenticate creates a user via the API and returns the user and token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"email":    b.email,
		"password": b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:    userID,
		Email: authResp.User.Email,
	}

	return user, authResp.Token
}

// DeckBuilder creates test decks with a builder pattern
type DeckBuilder struct {
	owner      *domain.User
	title      string
	visibility domain.Visibility
	shareToken *string
	viewers    []*domain.User
	slideCount int
}

// NewDeckBuilder creates a new DeckBuilder with default values
func NewDeckBuilder() *DeckBuilder {
	return &DeckBuilder{
		title:      "Test Deck",
		visibility: domain.VisibilityPrivate,
	}
}

// WithOwner sets the deck owner
func (b *DeckBuilder) WithOwner(user *domain.User) *DeckBuilder {
	b.owner = user
	return b
}

// WithTitle sets the title
func (b *DeckBuilder) WithTitle(title string) *DeckBuilder {
	b.title = title
	return b
}

// WithVisibility sets the visibility tier
func (b *DeckBuilder) WithVisibility(v domain.Visibility) *DeckBuilder {
	b.visibility = v
	return b
}

// WithShareToken sets the share token
func (b *DeckBuilder) WithShareToken(token string) *DeckBuilder {
	b.shareToken = &token
	return b
}

// WithViewer adds a user to the deck's allow-list
func (b *DeckBuilder) WithViewer(user *domain.User) *DeckBuilder {
	b.viewers = append(b.viewers, user)
	return b
}

// WithSlides adds n slides to the deck
func (b *DeckBuilder) WithSlides(n int) *DeckBuilder {
	b.slideCount = n
	return b
}

// Build creates the deck (and any viewers/slides) in the database
func (b *DeckBuilder) Build(t *testing.T, db *gorm.DB) *domain.Deck {
	t.Helper()

	if b.owner == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.owner = user
	}

	deck := &domain.Deck{
		ID:         uuid.New(),
		OwnerID:    b.owner.ID,
		Title:      b.title,
		Visibility: b.visibility,
		ShareToken: b.shareToken,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := db.Create(deck).Error; err != nil {
		t.Fatalf("failed to create deck: %v", err)
	}

	for _, viewer := range b.viewers {
		entry := &domain.DeckViewer{
			DeckID:    deck.ID,
			UserID:    viewer.ID,
			CreatedAt: time.Now(),
		}
		if err := db.Create(entry).Error; err != nil {
			t.Fatalf("failed to create deck viewer: %v", err)
		}
	}

	for i := 0; i < b.slideCount; i++ {
		content, _ := json.Marshal(map[string]interface{}{"body": fmt.Sprintf("slide %d", i)})
		slide := &domain.Slide{
			ID:       uuid.New(),
			DeckID:   deck.ID,
			Position: i,
			Content:  datatypes.JSON(content),
		}
		if err := db.Create(slide).Error; err != nil {
			t.Fatalf("failed to create slide: %v", err)
		}
	}

	return deck
}
