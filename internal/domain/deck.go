package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPrivate || v == VisibilityPublic
}

type Deck struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID    uuid.UUID  `json:"ownerId" gorm:"type:uuid;not null;index"`
	Title      string     `json:"title" gorm:"not null;default:''"`
	Visibility Visibility `json:"visibility" gorm:"not null;default:'private'"`
	ShareToken *string    `json:"shareToken" gorm:"index"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}

type Slide struct {
	ID       uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	DeckID   uuid.UUID      `json:"deckId" gorm:"type:uuid;not null;index:idx_slides_deck_position,priority:1"`
	Position int            `json:"position" gorm:"not null;index:idx_slides_deck_position,priority:2"`
	Content  datatypes.JSON `json:"content" gorm:"type:jsonb"`
}

// DeckViewer is an allow-list entry granting view access independent of
// visibility and share tokens.
type DeckViewer struct {
	DeckID    uuid.UUID `json:"deckId" gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `json:"createdAt"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
