package service

import (
	"github.com/alex/deckshare/internal/config"
	"github.com/alex/deckshare/internal/email"
	"github.com/alex/deckshare/internal/repository"
)

type Services struct {
	Auth   *AuthService
	Access *AccessService
	Deck   *DeckService
}

func NewServices(repos *repository.Repositories, emails email.Sender, cfg *config.Config) *Services {
	return &Services{
		Auth:   NewAuthService(repos.User, cfg),
		Access: NewAccessService(repos.Deck, repos.DeckViewer),
		Deck:   NewDeckService(repos.Deck, repos.Slide, repos.DeckViewer, repos.User, emails),
	}
}
