package service_test

import (
	"context"
	"testing"

	"github.com/alex/deckshare/internal/domain"
	"github.com/alex/deckshare/internal/repository/postgres"
	"github.com/alex/deckshare/internal/service"
	"github.com/alex/deckshare/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessService_CanViewDeck(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	accessService := service.NewAccessService(repos.Deck, repos.DeckViewer)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	viewer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	privateDeck := testutil.NewDeckBuilder().
		WithOwner(owner).
		WithShareToken("abc").
		WithViewer(viewer).
		Build(t, testDB.DB)

	publicDeck := testutil.NewDeckBuilder().
		WithOwner(owner).
		WithVisibility(domain.VisibilityPublic).
		Build(t, testDB.DB)

	tests := []struct {
		name       string
		deckID     uuid.UUID
		callerID   *uuid.UUID
		shareToken string
		want       bool
	}{
		{
			name:     "owner views private deck without token",
			deckID:   privateDeck.ID,
			callerID: &owner.ID,
			want:     true,
		},
		{
			name:   "anonymous views public deck with no credentials",
			deckID: publicDeck.ID,
			want:   true,
		},
		{
			name:       "anonymous with matching share token",
			deckID:     privateDeck.ID,
			shareToken: "abc",
			want:       true,
		},
		{
			name:       "anonymous with near-miss share token",
			deckID:     privateDeck.ID,
			shareToken: "abx",
			want:       false,
		},
		{
			name:     "allow-listed viewer without token",
			deckID:   privateDeck.ID,
			callerID: &viewer.ID,
			want:     true,
		},
		{
			name:     "authenticated stranger",
			deckID:   privateDeck.ID,
			callerID: &stranger.ID,
			want:     false,
		},
		{
			name:   "anonymous on private deck",
			deckID: privateDeck.ID,
			want:   false,
		},
		{
			name:     "missing deck is false not error",
			deckID:   uuid.New(),
			callerID: &owner.ID,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accessService.CanViewDeck(ctx, tt.deckID, tt.callerID, tt.shareToken)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAccessService_CanViewDeck_NilStoredTokenNeverMatches(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	accessService := service.NewAccessService(repos.Deck, repos.DeckViewer)

	deck := testutil.NewDeckBuilder().Build(t, testDB.DB)

	got, err := accessService.CanViewDeck(context.Background(), deck.ID, nil, "anything")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestAccessService_CanEditDeck(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	accessService := service.NewAccessService(repos.Deck, repos.DeckViewer)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	viewer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	deck := testutil.NewDeckBuilder().
		WithOwner(owner).
		WithViewer(viewer).
		Build(t, testDB.DB)

	t.Run("owner can edit", func(t *testing.T) {
		got, err := accessService.CanEditDeck(ctx, deck.ID, owner.ID)
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("view rights do not grant edit", func(t *testing.T) {
		got, err := accessService.CanEditDeck(ctx, deck.ID, viewer.ID)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("missing deck is false not error", func(t *testing.T) {
		got, err := accessService.CanEditDeck(ctx, uuid.New(), owner.ID)
		require.NoError(t, err)
		assert.False(t, got)
	})
}
