package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/alex/deckshare/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deckResponse struct {
	ID         string  `json:"id"`
	OwnerID    string  `json:"ownerId"`
	Title      string  `json:"title"`
	Visibility string  `json:"visibility"`
	ShareToken *string `json:"shareToken"`
	UpdatedAt  string  `json:"updatedAt"`
}

func doRequest(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestDeckHandler_CreateAndList(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, otherToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	resp := doRequest(t, http.MethodPost, ts.APIURL("/decks"), token, map[string]string{"title": "Kickoff"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created deckResponse
	testutil.AssertJSONResponse(t, resp, &created)
	assert.Equal(t, "Kickoff", created.Title)
	assert.Equal(t, "private", created.Visibility)
	assert.Nil(t, created.ShareToken)

	t.Run("list contains only own decks", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, ts.APIURL("/decks"), token, nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Decks []deckResponse `json:"decks"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		require.Len(t, result.Decks, 1)
		assert.Equal(t, created.ID, result.Decks[0].ID)

		other := doRequest(t, http.MethodGet, ts.APIURL("/decks"), otherToken, nil)
		defer other.Body.Close()
		var otherResult struct {
			Decks []deckResponse `json:"decks"`
		}
		testutil.AssertJSONResponse(t, other, &otherResult)
		assert.Len(t, otherResult.Decks, 0)
	})

	t.Run("unauthenticated create rejected", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, ts.APIURL("/decks"), "", nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

// Covers the register → create → view matrix end to end: the owner gets
// 200 with no token, another authenticated user gets 403, and an anonymous
// caller gets 401.
func TestDeckHandler_ViewPolicy(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, ownerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, strangerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	resp := doRequest(t, http.MethodPost, ts.APIURL("/decks"), ownerToken, nil)
	var deck deckResponse
	testutil.AssertJSONResponse(t, resp, &deck)
	resp.Body.Close()

	deckURL := ts.APIURL("/decks/" + deck.ID)

	t.Run("owner", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, deckURL, ownerToken, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("authenticated stranger gets 403", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, deckURL, strangerToken, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("anonymous gets 401", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, deckURL, "", nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("public deck viewable by anyone", func(t *testing.T) {
		patch := doRequest(t, http.MethodPatch, deckURL, ownerToken, map[string]string{"visibility": "public"})
		patch.Body.Close()
		require.Equal(t, http.StatusOK, patch.StatusCode)

		resp := doRequest(t, http.MethodGet, deckURL, "", nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestDeckHandler_ShareToken(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	deck := testutil.NewDeckBuilder().
		WithOwner(owner).
		WithShareToken("abc").
		Build(t, ts.DB.DB)

	deckURL := ts.APIURL("/decks/" + deck.ID.String())

	t.Run("matching token grants anonymous view", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, deckURL+"?token=abc", "", nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("near-miss token denied", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, deckURL+"?token=abx", "", nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("slides honor the same policy", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, ts.APIURL("/decks/"+deck.ID.String()+"/slides?token=abc"), "", nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		denied := doRequest(t, http.MethodGet, ts.APIURL("/decks/"+deck.ID.String()+"/slides"), "", nil)
		defer denied.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, denied.StatusCode)
	})
}

func TestDeckHandler_Update(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, ownerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, strangerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	resp := doRequest(t, http.MethodPost, ts.APIURL("/decks"), ownerToken, nil)
	var deck deckResponse
	testutil.AssertJSONResponse(t, resp, &deck)
	resp.Body.Close()

	deckURL := ts.APIURL("/decks/" + deck.ID)

	t.Run("owner sets share token", func(t *testing.T) {
		resp := doRequest(t, http.MethodPatch, deckURL, ownerToken, map[string]string{"share_token": "s3cret"})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated deckResponse
		testutil.AssertJSONResponse(t, resp, &updated)
		require.NotNil(t, updated.ShareToken)
		assert.Equal(t, "s3cret", *updated.ShareToken)
	})

	t.Run("non-owner gets 403 even with view rights", func(t *testing.T) {
		patch := doRequest(t, http.MethodPatch, deckURL, ownerToken, map[string]string{"visibility": "public"})
		patch.Body.Close()

		resp := doRequest(t, http.MethodPatch, deckURL, strangerToken, map[string]string{"visibility": "private"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("anonymous gets 401", func(t *testing.T) {
		resp := doRequest(t, http.MethodPatch, deckURL, "", map[string]string{"visibility": "private"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("empty patch returns current row", func(t *testing.T) {
		before := doRequest(t, http.MethodGet, deckURL, ownerToken, nil)
		var current deckResponse
		testutil.AssertJSONResponse(t, before, &current)
		before.Body.Close()

		resp := doRequest(t, http.MethodPatch, deckURL, ownerToken, map[string]string{})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var after deckResponse
		testutil.AssertJSONResponse(t, resp, &after)
		assert.Equal(t, current.UpdatedAt, after.UpdatedAt)
	})

	t.Run("invalid visibility rejected", func(t *testing.T) {
		resp := doRequest(t, http.MethodPatch, deckURL, ownerToken, map[string]string{"visibility": "unlisted"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("patch on missing deck is 403 for stranger", func(t *testing.T) {
		resp := doRequest(t, http.MethodPatch, ts.APIURL("/decks/00000000-0000-0000-0000-000000000000"), strangerToken, map[string]string{"visibility": "public"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestDeckHandler_ViewerGrants(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner, ownerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	viewer, viewerToken := testutil.NewUserBuilder().
		WithEmail("viewer@example.com").
		BuildAndAuthenticate(t, ts)

	deck := testutil.NewDeckBuilder().WithOwner(owner).Build(t, ts.DB.DB)
	deckURL := ts.APIURL("/decks/" + deck.ID.String())

	t.Run("viewer denied before grant", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, deckURL, viewerToken, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("owner grants by email", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, deckURL+"/viewers", ownerToken, map[string]string{"email": "viewer@example.com"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("allow-listed viewer can view private deck with no token", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, deckURL, viewerToken, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("grant to unknown email is 404", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, deckURL+"/viewers", ownerToken, map[string]string{"email": "ghost@example.com"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("non-owner cannot manage viewers", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, deckURL+"/viewers", viewerToken, map[string]string{"email": "viewer@example.com"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("owner revokes", func(t *testing.T) {
		resp := doRequest(t, http.MethodDelete, deckURL+"/viewers/"+viewer.ID.String(), ownerToken, nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		denied := doRequest(t, http.MethodGet, deckURL, viewerToken, nil)
		defer denied.Body.Close()
		assert.Equal(t, http.StatusForbidden, denied.StatusCode)
	})
}

func TestDeckHandler_SlideEditing(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner, ownerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, strangerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	deck := testutil.NewDeckBuilder().WithOwner(owner).Build(t, ts.DB.DB)
	slidesURL := ts.APIURL("/decks/" + deck.ID.String() + "/slides")

	var firstSlideID string

	t.Run("owner appends slides", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			resp := doRequest(t, http.MethodPost, slidesURL, ownerToken, map[string]interface{}{
				"content": map[string]string{"body": "hello"},
			})
			require.Equal(t, http.StatusCreated, resp.StatusCode)

			var slide struct {
				ID       string `json:"id"`
				Position int    `json:"position"`
			}
			testutil.AssertJSONResponse(t, resp, &slide)
			resp.Body.Close()
			assert.Equal(t, i, slide.Position)
			if i == 0 {
				firstSlideID = slide.ID
			}
		}
	})

	t.Run("non-owner cannot add slides", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, slidesURL, strangerToken, map[string]interface{}{
			"content": map[string]string{"body": "nope"},
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("owner deletes and order stays dense", func(t *testing.T) {
		resp := doRequest(t, http.MethodDelete, slidesURL+"/"+firstSlideID, ownerToken, nil)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		list := doRequest(t, http.MethodGet, slidesURL, ownerToken, nil)
		defer list.Body.Close()

		var result struct {
			Slides []struct {
				Position int `json:"position"`
			} `json:"slides"`
		}
		testutil.AssertJSONResponse(t, list, &result)
		require.Len(t, result.Slides, 1)
		assert.Equal(t, 0, result.Slides[0].Position)
	})
}
