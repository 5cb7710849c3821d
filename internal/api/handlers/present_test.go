package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/alex/deckshare/internal/testutil"
	wsProto "github.com/alex/deckshare/internal/websocket"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialPresent(t *testing.T, url, token string) *websocket.Conn {
	t.Helper()

	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) wsProto.Message {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg wsProto.Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

// readUntil skips interleaved frames (viewer counts) until the wanted type
// arrives.
func readUntil(t *testing.T, conn *websocket.Conn, msgType string) wsProto.Message {
	t.Helper()

	for i := 0; i < 10; i++ {
		msg := readMessage(t, conn)
		if msg.Type == msgType {
			return msg
		}
	}
	t.Fatalf("never received %s frame", msgType)
	return wsProto.Message{}
}

func TestPresentHandler_LiveSession(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner, ownerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	deck := testutil.NewDeckBuilder().
		WithOwner(owner).
		WithShareToken("live-abc").
		WithSlides(3).
		Build(t, ts.DB.DB)

	ownerConn := dialPresent(t, ts.PresentURL(deck.ID.String(), ""), ownerToken)
	viewerConn := dialPresent(t, ts.PresentURL(deck.ID.String(), "token=live-abc"), "")

	// Both get the current position on join
	first := readUntil(t, ownerConn, wsProto.MessageTypeSlideChanged)
	var joined wsProto.SlideChangedPayload
	require.NoError(t, json.Unmarshal(first.Payload, &joined))
	assert.Equal(t, 0, joined.Position)
	readUntil(t, viewerConn, wsProto.MessageTypeSlideChanged)

	t.Run("owner advances the slide and viewers follow", func(t *testing.T) {
		payload, _ := json.Marshal(wsProto.SetSlidePayload{Position: 2})
		require.NoError(t, ownerConn.WriteJSON(wsProto.Message{
			Type:    wsProto.MessageTypeSetSlide,
			Payload: payload,
		}))

		msg := readUntil(t, viewerConn, wsProto.MessageTypeSlideChanged)
		var changed wsProto.SlideChangedPayload
		require.NoError(t, json.Unmarshal(msg.Payload, &changed))
		assert.Equal(t, 2, changed.Position)
	})

	t.Run("viewer cannot drive", func(t *testing.T) {
		payload, _ := json.Marshal(wsProto.SetSlidePayload{Position: 0})
		require.NoError(t, viewerConn.WriteJSON(wsProto.Message{
			Type:    wsProto.MessageTypeSetSlide,
			Payload: payload,
		}))

		msg := readUntil(t, viewerConn, wsProto.MessageTypeError)
		var errPayload wsProto.ErrorPayload
		require.NoError(t, json.Unmarshal(msg.Payload, &errPayload))
		assert.Equal(t, "NOT_PRESENTER", errPayload.Code)
	})
}

func TestPresentHandler_AuthorizationRequired(t *testing.T) {
	ts := testutil.NewTestServer(t)

	deck := testutil.NewDeckBuilder().WithShareToken("live-abc").Build(t, ts.DB.DB)

	t.Run("anonymous without token rejected", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(ts.PresentURL(deck.ID.String(), ""), nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong share token rejected", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(ts.PresentURL(deck.ID.String(), "token=wrong"), nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
