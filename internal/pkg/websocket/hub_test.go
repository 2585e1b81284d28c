package websocket

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect/internal/app/models"
)

func newTestServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	resolve := func(c *gin.Context) (models.User, bool) {
		id := c.Query("user")
		if id == "" {
			return models.User{}, false
		}
		return models.User{ID: models.ID(id), FirstName: strings.ToUpper(id)}, true
	}

	router := gin.New()
	router.GET("/chat/ws", NewHandler(hub, resolve, zerolog.Nop()).HandleConnection)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server, user string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/chat/ws?user=" + user
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", user, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) models.ChatMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg models.ChatMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func TestHubEchoesToEveryTabOfTheSender(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := NewHub(10, zerolog.Nop())
	go hub.Run(ctx)
	server := newTestServer(t, hub)

	firstTab := dial(t, server, "bob")
	secondTab := dial(t, server, "bob")

	// the sender id in the frame is ignored
	if err := firstTab.WriteJSON(map[string]string{"recipientId": "alice", "content": " hi ", "senderId": "mallory"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	first := readMessage(t, firstTab)
	second := readMessage(t, secondTab)
	for _, msg := range []models.ChatMessage{first, second} {
		if msg.Type != models.ChatMessageTypeText || msg.SenderID != "bob" || msg.RecipientID != "alice" || msg.Content != "hi" {
			t.Fatalf("unexpected message %+v", msg)
		}
		if msg.ConversationID != "alice:bob" || msg.ID == "" {
			t.Fatalf("expected stamped conversation and id, got %+v", msg)
		}
	}
	if first.ID != second.ID {
		t.Fatalf("both tabs must see the same message, got %s and %s", first.ID, second.ID)
	}

	history := hub.History("alice", "bob")
	if len(history) != 1 || history[0].ID != first.ID {
		t.Fatalf("unexpected history %+v", history)
	}
}

func TestResetClosesConnectionsAndClearsHistory(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := NewHub(10, zerolog.Nop())
	go hub.Run(ctx)
	server := newTestServer(t, hub)

	conn := dial(t, server, "bob")
	if err := conn.WriteJSON(map[string]string{"recipientId": "alice", "content": "hello"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	readMessage(t, conn)

	hub.Reset()

	if history := hub.History("bob", "alice"); len(history) != 0 {
		t.Fatalf("expected history to be cleared, got %+v", history)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg models.ChatMessage
	if err := conn.ReadJSON(&msg); err == nil {
		t.Fatalf("expected the connection to be closed, got %+v", msg)
	}
}

func TestResetWithoutRunningHub(t *testing.T) {
	hub := NewHub(0, zerolog.Nop())
	client := newClient(hub, nil, models.User{ID: "bob"}, zerolog.Nop())
	hub.registerClient(client)
	msg, err := newTextMessage("bob", inboundFrame{RecipientID: "alice", Content: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hub.route(msg)

	hub.Reset()
	hub.Reset()

	if data, open := <-client.send; !open || len(data) == 0 {
		t.Fatalf("expected the routed echo to stay buffered")
	}
	if _, open := <-client.send; open {
		t.Fatalf("expected the send channel to be closed")
	}
	// a late unregister from the read pump is harmless
	hub.unregisterClient(client)
}

func TestMalformedFrameKeepsConnection(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := NewHub(10, zerolog.Nop())
	go hub.Run(ctx)
	server := newTestServer(t, hub)

	carol := dial(t, server, "carol")

	if err := carol.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := carol.WriteJSON(map[string]string{"recipientId": "dave", "content": "still here"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	echoed := readMessage(t, carol)
	if echoed.Content != "still here" || echoed.RecipientID != "dave" {
		t.Fatalf("unexpected message %+v", echoed)
	}
}

func TestHandlerRejectsAnonymous(t *testing.T) {
	hub := NewHub(0, zerolog.Nop())
	server := newTestServer(t, hub)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/chat/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatalf("expected handshake failure")
	}
	if resp == nil || resp.StatusCode != 401 {
		t.Fatalf("expected 401, got %+v", resp)
	}
}

func TestHistoryIsBounded(t *testing.T) {
	hub := NewHub(3, zerolog.Nop())
	for i := 0; i < 5; i++ {
		msg, err := newTextMessage("a", inboundFrame{RecipientID: "b", Content: string(rune('0' + i))})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		hub.route(msg)
	}

	history := hub.History("a", "b")
	if len(history) != 3 || history[0].Content != "2" || history[2].Content != "4" {
		t.Fatalf("expected the last three messages, got %+v", history)
	}
}

func TestNewTextMessageRejects(t *testing.T) {
	cases := map[string]inboundFrame{
		"empty":        {RecipientID: "b", Content: "  "},
		"no recipient": {Content: "hi"},
		"self":         {RecipientID: "a", Content: "hi"},
	}
	for name, frame := range cases {
		if _, err := newTextMessage("a", frame); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
