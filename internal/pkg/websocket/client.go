package websocket

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect/internal/app/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10 // must stay below pongWait
	maxMessageSize = 64 * 1024
	sendBuffer     = 256
)

// The shell serves the chat page itself, so any origin that reaches it with
// a session is accepted.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Client is one open chat connection of a logged-in user
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	user   models.User
	logger zerolog.Logger
}

func newClient(hub *Hub, conn *websocket.Conn, user models.User, logger zerolog.Logger) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		user:   user,
		logger: logger.With().Str("userID", user.ID.String()).Logger(),
	}
}

// readPump decodes inbound frames into chat messages until the connection
// drops or the hub stops.
func (c *Client) readPump() {
	defer func() {
		c.hub.leave(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame inboundFrame
		err := c.conn.ReadJSON(&frame)
		if err != nil {
			if isMalformedFrame(err) {
				c.logger.Debug().Err(err).Msg("Dropped malformed chat frame")
				continue
			}
			c.logReadError(err)
			return
		}

		message, err := newTextMessage(c.user.ID, frame)
		if err != nil {
			c.logger.Debug().Err(err).Msg("Rejected chat message")
			continue
		}

		if !c.hub.submit(message) {
			return
		}
	}
}

func isMalformedFrame(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

func (c *Client) logReadError(err error) {
	switch {
	case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
		c.logger.Info().Msg("Chat connection closed")
	case websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure):
		c.logger.Warn().Err(err).Msg("Chat connection closed unexpectedly")
	default:
		c.logger.Debug().Err(err).Msg("Chat read failed")
	}
}

// writePump forwards hub messages to the socket, one JSON document per
// frame, and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, open := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !open {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Debug().Err(err).Msg("Chat write failed")
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
