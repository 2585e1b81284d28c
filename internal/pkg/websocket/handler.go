package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/models/dto"
)

// UserResolver returns the logged-in user for a request
type UserResolver func(c *gin.Context) (models.User, bool)

// Handler for WebSocket connections
type Handler struct {
	hub         *Hub
	currentUser UserResolver
	logger      zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, currentUser UserResolver, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:         hub,
		currentUser: currentUser,
		logger:      logger,
	}
}

// HandleConnection upgrades the request to a chat socket for the current user
func (h *Handler) HandleConnection(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "You must be logged in to chat"),
		).WithRedirect("/login"))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("userID", user.ID.String()).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := newClient(h.hub, conn, user, h.logger)
	if !h.hub.join(client) {
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("userID", user.ID.String()).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
