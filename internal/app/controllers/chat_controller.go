package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/middleware"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
	"github.com/yigit/uniconnect/internal/pkg/websocket"
)

// ChatController lists chat peers and conversation history
type ChatController struct {
	hub      *websocket.Hub
	contacts []models.ChatPeer
	logger   zerolog.Logger
}

// NewChatController creates a new ChatController
func NewChatController(hub *websocket.Hub, contacts []models.ChatPeer, logger zerolog.Logger) *ChatController {
	return &ChatController{
		hub:      hub,
		contacts: contacts,
		logger:   logger,
	}
}

// Peers lists the configured contacts
func (cc *ChatController) Peers(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrNotAuthenticated)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(models.PeersFor(user.ID.String(), cc.contacts), ""))
}

// Conversation returns the history between the current user and a peer
func (cc *ChatController) Conversation(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrNotAuthenticated)
		return
	}
	peerID := c.Param("peerId")
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"conversationId": models.ConversationID(user.ID.String(), peerID),
		"messages":       cc.hub.History(user.ID.String(), peerID),
	}, ""))
}
