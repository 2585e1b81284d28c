package websocket

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yigit/uniconnect/internal/app/models"
)

var (
	errEmptyContent     = errors.New("message content is empty")
	errMissingRecipient = errors.New("message has no recipient")
	errSelfMessage      = errors.New("cannot message yourself")
)

// inboundFrame is what a client sends; everything else is stamped by the hub
type inboundFrame struct {
	RecipientID models.ID `json:"recipientId"`
	Content     string    `json:"content"`
}

// newTextMessage validates a frame from sender and stamps id, conversation
// and time. The sender is always the connection's user, never the frame.
func newTextMessage(sender models.ID, frame inboundFrame) (*models.ChatMessage, error) {
	content := strings.TrimSpace(frame.Content)
	if content == "" {
		return nil, errEmptyContent
	}
	recipient := frame.RecipientID.String()
	if recipient == "" {
		return nil, errMissingRecipient
	}
	if recipient == sender.String() {
		return nil, errSelfMessage
	}

	return &models.ChatMessage{
		ID:             uuid.NewString(),
		Type:           models.ChatMessageTypeText,
		ConversationID: models.ConversationID(sender.String(), recipient),
		SenderID:       sender.String(),
		RecipientID:    recipient,
		Content:        content,
		Timestamp:      time.Now().UTC(),
	}, nil
}
