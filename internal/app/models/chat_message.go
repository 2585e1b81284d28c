package models

import (
	"sort"
	"strings"
	"time"
)

// ChatMessageType defines the type of chat message
type ChatMessageType string

const ChatMessageTypeText ChatMessageType = "text"

// ChatMessage is a direct message between two users
type ChatMessage struct {
	ID             string          `json:"id"`
	Type           ChatMessageType `json:"type"`
	ConversationID string          `json:"conversationId"`
	SenderID       string          `json:"senderId"`
	RecipientID    string          `json:"recipientId"`
	Content        string          `json:"content"`
	Timestamp      time.Time       `json:"timestamp"`
}

// ChatPeer is an entry in the chat sidebar
type ChatPeer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PeersFor lists contacts for self in their configured order, without self
// and without repeated ids.
func PeersFor(self string, contacts []ChatPeer) []ChatPeer {
	peers := make([]ChatPeer, 0, len(contacts))
	listed := map[string]bool{self: true}
	for _, contact := range contacts {
		if contact.ID == "" || listed[contact.ID] {
			continue
		}
		listed[contact.ID] = true
		peers = append(peers, contact)
	}
	return peers
}

// ConversationID derives the same id for a pair regardless of who sends
func ConversationID(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return strings.Join(pair, ":")
}
