package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect/internal/app/models"
)

// DefaultHistoryLimit bounds each conversation's history when none is configured
const DefaultHistoryLimit = 200

// Hub keeps the chat connections of the signed-in user and the history of
// their conversations. The user may hold several connections, one per open
// tab; a message sent from one is echoed to all of them.
type Hub struct {
	// Open connections, all owned by the session user
	clients map[*Client]bool

	// Bounded history per conversation ID
	history      map[string][]models.ChatMessage
	historyLimit int

	// Channel for inbound messages from clients
	inbound chan *models.ChatMessage

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	// Guards clients and history. Every close of a send channel happens
	// under the write lock after removing the client from clients.
	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(historyLimit int, logger zerolog.Logger) *Hub {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Hub{
		clients:      make(map[*Client]bool),
		history:      make(map[string][]models.ChatMessage),
		historyLimit: historyLimit,
		inbound:      make(chan *models.ChatMessage),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		done:         make(chan struct{}),
		logger:       logger.With().Str("component", "chat_hub").Logger(),
	}
}

// Run handles registrations and routes messages until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.disconnectAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.inbound:
			h.route(message)
		}
	}
}

// submit hands a message to the hub loop; it gives up once the hub stopped
func (h *Hub) submit(message *models.ChatMessage) bool {
	select {
	case h.inbound <- message:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	connections := len(h.clients)
	h.mu.Unlock()

	h.logger.Info().
		Str("userID", client.user.ID.String()).
		Int("connections", connections).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	if !h.clients[client] {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client)
	close(client.send)
	h.mu.Unlock()

	h.logger.Info().
		Str("userID", client.user.ID.String()).
		Msg("Client unregistered")
}

// disconnectAll closes every connection and returns how many there were
func (h *Hub) disconnectAll() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	closed := len(h.clients)
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
	return closed
}

// Reset closes every connection and forgets all conversations. It runs when
// the session user signs out, so the next user starts with an empty chat.
// It does not need Run to be active.
func (h *Hub) Reset() {
	closed := h.disconnectAll()

	h.mu.Lock()
	h.history = make(map[string][]models.ChatMessage)
	h.mu.Unlock()

	h.logger.Info().Int("connections", closed).Msg("Chat reset")
}

// route records a text message and echoes it to the connections of its
// sender. The recipient's copy lives in the conversation history.
func (h *Hub) route(message *models.ChatMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("conversationID", message.ConversationID).
			Msg("Failed to marshal chat message")
		return
	}

	h.mu.Lock()
	h.appendHistory(*message)
	h.mu.Unlock()

	h.deliver(data, message.SenderID)

	h.logger.Debug().
		Str("conversationID", message.ConversationID).
		Str("senderID", message.SenderID).
		Msg("Chat message routed")
}

func (h *Hub) appendHistory(message models.ChatMessage) {
	entries := append(h.history[message.ConversationID], message)
	if over := len(entries) - h.historyLimit; over > 0 {
		entries = append([]models.ChatMessage(nil), entries[over:]...)
	}
	h.history[message.ConversationID] = entries
}

// deliver queues data on every connection owned by userID. A client whose
// send buffer is full is dropped.
func (h *Hub) deliver(data []byte, userID string) {
	var slow []*Client

	h.mu.RLock()
	for client := range h.clients {
		if client.user.ID.String() != userID {
			continue
		}
		select {
		case client.send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.Warn().Str("userID", client.user.ID.String()).Msg("Dropping slow chat client")
		h.unregisterClient(client)
	}
}

// History returns the stored messages between two users, oldest first
func (h *Hub) History(a, b string) []models.ChatMessage {
	h.mu.RLock()
	defer h.mu.RUnlock()
	entries := h.history[models.ConversationID(a, b)]
	out := make([]models.ChatMessage, len(entries))
	copy(out, entries)
	return out
}
