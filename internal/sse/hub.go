// Package sse is the live-subscription layer: clients connect once, subscribe
// to topics and receive every subsequent revision as a pushed event. Topics
// are "pins" for the global pin set, "chat:<chatKey>" for one relationship's
// status and messages, and "user:<userID>" for events addressed to one user.
package sse

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/lovemap/lovemap-api/internal/models"
	"github.com/rs/zerolog/log"
)

const TopicPins = "pins"

func ChatTopic(chatKey string) string { return "chat:" + chatKey }
func UserTopic(userID uuid.UUID) string { return "user:" + userID.String() }

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type ChatStatusEvent struct {
	ChatKey     string    `json:"chat_key"`
	Status      string    `json:"status"`
	RequestedBy uuid.UUID `json:"requested_by"`
}

type ChatRequestEvent struct {
	ChatKey           string    `json:"chat_key"`
	RequestedBy       uuid.UUID `json:"requested_by"`
	RequesterNickname string    `json:"requester_nickname"`
}

type Client struct {
	ID     string
	UserID uuid.UUID
	Topics map[string]bool
	Send   chan []byte
}

type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *TopicMessage
	mu         sync.RWMutex
}

type TopicMessage struct {
	Topic string
	Event Event
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *TopicMessage, 256),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Event)
			for _, client := range h.clients {
				if client.Topics[msg.Topic] {
					select {
					case client.Send <- data:
					default:
						log.Warn().
							Str("client_id", client.ID).
							Str("topic", msg.Topic).
							Msg("client buffer full, dropping event")
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister is idempotent; tearing down an already-gone client is a no-op.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// ClientOwner reports which user a connected client belongs to.
func (h *Hub) ClientOwner(clientID string) (uuid.UUID, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	client, ok := h.clients[clientID]
	if !ok {
		return uuid.Nil, false
	}
	return client.UserID, true
}

func (h *Hub) Subscribe(clientID, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		client.Topics[topic] = true
	}
}

func (h *Hub) Unsubscribe(clientID, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		delete(client.Topics, topic)
	}
}

// SendToClient delivers one event to a single client, used for the snapshot
// that precedes a topic's live diffs.
func (h *Hub) SendToClient(clientID string, eventType string, data any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	client, ok := h.clients[clientID]
	if !ok {
		return
	}
	payload, _ := json.Marshal(Event{Type: eventType, Data: data})
	select {
	case client.Send <- payload:
	default:
	}
}

func (h *Hub) BroadcastPinCreated(pin *models.Pin) {
	h.broadcast <- &TopicMessage{Topic: TopicPins, Event: Event{Type: "pin_created", Data: pin}}
}

func (h *Hub) BroadcastPinUpdated(pin *models.Pin) {
	h.broadcast <- &TopicMessage{Topic: TopicPins, Event: Event{Type: "pin_updated", Data: pin}}
}

func (h *Hub) BroadcastPinDeleted(userID uuid.UUID) {
	h.broadcast <- &TopicMessage{
		Topic: TopicPins,
		Event: Event{Type: "pin_deleted", Data: map[string]uuid.UUID{"user_id": userID}},
	}
}

// BroadcastChatStatus fires on every relationship transition, keyed to the
// pair's topic so both participants observe the same sequence.
func (h *Hub) BroadcastChatStatus(chat *models.Chat) {
	h.broadcast <- &TopicMessage{
		Topic: ChatTopic(chat.ChatKey),
		Event: Event{Type: "chat_status", Data: ChatStatusEvent{
			ChatKey:     chat.ChatKey,
			Status:      chat.Status,
			RequestedBy: chat.RequestedBy,
		}},
	}
}

func (h *Hub) BroadcastMessage(chatKey string, msg *models.Message) {
	h.broadcast <- &TopicMessage{
		Topic: ChatTopic(chatKey),
		Event: Event{Type: "message_created", Data: msg},
	}
}

// BroadcastToUser targets events at one user's topic regardless of which
// clients carry it, e.g. an incoming chat request notification.
func (h *Hub) BroadcastToUser(userID uuid.UUID, eventType string, data any) {
	h.broadcast <- &TopicMessage{
		Topic: UserTopic(userID),
		Event: Event{Type: eventType, Data: data},
	}
}
