package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lovemap/lovemap-api/internal/middleware"
	"github.com/lovemap/lovemap-api/internal/sse"
	"github.com/m1z23r/drift/pkg/drift"
)

type SSEHandler struct {
	hub            HubInterface
	pinService     PinServiceInterface
	chatService    ChatServiceInterface
	messageService MessageServiceInterface
}

func NewSSEHandler(
	hub HubInterface,
	pinService PinServiceInterface,
	chatService ChatServiceInterface,
	messageService MessageServiceInterface,
) *SSEHandler {
	return &SSEHandler{
		hub:            hub,
		pinService:     pinService,
		chatService:    chatService,
		messageService: messageService,
	}
}

// Connect opens the event stream. Every client is subscribed to its own
// user topic so chat requests reach it without an explicit subscription.
func (h *SSEHandler) Connect(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	sseCtx := c.SSE()

	clientID := uuid.New().String()
	client := &sse.Client{
		ID:     clientID,
		UserID: userID,
		Topics: map[string]bool{sse.UserTopic(userID): true},
		Send:   make(chan []byte, 256),
	}

	h.hub.Register(client)
	defer h.hub.Unregister(client)

	if err := sseCtx.SendJSON(map[string]string{
		"type":      "connected",
		"client_id": clientID,
	}, "system", ""); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		<-c.Request.Context().Done()
		close(done)
	}()

	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				return
			}
			if err := sseCtx.Send(string(msg), "message", ""); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (h *SSEHandler) Subscribe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	clientID := c.Param("clientId")
	if clientID == "" {
		c.BadRequest("client_id is required")
		return
	}

	// A client can only be steered by the user who connected it.
	owner, ok := h.hub.ClientOwner(clientID)
	if !ok {
		c.NotFound("client not connected")
		return
	}
	if owner != userID {
		c.Forbidden("client belongs to another user")
		return
	}

	topic := c.Param("topic")

	ctx := context.Background()

	switch {
	case topic == sse.TopicPins:
		h.hub.Subscribe(clientID, topic)

		pins, err := h.pinService.List(ctx)
		if err == nil {
			h.hub.SendToClient(clientID, "pins_snapshot", pins)
		}

	case strings.HasPrefix(topic, "chat:"):
		chatKey := strings.TrimPrefix(topic, "chat:")

		chat, err := h.chatService.GetByKey(ctx, chatKey)
		if err != nil {
			c.InternalServerError("failed to get chat")
			return
		}
		if chat == nil {
			c.NotFound("chat not found")
			return
		}
		if !chat.HasParticipant(userID) {
			c.Forbidden("not a participant of this chat")
			return
		}

		h.hub.Subscribe(clientID, topic)

		h.hub.SendToClient(clientID, "chat_status", sse.ChatStatusEvent{
			ChatKey:     chat.ChatKey,
			Status:      chat.Status,
			RequestedBy: chat.RequestedBy,
		})
		messages, err := h.messageService.List(ctx, chatKey)
		if err == nil {
			h.hub.SendToClient(clientID, "messages_snapshot", messages)
		}

	default:
		c.BadRequest("unknown topic: " + topic)
		return
	}

	_ = c.JSON(200, map[string]string{
		"message": fmt.Sprintf("subscribed to %s", topic),
	})
}

func (h *SSEHandler) Unsubscribe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	clientID := c.Param("clientId")
	if clientID == "" {
		c.BadRequest("client_id is required")
		return
	}

	owner, ok := h.hub.ClientOwner(clientID)
	if !ok {
		c.NotFound("client not connected")
		return
	}
	if owner != userID {
		c.Forbidden("client belongs to another user")
		return
	}

	topic := c.Param("topic")

	h.hub.Unsubscribe(clientID, topic)

	_ = c.JSON(200, map[string]string{
		"message": fmt.Sprintf("unsubscribed from %s", topic),
	})
}
