package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lovemap/lovemap-api/internal/middleware"
	"github.com/lovemap/lovemap-api/internal/models"
	"github.com/lovemap/lovemap-api/internal/services"
	"github.com/lovemap/lovemap-api/internal/sse"
	"github.com/lovemap/lovemap-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type ChatHandler struct {
	chatService    ChatServiceInterface
	messageService MessageServiceInterface
	userService    UserServiceInterface
	hub            HubInterface
}

func NewChatHandler(
	chatService ChatServiceInterface,
	messageService MessageServiceInterface,
	userService UserServiceInterface,
	hub HubInterface,
) *ChatHandler {
	return &ChatHandler{
		chatService:    chatService,
		messageService: messageService,
		userService:    userService,
		hub:            hub,
	}
}

func chatSummaryResponse(chat *models.Chat) dto.ChatSummaryResponse {
	resp := dto.ChatSummaryResponse{
		ChatKey:     chat.ChatKey,
		Status:      chat.Status,
		RequestedBy: chat.RequestedBy,
		CreatedAt:   chat.CreatedAt,
	}
	if chat.OtherUser != nil {
		resp.OtherUserID = chat.OtherUser.ID
		resp.OtherNickname = chat.OtherUser.Nickname
	}
	return resp
}

func messageResponse(msg *models.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:        msg.ID,
		SenderID:  msg.SenderID,
		Text:      msg.Text,
		CreatedAt: msg.CreatedAt,
	}
}

// ListActive returns the caller's accepted chats, most recently active first.
func (h *ChatHandler) ListActive(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	chats, err := h.chatService.ListActive(context.Background(), userID)
	if err != nil {
		c.InternalServerError("failed to list chats")
		return
	}

	responses := make([]dto.ChatSummaryResponse, 0, len(chats))
	for i := range chats {
		responses = append(responses, chatSummaryResponse(&chats[i]))
	}

	_ = c.JSON(200, responses)
}

// ListRequests returns pending chat requests sent to the caller by others.
func (h *ChatHandler) ListRequests(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	chats, err := h.chatService.ListPendingIncoming(context.Background(), userID)
	if err != nil {
		c.InternalServerError("failed to list chat requests")
		return
	}

	responses := make([]dto.ChatSummaryResponse, 0, len(chats))
	for i := range chats {
		responses = append(responses, chatSummaryResponse(&chats[i]))
	}

	_ = c.JSON(200, responses)
}

// GetState reports the handshake state between the caller and another user.
// Status is null when no request has ever been sent for the pair.
func (h *ChatHandler) GetState(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	otherID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.BadRequest("invalid user id")
		return
	}

	if otherID == userID {
		c.BadRequest("cannot chat with yourself")
		return
	}

	chat, err := h.chatService.Get(context.Background(), userID, otherID)
	if err != nil {
		c.InternalServerError("failed to get chat")
		return
	}

	resp := dto.ChatStateResponse{ChatKey: services.ChatKey(userID, otherID)}
	if chat != nil {
		resp.Status = &chat.Status
		requestedBy := chat.RequestedBy
		resp.RequestedBy = &requestedBy
	}

	_ = c.JSON(200, resp)
}

func (h *ChatHandler) Request(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	otherID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.BadRequest("invalid user id")
		return
	}

	ctx := context.Background()

	chat, err := h.chatService.Request(ctx, userID, otherID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfChat):
			c.BadRequest("cannot chat with yourself")
		case errors.Is(err, services.ErrChatExists):
			_ = c.JSON(409, map[string]string{"error": "chat request already exists"})
		default:
			c.InternalServerError("failed to create chat request")
		}
		return
	}

	requesterNickname := ""
	if requester, err := h.userService.GetByID(ctx, userID); err == nil {
		requesterNickname = requester.Nickname
	}

	h.hub.BroadcastToUser(otherID, "chat_request", sse.ChatRequestEvent{
		ChatKey:           chat.ChatKey,
		RequestedBy:       userID,
		RequesterNickname: requesterNickname,
	})
	h.hub.BroadcastChatStatus(chat)

	_ = c.JSON(201, dto.ChatStateResponse{
		ChatKey:     chat.ChatKey,
		Status:      &chat.Status,
		RequestedBy: &chat.RequestedBy,
	})
}

func (h *ChatHandler) Accept(c *drift.Context) {
	h.transition(c, h.chatService.Accept)
}

func (h *ChatHandler) Reject(c *drift.Context) {
	h.transition(c, h.chatService.Reject)
}

func (h *ChatHandler) transition(c *drift.Context, fn func(ctx context.Context, chatKey string, callerID uuid.UUID) (*models.Chat, error)) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	chatKey := c.Param("chatKey")
	if chatKey == "" {
		c.BadRequest("chat key is required")
		return
	}

	chat, err := fn(context.Background(), chatKey, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrChatNotFound):
			c.NotFound("chat not found")
		case errors.Is(err, services.ErrNotParticipant):
			c.Forbidden("not a participant of this chat")
		case errors.Is(err, services.ErrOwnRequest):
			c.Forbidden("cannot respond to your own request")
		case errors.Is(err, services.ErrNotPending):
			_ = c.JSON(409, map[string]string{
				"error": "chat request is no longer pending",
				"code":  "not_pending",
			})
		default:
			c.InternalServerError("failed to update chat")
		}
		return
	}

	h.hub.BroadcastChatStatus(chat)

	_ = c.JSON(200, dto.ChatStateResponse{
		ChatKey:     chat.ChatKey,
		Status:      &chat.Status,
		RequestedBy: &chat.RequestedBy,
	})
}

func (h *ChatHandler) ListMessages(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	chatKey := c.Param("chatKey")
	if chatKey == "" {
		c.BadRequest("chat key is required")
		return
	}

	ctx := context.Background()

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

	messages, err := h.messageService.List(ctx, chatKey)
	if err != nil {
		c.InternalServerError("failed to list messages")
		return
	}

	responses := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, messageResponse(&messages[i]))
	}

	_ = c.JSON(200, responses)
}

func (h *ChatHandler) SendMessage(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	chatKey := c.Param("chatKey")
	if chatKey == "" {
		c.BadRequest("chat key is required")
		return
	}

	var req dto.SendMessageRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	msg, err := h.messageService.Send(context.Background(), chatKey, userID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyMessage):
			c.BadRequest("message text is required")
		case errors.Is(err, services.ErrMessageTooLong):
			c.BadRequest("message must be at most 500 characters")
		case errors.Is(err, services.ErrChatNotFound):
			c.NotFound("chat not found")
		case errors.Is(err, services.ErrNotParticipant):
			c.Forbidden("not a participant of this chat")
		case errors.Is(err, services.ErrChatNotAccepted):
			_ = c.JSON(412, map[string]string{"error": "chat request has not been accepted"})
		case errors.Is(err, services.ErrRateLimited):
			_ = c.JSON(429, map[string]string{"error": "too many messages, slow down"})
		default:
			c.InternalServerError("failed to send message")
		}
		return
	}

	h.hub.BroadcastMessage(chatKey, msg)

	_ = c.JSON(201, messageResponse(msg))
}
