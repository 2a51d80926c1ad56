package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/lovemap/lovemap-api/internal/database"
	"github.com/lovemap/lovemap-api/internal/models"
)

const MaxMessageLength = 500

var (
	ErrEmptyMessage    = errors.New("message text is empty")
	ErrMessageTooLong  = errors.New("message exceeds 500 characters")
	ErrChatNotAccepted = errors.New("chat is not accepted")
	ErrRateLimited     = errors.New("too many messages, slow down")
)

// MessageService is the append-only log under an accepted chat. It owns the
// per-sender rate limiter.
type MessageService struct {
	db      *database.DB
	chats   *ChatService
	limiter *RateLimiter
}

func NewMessageService(db *database.DB, chats *ChatService, limiter *RateLimiter) *MessageService {
	return &MessageService{db: db, chats: chats, limiter: limiter}
}

// List returns the chat's messages oldest first.
func (s *MessageService) List(ctx context.Context, chatKey string) ([]models.Message, error) {
	chat, err := s.chats.GetByKey(ctx, chatKey)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, chat_id, sender_id, text, created_at
		FROM messages
		WHERE chat_id = $1
		ORDER BY created_at ASC
	`, chat.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.ChatID, &msg.SenderID, &msg.Text, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// Send validates, checks the owning chat is accepted, consults the rate
// limiter and appends. Messages cannot be edited or deleted afterwards.
func (s *MessageService) Send(ctx context.Context, chatKey string, senderID uuid.UUID, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	// The bound counts characters, not bytes, so multibyte text is not
	// penalized.
	if utf8.RuneCountInString(text) > MaxMessageLength {
		return nil, ErrMessageTooLong
	}

	chat, err := s.chats.GetByKey(ctx, chatKey)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}
	if !chat.HasParticipant(senderID) {
		return nil, ErrNotParticipant
	}
	if chat.Status != models.ChatStatusAccepted {
		return nil, ErrChatNotAccepted
	}

	if !s.limiter.Allow(senderID) {
		return nil, ErrRateLimited
	}

	var msg models.Message
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO messages (chat_id, sender_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, chat_id, sender_id, text, created_at
	`, chat.ID, senderID, text).Scan(&msg.ID, &msg.ChatID, &msg.SenderID, &msg.Text, &msg.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to append message: %w", err)
	}

	return &msg, nil
}
