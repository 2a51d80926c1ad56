package dto

import (
	"time"

	"github.com/google/uuid"
)

// ChatStateResponse reports the relationship state for a pair. Status is null
// while no request has been sent.
type ChatStateResponse struct {
	ChatKey     string     `json:"chat_key"`
	Status      *string    `json:"status"`
	RequestedBy *uuid.UUID `json:"requested_by,omitempty"`
}

type ChatSummaryResponse struct {
	ChatKey       string    `json:"chat_key"`
	Status        string    `json:"status"`
	RequestedBy   uuid.UUID `json:"requested_by"`
	OtherUserID   uuid.UUID `json:"other_user_id"`
	OtherNickname string    `json:"other_nickname"`
	CreatedAt     time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	Text string `json:"text"`
}

type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
