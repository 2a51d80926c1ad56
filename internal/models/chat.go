package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChatStatusPending  = "pending"
	ChatStatusAccepted = "accepted"
	ChatStatusRejected = "rejected"
)

// Chat is the single pairwise relationship record between two users. ChatKey
// is derived from the sorted participant ids, so both sides compute the same
// reference without coordination.
type Chat struct {
	ID           uuid.UUID `json:"id"`
	ChatKey      string    `json:"chat_key"`
	ParticipantA uuid.UUID `json:"participant_a"`
	ParticipantB uuid.UUID `json:"participant_b"`
	Status       string    `json:"status"`
	RequestedBy  uuid.UUID `json:"requested_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Populated by the joined read-model queries.
	OtherUser *User `json:"other_user,omitempty"`
}

func (c *Chat) HasParticipant(userID uuid.UUID) bool {
	return c.ParticipantA == userID || c.ParticipantB == userID
}

func (c *Chat) OtherParticipant(userID uuid.UUID) uuid.UUID {
	if c.ParticipantA == userID {
		return c.ParticipantB
	}
	return c.ParticipantA
}

type Message struct {
	ID        uuid.UUID `json:"id"`
	ChatID    uuid.UUID `json:"chat_id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
