package models

import (
	"time"

	"github.com/google/uuid"
)

// Pin is a user's single map marker carrying a status line and an optional
// YouTube video id. user_id is a weak back-reference, not ownership.
type Pin struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Nickname  string    `json:"nickname"`
	Status    string    `json:"status"`
	YoutubeID string    `json:"youtube_id"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
