package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpsertPinRequest struct {
	Nickname   string  `json:"nickname"`
	Status     string  `json:"status"`
	YoutubeURL string  `json:"youtube_url,omitempty"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
}

type PinResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Nickname  string    `json:"nickname"`
	Status    string    `json:"status"`
	YoutubeID string    `json:"youtube_id"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	CreatedAt time.Time `json:"created_at"`
}
