package dto

import "github.com/google/uuid"

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Nickname string    `json:"nickname"`
	Provider string    `json:"provider"`
}

type UpdateUserRequest struct {
	Nickname string `json:"nickname"`
}
