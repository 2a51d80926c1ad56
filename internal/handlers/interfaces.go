package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lovemap/lovemap-api/internal/models"
	"github.com/lovemap/lovemap-api/internal/oauth"
	"github.com/lovemap/lovemap-api/internal/services"
	"github.com/lovemap/lovemap-api/internal/sse"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	SetNickname(ctx context.Context, id uuid.UUID, nickname string) (*models.User, error)
}

// PinServiceInterface defines the methods used by handlers from PinService
type PinServiceInterface interface {
	List(ctx context.Context) ([]models.Pin, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Pin, error)
	Upsert(ctx context.Context, userID uuid.UUID, nickname, status, youtubeURLOrID string, lat, lng float64) (*models.Pin, error)
	Remove(ctx context.Context, userID uuid.UUID) error
}

// ChatServiceInterface defines the methods used by handlers from ChatService
type ChatServiceInterface interface {
	Get(ctx context.Context, a, b uuid.UUID) (*models.Chat, error)
	GetByKey(ctx context.Context, chatKey string) (*models.Chat, error)
	Request(ctx context.Context, requesterID, otherID uuid.UUID) (*models.Chat, error)
	Accept(ctx context.Context, chatKey string, callerID uuid.UUID) (*models.Chat, error)
	Reject(ctx context.Context, chatKey string, callerID uuid.UUID) (*models.Chat, error)
	ListPendingIncoming(ctx context.Context, userID uuid.UUID) ([]models.Chat, error)
	ListActive(ctx context.Context, userID uuid.UUID) ([]models.Chat, error)
}

// MessageServiceInterface defines the methods used by handlers from MessageService
type MessageServiceInterface interface {
	List(ctx context.Context, chatKey string) ([]models.Message, error)
	Send(ctx context.Context, chatKey string, senderID uuid.UUID, text string) (*models.Message, error)
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, email string) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
	RefreshExpiry() time.Duration
}

// HubInterface defines the methods used by handlers from the SSE hub
type HubInterface interface {
	Register(client *sse.Client)
	Unregister(client *sse.Client)
	ClientOwner(clientID string) (uuid.UUID, bool)
	Subscribe(clientID, topic string)
	Unsubscribe(clientID, topic string)
	SendToClient(clientID string, eventType string, data any)
	BroadcastPinCreated(pin *models.Pin)
	BroadcastPinUpdated(pin *models.Pin)
	BroadcastPinDeleted(userID uuid.UUID)
	BroadcastChatStatus(chat *models.Chat)
	BroadcastMessage(chatKey string, msg *models.Message)
	BroadcastToUser(userID uuid.UUID, eventType string, data any)
}
