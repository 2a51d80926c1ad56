package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lovemap/lovemap-api/internal/database"
	"github.com/lovemap/lovemap-api/internal/models"
	"github.com/lovemap/lovemap-api/internal/oauth"
	"github.com/lovemap/lovemap-api/internal/services"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email:      fmt.Sprintf("user%d@example.com", f.counter),
		Nickname:   fmt.Sprintf("user%d", f.counter),
		Provider:   "google",
		ProviderID: fmt.Sprintf("provider-%d", f.counter),
	}

	for _, opt := range opts {
		opt(user)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, nickname, provider, provider_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, nickname, provider, provider_id, created_at, updated_at
	`, user.Email, user.Nickname, user.Provider, user.ProviderID).Scan(
		&user.ID, &user.Email, &user.Nickname,
		&user.Provider, &user.ProviderID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithNickname sets the user's nickname
func WithNickname(nickname string) UserOption {
	return func(u *models.User) {
		u.Nickname = nickname
	}
}

// WithProvider sets the user's OAuth provider
func WithProvider(provider, providerID string) UserOption {
	return func(u *models.User) {
		u.Provider = provider
		u.ProviderID = providerID
	}
}

// CreatePin creates a test pin for the given user
func (f *Fixtures) CreatePin(t *testing.T, user *models.User, opts ...PinOption) *models.Pin {
	t.Helper()
	f.counter++

	pin := &models.Pin{
		UserID:   user.ID,
		Nickname: user.Nickname,
		Status:   fmt.Sprintf("hello from pin %d", f.counter),
		Lat:      44.8 + float64(f.counter)*0.01,
		Lng:      20.4 + float64(f.counter)*0.01,
	}

	for _, opt := range opts {
		opt(pin)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO pins (user_id, nickname, status, youtube_id, lat, lng)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, nickname, status, youtube_id, lat, lng, created_at, updated_at
	`, pin.UserID, pin.Nickname, pin.Status, pin.YoutubeID, pin.Lat, pin.Lng).Scan(
		&pin.ID, &pin.UserID, &pin.Nickname, &pin.Status,
		&pin.YoutubeID, &pin.Lat, &pin.Lng, &pin.CreatedAt, &pin.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create pin: %v", err)
	}

	return pin
}

// PinOption configures a test pin
type PinOption func(*models.Pin)

// WithStatus sets the pin's status message
func WithStatus(status string) PinOption {
	return func(p *models.Pin) {
		p.Status = status
	}
}

// WithSong sets the pin's YouTube video id
func WithSong(youtubeID string) PinOption {
	return func(p *models.Pin) {
		p.YoutubeID = youtubeID
	}
}

// WithLocation sets the pin's coordinates
func WithLocation(lat, lng float64) PinOption {
	return func(p *models.Pin) {
		p.Lat = lat
		p.Lng = lng
	}
}

// CreateChat creates a chat between two users, requested by the first
func (f *Fixtures) CreateChat(t *testing.T, requester, other *models.User, opts ...ChatOption) *models.Chat {
	t.Helper()

	chat := &models.Chat{
		ChatKey:      services.ChatKey(requester.ID, other.ID),
		ParticipantA: requester.ID,
		ParticipantB: other.ID,
		Status:       models.ChatStatusPending,
		RequestedBy:  requester.ID,
	}

	for _, opt := range opts {
		opt(chat)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO chats (chat_key, participant_a, participant_b, status, requested_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, chat_key, participant_a, participant_b, status, requested_by, created_at, updated_at
	`, chat.ChatKey, chat.ParticipantA, chat.ParticipantB, chat.Status, chat.RequestedBy).Scan(
		&chat.ID, &chat.ChatKey, &chat.ParticipantA, &chat.ParticipantB,
		&chat.Status, &chat.RequestedBy, &chat.CreatedAt, &chat.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create chat: %v", err)
	}

	return chat
}

// ChatOption configures a test chat
type ChatOption func(*models.Chat)

// WithChatStatus sets the chat's handshake status
func WithChatStatus(status string) ChatOption {
	return func(c *models.Chat) {
		c.Status = status
	}
}

// CreateMessage creates a message in the given chat
func (f *Fixtures) CreateMessage(t *testing.T, chat *models.Chat, sender *models.User, text string) *models.Message {
	t.Helper()

	msg := &models.Message{
		ChatID:   chat.ID,
		SenderID: sender.ID,
		Text:     text,
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO messages (chat_id, sender_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, chat_id, sender_id, text, created_at
	`, msg.ChatID, msg.SenderID, msg.Text).Scan(
		&msg.ID, &msg.ChatID, &msg.SenderID, &msg.Text, &msg.CreatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create message: %v", err)
	}

	return msg
}

// CreateRefreshToken creates a test refresh token
func (f *Fixtures) CreateRefreshToken(t *testing.T, userID uuid.UUID, tokenHash string, expiresAt time.Time) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	if err != nil {
		t.Fatalf("failed to create refresh token: %v", err)
	}
}

// OAuthUserInfo creates test OAuth user info
func OAuthUserInfo(email, name, provider, id string) *oauth.UserInfo {
	return &oauth.UserInfo{
		Email:    email,
		Name:     name,
		ID:       id,
		Provider: provider,
	}
}
