package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lovemap/lovemap-api/internal/models"
	"github.com/lovemap/lovemap-api/internal/oauth"
	"github.com/lovemap/lovemap-api/internal/sse"
	"github.com/stretchr/testify/mock"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) SetNickname(ctx context.Context, id uuid.UUID, nickname string) (*models.User, error) {
	args := m.Called(ctx, id, nickname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockPinService mocks the PinService
type MockPinService struct {
	mock.Mock
}

func (m *MockPinService) List(ctx context.Context) ([]models.Pin, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Pin), args.Error(1)
}

func (m *MockPinService) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Pin, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pin), args.Error(1)
}

func (m *MockPinService) Upsert(ctx context.Context, userID uuid.UUID, nickname, status, youtubeURLOrID string, lat, lng float64) (*models.Pin, error) {
	args := m.Called(ctx, userID, nickname, status, youtubeURLOrID, lat, lng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pin), args.Error(1)
}

func (m *MockPinService) Remove(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockChatService mocks the ChatService
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Get(ctx context.Context, a, b uuid.UUID) (*models.Chat, error) {
	args := m.Called(ctx, a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chat), args.Error(1)
}

func (m *MockChatService) GetByKey(ctx context.Context, chatKey string) (*models.Chat, error) {
	args := m.Called(ctx, chatKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chat), args.Error(1)
}

func (m *MockChatService) Request(ctx context.Context, requesterID, otherID uuid.UUID) (*models.Chat, error) {
	args := m.Called(ctx, requesterID, otherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chat), args.Error(1)
}

func (m *MockChatService) Accept(ctx context.Context, chatKey string, callerID uuid.UUID) (*models.Chat, error) {
	args := m.Called(ctx, chatKey, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chat), args.Error(1)
}

func (m *MockChatService) Reject(ctx context.Context, chatKey string, callerID uuid.UUID) (*models.Chat, error) {
	args := m.Called(ctx, chatKey, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chat), args.Error(1)
}

func (m *MockChatService) ListPendingIncoming(ctx context.Context, userID uuid.UUID) ([]models.Chat, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Chat), args.Error(1)
}

func (m *MockChatService) ListActive(ctx context.Context, userID uuid.UUID) ([]models.Chat, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Chat), args.Error(1)
}

// MockMessageService mocks the MessageService
type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) List(ctx context.Context, chatKey string) ([]models.Message, error) {
	args := m.Called(ctx, chatKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageService) Send(ctx context.Context, chatKey string, senderID uuid.UUID, text string) (*models.Message, error) {
	args := m.Called(ctx, chatKey, senderID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

// MockTokenService mocks the TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockTokenService) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockHub mocks the SSE hub
type MockHub struct {
	mock.Mock
}

func (m *MockHub) Register(client *sse.Client) {
	m.Called(client)
}

func (m *MockHub) Unregister(client *sse.Client) {
	m.Called(client)
}

func (m *MockHub) ClientOwner(clientID string) (uuid.UUID, bool) {
	args := m.Called(clientID)
	return args.Get(0).(uuid.UUID), args.Bool(1)
}

func (m *MockHub) Subscribe(clientID, topic string) {
	m.Called(clientID, topic)
}

func (m *MockHub) Unsubscribe(clientID, topic string) {
	m.Called(clientID, topic)
}

func (m *MockHub) SendToClient(clientID string, eventType string, data any) {
	m.Called(clientID, eventType, data)
}

func (m *MockHub) BroadcastPinCreated(pin *models.Pin) {
	m.Called(pin)
}

func (m *MockHub) BroadcastPinUpdated(pin *models.Pin) {
	m.Called(pin)
}

func (m *MockHub) BroadcastPinDeleted(userID uuid.UUID) {
	m.Called(userID)
}

func (m *MockHub) BroadcastChatStatus(chat *models.Chat) {
	m.Called(chat)
}

func (m *MockHub) BroadcastMessage(chatKey string, msg *models.Message) {
	m.Called(chatKey, msg)
}

func (m *MockHub) BroadcastToUser(userID uuid.UUID, eventType string, data any) {
	m.Called(userID, eventType, data)
}

// MockOAuthProvider mocks an OAuth provider
type MockOAuthProvider struct {
	mock.Mock
}

func (m *MockOAuthProvider) GetConsentURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockOAuthProvider) ExchangeCode(ctx context.Context, code string) (*oauth.UserInfo, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth.UserInfo), args.Error(1)
}

func (m *MockOAuthProvider) Name() string {
	args := m.Called()
	return args.String(0)
}
