package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lovemap/lovemap-api/internal/database"
	"github.com/lovemap/lovemap-api/internal/models"
)

var (
	ErrSelfChat       = errors.New("cannot open a chat with yourself")
	ErrChatExists     = errors.New("chat already exists for this pair")
	ErrChatNotFound   = errors.New("chat not found")
	ErrNotParticipant = errors.New("user is not a chat participant")
	ErrOwnRequest     = errors.New("requester cannot answer their own request")
	ErrNotPending     = errors.New("chat request is not pending")
)

// ChatKey derives the pair's shared identifier from the sorted participant
// ids. ChatKey(a, b) == ChatKey(b, a) for every pair.
func ChatKey(a, b uuid.UUID) string {
	ids := []string{a.String(), b.String()}
	if ids[0] > ids[1] {
		ids[0], ids[1] = ids[1], ids[0]
	}
	return strings.Join(ids, "_")
}

type ChatService struct {
	db *database.DB
}

func NewChatService(db *database.DB) *ChatService {
	return &ChatService{db: db}
}

// Get returns the relationship record for a pair, or nil when none exists.
func (s *ChatService) Get(ctx context.Context, a, b uuid.UUID) (*models.Chat, error) {
	return s.GetByKey(ctx, ChatKey(a, b))
}

func (s *ChatService) GetByKey(ctx context.Context, chatKey string) (*models.Chat, error) {
	var chat models.Chat
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, chat_key, participant_a, participant_b, status, requested_by, created_at, updated_at
		FROM chats WHERE chat_key = $1
	`, chatKey).Scan(
		&chat.ID, &chat.ChatKey, &chat.ParticipantA, &chat.ParticipantB,
		&chat.Status, &chat.RequestedBy, &chat.CreatedAt, &chat.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// Request creates the pending relationship. The unique chat_key column makes
// the insert a create-if-absent: when both sides request each other at the
// same time exactly one row wins and the loser gets ErrChatExists.
func (s *ChatService) Request(ctx context.Context, requesterID, otherID uuid.UUID) (*models.Chat, error) {
	if requesterID == otherID {
		return nil, ErrSelfChat
	}

	var chat models.Chat
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO chats (chat_key, participant_a, participant_b, status, requested_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (chat_key) DO NOTHING
		RETURNING id, chat_key, participant_a, participant_b, status, requested_by, created_at, updated_at
	`, ChatKey(requesterID, otherID), requesterID, otherID, models.ChatStatusPending, requesterID).Scan(
		&chat.ID, &chat.ChatKey, &chat.ParticipantA, &chat.ParticipantB,
		&chat.Status, &chat.RequestedBy, &chat.CreatedAt, &chat.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrChatExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}
	return &chat, nil
}

// Accept transitions a pending request to accepted. Only the participant who
// did not send the request may accept.
func (s *ChatService) Accept(ctx context.Context, chatKey string, callerID uuid.UUID) (*models.Chat, error) {
	return s.transition(ctx, chatKey, callerID, models.ChatStatusAccepted)
}

// Reject transitions a pending request to rejected, which is terminal: there
// is no re-request path out of it.
func (s *ChatService) Reject(ctx context.Context, chatKey string, callerID uuid.UUID) (*models.Chat, error) {
	return s.transition(ctx, chatKey, callerID, models.ChatStatusRejected)
}

func (s *ChatService) transition(ctx context.Context, chatKey string, callerID uuid.UUID, newStatus string) (*models.Chat, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var chat models.Chat
	err = tx.QueryRow(ctx, `
		SELECT id, chat_key, participant_a, participant_b, status, requested_by, created_at, updated_at
		FROM chats WHERE chat_key = $1
		FOR UPDATE
	`, chatKey).Scan(
		&chat.ID, &chat.ChatKey, &chat.ParticipantA, &chat.ParticipantB,
		&chat.Status, &chat.RequestedBy, &chat.CreatedAt, &chat.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrChatNotFound
	}
	if err != nil {
		return nil, err
	}

	if !chat.HasParticipant(callerID) {
		return nil, ErrNotParticipant
	}
	if chat.RequestedBy == callerID {
		return nil, ErrOwnRequest
	}
	if chat.Status != models.ChatStatusPending {
		return nil, ErrNotPending
	}

	err = tx.QueryRow(ctx, `
		UPDATE chats SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING status, updated_at
	`, newStatus, chat.ID).Scan(&chat.Status, &chat.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update chat: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &chat, nil
}

// ListPendingIncoming returns requests sent TO the user, joined with the
// requester's profile so the list renders without per-row lookups.
func (s *ChatService) ListPendingIncoming(ctx context.Context, userID uuid.UUID) ([]models.Chat, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT c.id, c.chat_key, c.participant_a, c.participant_b, c.status, c.requested_by, c.created_at, c.updated_at,
		       u.id, u.email, u.nickname, u.provider, u.created_at, u.updated_at
		FROM chats c
		JOIN users u ON u.id = c.requested_by
		WHERE (c.participant_a = $1 OR c.participant_b = $1)
		  AND c.status = $2
		  AND c.requested_by != $1
		ORDER BY c.created_at DESC
	`, userID, models.ChatStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanChatsWithUser(rows)
}

// ListActive returns the user's accepted chats joined with the other
// participant's profile.
func (s *ChatService) ListActive(ctx context.Context, userID uuid.UUID) ([]models.Chat, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT c.id, c.chat_key, c.participant_a, c.participant_b, c.status, c.requested_by, c.created_at, c.updated_at,
		       u.id, u.email, u.nickname, u.provider, u.created_at, u.updated_at
		FROM chats c
		JOIN users u ON u.id = CASE WHEN c.participant_a = $1 THEN c.participant_b ELSE c.participant_a END
		WHERE (c.participant_a = $1 OR c.participant_b = $1)
		  AND c.status = $2
		ORDER BY c.updated_at DESC
	`, userID, models.ChatStatusAccepted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanChatsWithUser(rows)
}

func scanChatsWithUser(rows pgx.Rows) ([]models.Chat, error) {
	var chats []models.Chat
	for rows.Next() {
		var chat models.Chat
		var user models.User
		if err := rows.Scan(
			&chat.ID, &chat.ChatKey, &chat.ParticipantA, &chat.ParticipantB,
			&chat.Status, &chat.RequestedBy, &chat.CreatedAt, &chat.UpdatedAt,
			&user.ID, &user.Email, &user.Nickname, &user.Provider, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		chat.OtherUser = &user
		chats = append(chats, chat)
	}
	return chats, nil
}
