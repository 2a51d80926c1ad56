package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lovemap/lovemap-api/internal/database"
	"github.com/lovemap/lovemap-api/internal/models"
	"github.com/lovemap/lovemap-api/internal/youtube"
)

var (
	ErrStatusRequired    = errors.New("status is required")
	ErrInvalidYouTubeURL = errors.New("invalid youtube url")
)

type PinService struct {
	db *database.DB
}

func NewPinService(db *database.DB) *PinService {
	return &PinService{db: db}
}

// List returns the full pin set newest first. It doubles as the snapshot
// delivered when a client subscribes to the pins topic.
func (s *PinService) List(ctx context.Context) ([]models.Pin, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, user_id, nickname, status, youtube_id, lat, lng, created_at, updated_at
		FROM pins
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pins []models.Pin
	for rows.Next() {
		var pin models.Pin
		if err := rows.Scan(
			&pin.ID, &pin.UserID, &pin.Nickname, &pin.Status, &pin.YoutubeID,
			&pin.Lat, &pin.Lng, &pin.CreatedAt, &pin.UpdatedAt,
		); err != nil {
			return nil, err
		}
		pins = append(pins, pin)
	}
	return pins, nil
}

// GetByUserID returns the caller's own pin or nil when none exists.
func (s *PinService) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Pin, error) {
	var pin models.Pin
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, user_id, nickname, status, youtube_id, lat, lng, created_at, updated_at
		FROM pins WHERE user_id = $1
	`, userID).Scan(
		&pin.ID, &pin.UserID, &pin.Nickname, &pin.Status, &pin.YoutubeID,
		&pin.Lat, &pin.Lng, &pin.CreatedAt, &pin.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pin, nil
}

// Upsert creates the caller's pin or edits it in place. An existing pin keeps
// its location; only nickname, status and song change on edit. The user's
// profile nickname is kept in sync in the same transaction.
func (s *PinService) Upsert(ctx context.Context, userID uuid.UUID, nickname, status, youtubeURLOrID string, lat, lng float64) (*models.Pin, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, ErrStatusRequired
	}
	if utf8.RuneCountInString(nickname) > MaxNicknameLength {
		return nil, ErrNicknameTooLong
	}

	youtubeID := ""
	if youtubeURLOrID != "" {
		id, ok := youtube.ExtractID(youtubeURLOrID)
		if !ok {
			return nil, ErrInvalidYouTubeURL
		}
		youtubeID = id
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		UPDATE users SET nickname = $1, updated_at = NOW()
		WHERE id = $2 AND nickname != $1
	`, nickname, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to update nickname: %w", err)
	}

	var pin models.Pin
	err = tx.QueryRow(ctx, `
		INSERT INTO pins (user_id, nickname, status, youtube_id, lat, lng)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			nickname = EXCLUDED.nickname,
			status = EXCLUDED.status,
			youtube_id = EXCLUDED.youtube_id,
			updated_at = NOW()
		RETURNING id, user_id, nickname, status, youtube_id, lat, lng, created_at, updated_at
	`, userID, nickname, status, youtubeID, lat, lng).Scan(
		&pin.ID, &pin.UserID, &pin.Nickname, &pin.Status, &pin.YoutubeID,
		&pin.Lat, &pin.Lng, &pin.CreatedAt, &pin.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert pin: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &pin, nil
}

// Remove deletes the caller's pin. Removing an absent pin is a no-op.
func (s *PinService) Remove(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM pins WHERE user_id = $1`, userID)
	return err
}
