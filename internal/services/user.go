package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/lovemap/lovemap-api/internal/database"
	"github.com/lovemap/lovemap-api/internal/models"
	"github.com/lovemap/lovemap-api/internal/oauth"
)

const MaxNicknameLength = 20

var ErrNicknameTooLong = errors.New("nickname exceeds 20 characters")

type UserService struct {
	db *database.DB
}

func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db}
}

// FindOrCreateFromOAuth maps an authenticated principal to a profile. The
// nickname starts empty and is only ever set through SetNickname or a pin
// upsert, never from the provider's display name.
func (s *UserService) FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, email, nickname, provider, provider_id, created_at, updated_at
		FROM users
		WHERE provider = $1 AND provider_id = $2
	`, info.Provider, info.ID).Scan(
		&user.ID, &user.Email, &user.Nickname,
		&user.Provider, &user.ProviderID, &user.CreatedAt, &user.UpdatedAt,
	)

	if err == nil {
		if user.Email != info.Email {
			_, _ = s.db.Pool.Exec(ctx, `
				UPDATE users SET email = $1, updated_at = NOW()
				WHERE id = $2
			`, info.Email, user.ID)
			user.Email = info.Email
		}
		return &user, nil
	}

	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, provider, provider_id)
		VALUES ($1, $2, $3)
		RETURNING id, email, nickname, provider, provider_id, created_at, updated_at
	`, info.Email, info.Provider, info.ID).Scan(
		&user.ID, &user.Email, &user.Nickname,
		&user.Provider, &user.ProviderID, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, email, nickname, provider, provider_id, created_at, updated_at
		FROM users WHERE id = $1
	`, id).Scan(
		&user.ID, &user.Email, &user.Nickname,
		&user.Provider, &user.ProviderID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetNickname upserts the display name. Uniqueness is deliberately not
// validated.
func (s *UserService) SetNickname(ctx context.Context, id uuid.UUID, nickname string) (*models.User, error) {
	if utf8.RuneCountInString(nickname) > MaxNicknameLength {
		return nil, ErrNicknameTooLong
	}

	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE users SET nickname = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, email, nickname, provider, provider_id, created_at, updated_at
	`, nickname, id).Scan(
		&user.ID, &user.Email, &user.Nickname,
		&user.Provider, &user.ProviderID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
