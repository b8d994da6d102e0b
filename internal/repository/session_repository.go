package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"pratblog/internal/models"
)

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create - создает сессию для пользователя; старые сессии пользователя удаляются.
func (r *sessionRepository) Create(ctx context.Context, userID int64, lifetime time.Duration) (string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	if err != nil {
		return "", fmt.Errorf("ошибка при очистке старых сессий: %w", err)
	}

	token := uuid.New().String()
	expiresAt := time.Now().Add(lifetime)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, expires_at) VALUES ($1, $2, $3)`,
		token, userID, expiresAt)
	if err != nil {
		return "", fmt.Errorf("ошибка при создании сессии: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return token, nil
}

// GetUserByToken - возвращает пользователя по валидной (не истекшей) сессии.
// Чтение не продлевает срок жизни сессии.
func (r *sessionRepository) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	query := `
		SELECT u.* FROM users u
		JOIN sessions s ON s.user_id = u.id
		WHERE s.token = $1 AND s.expires_at > CURRENT_TIMESTAMP
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("сессия не найдена или истекла")
		}
		return nil, fmt.Errorf("ошибка при получении сессии: %w", err)
	}

	return &user, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("ошибка при удалении сессии: %w", err)
	}

	return nil
}
