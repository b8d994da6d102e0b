package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"pratblog/internal/models"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Колонка picture_url: приоритет загруженного аватара над внешней ссылкой.
const commentSelect = `
	SELECT c.id, c.blog_id, c.user_id, c.parent_id, c.content, c.likes_count, c.created_at,
	       u.display_name, u.picture, u.email,
	       CASE WHEN u.avatar_data IS NOT NULL
	            THEN '/api/users/' || u.id || '/avatar'
	            ELSE u.picture
	       END AS picture_url
	FROM comments c
	JOIN users u ON c.user_id = u.id
`

func (r *commentRepository) ListByBlogID(ctx context.Context, blogID int64) ([]models.Comment, error) {
	query := commentSelect + `
		WHERE c.blog_id = $1
		ORDER BY c.created_at ASC
	`

	var comments []models.Comment
	err := r.db.SelectContext(ctx, &comments, query, blogID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	return comments, nil
}

func (r *commentRepository) Create(ctx context.Context, blogID, userID int64, content string, parentID *int64) (*models.Comment, error) {
	var commentID int64

	query := `
		INSERT INTO comments (blog_id, user_id, content, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.GetContext(ctx, &commentID, query, blogID, userID, content, parentID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании комментария: %w", err)
	}

	// Перечитываем с данными автора, чтобы ответ был как строка листинга
	return r.GetByID(ctx, commentID)
}

func (r *commentRepository) GetByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	query := commentSelect + ` WHERE c.id = $1`

	var comment models.Comment
	err := r.db.GetContext(ctx, &comment, query, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("комментарий с ID %d не найден", commentID)
		}
		return nil, fmt.Errorf("ошибка при получении комментария: %w", err)
	}

	return &comment, nil
}

func (r *commentRepository) GetOwnerID(ctx context.Context, commentID int64) (int64, error) {
	var ownerID int64

	err := r.db.GetContext(ctx, &ownerID, `SELECT user_id FROM comments WHERE id = $1`, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("комментарий с ID %d не найден", commentID)
		}
		return 0, fmt.Errorf("ошибка при получении комментария: %w", err)
	}

	return ownerID, nil
}

func (r *commentRepository) Update(ctx context.Context, commentID int64, content string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE comments SET content = $1 WHERE id = $2`, content, commentID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении комментария: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("комментарий с ID %d не найден", commentID)
	}

	return nil
}

// ToggleLike - ставит либо снимает лайк комментария. Факт лайка и
// денормализованный счетчик likes_count меняются в одной транзакции.
func (r *commentRepository) ToggleLike(ctx context.Context, commentID, userID int64) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	var existingID int64
	err = tx.GetContext(ctx, &existingID,
		`SELECT id FROM comment_likes WHERE comment_id = $1 AND user_id = $2`,
		commentID, userID)

	var liked bool
	switch {
	case err == nil:
		_, err = tx.ExecContext(ctx,
			`DELETE FROM comment_likes WHERE id = $1`, existingID)
		if err != nil {
			return false, fmt.Errorf("ошибка при снятии лайка: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE comments SET likes_count = likes_count - 1 WHERE id = $1`, commentID)
		if err != nil {
			return false, fmt.Errorf("ошибка при обновлении счетчика лайков: %w", err)
		}

		liked = false

	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			`INSERT INTO comment_likes (comment_id, user_id) VALUES ($1, $2)`,
			commentID, userID)
		if err != nil {
			return false, fmt.Errorf("ошибка при постановке лайка: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE comments SET likes_count = likes_count + 1 WHERE id = $1`, commentID)
		if err != nil {
			return false, fmt.Errorf("ошибка при обновлении счетчика лайков: %w", err)
		}

		liked = true

	default:
		return false, fmt.Errorf("ошибка при проверке лайка: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return liked, nil
}
