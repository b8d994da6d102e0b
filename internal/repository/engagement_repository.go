package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type engagementRepository struct {
	db *sqlx.DB
}

func NewEngagementRepository(db *sqlx.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// toggleFact - общий паттерн select-then-delete/insert для таблиц фактов
// с уникальной парой колонок. Возвращает true если факт появился.
func (r *engagementRepository) toggleFact(ctx context.Context, table, col1, col2 string, v1, v2 int64) (bool, error) {
	var existingID int64

	selectQuery := fmt.Sprintf(`SELECT id FROM %s WHERE %s = $1 AND %s = $2`, table, col1, col2)

	err := r.db.GetContext(ctx, &existingID, selectQuery, v1, v2)
	switch {
	case err == nil:
		deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table)
		if _, err := r.db.ExecContext(ctx, deleteQuery, existingID); err != nil {
			return false, fmt.Errorf("ошибка при удалении из %s: %w", table, err)
		}
		return false, nil

	case errors.Is(err, sql.ErrNoRows):
		insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`, table, col1, col2)
		if _, err := r.db.ExecContext(ctx, insertQuery, v1, v2); err != nil {
			return false, fmt.Errorf("ошибка при вставке в %s: %w", table, err)
		}
		return true, nil

	default:
		return false, fmt.Errorf("ошибка при проверке %s: %w", table, err)
	}
}

func (r *engagementRepository) ToggleBlogLike(ctx context.Context, blogID, userID int64) (bool, error) {
	return r.toggleFact(ctx, "blog_likes", "blog_id", "user_id", blogID, userID)
}

// BlogLikeStatus - общее число лайков поста и флаг лайка текущего
// пользователя. Для анонимов флаг всегда false.
func (r *engagementRepository) BlogLikeStatus(ctx context.Context, blogID int64, userID *int64) (int64, bool, error) {
	var count int64

	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM blog_likes WHERE blog_id = $1`, blogID)
	if err != nil {
		return 0, false, fmt.Errorf("ошибка при подсчете лайков: %w", err)
	}

	if userID == nil {
		return count, false, nil
	}

	var liked bool
	err = r.db.GetContext(ctx, &liked,
		`SELECT EXISTS(SELECT 1 FROM blog_likes WHERE blog_id = $1 AND user_id = $2)`,
		blogID, *userID)
	if err != nil {
		return 0, false, fmt.Errorf("ошибка при проверке лайка: %w", err)
	}

	return count, liked, nil
}

func (r *engagementRepository) ToggleBookmark(ctx context.Context, blogID, userID int64) (bool, error) {
	return r.toggleFact(ctx, "bookmarks", "blog_id", "user_id", blogID, userID)
}

func (r *engagementRepository) BookmarkStatus(ctx context.Context, blogID int64, userID *int64) (bool, error) {
	if userID == nil {
		return false, nil
	}

	var bookmarked bool
	err := r.db.GetContext(ctx, &bookmarked,
		`SELECT EXISTS(SELECT 1 FROM bookmarks WHERE blog_id = $1 AND user_id = $2)`,
		blogID, *userID)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке закладки: %w", err)
	}

	return bookmarked, nil
}

func (r *engagementRepository) ToggleFollow(ctx context.Context, followerID, followingID int64) (bool, error) {
	return r.toggleFact(ctx, "user_follows", "follower_id", "following_id", followerID, followingID)
}

// FollowStatus - число подписчиков пользователя и подписан ли текущий.
func (r *engagementRepository) FollowStatus(ctx context.Context, followingID int64, followerID *int64) (int64, bool, error) {
	var count int64

	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM user_follows WHERE following_id = $1`, followingID)
	if err != nil {
		return 0, false, fmt.Errorf("ошибка при подсчете подписчиков: %w", err)
	}

	if followerID == nil {
		return count, false, nil
	}

	var following bool
	err = r.db.GetContext(ctx, &following,
		`SELECT EXISTS(SELECT 1 FROM user_follows WHERE follower_id = $1 AND following_id = $2)`,
		*followerID, followingID)
	if err != nil {
		return 0, false, fmt.Errorf("ошибка при проверке подписки: %w", err)
	}

	return count, following, nil
}
