package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"pratblog/internal/models"
)

type blogRepository struct {
	db *sqlx.DB
}

func NewBlogRepository(db *sqlx.DB) BlogRepository {
	return &blogRepository{db: db}
}

// Базовые подзапросы для счетчиков. COALESCE гарантирует 0 вместо NULL.
const blogStatsJoins = `
	LEFT JOIN (
		SELECT blog_id, COUNT(*) AS count
		FROM blog_likes
		GROUP BY blog_id
	) likes ON b.id = likes.blog_id
	LEFT JOIN (
		SELECT blog_id, COUNT(*) AS count
		FROM blog_views
		GROUP BY blog_id
	) views ON b.id = views.blog_id
`

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	query := `
		INSERT INTO blog_posts (user_id, title, slug, category, description, content, image, mimetype)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		blog.UserID, blog.Title, blog.Slug, blog.Category,
		blog.Description, blog.Content, blog.Image, blog.Mimetype)

	err := row.Scan(&blog.ID, &blog.CreatedAt, &blog.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *blogRepository) GetByID(ctx context.Context, blogID int64) (*models.BlogWithStats, error) {
	query := `
		SELECT b.id, b.title, b.slug, b.description, b.content, b.category, b.created_at, b.user_id,
		       '/blog/' || b.id || '/image' AS image_url,
		       u.display_name, u.picture, u.email,
		       COALESCE(likes.count, 0) AS likes_count,
		       COALESCE(views.count, 0) AS views_count
		FROM blog_posts b
		JOIN users u ON b.user_id = u.id
	` + blogStatsJoins + `
		WHERE b.id = $1
	`

	var blog models.BlogWithStats
	err := r.db.GetContext(ctx, &blog, query, blogID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %d не найден", blogID)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &blog, nil
}

func (r *blogRepository) GetBySlug(ctx context.Context, slug string) (*models.BlogWithStats, error) {
	query := `
		SELECT b.id, b.title, b.slug, b.description, b.content, b.category, b.created_at, b.user_id,
		       '/blog/' || b.id || '/image' AS image_url,
		       u.display_name, u.picture, u.email,
		       COALESCE(likes.count, 0) AS likes_count,
		       COALESCE(views.count, 0) AS views_count
		FROM blog_posts b
		JOIN users u ON b.user_id = u.id
	` + blogStatsJoins + `
		WHERE b.slug = $1
	`

	var blog models.BlogWithStats
	err := r.db.GetContext(ctx, &blog, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост со slug %s не найден", slug)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &blog, nil
}

func (r *blogRepository) GetIDBySlug(ctx context.Context, slug string) (int64, error) {
	var blogID int64

	err := r.db.GetContext(ctx, &blogID, `SELECT id FROM blog_posts WHERE slug = $1`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("пост со slug %s не найден", slug)
		}
		return 0, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return blogID, nil
}

func (r *blogRepository) GetOwnerID(ctx context.Context, blogID int64) (int64, error) {
	var ownerID int64

	err := r.db.GetContext(ctx, &ownerID, `SELECT user_id FROM blog_posts WHERE id = $1`, blogID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("пост с ID %d не найден", blogID)
		}
		return 0, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return ownerID, nil
}

func (r *blogRepository) GetAll(ctx context.Context) ([]models.BlogWithStats, error) {
	query := `
		SELECT b.id, b.title, b.slug, b.description, b.created_at, b.category, b.user_id,
		       u.display_name, u.picture,
		       '/blog/' || b.id || '/image' AS image_url,
		       COALESCE(likes.count, 0) AS likes_count,
		       COALESCE(views.count, 0) AS views_count
		FROM blog_posts b
		JOIN users u ON b.user_id = u.id
	` + blogStatsJoins + `
		ORDER BY b.created_at DESC
	`

	var blogs []models.BlogWithStats
	err := r.db.SelectContext(ctx, &blogs, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка постов: %w", err)
	}

	return blogs, nil
}

func (r *blogRepository) GetByUserID(ctx context.Context, userID int64) ([]models.BlogWithStats, error) {
	query := `
		SELECT b.id, b.title, b.slug, b.description, b.content, b.category, b.created_at,
		       '/blog/' || b.id || '/image' AS image_url,
		       u.display_name, u.picture, u.email, b.user_id,
		       COALESCE(likes.count, 0) AS likes_count,
		       COALESCE(views.count, 0) AS views_count
		FROM blog_posts b
		JOIN users u ON b.user_id = u.id
	` + blogStatsJoins + `
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`

	var blogs []models.BlogWithStats
	err := r.db.SelectContext(ctx, &blogs, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов пользователя: %w", err)
	}

	return blogs, nil
}

func (r *blogRepository) GetBookmarkedByUserID(ctx context.Context, userID int64) ([]models.BlogWithStats, error) {
	query := `
		SELECT b.id, b.title, b.description, b.category, b.created_at,
		       '/blog/' || b.id || '/image' AS image_url,
		       u.display_name, u.picture, u.email, b.user_id,
		       COALESCE(likes.count, 0) AS likes_count,
		       COALESCE(views.count, 0) AS views_count
		FROM blog_posts b
		JOIN users u ON b.user_id = u.id
		JOIN bookmarks bm ON b.id = bm.blog_id
	` + blogStatsJoins + `
		WHERE bm.user_id = $1
		ORDER BY bm.created_at DESC
	`

	var blogs []models.BlogWithStats
	err := r.db.SelectContext(ctx, &blogs, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении закладок пользователя: %w", err)
	}

	return blogs, nil
}

func (r *blogRepository) GetLikedByUserID(ctx context.Context, userID int64) ([]models.BlogWithStats, error) {
	query := `
		SELECT b.id, b.title, b.description, b.category, b.created_at,
		       '/blog/' || b.id || '/image' AS image_url,
		       u.display_name, u.picture, u.email, b.user_id,
		       COALESCE(likes.count, 0) AS likes_count,
		       COALESCE(views.count, 0) AS views_count
		FROM blog_posts b
		JOIN users u ON b.user_id = u.id
		JOIN blog_likes bl ON b.id = bl.blog_id
	` + blogStatsJoins + `
		WHERE bl.user_id = $1
		ORDER BY bl.created_at DESC
	`

	var blogs []models.BlogWithStats
	err := r.db.SelectContext(ctx, &blogs, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении лайкнутых постов: %w", err)
	}

	return blogs, nil
}

// GetTrending - посты за последние 30 дней, ранжированные по лайкам за 7 дней.
// Лайк старше 7 дней в счет не идет, даже если сам пост проходит по возрасту.
func (r *blogRepository) GetTrending(ctx context.Context, limit int) ([]models.BlogWithStats, error) {
	query := `
		SELECT b.id, b.title, b.description, b.created_at, b.category, b.user_id,
		       u.display_name, u.picture,
		       '/blog/' || b.id || '/image' AS image_url,
		       COUNT(bl.id) AS likes_count
		FROM blog_posts b
		JOIN users u ON b.user_id = u.id
		LEFT JOIN blog_likes bl ON b.id = bl.blog_id AND bl.created_at > NOW() - INTERVAL '7 days'
		WHERE b.created_at > NOW() - INTERVAL '30 days'
		GROUP BY b.id, u.id
		ORDER BY likes_count DESC, b.created_at DESC
		LIMIT $1
	`

	var blogs []models.BlogWithStats
	err := r.db.SelectContext(ctx, &blogs, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении трендовых постов: %w", err)
	}

	return blogs, nil
}

func (r *blogRepository) Update(ctx context.Context, blog *models.Blog) error {
	var result sql.Result
	var err error

	blog.UpdatedAt = time.Now()

	// Картинка меняется только если прислали новую
	if len(blog.Image) > 0 {
		query := `
			UPDATE blog_posts
			SET title = $1, category = $2, description = $3, content = $4,
			    image = $5, mimetype = $6, updated_at = $7
			WHERE id = $8
		`
		result, err = r.db.ExecContext(ctx, query,
			blog.Title, blog.Category, blog.Description, blog.Content,
			blog.Image, blog.Mimetype, blog.UpdatedAt, blog.ID)
	} else {
		query := `
			UPDATE blog_posts
			SET title = $1, category = $2, description = $3, content = $4, updated_at = $5
			WHERE id = $6
		`
		result, err = r.db.ExecContext(ctx, query,
			blog.Title, blog.Category, blog.Description, blog.Content,
			blog.UpdatedAt, blog.ID)
	}

	if err != nil {
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %d не найден", blog.ID)
	}

	return nil
}

// Delete - удаляет пост и все зависимые факты одной транзакцией:
// комментарии, лайки, просмотры, закладки, затем сам пост.
func (r *blogRepository) Delete(ctx context.Context, blogID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	cascade := []string{
		`DELETE FROM comment_likes WHERE comment_id IN (SELECT id FROM comments WHERE blog_id = $1)`,
		`DELETE FROM comments WHERE blog_id = $1`,
		`DELETE FROM blog_likes WHERE blog_id = $1`,
		`DELETE FROM blog_views WHERE blog_id = $1`,
		`DELETE FROM bookmarks WHERE blog_id = $1`,
	}

	for _, query := range cascade {
		if _, err := tx.ExecContext(ctx, query, blogID); err != nil {
			return fmt.Errorf("ошибка при каскадном удалении: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, blogID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %d не найден", blogID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}

func (r *blogRepository) GetImage(ctx context.Context, blogID int64) ([]byte, string, error) {
	var row struct {
		Image    []byte `db:"image"`
		Mimetype string `db:"mimetype"`
	}

	query := `SELECT image, mimetype FROM blog_posts WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, blogID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", fmt.Errorf("пост с ID %d не найден", blogID)
		}
		return nil, "", fmt.Errorf("ошибка при получении картинки: %w", err)
	}

	return row.Image, row.Mimetype, nil
}

func (r *blogRepository) ListSitemapEntries(ctx context.Context) ([]models.SitemapEntry, error) {
	query := `SELECT slug, created_at FROM blog_posts ORDER BY created_at DESC`

	var entries []models.SitemapEntry
	err := r.db.SelectContext(ctx, &entries, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении слагов для sitemap: %w", err)
	}

	return entries, nil
}
