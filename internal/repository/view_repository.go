package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type viewRepository struct {
	db *sqlx.DB
}

func NewViewRepository(db *sqlx.DB) ViewRepository {
	return &viewRepository{db: db}
}

// RecordView - фиксирует просмотр поста. Дедупликация по уникальному
// индексу (blog_id, COALESCE(user_id, 0), ip_address, DATE(created_at)):
// повторный просмотр в тот же день молча игнорируется.
func (r *viewRepository) RecordView(ctx context.Context, blogID int64, userID *int64, ipAddress string) error {
	query := `
		INSERT INTO blog_views (blog_id, user_id, ip_address)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, blogID, userID, ipAddress)
	if err != nil {
		return fmt.Errorf("ошибка при записи просмотра: %w", err)
	}

	return nil
}

func (r *viewRepository) CountViews(ctx context.Context, blogID int64) (int64, error) {
	var count int64

	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM blog_views WHERE blog_id = $1`, blogID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчете просмотров: %w", err)
	}

	return count, nil
}
