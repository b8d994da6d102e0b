package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	"pratblog/internal/models"
)

type userRepository struct {
	db *sqlx.DB
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
	Skills      *string `json:"skills"`
	Location    *string `json:"location"`
	Website     *string `json:"website"`
	Twitter     *string `json:"twitter"`
	Linkedin    *string `json:"linkedin"`
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, email, password string) (*models.User, error) {
	// create password hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	query := `
		INSERT INTO users (email, password)
		VALUES ($1, $2)
		RETURNING id, email, created_at, updated_at
	`

	var user models.User
	err = r.db.GetContext(ctx, &user, query, email, string(hashedPassword))
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return &user, nil
}

// UpsertGoogleUser - создание либо обновление пользователя по данным Google-профиля.
// Для OAuth-пользователей в колонке password лежит заглушка 'google'.
func (r *userRepository) UpsertGoogleUser(ctx context.Context, email, displayName, picture string) (*models.User, error) {
	existing, err := r.GetUserByEmail(ctx, email)
	if err == nil && existing != nil {
		query := `
			UPDATE users
			SET display_name = $1, picture = $2, updated_at = CURRENT_TIMESTAMP
			WHERE email = $3
		`
		_, err = r.db.ExecContext(ctx, query, displayName, picture, email)
		if err != nil {
			return nil, fmt.Errorf("ошибка при обновлении Google-пользователя: %w", err)
		}

		existing.DisplayName = &displayName
		existing.Picture = &picture
		return existing, nil
	}

	query := `
		INSERT INTO users (email, password, display_name, picture)
		VALUES ($1, 'google', $2, $3)
		RETURNING *
	`

	var user models.User
	err = r.db.GetContext(ctx, &user, query, email, displayName, picture)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании Google-пользователя: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пользователь с ID %d не найден", userID)
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пользователь с email %s не найден", email)
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по email: %w", err)
	}

	return &user, nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user.Password == nil {
		return nil, fmt.Errorf("неверный пароль")
	}

	// checking that the password hash is the same
	err = bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("неверный пароль")
	}

	return user, nil
}

func (r *userRepository) GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	query := `
		SELECT u.*,
		       COALESCE(blogs.count, 0) AS blogs_count,
		       COALESCE(followers.count, 0) AS followers_count,
		       COALESCE(following.count, 0) AS following_count
		FROM users u
		LEFT JOIN (
			SELECT user_id, COUNT(*) AS count FROM blog_posts GROUP BY user_id
		) blogs ON u.id = blogs.user_id
		LEFT JOIN (
			SELECT following_id, COUNT(*) AS count FROM user_follows GROUP BY following_id
		) followers ON u.id = followers.following_id
		LEFT JOIN (
			SELECT follower_id, COUNT(*) AS count FROM user_follows GROUP BY follower_id
		) following ON u.id = following.follower_id
		WHERE u.id = $1
	`

	var profile models.UserProfile
	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пользователь с ID %d не найден", userID)
		}
		return nil, fmt.Errorf("ошибка при получении профиля: %w", err)
	}

	return &profile, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) error {
	query := `
		UPDATE users
		SET display_name = $1, bio = $2, skills = $3, location = $4,
		    website = $5, twitter = $6, linkedin = $7, updated_at = CURRENT_TIMESTAMP
		WHERE id = $8
	`

	result, err := r.db.ExecContext(ctx, query,
		req.DisplayName, req.Bio, req.Skills, req.Location,
		req.Website, req.Twitter, req.Linkedin, userID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении профиля: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пользователь с ID %d не найден", userID)
	}

	return nil
}

func (r *userRepository) UpdateAvatar(ctx context.Context, userID int64, data []byte, mimetype string) error {
	query := `UPDATE users SET avatar_data = $1, avatar_mimetype = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, data, mimetype, userID)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении аватара: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пользователь с ID %d не найден", userID)
	}

	return nil
}

func (r *userRepository) UpdateCover(ctx context.Context, userID int64, data []byte, mimetype string) error {
	query := `UPDATE users SET cover_image = $1, cover_image_mimetype = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, data, mimetype, userID)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении обложки: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пользователь с ID %d не найден", userID)
	}

	return nil
}
