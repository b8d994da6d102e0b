package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"pratblog/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, email, password string) (*models.User, error)
	UpsertGoogleUser(ctx context.Context, email, displayName, picture string) (*models.User, error)
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) error
	UpdateAvatar(ctx context.Context, userID int64, data []byte, mimetype string) error
	UpdateCover(ctx context.Context, userID int64, data []byte, mimetype string) error
}

type SessionRepository interface {
	Create(ctx context.Context, userID int64, lifetime time.Duration) (string, error)
	GetUserByToken(ctx context.Context, token string) (*models.User, error)
	Delete(ctx context.Context, token string) error
}

type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, blogID int64) (*models.BlogWithStats, error)
	GetBySlug(ctx context.Context, slug string) (*models.BlogWithStats, error)
	GetIDBySlug(ctx context.Context, slug string) (int64, error)
	GetOwnerID(ctx context.Context, blogID int64) (int64, error)
	GetAll(ctx context.Context) ([]models.BlogWithStats, error)
	GetByUserID(ctx context.Context, userID int64) ([]models.BlogWithStats, error)
	GetBookmarkedByUserID(ctx context.Context, userID int64) ([]models.BlogWithStats, error)
	GetLikedByUserID(ctx context.Context, userID int64) ([]models.BlogWithStats, error)
	GetTrending(ctx context.Context, limit int) ([]models.BlogWithStats, error)
	Update(ctx context.Context, blog *models.Blog) error
	Delete(ctx context.Context, blogID int64) error
	GetImage(ctx context.Context, blogID int64) ([]byte, string, error)
	ListSitemapEntries(ctx context.Context) ([]models.SitemapEntry, error)
}

type CommentRepository interface {
	ListByBlogID(ctx context.Context, blogID int64) ([]models.Comment, error)
	Create(ctx context.Context, blogID, userID int64, content string, parentID *int64) (*models.Comment, error)
	GetByID(ctx context.Context, commentID int64) (*models.Comment, error)
	GetOwnerID(ctx context.Context, commentID int64) (int64, error)
	Update(ctx context.Context, commentID int64, content string) error
	ToggleLike(ctx context.Context, commentID, userID int64) (bool, error)
}

type EngagementRepository interface {
	ToggleBlogLike(ctx context.Context, blogID, userID int64) (bool, error)
	BlogLikeStatus(ctx context.Context, blogID int64, userID *int64) (int64, bool, error)
	ToggleBookmark(ctx context.Context, blogID, userID int64) (bool, error)
	BookmarkStatus(ctx context.Context, blogID int64, userID *int64) (bool, error)
	ToggleFollow(ctx context.Context, followerID, followingID int64) (bool, error)
	FollowStatus(ctx context.Context, followingID int64, followerID *int64) (int64, bool, error)
}

type ViewRepository interface {
	RecordView(ctx context.Context, blogID int64, userID *int64, ipAddress string) error
	CountViews(ctx context.Context, blogID int64) (int64, error)
}

type Repository struct {
	User       UserRepository
	Session    SessionRepository
	Blog       BlogRepository
	Comment    CommentRepository
	Engagement EngagementRepository
	View       ViewRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:       NewUserRepository(db),
		Session:    NewSessionRepository(db),
		Blog:       NewBlogRepository(db),
		Comment:    NewCommentRepository(db),
		Engagement: NewEngagementRepository(db),
		View:       NewViewRepository(db),
	}
}
