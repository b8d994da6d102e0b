package test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"pratblog/internal/models"
	"pratblog/internal/repository"
	"pratblog/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, sessionToken string) error {
	args := m.Called(ctx, sessionToken)
	return args.Error(0)
}

func (m *MockAuthService) GenerateToken(user *models.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) GetUserFromToken(ctx context.Context, tokenString string) (*models.User, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) ResolveIdentity(ctx context.Context, sessionToken, bearerToken string) (*models.User, error) {
	args := m.Called(ctx, sessionToken, bearerToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) GoogleAuthURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockAuthService) HandleGoogleCallback(ctx context.Context, code string) (*models.User, string, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

type MockBlogService struct {
	mock.Mock
}

func (m *MockBlogService) Create(ctx context.Context, userID int64, req service.CreateBlogRequest) (*models.Blog, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *MockBlogService) GetAll(ctx context.Context) ([]models.BlogWithStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BlogWithStats), args.Error(1)
}

func (m *MockBlogService) GetByID(ctx context.Context, blogID int64) (*models.BlogWithStats, error) {
	args := m.Called(ctx, blogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlogWithStats), args.Error(1)
}

func (m *MockBlogService) GetBySlug(ctx context.Context, slug string) (*models.BlogWithStats, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlogWithStats), args.Error(1)
}

func (m *MockBlogService) GetByUserID(ctx context.Context, userID int64) ([]models.BlogWithStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BlogWithStats), args.Error(1)
}

func (m *MockBlogService) GetTrending(ctx context.Context) ([]models.BlogWithStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BlogWithStats), args.Error(1)
}

func (m *MockBlogService) Update(ctx context.Context, blogID, userID int64, req service.CreateBlogRequest) error {
	args := m.Called(ctx, blogID, userID, req)
	return args.Error(0)
}

func (m *MockBlogService) Delete(ctx context.Context, blogID, userID int64) error {
	args := m.Called(ctx, blogID, userID)
	return args.Error(0)
}

func (m *MockBlogService) GetImage(ctx context.Context, blogID int64) ([]byte, string, error) {
	args := m.Called(ctx, blogID)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockBlogService) RecordView(blogID int64, userID *int64, ipAddress string) {
	m.Called(blogID, userID, ipAddress)
}

func (m *MockBlogService) GenerateSitemap(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockBlogService) ToggleLike(ctx context.Context, blogID, userID int64) (bool, error) {
	args := m.Called(ctx, blogID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlogService) LikeStatus(ctx context.Context, blogID int64, userID *int64) (int64, bool, error) {
	args := m.Called(ctx, blogID, userID)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockBlogService) ToggleBookmark(ctx context.Context, blogID, userID int64) (bool, error) {
	args := m.Called(ctx, blogID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlogService) BookmarkStatus(ctx context.Context, blogID int64, userID *int64) (bool, error) {
	args := m.Called(ctx, blogID, userID)
	return args.Bool(0), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) GetTree(ctx context.Context, blogID int64) ([]*models.CommentNode, error) {
	args := m.Called(ctx, blogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CommentNode), args.Error(1)
}

func (m *MockCommentService) Create(ctx context.Context, blogID, userID int64, content string, parentID *int64) (*models.Comment, error) {
	args := m.Called(ctx, blogID, userID, content, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) Update(ctx context.Context, commentID, userID int64, content string) (*models.Comment, error) {
	args := m.Called(ctx, commentID, userID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) ToggleLike(ctx context.Context, commentID, userID int64) (bool, error) {
	args := m.Called(ctx, commentID, userID)
	return args.Bool(0), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID int64, req repository.UpdateProfileRequest) (*models.UserProfile, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockUserService) UpdateAvatar(ctx context.Context, userID int64, data []byte, mimetype string) error {
	args := m.Called(ctx, userID, data, mimetype)
	return args.Error(0)
}

func (m *MockUserService) UpdateCover(ctx context.Context, userID int64, data []byte, mimetype string) error {
	args := m.Called(ctx, userID, data, mimetype)
	return args.Error(0)
}

func (m *MockUserService) GetAvatar(ctx context.Context, userID int64) ([]byte, string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockUserService) GetCover(ctx context.Context, userID int64) ([]byte, string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockUserService) GetExternalPicture(ctx context.Context, url string) ([]byte, string, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockUserService) GetBookmarkedBlogs(ctx context.Context, userID int64) ([]models.BlogWithStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BlogWithStats), args.Error(1)
}

func (m *MockUserService) GetLikedBlogs(ctx context.Context, userID int64) ([]models.BlogWithStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BlogWithStats), args.Error(1)
}

func (m *MockUserService) ToggleFollow(ctx context.Context, followerID, followingID int64) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserService) FollowStatus(ctx context.Context, followingID int64, followerID *int64) (int64, bool, error) {
	args := m.Called(ctx, followingID, followerID)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}
