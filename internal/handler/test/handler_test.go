package test

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"pratblog/internal/config"
	handlers "pratblog/internal/handler"
)

type testMocks struct {
	Auth    *MockAuthService
	Blog    *MockBlogService
	Comment *MockCommentService
	User    *MockUserService
}

func newTestHandlers() (*handlers.Handlers, *testMocks) {
	mocks := &testMocks{
		Auth:    &MockAuthService{},
		Blog:    &MockBlogService{},
		Comment: &MockCommentService{},
		User:    &MockUserService{},
	}

	h := &handlers.Handlers{
		AuthService:    mocks.Auth,
		BlogService:    mocks.Blog,
		CommentService: mocks.Comment,
		UserService:    mocks.User,
		Cfg: &config.Config{
			SessionLifetime: 24 * time.Hour,
			TokenDuration:   24 * time.Hour,
			FrontendURL:     "http://localhost:8080",
			MaxUploadSize:   10 * 1024 * 1024,
		},
		Validate: validator.New(),
	}

	return h, mocks
}

// withUser - имитирует работу IdentityMiddleware: кладет пользователя
// в контекст запроса
func withUser(r *http.Request, userID int64) *http.Request {
	ctx := context.WithValue(r.Context(), "userID", userID)
	return r.WithContext(ctx)
}

func withExpiredAuth(r *http.Request) *http.Request {
	ctx := context.WithValue(r.Context(), "authExpired", true)
	return r.WithContext(ctx)
}
