package service

import (
	"pratblog/internal/config"
	"pratblog/internal/repository"
)

type Service struct {
	Auth    AuthService
	Blog    BlogService
	Comment CommentService
	User    UserService
}

func NewService(rep *repository.Repository, cfg *config.Config) *Service {
	return &Service{
		Auth:    NewAuthService(rep.User, rep.Session, cfg),
		Blog:    NewBlogService(rep.Blog, rep.View, rep.Engagement, cfg),
		Comment: NewCommentService(rep.Comment),
		User:    NewUserService(rep.User, rep.Blog, rep.Engagement, cfg),
	}
}
