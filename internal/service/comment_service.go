package service

import (
	"context"

	"pratblog/internal/models"
	"pratblog/internal/repository"
)

type CommentService interface {
	GetTree(ctx context.Context, blogID int64) ([]*models.CommentNode, error)
	Create(ctx context.Context, blogID, userID int64, content string, parentID *int64) (*models.Comment, error)
	Update(ctx context.Context, commentID, userID int64, content string) (*models.Comment, error)
	ToggleLike(ctx context.Context, commentID, userID int64) (bool, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
}

func NewCommentService(commentRepo repository.CommentRepository) CommentService {
	return &commentService{commentRepo: commentRepo}
}

// BuildCommentTree - собирает плоский список комментариев в дерево за два
// прохода: сначала узлы по ID, затем привязка к родителям. Комментарий с
// parent_id, которого нет в списке, молча выпадает из результата.
func BuildCommentTree(comments []models.Comment) []*models.CommentNode {
	nodes := make(map[int64]*models.CommentNode, len(comments))
	for i := range comments {
		nodes[comments[i].ID] = &models.CommentNode{
			Comment: comments[i],
			Replies: []*models.CommentNode{},
		}
	}

	roots := []*models.CommentNode{}
	for i := range comments {
		node := nodes[comments[i].ID]
		if comments[i].ParentID == nil {
			roots = append(roots, node)
			continue
		}

		parent, ok := nodes[*comments[i].ParentID]
		if !ok {
			continue
		}
		parent.Replies = append(parent.Replies, node)
	}

	return roots
}

func (s *commentService) GetTree(ctx context.Context, blogID int64) ([]*models.CommentNode, error) {
	comments, err := s.commentRepo.ListByBlogID(ctx, blogID)
	if err != nil {
		return nil, err
	}

	return BuildCommentTree(comments), nil
}

func (s *commentService) Create(ctx context.Context, blogID, userID int64, content string, parentID *int64) (*models.Comment, error) {
	return s.commentRepo.Create(ctx, blogID, userID, content, parentID)
}

func (s *commentService) Update(ctx context.Context, commentID, userID int64, content string) (*models.Comment, error) {
	ownerID, err := s.commentRepo.GetOwnerID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if ownerID != userID {
		return nil, ErrForbidden
	}

	if err := s.commentRepo.Update(ctx, commentID, content); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, commentID)
}

func (s *commentService) ToggleLike(ctx context.Context, commentID, userID int64) (bool, error) {
	return s.commentRepo.ToggleLike(ctx, commentID, userID)
}
