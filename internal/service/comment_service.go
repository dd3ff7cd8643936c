package service

import (
	"context"
	"strings"

	"Micro_Social/internal/model"
	"Micro_Social/internal/pkg"
	"Micro_Social/internal/repository/mysql"

	"gorm.io/gorm"
)

type CommentService struct {
	repo       *mysql.CommentRepository
	postRepo   *mysql.PostRepository
	moderation *ModerationService
	visibility *VisibilityService
}

func NewCommentService(db *gorm.DB, moderation *ModerationService) *CommentService {
	return &CommentService{
		repo:       &mysql.CommentRepository{DB: db},
		postRepo:   &mysql.PostRepository{DB: db},
		moderation: moderation,
		visibility: NewVisibilityService(db),
	}
}

// Create 评论先过审；看不到的帖子不能评
func (s *CommentService) Create(ctx context.Context, actorID, postID uint64, text string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, pkg.Validationf("comment text required")
	}

	post, err := s.postRepo.FindVisibleByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	ok, err := s.visibility.CanViewPost(ctx, actorID, post)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pkg.ErrNotFound
	}

	if err := s.moderation.Check(ctx, actorID, "comment", text); err != nil {
		return nil, err
	}

	comment := &model.Comment{PostID: postID, UserID: actorID, Text: text}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete 作者或管理员
func (s *CommentService) Delete(ctx context.Context, actor Actor, commentID uint64) error {
	comment, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != actor.ID && !actor.Admin {
		return pkg.ErrForbidden
	}
	return s.repo.Delete(ctx, commentID)
}

func (s *CommentService) ListByPost(ctx context.Context, viewerID, postID uint64, page, size int) ([]model.Comment, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 50
	}

	post, err := s.postRepo.FindVisibleByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	ok, err := s.visibility.CanViewPost(ctx, viewerID, post)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pkg.ErrNotFound
	}
	return s.repo.ListByPost(ctx, postID, (page-1)*size, size)
}
