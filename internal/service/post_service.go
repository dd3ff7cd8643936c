package service

import (
	"context"
	"mime/multipart"
	"strings"

	"Micro_Social/internal/model"
	"Micro_Social/internal/pkg"
	"Micro_Social/internal/repository/mysql"

	"gorm.io/gorm"
)

type PostService struct {
	repo       *mysql.PostRepository
	userRepo   *mysql.UserRepository
	moderation *ModerationService
	storage    *pkg.FileStorage
	visibility *VisibilityService
}

func NewPostService(db *gorm.DB, moderation *ModerationService, storage *pkg.FileStorage) *PostService {
	return &PostService{
		repo:       &mysql.PostRepository{DB: db},
		userRepo:   &mysql.UserRepository{DB: db},
		moderation: moderation,
		storage:    storage,
		visibility: NewVisibilityService(db),
	}
}

// Create 帖子可以是文字、图片或视频；图片和视频不能同时传。
// 文字先过审，审核失败或不过审都不落库。
func (s *PostService) Create(ctx context.Context, authorID uint64, content string, image, video *multipart.FileHeader) (*model.Post, error) {
	if _, err := s.userRepo.FindActiveByID(authorID); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	hasText := content != ""
	hasImage := image != nil && image.Size > 0
	hasVideo := video != nil && video.Size > 0

	if !hasText && !hasImage && !hasVideo {
		return nil, pkg.Validationf("post must contain text, an image, or a video")
	}
	if hasImage && hasVideo {
		return nil, pkg.Validationf("post can carry either an image or a video, not both")
	}

	if hasText {
		if err := s.moderation.Check(ctx, authorID, "post", content); err != nil {
			return nil, err
		}
	}

	var imagePath, videoPath string
	var err error
	if hasImage {
		imagePath, err = s.storage.Save(image, "posts/images", pkg.ImageExtensions)
		if err != nil {
			return nil, err
		}
	}
	if hasVideo {
		videoPath, err = s.storage.Save(video, "posts/videos", pkg.VideoExtensions)
		if err != nil {
			return nil, err
		}
	}

	post := &model.Post{
		AuthorID:  authorID,
		Content:   content,
		ImagePath: imagePath,
		VideoPath: videoPath,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Edit 仅作者；新文字重新过审
func (s *PostService) Edit(ctx context.Context, actorID, postID uint64, content string) error {
	if _, err := s.userRepo.FindActiveByID(actorID); err != nil {
		return err
	}
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID {
		return pkg.ErrForbidden
	}

	content = strings.TrimSpace(content)
	if content != "" {
		if err := s.moderation.Check(ctx, actorID, "post_edit", content); err != nil {
			return err
		}
	}
	return s.repo.UpdateContent(ctx, postID, content)
}

// Delete 作者或管理员；落盘的媒体文件一并清掉
func (s *PostService) Delete(ctx context.Context, actor Actor, postID uint64) error {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actor.ID && !actor.Admin {
		return pkg.ErrForbidden
	}

	if err := s.repo.Delete(ctx, postID); err != nil {
		return err
	}
	_ = s.storage.Remove(post.ImagePath)
	_ = s.storage.Remove(post.VideoPath)
	return nil
}

// Get 可见性跟作者资料走；不可见按不存在处理
func (s *PostService) Get(ctx context.Context, viewerID, postID uint64) (*model.Post, error) {
	post, err := s.repo.FindVisibleByID(ctx, postID)
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
	return post, nil
}

// ListByAuthor 资料页帖子列表；可见性校验由资料层做完再调
func (s *PostService) ListByAuthor(ctx context.Context, authorID uint64, page, size int) ([]model.Post, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	return s.repo.ListByAuthor(ctx, authorID, (page-1)*size, size)
}
