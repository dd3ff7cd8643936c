package service

import (
	"context"

	"Micro_Social/internal/model"
	"Micro_Social/internal/repository/mysql"

	"gorm.io/gorm"
)

// CanViewProfile 可见性判定的纯函数核心。
// viewerID=0 表示未登录。target 已被软删时不应走到这里。
func CanViewProfile(viewerID uint64, target *model.User, isAcceptedFollower bool) bool {
	if target.IsDeleted {
		return false
	}
	if viewerID == target.ID {
		return true
	}
	if !target.IsPrivate {
		return true
	}
	if viewerID == 0 {
		return false
	}
	return isAcceptedFollower
}

// VisibilityService 查库版包装：私密号需要查 Accepted 关注边
type VisibilityService struct {
	followRepo *mysql.FollowRepository
	userRepo   *mysql.UserRepository
}

func NewVisibilityService(db *gorm.DB) *VisibilityService {
	return &VisibilityService{
		followRepo: &mysql.FollowRepository{DB: db},
		userRepo:   &mysql.UserRepository{DB: db},
	}
}

// CanViewFullProfile 返回 false 时调用方只能渲染最小资料，
// 不得再去取帖子列表、粉丝列表等关联集合
func (s *VisibilityService) CanViewFullProfile(ctx context.Context, viewerID uint64, target *model.User) (bool, error) {
	if viewerID != target.ID && target.IsPrivate && viewerID != 0 {
		accepted, err := s.followRepo.IsAccepted(ctx, viewerID, target.ID)
		if err != nil {
			return false, err
		}
		return CanViewProfile(viewerID, target, accepted), nil
	}
	return CanViewProfile(viewerID, target, false), nil
}

// CanViewPost 帖子的可见性与作者资料一致；作者永远能看到自己的帖子
func (s *VisibilityService) CanViewPost(ctx context.Context, viewerID uint64, post *model.Post) (bool, error) {
	if viewerID != 0 && viewerID == post.AuthorID {
		return true, nil
	}
	author, err := s.userRepo.FindActiveByID(post.AuthorID)
	if err != nil {
		// 作者已软删或不存在，帖子对外不可见
		return false, nil
	}
	return s.CanViewFullProfile(ctx, viewerID, author)
}
