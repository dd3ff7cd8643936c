package service

import (
	"context"

	"Micro_Social/internal/model"
	"Micro_Social/internal/pkg"
	"Micro_Social/internal/repository/mysql"

	"gorm.io/gorm"
)

// FollowService 关注关系状态机：
// NoRelation -> Pending -> Accepted，以及任意状态回到 NoRelation（删边）。
type FollowService struct {
	repo     *mysql.FollowRepository
	userRepo *mysql.UserRepository
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{
		repo:     &mysql.FollowRepository{DB: db},
		userRepo: &mysql.UserRepository{DB: db},
	}
}

// Request 发起关注。公开号立即 Accepted，私密号进 Pending。
// 已有边时幂等返回 changed=false。
func (s *FollowService) Request(ctx context.Context, followerID, followedID uint64) (*model.Follow, bool, error) {
	if followerID == 0 || followedID == 0 {
		return nil, false, pkg.Validationf("invalid user id")
	}
	if followerID == followedID {
		return nil, false, pkg.Validationf("cannot follow self")
	}

	target, err := s.userRepo.FindActiveByID(followedID)
	if err != nil {
		return nil, false, err
	}
	return s.repo.Request(ctx, followerID, followedID, target.IsPrivate)
}

// Accept 只有被关注方能接受；边不存在或不属于自己同样报 NotFound
func (s *FollowService) Accept(ctx context.Context, actorID, edgeID uint64) error {
	if actorID == 0 || edgeID == 0 {
		return pkg.Validationf("invalid id")
	}
	return s.repo.Accept(ctx, actorID, edgeID)
}

// Decline 拒绝请求：删边，不留痕，之后允许重新发起
func (s *FollowService) Decline(ctx context.Context, actorID, edgeID uint64) error {
	if actorID == 0 || edgeID == 0 {
		return pkg.Validationf("invalid id")
	}
	return s.repo.Decline(ctx, actorID, edgeID)
}

// Unfollow 取关，无边时幂等成功
func (s *FollowService) Unfollow(ctx context.Context, actorID, targetID uint64) (bool, error) {
	if actorID == 0 || targetID == 0 {
		return false, pkg.Validationf("invalid user id")
	}
	if actorID == targetID {
		return false, pkg.Validationf("cannot unfollow self")
	}
	return s.repo.Unfollow(ctx, actorID, targetID)
}

// RemoveFollower 移除粉丝（只作用于 Accepted 边）
func (s *FollowService) RemoveFollower(ctx context.Context, actorID, followerID uint64) error {
	if actorID == 0 || followerID == 0 {
		return pkg.Validationf("invalid user id")
	}
	return s.repo.RemoveFollower(ctx, actorID, followerID)
}

// OnAccountBecomesPublic 账号从私密改公开时的级联副作用：
// 所有指向该账号的 Pending 边在一个事务里全部转 Accepted。
// 由资料编辑流程调用，但独立成方法以便单测批量语义。
func (s *FollowService) OnAccountBecomesPublic(ctx context.Context, userID uint64) (int64, error) {
	if userID == 0 {
		return 0, pkg.Validationf("invalid user id")
	}
	return s.repo.AcceptAllPending(ctx, userID)
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followedID uint64) (bool, error) {
	if followerID == 0 || followedID == 0 {
		return false, pkg.Validationf("invalid user id")
	}
	return s.repo.IsAccepted(ctx, followerID, followedID)
}

// ListPendingRequests 自己收到的待处理请求
func (s *FollowService) ListPendingRequests(ctx context.Context, userID uint64) ([]model.Follow, error) {
	return s.repo.ListPendingIncoming(ctx, userID)
}

func (s *FollowService) ListFollowings(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error) {
	return s.repo.ListFollowings(ctx, userID, cursor, limit)
}

func (s *FollowService) ListFollowers(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error) {
	return s.repo.ListFollowers(ctx, userID, cursor, limit)
}
