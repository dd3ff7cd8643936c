package service

import (
	"context"

	"Micro_Social/internal/model"
	"Micro_Social/internal/pkg"
	"Micro_Social/internal/repository/mysql"
	"Micro_Social/internal/repository/redis"

	"gorm.io/gorm"
)

// ReactionService 表情切换：
// 没有 -> 插入；同类型 -> 取消；不同类型 -> 原地改写。
// 一个用户对一个帖子始终最多一条记录。
type ReactionService struct {
	repo     *mysql.ReactionRepository
	postRepo *mysql.PostRepository
	userRepo *mysql.UserRepository
	cache    *redis.ReactionCacheRepository
}

// NewReactionService cache 传 nil 时跳过缓存，直接回源
func NewReactionService(db *gorm.DB, cache *redis.ReactionCacheRepository) *ReactionService {
	return &ReactionService{
		repo:     &mysql.ReactionRepository{DB: db},
		postRepo: &mysql.PostRepository{DB: db},
		userRepo: &mysql.UserRepository{DB: db},
		cache:    cache,
	}
}

// React 返回操作后的表情，nil 表示本次把表情取消了
func (s *ReactionService) React(ctx context.Context, userID, postID uint64, reactionType string) (*model.Reaction, error) {
	if !model.IsAllowedReaction(reactionType) {
		return nil, pkg.Validationf("invalid reaction type %q", reactionType)
	}
	if _, err := s.userRepo.FindActiveByID(userID); err != nil {
		return nil, err
	}
	if _, err := s.postRepo.FindVisibleByID(ctx, postID); err != nil {
		return nil, err
	}

	reaction, err := s.repo.Toggle(ctx, userID, postID, reactionType)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		// 写后删 Key，读侧回源重建
		_ = s.cache.Invalidate(ctx, postID)
	}
	return reaction, nil
}

func (s *ReactionService) MyReaction(ctx context.Context, userID, postID uint64) (*model.Reaction, error) {
	return s.repo.Get(ctx, userID, postID)
}

// Counts 缓存优先的各表情计数
func (s *ReactionService) Counts(ctx context.Context, postID uint64) (map[string]int64, error) {
	if s.cache != nil {
		if counts, ok, err := s.cache.GetCounts(ctx, postID); err == nil && ok {
			return counts, nil
		}
	}

	counts, err := s.repo.CountByType(ctx, postID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetCounts(ctx, postID, counts)
	}
	return counts, nil
}
