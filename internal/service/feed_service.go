package service

import (
	"context"

	"Micro_Social/internal/model"
	"Micro_Social/internal/repository/mysql"

	"gorm.io/gorm"
)

// FeedService 两条时间线：
// discover = 所有对 viewer 可见的帖子；following = 自己 + 已接受关注对象。
// 作者被软删的帖子两条线都不出现。
type FeedService struct {
	postRepo *mysql.PostRepository
}

func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{
		postRepo: &mysql.PostRepository{DB: db},
	}
}

func normalizePage(page, size int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	return (page - 1) * size, size
}

// Discover viewerID=0 表示游客：只看公开作者的帖子
func (s *FeedService) Discover(ctx context.Context, viewerID uint64, page, size int) ([]model.Post, error) {
	offset, limit := normalizePage(page, size)
	return s.postRepo.DiscoverFeed(ctx, viewerID, offset, limit)
}

// Following 游客的关注时间线恒为空
func (s *FeedService) Following(ctx context.Context, viewerID uint64, page, size int) ([]model.Post, error) {
	if viewerID == 0 {
		return []model.Post{}, nil
	}
	offset, limit := normalizePage(page, size)
	return s.postRepo.FollowingFeed(ctx, viewerID, offset, limit)
}
