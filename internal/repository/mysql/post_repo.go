package mysql

import (
	"context"
	"errors"
	"time"

	"Micro_Social/internal/model"
	"Micro_Social/internal/pkg"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Create(post).Error
}

func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrNotFound
	}
	return &post, err
}

// FindVisibleByID 作者已被软删的帖子对外视为不存在
func (r *PostRepository) FindVisibleByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).
		Joins("JOIN users u ON u.id = posts.author_id AND u.is_deleted = ?", false).
		Where("posts.id = ?", id).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrNotFound
	}
	return &post, err
}

func (r *PostRepository) UpdateContent(ctx context.Context, id uint64, content string) error {
	return r.DB.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		Updates(map[string]any{"content": content, "updated_at": time.Now()}).Error
}

// Delete 连带删除帖子下的评论和表情
func (r *PostRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.Reaction{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return pkg.ErrNotFound
		}
		return nil
	})
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID uint64, offset, limit int) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

// DiscoverFeed 所有对 viewer 可见的帖子，时间倒序。
// viewerID=0 表示未登录：只看公开作者。
// 作者被软删的帖子一律不出现。
func (r *PostRepository) DiscoverFeed(ctx context.Context, viewerID uint64, offset, limit int) ([]model.Post, error) {
	var list []model.Post
	q := r.DB.WithContext(ctx).Model(&model.Post{}).
		Joins("JOIN users u ON u.id = posts.author_id AND u.is_deleted = ?", false)
	if viewerID == 0 {
		q = q.Where("u.is_private = ?", false)
	} else {
		q = q.Where(
			"posts.author_id = ? OR u.is_private = ? OR EXISTS ("+
				"SELECT 1 FROM follows f WHERE f.follower_id = ? AND f.followed_id = posts.author_id AND f.status = ?)",
			viewerID, false, viewerID, model.FollowAccepted,
		)
	}
	err := q.Order("posts.created_at DESC, posts.id DESC").
		Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

// FollowingFeed 自己的帖子 + 已接受关注对象的帖子
func (r *PostRepository) FollowingFeed(ctx context.Context, viewerID uint64, offset, limit int) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.WithContext(ctx).Model(&model.Post{}).
		Joins("JOIN users u ON u.id = posts.author_id AND u.is_deleted = ?", false).
		Where(
			"posts.author_id = ? OR EXISTS ("+
				"SELECT 1 FROM follows f WHERE f.follower_id = ? AND f.followed_id = posts.author_id AND f.status = ?)",
			viewerID, viewerID, model.FollowAccepted,
		).
		Order("posts.created_at DESC, posts.id DESC").
		Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}
