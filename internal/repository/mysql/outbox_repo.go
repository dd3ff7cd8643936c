package mysql

import (
	"context"

	"Micro_Social/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// List 查询待投递的关系事件
func (r *OutboxRepository) List(ctx context.Context, batchSize int) ([]model.RelationOutbox, error) {
	var list []model.RelationOutbox
	if err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// MarkFailed 投递失败，计入重试次数
func (r *OutboxRepository) MarkFailed(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.RelationOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}

// MarkSent 投递成功
func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.RelationOutbox{}).Where("id = ?", id).
		Update("status", 1).Error
}

// FollowCountReconcilerRepo 关注计数对账查询
type FollowCountReconcilerRepo struct {
	DB *gorm.DB
}

type CountPair struct {
	ID             uint64
	FollowingCount int64
	FollowerCount  int64
}

// ReconcileList 按主键分批扫描用户冗余计数
func (r *FollowCountReconcilerRepo) ReconcileList(ctx context.Context, batchSize int, lastID uint64) ([]CountPair, uint64, error) {
	var list []CountPair
	if err := r.DB.WithContext(ctx).Model(&model.User{}).
		Select("id", "following_count", "follower_count").
		Where("id > ?", lastID).
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, lastID, err
	}
	if len(list) == 0 {
		return nil, lastID, nil
	}
	return list, list[len(list)-1].ID, nil
}

// RealFollowings 真实关注数：只数 Accepted 边
func (r *FollowCountReconcilerRepo) RealFollowings(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ? AND status = ?", userID, model.FollowAccepted).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// RealFollowers 真实粉丝数
func (r *FollowCountReconcilerRepo) RealFollowers(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("followed_id = ? AND status = ?", userID, model.FollowAccepted).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *FollowCountReconcilerRepo) FixFollowings(ctx context.Context, userID uint64, real int64) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		UpdateColumn("following_count", real).Error
}

func (r *FollowCountReconcilerRepo) FixFollowers(ctx context.Context, userID uint64, real int64) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		UpdateColumn("follower_count", real).Error
}
