package mysql

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"Micro_Social/internal/model"
	"Micro_Social/internal/pkg"

	"gorm.io/gorm"
)

type FollowRepository struct {
	DB *gorm.DB
}

// Request 创建关注边。目标为公开号直接 Accepted，私密号 Pending。
// 任意状态下已有边都按幂等处理：changed=false，不报错。
func (r *FollowRepository) Request(ctx context.Context, followerID, followedID uint64, followedIsPrivate bool) (*model.Follow, bool, error) {
	var edge model.Follow
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
			First(&edge).Error
		if err == nil {
			// 已有边（Pending 或 Accepted），重复请求不产生新行
			changed = false
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now()
		edge = model.Follow{
			FollowerID:  followerID,
			FollowedID:  followedID,
			Status:      model.FollowPending,
			RequestedAt: now,
		}
		if !followedIsPrivate {
			edge.Status = model.FollowAccepted
			edge.AcceptedAt = &now
		}
		if err := tx.Create(&edge).Error; err != nil {
			// 并发双插时唯一键兜底，与已存在同样按无事发生处理
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				changed = false
				return nil
			}
			return err
		}
		changed = true

		if edge.Status == model.FollowAccepted {
			if err := adjustFollowCounts(tx, followerID, followedID, +1); err != nil {
				return err
			}
			return insertOutbox(tx, "follow_accepted", followerID, followedID)
		}
		return insertOutbox(tx, "follow_requested", followerID, followedID)
	})
	if err != nil {
		return nil, false, err
	}
	return &edge, changed, nil
}

// Accept 查询范围限定 followed_id=actor：别人的边和不存在的边同样报 NotFound
func (r *FollowRepository) Accept(ctx context.Context, actorID, edgeID uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var edge model.Follow
		err := tx.Where("id = ? AND followed_id = ? AND status = ?",
			edgeID, actorID, model.FollowPending).First(&edge).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkg.ErrNotFound
		}
		if err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&model.Follow{}).
			Where("id = ? AND status = ?", edge.ID, model.FollowPending).
			Updates(map[string]any{"status": model.FollowAccepted, "accepted_at": now}).Error; err != nil {
			return err
		}
		if err := adjustFollowCounts(tx, edge.FollowerID, actorID, +1); err != nil {
			return err
		}
		return insertOutbox(tx, "follow_accepted", edge.FollowerID, actorID)
	})
}

// Decline 拒绝即删行，不保留 Rejected 状态
func (r *FollowRepository) Decline(ctx context.Context, actorID, edgeID uint64) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND followed_id = ? AND status = ?", edgeID, actorID, model.FollowPending).
		Delete(&model.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}

// Unfollow 删除自己发起的边（任意状态）；不存在则视为幂等成功
func (r *FollowRepository) Unfollow(ctx context.Context, followerID, followedID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var edge model.Follow
		err := tx.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
			First(&edge).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			changed = false
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Delete(&model.Follow{}, edge.ID).Error; err != nil {
			return err
		}
		changed = true
		if edge.Status == model.FollowAccepted {
			if err := adjustFollowCounts(tx, followerID, followedID, -1); err != nil {
				return err
			}
		}
		return insertOutbox(tx, "unfollow", followerID, followedID)
	})
	return changed, err
}

// RemoveFollower 被关注方移除已接受的粉丝；Pending 边不在可见范围内
func (r *FollowRepository) RemoveFollower(ctx context.Context, actorID, followerID uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND followed_id = ? AND status = ?",
			followerID, actorID, model.FollowAccepted).
			Delete(&model.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return pkg.ErrNotFound
		}
		if err := adjustFollowCounts(tx, followerID, actorID, -1); err != nil {
			return err
		}
		return insertOutbox(tx, "follower_removed", actorID, followerID)
	})
}

// AcceptAllPending 账号转公开时的批量接受：同一事务内全部转 Accepted
func (r *FollowRepository) AcceptAllPending(ctx context.Context, followedID uint64) (int64, error) {
	var accepted int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pending []model.Follow
		if err := tx.Where("followed_id = ? AND status = ?", followedID, model.FollowPending).
			Find(&pending).Error; err != nil {
			return err
		}
		if len(pending) == 0 {
			return nil
		}

		now := time.Now()
		res := tx.Model(&model.Follow{}).
			Where("followed_id = ? AND status = ?", followedID, model.FollowPending).
			Updates(map[string]any{"status": model.FollowAccepted, "accepted_at": now})
		if res.Error != nil {
			return res.Error
		}
		accepted = res.RowsAffected

		for _, edge := range pending {
			if err := adjustFollowCounts(tx, edge.FollowerID, followedID, +1); err != nil {
				return err
			}
			if err := insertOutbox(tx, "follow_accepted", edge.FollowerID, followedID); err != nil {
				return err
			}
		}
		return nil
	})
	return accepted, err
}

func (r *FollowRepository) Get(ctx context.Context, followerID, followedID uint64) (*model.Follow, error) {
	var edge model.Follow
	err := r.DB.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		First(&edge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrNotFound
	}
	return &edge, err
}

// IsAccepted 可见性判定用的精确查询
func (r *FollowRepository) IsAccepted(ctx context.Context, followerID, followedID uint64) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id = ? AND status = ?",
			followerID, followedID, model.FollowAccepted).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListPendingIncoming 待处理的关注请求（只有本人可见）
func (r *FollowRepository) ListPendingIncoming(ctx context.Context, followedID uint64) ([]model.Follow, error) {
	var rows []model.Follow
	err := r.DB.WithContext(ctx).
		Where("followed_id = ? AND status = ?", followedID, model.FollowPending).
		Order("requested_at ASC").Find(&rows).Error
	return rows, err
}

// ListFollowings 游标分页，多取一条探测下一页
func (r *FollowRepository) ListFollowings(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	q := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ? AND status = ?", userID, model.FollowAccepted)
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}
	var rows []model.Follow
	if err := q.Order("id DESC").Limit(limit + 1).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	var next uint64
	if len(rows) > limit {
		next = rows[limit-1].ID
		rows = rows[:limit]
	}
	return rows, next, nil
}

// ListFollowers 粉丝列表
func (r *FollowRepository) ListFollowers(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	q := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("followed_id = ? AND status = ?", userID, model.FollowAccepted)
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}
	var rows []model.Follow
	if err := q.Order("id DESC").Limit(limit + 1).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	var next uint64
	if len(rows) > limit {
		next = rows[limit-1].ID
		rows = rows[:limit]
	}
	return rows, next, nil
}

// adjustFollowCounts 只统计 Accepted 边的冗余计数
func adjustFollowCounts(tx *gorm.DB, followerID, followedID uint64, delta int64) error {
	if err := tx.Model(&model.User{}).
		Where("id = ?", followerID).
		UpdateColumn("following_count",
			gorm.Expr("CASE WHEN following_count + ? < 0 THEN 0 ELSE following_count + ? END", delta, delta)).Error; err != nil {
		return err
	}
	if err := tx.Model(&model.User{}).
		Where("id = ?", followedID).
		UpdateColumn("follower_count",
			gorm.Expr("CASE WHEN follower_count + ? < 0 THEN 0 ELSE follower_count + ? END", delta, delta)).Error; err != nil {
		return err
	}
	return nil
}

func insertOutbox(tx *gorm.DB, event string, actorID, targetID uint64) error {
	payload, _ := json.Marshal(map[string]any{
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"actor":      actorID,
		"target":     targetID,
	})
	ob := &model.RelationOutbox{
		EventType: event,
		ActorID:   actorID,
		TargetID:  targetID,
		Payload:   string(payload),
		Status:    0,
	}
	return tx.Create(ob).Error
}
