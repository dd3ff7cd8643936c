package mysql

import (
	"context"
	"errors"
	"time"

	"Micro_Social/internal/model"
	"Micro_Social/internal/pkg"

	"gorm.io/gorm"
)

type GroupRepository struct {
	DB *gorm.DB
}

// Create 建群和创建者的 Accepted 成员行在同一事务内落库，
// 两步要么都可见要么都不可见
func (r *GroupRepository) Create(ctx context.Context, g *model.Group) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(g).Error; err != nil {
			return err
		}
		now := time.Now()
		member := &model.GroupMembership{
			GroupID:     g.ID,
			UserID:      g.ModeratorID,
			Status:      model.MembershipAccepted,
			RequestedAt: now,
			JoinedAt:    &now,
		}
		return tx.Create(member).Error
	})
}

func (r *GroupRepository) FindByID(ctx context.Context, id uint64) (*model.Group, error) {
	var group model.Group
	err := r.DB.WithContext(ctx).First(&group, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrNotFound
	}
	return &group, err
}

// FindByIDForModerator 按操作者身份收窄的查询：
// 群不存在和操作者不是版主返回同一个 NotFound，不向非版主确认群的归属
func (r *GroupRepository) FindByIDForModerator(ctx context.Context, id, moderatorID uint64) (*model.Group, error) {
	var group model.Group
	err := r.DB.WithContext(ctx).
		Where("id = ? AND moderator_id = ?", id, moderatorID).
		First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrNotFound
	}
	return &group, err
}

func (r *GroupRepository) List(ctx context.Context, offset, limit int) ([]model.Group, error) {
	var list []model.Group
	err := r.DB.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

func (r *GroupRepository) UpdateInfo(ctx context.Context, id uint64, name, description string) error {
	return r.DB.WithContext(ctx).Model(&model.Group{}).
		Where("id = ?", id).
		Updates(map[string]any{"name": name, "description": description}).Error
}

// Delete 删群级联：成员行和消息一并删除
func (r *GroupRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&model.GroupMembership{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", id).Delete(&model.GroupMessage{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Group{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return pkg.ErrNotFound
		}
		return nil
	})
}
