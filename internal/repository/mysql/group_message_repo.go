package mysql

import (
	"context"
	"errors"
	"time"

	"Micro_Social/internal/model"
	"Micro_Social/internal/pkg"

	"gorm.io/gorm"
)

type GroupMessageRepository struct {
	DB *gorm.DB
}

func (r *GroupMessageRepository) Create(ctx context.Context, msg *model.GroupMessage) error {
	return r.DB.WithContext(ctx).Create(msg).Error
}

func (r *GroupMessageRepository) FindByID(ctx context.Context, id uint64) (*model.GroupMessage, error) {
	var msg model.GroupMessage
	err := r.DB.WithContext(ctx).First(&msg, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrNotFound
	}
	return &msg, err
}

func (r *GroupMessageRepository) UpdateContent(ctx context.Context, id uint64, content string) error {
	return r.DB.WithContext(ctx).Model(&model.GroupMessage{}).
		Where("id = ?", id).
		Updates(map[string]any{"content": content, "updated_at": time.Now()}).Error
}

func (r *GroupMessageRepository) Delete(ctx context.Context, id uint64) error {
	res := r.DB.WithContext(ctx).Delete(&model.GroupMessage{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}

func (r *GroupMessageRepository) ListByGroup(ctx context.Context, groupID uint64, offset, limit int) ([]model.GroupMessage, error) {
	var list []model.GroupMessage
	err := r.DB.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("sent_at DESC, id DESC").
		Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}
