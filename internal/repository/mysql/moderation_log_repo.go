package mysql

import (
	"context"

	"Micro_Social/internal/model"

	"gorm.io/gorm"
)

type ModerationLogRepository struct {
	DB *gorm.DB
}

func (r *ModerationLogRepository) Create(ctx context.Context, entry *model.ModerationLog) error {
	return r.DB.WithContext(ctx).Create(entry).Error
}

func (r *ModerationLogRepository) ListByUser(ctx context.Context, userID uint64, offset, limit int) ([]model.ModerationLog, error) {
	var list []model.ModerationLog
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("checked_at DESC, id DESC").
		Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}
