package mysql

import (
	"context"
	"errors"

	"Micro_Social/internal/model"

	"gorm.io/gorm"
)

type ReactionRepository struct {
	DB *gorm.DB
}

// Toggle 单事务内完成三分支：
// 无记录则插入；同类型则删除（取消）；不同类型则原地改写。
// 唯一键 (user_id, post_id) 保证并发双插只成一条，冲突按已存在处理。
// 返回操作后该用户在这个帖子上的表情（nil 表示已取消）。
func (r *ReactionRepository) Toggle(ctx context.Context, userID, postID uint64, reactionType string) (*model.Reaction, error) {
	var result *model.Reaction
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Reaction
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created := model.Reaction{UserID: userID, PostID: postID, Type: reactionType}
			if err := tx.Create(&created).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					// 并发方已经插入，按无变化处理
					return nil
				}
				return err
			}
			result = &created
			return nil
		}
		if err != nil {
			return err
		}

		if existing.Type == reactionType {
			// toggle off
			return tx.Delete(&model.Reaction{}, existing.ID).Error
		}
		if err := tx.Model(&model.Reaction{}).
			Where("id = ?", existing.ID).
			Update("type", reactionType).Error; err != nil {
			return err
		}
		existing.Type = reactionType
		result = &existing
		return nil
	})
	return result, err
}

func (r *ReactionRepository) Get(ctx context.Context, userID, postID uint64) (*model.Reaction, error) {
	var reaction model.Reaction
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

// CountByType 帖子各表情数量
func (r *ReactionRepository) CountByType(ctx context.Context, postID uint64) (map[string]int64, error) {
	type row struct {
		Type  string
		Count int64
	}
	var rows []row
	err := r.DB.WithContext(ctx).Model(&model.Reaction{}).
		Select("type, COUNT(*) AS count").
		Where("post_id = ?", postID).
		Group("type").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Type] = r.Count
	}
	return counts, nil
}

func (r *ReactionRepository) CountAll(ctx context.Context, postID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Reaction{}).
		Where("post_id = ?", postID).Count(&n).Error
	return n, err
}
