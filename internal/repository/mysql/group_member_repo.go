package mysql

import (
	"context"
	"errors"
	"time"

	"Micro_Social/internal/model"
	"Micro_Social/internal/pkg"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GroupMemberRepository struct {
	DB *gorm.DB
}

// RequestJoin 幂等插入 Pending 行：已有任意状态的行则不再创建
func (r *GroupMemberRepository) RequestJoin(ctx context.Context, groupID, userID uint64) (bool, error) {
	member := &model.GroupMembership{
		GroupID:     groupID,
		UserID:      userID,
		Status:      model.MembershipPending,
		RequestedAt: time.Now(),
	}
	res := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(member)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Accept Pending -> Accepted，盖 joined_at 时间戳
func (r *GroupMemberRepository) Accept(ctx context.Context, groupID, membershipID uint64) error {
	res := r.DB.WithContext(ctx).Model(&model.GroupMembership{}).
		Where("id = ? AND group_id = ? AND status = ?", membershipID, groupID, model.MembershipPending).
		Updates(map[string]any{"status": model.MembershipAccepted, "joined_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}

// Reject 拒绝即删行
func (r *GroupMemberRepository) Reject(ctx context.Context, groupID, membershipID uint64) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND group_id = ? AND status = ?", membershipID, groupID, model.MembershipPending).
		Delete(&model.GroupMembership{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}

// Leave 删除本人成员行，任意状态
func (r *GroupMemberRepository) Leave(ctx context.Context, groupID, userID uint64) error {
	res := r.DB.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&model.GroupMembership{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}

func (r *GroupMemberRepository) FindByID(ctx context.Context, groupID, membershipID uint64) (*model.GroupMembership, error) {
	var m model.GroupMembership
	err := r.DB.WithContext(ctx).
		Where("id = ? AND group_id = ?", membershipID, groupID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrNotFound
	}
	return &m, err
}

func (r *GroupMemberRepository) Remove(ctx context.Context, groupID, membershipID uint64) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND group_id = ?", membershipID, groupID).
		Delete(&model.GroupMembership{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}

func (r *GroupMemberRepository) Get(ctx context.Context, groupID, userID uint64) (*model.GroupMembership, error) {
	var m model.GroupMembership
	err := r.DB.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrNotFound
	}
	return &m, err
}

func (r *GroupMemberRepository) IsAcceptedMember(ctx context.Context, groupID, userID uint64) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.GroupMembership{}).
		Where("group_id = ? AND user_id = ? AND status = ?", groupID, userID, model.MembershipAccepted).
		Count(&count).Error
	return count > 0, err
}

func (r *GroupMemberRepository) ListAccepted(ctx context.Context, groupID uint64) ([]model.GroupMembership, error) {
	var list []model.GroupMembership
	err := r.DB.WithContext(ctx).
		Where("group_id = ? AND status = ?", groupID, model.MembershipAccepted).
		Order("joined_at ASC").Find(&list).Error
	return list, err
}

// ListPending 待审核的入群请求，按申请时间排序
func (r *GroupMemberRepository) ListPending(ctx context.Context, groupID uint64) ([]model.GroupMembership, error) {
	var list []model.GroupMembership
	err := r.DB.WithContext(ctx).
		Where("group_id = ? AND status = ?", groupID, model.MembershipPending).
		Order("requested_at ASC").Find(&list).Error
	return list, err
}
