package service

import (
	"context"
	"errors"
	"strings"

	"Micro_Social/internal/model"
	"Micro_Social/internal/pkg"
	"Micro_Social/internal/repository/mysql"

	"gorm.io/gorm"
)

// GroupService 群成员状态机：
// NotMember -> Pending -> Accepted，以及任意状态回到 NotMember（删行）。
type GroupService struct {
	repo       *mysql.GroupRepository
	memberRepo *mysql.GroupMemberRepository
	auth       GroupAuthorizer
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{
		repo:       &mysql.GroupRepository{DB: db},
		memberRepo: &mysql.GroupMemberRepository{DB: db},
	}
}

// CreateGroup 建群，创建者即版主；创建者的 Accepted 成员行同事务写入
func (s *GroupService) CreateGroup(ctx context.Context, ownerID uint64, name, description string) (*model.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkg.Validationf("group name required")
	}

	group := &model.Group{
		Name:        name,
		Description: description,
		ModeratorID: ownerID,
	}
	if err := s.repo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// RequestJoin 申请入群；已有任意状态的成员行时幂等返回 changed=false
func (s *GroupService) RequestJoin(ctx context.Context, userID, groupID uint64) (bool, error) {
	if _, err := s.repo.FindByID(ctx, groupID); err != nil {
		return false, err
	}
	return s.memberRepo.RequestJoin(ctx, groupID, userID)
}

// Accept 版主审批通过；非版主拿到的是 NotFound 而不是 Forbidden
func (s *GroupService) Accept(ctx context.Context, actorID, groupID, membershipID uint64) error {
	if _, err := s.repo.FindByIDForModerator(ctx, groupID, actorID); err != nil {
		return err
	}
	return s.memberRepo.Accept(ctx, groupID, membershipID)
}

// Reject 版主拒绝：删行，之后允许重新申请
func (s *GroupService) Reject(ctx context.Context, actorID, groupID, membershipID uint64) error {
	if _, err := s.repo.FindByIDForModerator(ctx, groupID, actorID); err != nil {
		return err
	}
	return s.memberRepo.Reject(ctx, groupID, membershipID)
}

// Leave 退群（任意状态的行都删，Pending 等价于撤回申请）。
// 版主不能退群，只能删群。
func (s *GroupService) Leave(ctx context.Context, userID, groupID uint64) error {
	group, err := s.repo.FindByID(ctx, groupID)
	if err != nil {
		return err
	}
	if !s.auth.CanLeave(Actor{ID: userID}, group) {
		return pkg.ErrForbidden
	}
	return s.memberRepo.Leave(ctx, groupID, userID)
}

// RemoveMember 版主移除成员；版主自己的行受保护
func (s *GroupService) RemoveMember(ctx context.Context, actorID, groupID, membershipID uint64) error {
	group, err := s.repo.FindByIDForModerator(ctx, groupID, actorID)
	if err != nil {
		return err
	}
	target, err := s.memberRepo.FindByID(ctx, groupID, membershipID)
	if err != nil {
		return err
	}
	if !s.auth.CanRemoveMember(Actor{ID: actorID}, group, target) {
		return pkg.ErrForbidden
	}
	return s.memberRepo.Remove(ctx, groupID, membershipID)
}

// DeleteGroup 版主或管理员；级联删除成员行和消息
func (s *GroupService) DeleteGroup(ctx context.Context, actor Actor, groupID uint64) error {
	group, err := s.repo.FindByID(ctx, groupID)
	if err != nil {
		return err
	}
	if !s.auth.CanDeleteGroup(actor, group) {
		return pkg.ErrForbidden
	}
	return s.repo.Delete(ctx, groupID)
}

// UpdateGroup 改群资料，仅版主
func (s *GroupService) UpdateGroup(ctx context.Context, actorID, groupID uint64, name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return pkg.Validationf("group name required")
	}
	group, err := s.repo.FindByID(ctx, groupID)
	if err != nil {
		return err
	}
	if !s.auth.CanEditGroup(Actor{ID: actorID}, group) {
		return pkg.ErrForbidden
	}
	return s.repo.UpdateInfo(ctx, groupID, name, description)
}

func (s *GroupService) GetGroup(ctx context.Context, groupID uint64) (*model.Group, error) {
	return s.repo.FindByID(ctx, groupID)
}

func (s *GroupService) ListGroups(ctx context.Context, page, size int) ([]model.Group, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	return s.repo.List(ctx, (page-1)*size, size)
}

func (s *GroupService) ListMembers(ctx context.Context, groupID uint64) ([]model.GroupMembership, error) {
	if _, err := s.repo.FindByID(ctx, groupID); err != nil {
		return nil, err
	}
	return s.memberRepo.ListAccepted(ctx, groupID)
}

// ListPendingRequests 待审批列表只对版主可见；他人拿 NotFound
func (s *GroupService) ListPendingRequests(ctx context.Context, actorID, groupID uint64) ([]model.GroupMembership, error) {
	if _, err := s.repo.FindByIDForModerator(ctx, groupID, actorID); err != nil {
		return nil, err
	}
	return s.memberRepo.ListPending(ctx, groupID)
}

// MembershipStatus 查询自己在群里的状态；没有成员行返回空串
func (s *GroupService) MembershipStatus(ctx context.Context, userID, groupID uint64) (string, error) {
	m, err := s.memberRepo.Get(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return m.Status, nil
}
