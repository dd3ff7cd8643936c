package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"Micro_Social/internal/model"
	"Micro_Social/internal/pkg"
	"Micro_Social/internal/repository/mysql"

	"gorm.io/gorm"
)

type GroupMessageService struct {
	repo       *mysql.GroupMessageRepository
	groupRepo  *mysql.GroupRepository
	memberRepo *mysql.GroupMemberRepository
	moderation *ModerationService
	auth       GroupAuthorizer
}

func NewGroupMessageService(db *gorm.DB, moderation *ModerationService) *GroupMessageService {
	return &GroupMessageService{
		repo:       &mysql.GroupMessageRepository{DB: db},
		groupRepo:  &mysql.GroupRepository{DB: db},
		memberRepo: &mysql.GroupMemberRepository{DB: db},
		moderation: moderation,
	}
}

func (s *GroupMessageService) memberStatus(ctx context.Context, groupID, userID uint64) (string, error) {
	m, err := s.memberRepo.Get(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return m.Status, nil
}

// Post 发群消息：仅 Accepted 成员；文本先过审
func (s *GroupMessageService) Post(ctx context.Context, actor Actor, groupID uint64, content string) (*model.GroupMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, pkg.Validationf("message content required")
	}

	if _, err := s.groupRepo.FindByID(ctx, groupID); err != nil {
		return nil, err
	}
	status, err := s.memberStatus(ctx, groupID, actor.ID)
	if err != nil {
		return nil, err
	}
	if !s.auth.CanPostMessage(status) {
		return nil, pkg.ErrForbidden
	}

	if err := s.moderation.Check(ctx, actor.ID, "group_message", content); err != nil {
		return nil, err
	}

	msg := &model.GroupMessage{
		GroupID: groupID,
		UserID:  actor.ID,
		Content: content,
		SentAt:  time.Now(),
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Edit 仅作者本人，且此刻仍是 Accepted 成员；退群后连自己的历史消息也改不了
func (s *GroupMessageService) Edit(ctx context.Context, actor Actor, messageID uint64, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return pkg.Validationf("message content required")
	}

	msg, err := s.repo.FindByID(ctx, messageID)
	if err != nil {
		return err
	}
	status, err := s.memberStatus(ctx, msg.GroupID, actor.ID)
	if err != nil {
		return err
	}
	if !s.auth.CanEditMessage(actor, msg, status) {
		return pkg.ErrForbidden
	}

	if err := s.moderation.Check(ctx, actor.ID, "group_message_edit", content); err != nil {
		return err
	}
	return s.repo.UpdateContent(ctx, messageID, content)
}

// Delete 作者、版主或管理员
func (s *GroupMessageService) Delete(ctx context.Context, actor Actor, messageID uint64) error {
	msg, err := s.repo.FindByID(ctx, messageID)
	if err != nil {
		return err
	}
	group, err := s.groupRepo.FindByID(ctx, msg.GroupID)
	if err != nil {
		return err
	}
	if !s.auth.CanDeleteMessage(actor, group, msg) {
		return pkg.ErrForbidden
	}
	return s.repo.Delete(ctx, messageID)
}

func (s *GroupMessageService) ListByGroup(ctx context.Context, groupID uint64, page, size int) ([]model.GroupMessage, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 50
	}
	if _, err := s.groupRepo.FindByID(ctx, groupID); err != nil {
		return nil, err
	}
	return s.repo.ListByGroup(ctx, groupID, (page-1)*size, size)
}
