package service

import (
	"context"
	"testing"

	"Micro_Social/internal/model"
	"Micro_Social/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostMessageRequiresAcceptedMember(t *testing.T) {
	db := newTestDB(t)
	groupSvc := NewGroupService(db)
	msgSvc := NewGroupMessageService(db, allowAllModeration(db))
	ctx := context.Background()

	owner := createUser(t, db, "owner", false)
	outsider := createUser(t, db, "outsider", false)
	applicant := createUser(t, db, "applicant", false)

	group, err := groupSvc.CreateGroup(ctx, owner.ID, "gophers", "")
	require.NoError(t, err)

	// 非成员不能发言
	_, err = msgSvc.Post(ctx, Actor{ID: outsider.ID}, group.ID, "hi")
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	// Pending 也不能发言
	_, err = groupSvc.RequestJoin(ctx, applicant.ID, group.ID)
	require.NoError(t, err)
	_, err = msgSvc.Post(ctx, Actor{ID: applicant.ID}, group.ID, "hi")
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	// 版主建群即 Accepted
	msg, err := msgSvc.Post(ctx, Actor{ID: owner.ID}, group.ID, "welcome")
	require.NoError(t, err)
	assert.Equal(t, "welcome", msg.Content)
}

func TestEditMessageLostAfterLeaving(t *testing.T) {
	db := newTestDB(t)
	groupSvc := NewGroupService(db)
	msgSvc := NewGroupMessageService(db, allowAllModeration(db))
	ctx := context.Background()

	owner := createUser(t, db, "owner", false)
	member := createUser(t, db, "member", false)

	group, err := groupSvc.CreateGroup(ctx, owner.ID, "gophers", "")
	require.NoError(t, err)
	_, err = groupSvc.RequestJoin(ctx, member.ID, group.ID)
	require.NoError(t, err)
	pending, err := groupSvc.ListPendingRequests(ctx, owner.ID, group.ID)
	require.NoError(t, err)
	require.NoError(t, groupSvc.Accept(ctx, owner.ID, group.ID, pending[0].ID))

	msg, err := msgSvc.Post(ctx, Actor{ID: member.ID}, group.ID, "original")
	require.NoError(t, err)

	// 在群期间可以改自己的消息
	require.NoError(t, msgSvc.Edit(ctx, Actor{ID: member.ID}, msg.ID, "edited"))

	// 退群后连自己的历史消息都不能改
	require.NoError(t, groupSvc.Leave(ctx, member.ID, group.ID))
	assert.ErrorIs(t, msgSvc.Edit(ctx, Actor{ID: member.ID}, msg.ID, "again"), pkg.ErrForbidden)
}

func TestEditMessageOnlyAuthor(t *testing.T) {
	db := newTestDB(t)
	groupSvc := NewGroupService(db)
	msgSvc := NewGroupMessageService(db, allowAllModeration(db))
	ctx := context.Background()

	owner := createUser(t, db, "owner", false)
	group, err := groupSvc.CreateGroup(ctx, owner.ID, "gophers", "")
	require.NoError(t, err)

	msg, err := msgSvc.Post(ctx, Actor{ID: owner.ID}, group.ID, "hello")
	require.NoError(t, err)

	member := createUser(t, db, "member", false)
	_, err = groupSvc.RequestJoin(ctx, member.ID, group.ID)
	require.NoError(t, err)
	pending, err := groupSvc.ListPendingRequests(ctx, owner.ID, group.ID)
	require.NoError(t, err)
	require.NoError(t, groupSvc.Accept(ctx, owner.ID, group.ID, pending[0].ID))

	// 别人的消息，即使是 Accepted 成员也不能改
	assert.ErrorIs(t, msgSvc.Edit(ctx, Actor{ID: member.ID}, msg.ID, "hijack"), pkg.ErrForbidden)
}

func TestDeleteMessagePermissions(t *testing.T) {
	db := newTestDB(t)
	groupSvc := NewGroupService(db)
	msgSvc := NewGroupMessageService(db, allowAllModeration(db))
	ctx := context.Background()

	owner := createUser(t, db, "owner", false)
	member := createUser(t, db, "member", false)
	outsider := createUser(t, db, "outsider", false)

	group, err := groupSvc.CreateGroup(ctx, owner.ID, "gophers", "")
	require.NoError(t, err)
	_, err = groupSvc.RequestJoin(ctx, member.ID, group.ID)
	require.NoError(t, err)
	pending, err := groupSvc.ListPendingRequests(ctx, owner.ID, group.ID)
	require.NoError(t, err)
	require.NoError(t, groupSvc.Accept(ctx, owner.ID, group.ID, pending[0].ID))

	msg, err := msgSvc.Post(ctx, Actor{ID: member.ID}, group.ID, "hello")
	require.NoError(t, err)

	// 无关用户不能删
	assert.ErrorIs(t, msgSvc.Delete(ctx, Actor{ID: outsider.ID}, msg.ID), pkg.ErrForbidden)
	// 版主可以删成员的消息
	require.NoError(t, msgSvc.Delete(ctx, Actor{ID: owner.ID}, msg.ID))

	msg2, err := msgSvc.Post(ctx, Actor{ID: member.ID}, group.ID, "again")
	require.NoError(t, err)
	// 平台管理员也可以删
	require.NoError(t, msgSvc.Delete(ctx, Actor{ID: outsider.ID, Admin: true}, msg2.ID))
}

func TestMessageModerationBlocksWrite(t *testing.T) {
	db := newTestDB(t)
	groupSvc := NewGroupService(db)
	ctx := context.Background()

	owner := createUser(t, db, "owner", false)
	group, err := groupSvc.CreateGroup(ctx, owner.ID, "gophers", "")
	require.NoError(t, err)

	// 不过审：内容不落库但留痕
	rejectSvc := NewGroupMessageService(db, NewModerationService(db, &stubModerationClient{appropriate: false}))
	_, err = rejectSvc.Post(ctx, Actor{ID: owner.ID}, group.ID, "nasty words")
	assert.ErrorIs(t, err, pkg.ErrValidation)

	// 审核服务不可用：失败关闭，同样拒绝
	failSvc := NewGroupMessageService(db, NewModerationService(db, &stubModerationClient{fail: true}))
	_, err = failSvc.Post(ctx, Actor{ID: owner.ID}, group.ID, "anything")
	assert.ErrorIs(t, err, pkg.ErrUpstream)

	var messages int64
	require.NoError(t, db.Model(&model.GroupMessage{}).Count(&messages).Error)
	assert.Zero(t, messages)

	var logs int64
	require.NoError(t, db.Model(&model.ModerationLog{}).Count(&logs).Error)
	assert.Equal(t, int64(2), logs)
}
