package service

import (
	"context"
	"testing"

	"Micro_Social/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanViewProfileTable(t *testing.T) {
	tests := []struct {
		name     string
		viewerID uint64
		target   model.User
		follower bool
		want     bool
	}{
		{"deleted target hidden from everyone", 1, model.User{ID: 2, IsDeleted: true}, true, false},
		{"self always visible even when private", 7, model.User{ID: 7, IsPrivate: true}, false, true},
		{"public profile visible to guest", 0, model.User{ID: 2}, false, true},
		{"public profile visible to stranger", 1, model.User{ID: 2}, false, true},
		{"private profile hidden from guest", 0, model.User{ID: 2, IsPrivate: true}, false, false},
		{"private profile hidden from stranger", 1, model.User{ID: 2, IsPrivate: true}, false, false},
		{"private profile visible to accepted follower", 1, model.User{ID: 2, IsPrivate: true}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanViewProfile(tt.viewerID, &tt.target, tt.follower))
		})
	}
}

func TestCanViewFullProfileQueriesFollowEdge(t *testing.T) {
	db := newTestDB(t)
	svc := NewVisibilityService(db)
	followSvc := NewFollowService(db)
	ctx := context.Background()

	viewer := createUser(t, db, "viewer", false)
	priv := createUser(t, db, "priv", true)

	ok, err := svc.CanViewFullProfile(ctx, viewer.ID, priv)
	require.NoError(t, err)
	assert.False(t, ok)

	// Pending 不够
	edge, _, err := followSvc.Request(ctx, viewer.ID, priv.ID)
	require.NoError(t, err)
	ok, err = svc.CanViewFullProfile(ctx, viewer.ID, priv)
	require.NoError(t, err)
	assert.False(t, ok)

	// Accepted 之后可见
	require.NoError(t, followSvc.Accept(ctx, priv.ID, edge.ID))
	ok, err = svc.CanViewFullProfile(ctx, viewer.ID, priv)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanViewPostFollowsAuthorVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := NewVisibilityService(db)
	ctx := context.Background()

	author := createUser(t, db, "author", true)
	stranger := createUser(t, db, "stranger", false)
	post := createPost(t, db, author.ID, "secret")

	// 作者永远能看到自己的帖子
	ok, err := svc.CanViewPost(ctx, author.ID, post)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanViewPost(ctx, stranger.ID, post)
	require.NoError(t, err)
	assert.False(t, ok)

	// 作者被软删后帖子对外不可见
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", author.ID).
		Update("is_deleted", true).Error)
	ok, err = svc.CanViewPost(ctx, stranger.ID, post)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGroupAuthorizerTable(t *testing.T) {
	var auth GroupAuthorizer
	group := &model.Group{ID: 1, ModeratorID: 10}
	msgByMember := &model.GroupMessage{ID: 1, GroupID: 1, UserID: 20}

	assert.True(t, auth.CanPostMessage(model.MembershipAccepted))
	assert.False(t, auth.CanPostMessage(model.MembershipPending))
	assert.False(t, auth.CanPostMessage(""))

	assert.True(t, auth.CanEditMessage(Actor{ID: 20}, msgByMember, model.MembershipAccepted))
	assert.False(t, auth.CanEditMessage(Actor{ID: 20}, msgByMember, ""))
	assert.False(t, auth.CanEditMessage(Actor{ID: 10}, msgByMember, model.MembershipAccepted))

	assert.True(t, auth.CanDeleteMessage(Actor{ID: 20}, group, msgByMember))
	assert.True(t, auth.CanDeleteMessage(Actor{ID: 10}, group, msgByMember))
	assert.True(t, auth.CanDeleteMessage(Actor{ID: 99, Admin: true}, group, msgByMember))
	assert.False(t, auth.CanDeleteMessage(Actor{ID: 99}, group, msgByMember))

	assert.True(t, auth.CanModerateRequests(Actor{ID: 10}, group))
	assert.False(t, auth.CanModerateRequests(Actor{ID: 99, Admin: true}, group))

	memberRow := &model.GroupMembership{GroupID: 1, UserID: 20}
	modRow := &model.GroupMembership{GroupID: 1, UserID: 10}
	assert.True(t, auth.CanRemoveMember(Actor{ID: 10}, group, memberRow))
	assert.False(t, auth.CanRemoveMember(Actor{ID: 10}, group, modRow))
	assert.False(t, auth.CanRemoveMember(Actor{ID: 20}, group, memberRow))

	assert.False(t, auth.CanLeave(Actor{ID: 10}, group))
	assert.True(t, auth.CanLeave(Actor{ID: 20}, group))

	assert.True(t, auth.CanDeleteGroup(Actor{ID: 10}, group))
	assert.True(t, auth.CanDeleteGroup(Actor{ID: 99, Admin: true}, group))
	assert.False(t, auth.CanDeleteGroup(Actor{ID: 99}, group))

	assert.True(t, auth.CanEditGroup(Actor{ID: 10}, group))
	assert.False(t, auth.CanEditGroup(Actor{ID: 99, Admin: true}, group))
}
