package service

import (
	"context"
	"testing"

	"Micro_Social/internal/model"
	"Micro_Social/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(t *testing.T, db *gorm.DB) *UserService {
	t.Helper()
	return NewUserService(db, NewEmailService(pkg.SMTPConfig{}), &pkg.FileStorage{Root: t.TempDir()})
}

func TestUpdateProfileGoingPublicAcceptsPending(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)
	followSvc := NewFollowService(db)
	ctx := context.Background()

	priv := createUser(t, db, "priv", true)
	for _, name := range []string{"u1", "u2"} {
		u := createUser(t, db, name, false)
		_, _, err := followSvc.Request(ctx, u.ID, priv.ID)
		require.NoError(t, err)
	}

	update := ProfileUpdate{FirstName: "Ada", IsPrivate: false}
	require.NoError(t, svc.UpdateProfile(ctx, priv.ID, update, nil))

	// 转公开后所有 Pending 入站请求转 Accepted
	var pending int64
	require.NoError(t, db.Model(&model.Follow{}).
		Where("followed_id = ? AND status = ?", priv.ID, model.FollowPending).Count(&pending).Error)
	assert.Zero(t, pending)

	var got model.User
	require.NoError(t, db.First(&got, priv.ID).Error)
	assert.False(t, got.IsPrivate)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, int64(2), got.FollowerCount)
}

func TestUpdateProfileStayingPrivateKeepsPending(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)
	followSvc := NewFollowService(db)
	ctx := context.Background()

	priv := createUser(t, db, "priv", true)
	u := createUser(t, db, "u1", false)
	_, _, err := followSvc.Request(ctx, u.ID, priv.ID)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateProfile(ctx, priv.ID, ProfileUpdate{IsPrivate: true}, nil))

	var pending int64
	require.NoError(t, db.Model(&model.Follow{}).
		Where("followed_id = ? AND status = ?", priv.ID, model.FollowPending).Count(&pending).Error)
	assert.Equal(t, int64(1), pending)
}

func TestDeactivateAdminOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)

	target := createUser(t, db, "target", false)
	admin := createUser(t, db, "admin", false)

	assert.ErrorIs(t, svc.Deactivate(Actor{ID: admin.ID}, target.ID), pkg.ErrForbidden)
	assert.ErrorIs(t, svc.Deactivate(Actor{ID: admin.ID, Admin: true}, admin.ID), pkg.ErrValidation)

	require.NoError(t, svc.Deactivate(Actor{ID: admin.ID, Admin: true}, target.ID))

	// 软删：行还在，对外不可见
	_, err := svc.GetActive(target.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
	var got model.User
	require.NoError(t, db.First(&got, target.ID).Error)
	assert.True(t, got.IsDeleted)

	require.NoError(t, svc.Reactivate(Actor{ID: admin.ID, Admin: true}, target.ID))
	_, err = svc.GetActive(target.ID)
	require.NoError(t, err)
}

func TestDeactivatedAuthorContentHidden(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)
	feedSvc := NewFeedService(db)
	ctx := context.Background()

	admin := createUser(t, db, "admin", false)
	author := createUser(t, db, "author", false)
	viewer := createUser(t, db, "viewer", false)
	createPost(t, db, author.ID, "soon hidden")

	require.NoError(t, svc.Deactivate(Actor{ID: admin.ID, Admin: true}, author.ID))

	posts, err := feedSvc.Discover(ctx, viewer.ID, 1, 20)
	require.NoError(t, err)
	assert.False(t, feedAuthorIDs(posts)[author.ID])
}

func TestChangePasswordVerifiesOld(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)

	u := createUser(t, db, "alice", false)

	assert.ErrorIs(t, svc.ChangePassword(u.ID, "wrong", "newpass"), pkg.ErrValidation)
	require.NoError(t, svc.ChangePassword(u.ID, "password", "newpass"))
}
