package service

import (
	"context"
	"testing"

	"Micro_Social/internal/model"
	"Micro_Social/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRequestPublicTarget(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", false)
	bob := createUser(t, db, "bob", false)

	edge, changed, err := svc.Request(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, model.FollowAccepted, edge.Status)
	require.NotNil(t, edge.AcceptedAt)

	// 冗余计数随之更新
	var target model.User
	require.NoError(t, db.First(&target, bob.ID).Error)
	assert.Equal(t, int64(1), target.FollowerCount)
	var follower model.User
	require.NoError(t, db.First(&follower, alice.ID).Error)
	assert.Equal(t, int64(1), follower.FollowingCount)
}

func TestFollowRequestPrivateTarget(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", false)
	priv := createUser(t, db, "priv", true)

	edge, changed, err := svc.Request(ctx, alice.ID, priv.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, model.FollowPending, edge.Status)
	assert.Nil(t, edge.AcceptedAt)

	// Pending 不计入粉丝数
	var target model.User
	require.NoError(t, db.First(&target, priv.ID).Error)
	assert.Equal(t, int64(0), target.FollowerCount)
}

func TestFollowRequestIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", false)
	priv := createUser(t, db, "priv", true)

	_, changed, err := svc.Request(ctx, alice.ID, priv.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	// 重复请求无事发生，不产生第二行
	_, changed, err = svc.Request(ctx, alice.ID, priv.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	var n int64
	require.NoError(t, db.Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id = ?", alice.ID, priv.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestFollowSelfRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)

	alice := createUser(t, db, "alice", false)

	_, _, err := svc.Request(context.Background(), alice.ID, alice.ID)
	assert.ErrorIs(t, err, pkg.ErrValidation)
}

func TestFollowAccept(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", false)
	priv := createUser(t, db, "priv", true)

	edge, _, err := svc.Request(ctx, alice.ID, priv.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Accept(ctx, priv.ID, edge.ID))

	var got model.Follow
	require.NoError(t, db.First(&got, edge.ID).Error)
	assert.Equal(t, model.FollowAccepted, got.Status)
	assert.NotNil(t, got.AcceptedAt)

	var target model.User
	require.NoError(t, db.First(&target, priv.ID).Error)
	assert.Equal(t, int64(1), target.FollowerCount)
}

func TestFollowAcceptOnlyByTarget(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", false)
	priv := createUser(t, db, "priv", true)
	mallory := createUser(t, db, "mallory", false)

	edge, _, err := svc.Request(ctx, alice.ID, priv.ID)
	require.NoError(t, err)

	// 第三方看不到这条边，和不存在同样的错误
	assert.ErrorIs(t, svc.Accept(ctx, mallory.ID, edge.ID), pkg.ErrNotFound)
	assert.ErrorIs(t, svc.Accept(ctx, priv.ID, edge.ID+100), pkg.ErrNotFound)
}

func TestFollowDeclineDeletesEdge(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", false)
	priv := createUser(t, db, "priv", true)

	edge, _, err := svc.Request(ctx, alice.ID, priv.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Decline(ctx, priv.ID, edge.ID))

	var n int64
	require.NoError(t, db.Model(&model.Follow{}).Where("id = ?", edge.ID).Count(&n).Error)
	assert.Equal(t, int64(0), n)

	// 拒绝后可以重新发起
	_, changed, err := svc.Request(ctx, alice.ID, priv.ID)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestUnfollowIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", false)
	bob := createUser(t, db, "bob", false)

	_, _, err := svc.Request(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	changed, err := svc.Unfollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	var target model.User
	require.NoError(t, db.First(&target, bob.ID).Error)
	assert.Equal(t, int64(0), target.FollowerCount)

	// 没有边时幂等成功
	changed, err = svc.Unfollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestRemoveFollower(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", false)
	bob := createUser(t, db, "bob", false)

	_, _, err := svc.Request(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFollower(ctx, bob.ID, alice.ID))

	ok, err := svc.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// 边已不存在
	assert.ErrorIs(t, svc.RemoveFollower(ctx, bob.ID, alice.ID), pkg.ErrNotFound)
}

func TestRemoveFollowerIgnoresPending(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", false)
	priv := createUser(t, db, "priv", true)

	_, _, err := svc.Request(ctx, alice.ID, priv.ID)
	require.NoError(t, err)

	// Pending 边不在粉丝列表里，移除报 NotFound
	assert.ErrorIs(t, svc.RemoveFollower(ctx, priv.ID, alice.ID), pkg.ErrNotFound)
}

func TestOnAccountBecomesPublicBatch(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	priv := createUser(t, db, "priv", true)
	var requesters []*model.User
	for _, name := range []string{"u1", "u2", "u3"} {
		u := createUser(t, db, name, false)
		requesters = append(requesters, u)
		_, _, err := svc.Request(ctx, u.ID, priv.ID)
		require.NoError(t, err)
	}

	accepted, err := svc.OnAccountBecomesPublic(ctx, priv.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), accepted)

	var pending int64
	require.NoError(t, db.Model(&model.Follow{}).
		Where("followed_id = ? AND status = ?", priv.ID, model.FollowPending).Count(&pending).Error)
	assert.Equal(t, int64(0), pending)

	var target model.User
	require.NoError(t, db.First(&target, priv.ID).Error)
	assert.Equal(t, int64(3), target.FollowerCount)

	for _, u := range requesters {
		ok, err := svc.IsFollowing(ctx, u.ID, priv.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestFollowWritesOutbox(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", false)
	bob := createUser(t, db, "bob", false)

	_, _, err := svc.Request(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	var rows []model.RelationOutbox
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "follow_accepted", rows[0].EventType)
	assert.Equal(t, alice.ID, rows[0].ActorID)
	assert.Equal(t, bob.ID, rows[0].TargetID)
}

func TestListFollowingsCursor(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", false)
	for _, name := range []string{"t1", "t2", "t3"} {
		u := createUser(t, db, name, false)
		_, _, err := svc.Request(ctx, alice.ID, u.ID)
		require.NoError(t, err)
	}

	rows, next, err := svc.ListFollowings(ctx, alice.ID, 0, 2)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	require.NotZero(t, next)

	rows, next, err = svc.ListFollowings(ctx, alice.ID, next, 2)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Zero(t, next)
}
