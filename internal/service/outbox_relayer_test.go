package service

import (
	"context"
	"errors"
	"testing"

	"Micro_Social/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxDrainMarksSent(t *testing.T) {
	db := newTestDB(t)
	followSvc := NewFollowService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", false)
	bob := createUser(t, db, "bob", false)
	_, _, err := followSvc.Request(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	var sent []string
	relayer := NewOutboxRelayer(db, func(_ context.Context, ob *model.RelationOutbox) error {
		sent = append(sent, ob.EventType)
		return nil
	})
	relayer.drainOnce(ctx)

	assert.Equal(t, []string{"follow_accepted"}, sent)

	var rows []model.RelationOutbox
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, int8(1), rows[0].Status)

	// 已投递的不再重复捞取
	relayer.drainOnce(ctx)
	assert.Len(t, sent, 1)
}

func TestOutboxDrainMarksFailedAndRetries(t *testing.T) {
	db := newTestDB(t)
	followSvc := NewFollowService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", false)
	bob := createUser(t, db, "bob", false)
	_, _, err := followSvc.Request(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	relayer := NewOutboxRelayer(db, func(_ context.Context, _ *model.RelationOutbox) error {
		return errors.New("broker down")
	})
	relayer.drainOnce(ctx)

	var rows []model.RelationOutbox
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, int8(2), rows[0].Status)
	assert.Equal(t, 1, rows[0].Retry)
}

func TestFollowCountReconcilerFixesDrift(t *testing.T) {
	db := newTestDB(t)
	followSvc := NewFollowService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", false)
	bob := createUser(t, db, "bob", false)
	_, _, err := followSvc.Request(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	// 人为制造计数漂移
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", bob.ID).
		Update("follower_count", 42).Error)

	NewFollowCountReconciler(db).reconcileOnce(ctx)

	var got model.User
	require.NoError(t, db.First(&got, bob.ID).Error)
	assert.Equal(t, int64(1), got.FollowerCount)
}
