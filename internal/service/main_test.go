package service

import (
	"context"
	"testing"

	"Micro_Social/internal/model"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB 每个用例独立的内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.User{},
		&model.Follow{},
		&model.RelationOutbox{},
		&model.Group{},
		&model.GroupMembership{},
		&model.GroupMessage{},
		&model.Post{},
		&model.Comment{},
		&model.Reaction{},
		&model.ModerationLog{},
	)
	require.NoError(t, err)
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, isPrivate bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{
		Username:  username,
		Password:  string(hash),
		Email:     username + "@example.com",
		IsPrivate: isPrivate,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createPost(t *testing.T, db *gorm.DB, authorID uint64, content string) *model.Post {
	t.Helper()
	p := &model.Post{AuthorID: authorID, Content: content}
	require.NoError(t, db.Create(p).Error)
	return p
}

// stubModerationClient 可控审核结果，默认放行
type stubModerationClient struct {
	appropriate bool
	fail        bool
}

func (s *stubModerationClient) Analyze(_ context.Context, _ string) ModerationResult {
	if s.fail {
		return ModerationResult{}
	}
	return ModerationResult{IsAppropriate: s.appropriate, Confidence: 0.95, Success: true}
}

func allowAllModeration(db *gorm.DB) *ModerationService {
	return NewModerationService(db, &stubModerationClient{appropriate: true})
}
