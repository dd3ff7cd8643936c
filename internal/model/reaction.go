package model

import "time"

// 固定表情集合；同一用户对同一帖子最多一条
const (
	ReactionLike    = "Like"
	ReactionHaha    = "Haha"
	ReactionLove    = "Love"
	ReactionDislike = "Dislike"
)

func IsAllowedReaction(t string) bool {
	switch t {
	case ReactionLike, ReactionHaha, ReactionLove, ReactionDislike:
		return true
	}
	return false
}

type Reaction struct {
	ID        uint64 `gorm:"primaryKey"`
	PostID    uint64 `gorm:"not null;index;uniqueIndex:uk_user_post"`
	UserID    uint64 `gorm:"not null;uniqueIndex:uk_user_post"`
	Type      string `gorm:"size:16;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Reaction) TableName() string {
	return "reactions"
}
