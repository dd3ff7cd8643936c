package model

import "time"

// 关注边两种持久状态；Rejected 直接删行，不落库
const (
	FollowPending  = "Pending"
	FollowAccepted = "Accepted"
)

type Follow struct {
	ID          uint64 `gorm:"primaryKey"`
	FollowerID  uint64 `gorm:"not null;index:idx_follower_id;uniqueIndex:uk_follower_followed"`
	FollowedID  uint64 `gorm:"not null;index:idx_followed_id;uniqueIndex:uk_follower_followed"`
	Status      string `gorm:"size:16;not null;default:'Pending'"`
	RequestedAt time.Time
	AcceptedAt  *time.Time
}

func (Follow) TableName() string {
	return "follows"
}

// RelationOutbox 关系事件监控表
type RelationOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:32;not null"` // follow_requested / follow_accepted / unfollow
	ActorID   uint64 `gorm:"not null"`
	TargetID  uint64 `gorm:"not null"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RelationOutbox) TableName() string { return "relation_outbox" }
