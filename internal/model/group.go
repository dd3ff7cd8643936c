package model

import "time"

type Group struct {
	ID          uint64 `gorm:"primaryKey"`
	Name        string `gorm:"size:64;not null"`
	Description string `gorm:"type:text"`
	// 每个群组只有一个版主，建群时确定，不可转让
	ModeratorID uint64 `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// 成员关系两种持久状态；拒绝即删行
const (
	MembershipPending  = "Pending"
	MembershipAccepted = "Accepted"
)

type GroupMembership struct {
	ID          uint64 `gorm:"primaryKey"`
	GroupID     uint64 `gorm:"not null;index;uniqueIndex:uk_group_user"`
	UserID      uint64 `gorm:"not null;index;uniqueIndex:uk_group_user"`
	Status      string `gorm:"size:16;not null;default:'Pending'"`
	RequestedAt time.Time
	JoinedAt    *time.Time
}

type GroupMessage struct {
	ID        uint64 `gorm:"primaryKey"`
	GroupID   uint64 `gorm:"not null;index:idx_group_sent"`
	UserID    uint64 `gorm:"not null;index"`
	Content   string `gorm:"size:1000;not null"`
	SentAt    time.Time `gorm:"index:idx_group_sent"`
	UpdatedAt *time.Time
}
