package model

import "time"

type User struct {
	ID         uint64 `gorm:"primaryKey"`
	Username   string `gorm:"uniqueIndex;size:32;not null"`
	Password   string `gorm:"size:255;not null"`
	Email      string `gorm:"uniqueIndex;size:64;not null"`
	Role       int    `gorm:"not null;default:0"` // 0=user, 1=admin
	FirstName  string `gorm:"size:50"`
	LastName   string `gorm:"size:50"`
	Bio        string `gorm:"size:100"`
	AvatarPath string `gorm:"size:255"`
	IsPrivate  bool   `gorm:"not null;default:false"`
	// 软删除：仅打标记，内容和关系保留但对外不可见
	IsDeleted      bool  `gorm:"not null;default:false;index"`
	FollowerCount  int64 `gorm:"not null;default:0"`
	FollowingCount int64 `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const (
	RoleUser  = 0
	RoleAdmin = 1
)

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
