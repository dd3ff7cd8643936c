package model

import "time"

// ModerationLog 审核调用留痕：无论放行与否都记录
type ModerationLog struct {
	ID            uint64 `gorm:"primaryKey"`
	Content       string `gorm:"type:text;not null"`
	IsAppropriate bool
	Confidence    float64
	ContentType   string `gorm:"size:32;not null"` // post / post_edit / comment / group_message
	UserID        uint64 `gorm:"index"`
	CheckedAt     time.Time
}
