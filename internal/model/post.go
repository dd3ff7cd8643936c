package model

import "time"

type Post struct {
	ID        uint64 `gorm:"primaryKey"`
	AuthorID  uint64 `gorm:"not null;index:idx_author_time"`
	Content   string `gorm:"type:text"`
	ImagePath string `gorm:"size:255"`
	VideoPath string `gorm:"size:255"`
	CreatedAt time.Time `gorm:"index:idx_author_time"`
	UpdatedAt time.Time
}

type Comment struct {
	ID        uint64 `gorm:"primaryKey"`
	PostID    uint64 `gorm:"not null;index"`
	UserID    uint64 `gorm:"not null;index"`
	Text      string `gorm:"size:1000;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
