package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like 点赞记录，(LikerID, PostID) 不做唯一约束
type Like struct {
	ID      string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	LikerID string    `gorm:"type:varchar(36);not null;index;index:idx_like_pair,priority:1;comment:点赞用户ID" json:"likerId"`
	PostID  string    `gorm:"type:varchar(36);not null;index;index:idx_like_pair,priority:2;comment:帖子ID" json:"postId"`
	LikedAt time.Time `gorm:"not null;comment:点赞时间" json:"likedAt"`
}

// TableName like 是保留字，表名使用 post_like
func (Like) TableName() string { return "post_like" }

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.LikedAt.IsZero() {
		l.LikedAt = time.Now()
	}
	return nil
}
