package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post 帖子模型
// PosterID 为软引用，删除用户不会级联删除帖子
type Post struct {
	ID       string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	PosterID string    `gorm:"type:varchar(36);not null;index;comment:发帖人ID" json:"posterId"`
	Text     string    `gorm:"type:text;not null;comment:正文" json:"text"`
	ImageURL *string   `gorm:"type:varchar(512);comment:图片URL" json:"imageURL,omitempty"`
	PostedAt time.Time `gorm:"not null;index;comment:发布时间" json:"postedAt"`

	Poster *User `gorm:"foreignKey:PosterID" json:"-"`
}

func (Post) TableName() string { return "post" }

// BeforeCreate 分配ID，未指定发布时间时取当前时间
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.PostedAt.IsZero() {
		p.PostedAt = time.Now()
	}
	return nil
}
