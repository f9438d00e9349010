package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow 关注关系：FollowerID 关注 FollowedID
// 同一对用户允许出现重复记录，数据库不做唯一约束
type Follow struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	FollowerID string    `gorm:"type:varchar(36);not null;index;index:idx_follow_pair,priority:1;comment:关注者ID" json:"followerId"`
	FollowedID string    `gorm:"type:varchar(36);not null;index;index:idx_follow_pair,priority:2;comment:被关注者ID" json:"followedId"`
	FollowedAt time.Time `gorm:"not null;comment:关注时间" json:"followedAt"`

	Follower *User `gorm:"foreignKey:FollowerID" json:"-"`
	Followed *User `gorm:"foreignKey:FollowedID" json:"-"`
}

func (Follow) TableName() string { return "follow" }

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.FollowedAt.IsZero() {
		f.FollowedAt = time.Now()
	}
	return nil
}

// FollowRequest 待目标用户审批的关注请求
type FollowRequest struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	RequesterID string    `gorm:"type:varchar(36);not null;index:idx_follow_request_pair,priority:1;comment:请求者ID" json:"requesterId"`
	TargetID    string    `gorm:"type:varchar(36);not null;index;index:idx_follow_request_pair,priority:2;comment:目标用户ID" json:"targetId"`
	RequestedAt time.Time `gorm:"not null;comment:请求时间" json:"requestedAt"`

	Requester *User `gorm:"foreignKey:RequesterID" json:"-"`
}

func (FollowRequest) TableName() string { return "follow_request" }

func (r *FollowRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.RequestedAt.IsZero() {
		r.RequestedAt = time.Now()
	}
	return nil
}
