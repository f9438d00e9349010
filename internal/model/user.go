package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User 用户模型
// 索引与唯一约束：外部身份ID唯一、账号句柄唯一
// 身份由外部身份提供方签发，这里只保存其ID，不存储任何凭证
// JSON 字段名沿用客户端既有协议（uuid / accountHandle / creationTime / isAdministrator）
type User struct {
	ID             string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ExternalAuthID string    `gorm:"type:varchar(128);not null;uniqueIndex;comment:外部身份ID" json:"uuid"`
	Handle         string    `gorm:"type:varchar(64);not null;uniqueIndex;comment:账号句柄" json:"accountHandle"`
	DisplayName    string    `gorm:"type:varchar(128);not null;comment:显示名" json:"displayName"`
	Email          string    `gorm:"type:varchar(255);not null;comment:邮箱" json:"email"`
	CreatedAt      time.Time `gorm:"comment:创建时间" json:"creationTime"`
	PhotoURL       *string   `gorm:"type:varchar(512);comment:头像URL" json:"photoURL,omitempty"`
	Bio            string    `gorm:"type:varchar(512);not null;default:'';comment:简介" json:"bio"`
	IsPrivate      bool      `gorm:"not null;default:false;comment:私密账号" json:"isPrivate"`
	IsVerified     bool      `gorm:"not null;default:false;comment:认证账号" json:"isVerified"`
	IsAdmin        bool      `gorm:"not null;default:false;comment:管理员" json:"isAdministrator"`
}

// TableName 指定表名（因全局配置使用单数表名，这里与结构体名一致为 user）
func (User) TableName() string { return "user" }

// BeforeCreate 分配ID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// PublicProfile 对其他用户可见的资料（不含邮箱、外部身份ID、管理员标记）
func (u *User) PublicProfile() *PublicProfile {
	return &PublicProfile{
		ID:          u.ID,
		Handle:      u.Handle,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		Bio:         u.Bio,
		IsPrivate:   u.IsPrivate,
		IsVerified:  u.IsVerified,
	}
}

// Summary 列表中附带的用户摘要
func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:          u.ID,
		Handle:      u.Handle,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		IsVerified:  u.IsVerified,
	}
}

// SummaryColumns 查询用户摘要时需要的列
var SummaryColumns = []string{"id", "handle", "display_name", "photo_url", "is_verified"}
