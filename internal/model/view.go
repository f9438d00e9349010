package model

import "time"

// PublicProfile 用户公开资料
type PublicProfile struct {
	ID          string  `json:"id"`
	Handle      string  `json:"accountHandle"`
	DisplayName string  `json:"displayName"`
	PhotoURL    *string `json:"photoURL,omitempty"`
	Bio         string  `json:"bio"`
	IsPrivate   bool    `json:"isPrivate"`
	IsVerified  bool    `json:"isVerified"`
}

// UserSummary 附加在帖子、关注列表中的用户摘要
type UserSummary struct {
	ID          string  `json:"id"`
	Handle      string  `json:"accountHandle"`
	DisplayName string  `json:"displayName"`
	PhotoURL    *string `json:"photoURL,omitempty"`
	IsVerified  bool    `json:"isVerified"`
}

// ProfileCounts 个人主页计数
// 三个值分别查询，并发写入时可能来自不同快照
type ProfileCounts struct {
	Posts     int64 `json:"posts"`
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

// PostWithPoster 带发帖人摘要和点赞数的帖子
type PostWithPoster struct {
	ID       string       `json:"id"`
	PosterID string       `json:"posterId"`
	Text     string       `json:"text"`
	ImageURL *string      `json:"imageURL,omitempty"`
	PostedAt time.Time    `json:"postedAt"`
	Poster   *UserSummary `json:"poster"`
	Likes    int64        `json:"likes"`
}

// FollowWithUser 带对方用户摘要的关注记录
// 粉丝列表中 User 为关注者，关注列表中 User 为被关注者
type FollowWithUser struct {
	ID         string       `json:"id"`
	FollowerID string       `json:"followerId"`
	FollowedID string       `json:"followedId"`
	FollowedAt time.Time    `json:"followedAt"`
	User       *UserSummary `json:"user"`
}

// FollowRequestWithUser 带请求者摘要的关注请求
type FollowRequestWithUser struct {
	ID          string       `json:"id"`
	RequesterID string       `json:"requesterId"`
	TargetID    string       `json:"targetId"`
	RequestedAt time.Time    `json:"requestedAt"`
	Requester   *UserSummary `json:"requester"`
}
