package model

// All 需要自动迁移的全部模型
func All() []interface{} {
	return []interface{}{&User{}, &Post{}, &Follow{}, &Like{}, &FollowRequest{}}
}
