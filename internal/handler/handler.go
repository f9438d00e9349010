package handler

import (
	"errors"

	"social-system/internal/service"
	"social-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// fail 将业务错误映射为HTTP响应
// 客户端数据问题返回400并带上具体原因，其余操作失败返回500和固定消息
func fail(c *gin.Context, err error, message string) {
	if errors.Is(err, service.ErrInvalidInput) {
		response.BadRequest(c, err.Error())
		return
	}
	response.InternalError(c, message, err)
}

// requireQuery 读取必需的查询参数，缺失时直接写入400
func requireQuery(c *gin.Context, message string, keys ...string) ([]string, bool) {
	values := make([]string, len(keys))
	for i, key := range keys {
		values[i] = c.Query(key)
		if values[i] == "" {
			response.BadRequest(c, message)
			return nil, false
		}
	}
	return values, true
}
