package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// authorHeader 前端透传的操作者标识，仅用于审计字段回填
const authorHeader = "X-Author-ID"

// AuthorID 从请求头提取操作者标识，未携带时返回 nil
func AuthorID(c *gin.Context) *string {
	v := strings.TrimSpace(c.GetHeader(authorHeader))
	if v == "" {
		return nil
	}
	return &v
}

// YearParam 解析路径中的学年参数
func YearParam(c *gin.Context, name string) (int, bool) {
	year, err := strconv.Atoi(c.Param(name))
	if err != nil || year < 2000 || year > 2200 {
		return 0, false
	}
	return year, true
}
