package calendar

import (
	"strings"

	"campus-calendar/backend/internal/model"
)

// Search 在日程列表中做大小写不敏感的子串匹配。
// 匹配字段为标题与描述（描述为空时仅匹配标题），保持入参顺序，不做排名。
// 最短查询长度（2 字符）由 DTO 绑定层约束，本函数不重复校验。
func Search(schedules []model.Schedule, query string) []model.Schedule {
	q := strings.ToLower(query)

	matches := make([]model.Schedule, 0)
	for _, s := range schedules {
		if strings.Contains(strings.ToLower(s.Title), q) ||
			(s.Description != "" && strings.Contains(strings.ToLower(s.Description), q)) {
			matches = append(matches, s)
		}
	}
	return matches
}
