package dto

// ── 日历视图 DTO ──

// CalendarRequest 日历投影查询参数
// Year 为 0 时由服务端按当前日期推算学年
type CalendarRequest struct {
	Year int `form:"year" binding:"omitempty,min=2000,max=2200"`
}

// ExportRequest 日历导出查询参数
type ExportRequest struct {
	Year int `form:"year" binding:"omitempty,min=2000,max=2200"`
}
