package dto

// ── 日程模块 DTO ──

// RecurrenceRequest 重复策略：随创建请求提交
type RecurrenceRequest struct {
	Frequency string `json:"frequency" binding:"required,oneof=weekly biweekly monthly"`
	Until     string `json:"until"     binding:"required"` // "2026-06-30"，含端点
}

// CreateScheduleRequest 创建日程请求
// Recurrence 非空时按策略展开为多条实例后批量入库
type CreateScheduleRequest struct {
	Title        string             `json:"title"         binding:"required,min=1,max=200"`
	StartDate    string             `json:"start_date"    binding:"required"` // "2025-09-01"
	EndDate      string             `json:"end_date"      binding:"required"`
	DepartmentID *string            `json:"department_id" binding:"omitempty,uuid"`
	Visibility   string             `json:"visibility"    binding:"omitempty,oneof=public internal department"`
	Description  string             `json:"description"   binding:"omitempty,max=2000"`
	Printable    *bool              `json:"printable"`
	Recurrence   *RecurrenceRequest `json:"recurrence"`
}

// UpdateScheduleRequest 更新日程请求
type UpdateScheduleRequest struct {
	Title        *string `json:"title"         binding:"omitempty,min=1,max=200"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	Visibility   *string `json:"visibility"    binding:"omitempty,oneof=public internal department"`
	Description  *string `json:"description"   binding:"omitempty,max=2000"`
	Printable    *bool   `json:"printable"`
	Version      int     `json:"version"       binding:"required,min=1"` // 乐观锁
}

// ScheduleListRequest 日程列表查询参数
type ScheduleListRequest struct {
	From string `form:"from"` // "2025-09-01"，可选
	To   string `form:"to"`   // 可选，与 from 成对使用
}

// ScheduleSearchRequest 日程搜索查询参数
// 少于 2 字符的查询由绑定层直接拒绝，搜索核心不再校验
type ScheduleSearchRequest struct {
	Query string `form:"q" binding:"required,min=2"`
}

// ScheduleResponse 日程信息响应
type ScheduleResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	DepartmentID *string `json:"department_id,omitempty"`
	Department   string  `json:"department,omitempty"`
	Visibility   string  `json:"visibility"`
	Description  string  `json:"description,omitempty"`
	Printable    bool    `json:"printable"`
	Version      int     `json:"version"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// CreateScheduleResponse 创建日程响应：返回全部落库实例
type CreateScheduleResponse struct {
	Created   int                `json:"created"`   // 实际落库条数
	Truncated bool               `json:"truncated"` // 重复展开是否触顶截断
	Items     []ScheduleResponse `json:"items"`
}
