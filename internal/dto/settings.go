package dto

// ── 年度日历设置 DTO ──

// UpdateSettingsRequest 更新年度设置请求
// 键格式：固定节假日为 4 位月日编码（"0301"），浮动节假日为完整日期（"2025-04-05"）
type UpdateSettingsRequest struct {
	FixedHolidays    map[string]string `json:"fixed_holidays"    binding:"required"`
	VariableHolidays map[string]string `json:"variable_holidays" binding:"required"`
}

// SettingsResponse 年度设置响应
type SettingsResponse struct {
	AcademicYear     int               `json:"academic_year"`
	FixedHolidays    map[string]string `json:"fixed_holidays"`
	VariableHolidays map[string]string `json:"variable_holidays"`
	UpdatedAt        string            `json:"updated_at,omitempty"`
}
