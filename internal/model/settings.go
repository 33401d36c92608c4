package model

// CalendarSettings 年度日历设置表 — 对应 calendar_settings（每学年一行）
// FixedHolidays 键为 4 位月日编码（"0301"），每年重复；
// VariableHolidays 键为具体日期（"2025-04-05"），仅当年生效。
type CalendarSettings struct {
	AcademicYear     int       `gorm:"primaryKey"                    json:"academic_year"`
	FixedHolidays    StringMap `gorm:"type:jsonb;not null;default:'{}'" json:"fixed_holidays"`
	VariableHolidays StringMap `gorm:"type:jsonb;not null;default:'{}'" json:"variable_holidays"`
	BaseModel
}

// TableName 指定表名
func (CalendarSettings) TableName() string { return "calendar_settings" }
