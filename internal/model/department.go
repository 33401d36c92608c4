package model

// DefaultDepartmentColor 未指定或未知部门时的日历渲染色
const DefaultDepartmentColor = "#3788d8"

// Department 部门表 — 对应 departments
type Department struct {
	DepartmentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"department_id"`
	Name         string `gorm:"type:varchar(50);not null"                      json:"name"`
	Color        string `gorm:"type:varchar(7);not null;default:'#3788d8'"     json:"color"` // #rrggbb
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	SortOrder    int    `gorm:"not null;default:0"                             json:"sort_order"`
	VersionedModel
}

// TableName 指定表名
func (Department) TableName() string { return "departments" }
