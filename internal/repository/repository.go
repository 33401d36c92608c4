package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Schedule   ScheduleRepository
	Department DepartmentRepository
	Settings   SettingsRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Schedule:   NewScheduleRepo(db),
		Department: NewDepartmentRepo(db),
		Settings:   NewSettingsRepo(db),
	}
}
