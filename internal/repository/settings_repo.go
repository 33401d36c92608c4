package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campus-calendar/backend/internal/model"
)

// SettingsRepository 年度日历设置数据访问接口
type SettingsRepository interface {
	GetByYear(ctx context.Context, year int) (*model.CalendarSettings, error)
	// Upsert 按学年写入设置，已存在则整行覆盖
	Upsert(ctx context.Context, settings *model.CalendarSettings) error
}

type settingsRepo struct {
	db *gorm.DB
}

// NewSettingsRepo 创建 SettingsRepository 实例
func NewSettingsRepo(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) GetByYear(ctx context.Context, year int) (*model.CalendarSettings, error) {
	var settings model.CalendarSettings
	err := r.db.WithContext(ctx).
		Where("academic_year = ?", year).
		First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepo) Upsert(ctx context.Context, settings *model.CalendarSettings) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "academic_year"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"fixed_holidays", "variable_holidays", "updated_at", "updated_by",
			}),
		}).
		Create(settings).Error
}
