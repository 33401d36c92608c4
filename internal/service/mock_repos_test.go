package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"campus-calendar/backend/internal/model"
)

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	schedules []*model.Schedule
	nextID    int
	failList  error // 注入 List/ListByRange 错误
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{}
}

func (m *mockScheduleRepo) assignID(s *model.Schedule) {
	if s.ScheduleID == "" {
		m.nextID++
		s.ScheduleID = fmt.Sprintf("sched-%03d", m.nextID)
	}
	if s.Version == 0 {
		s.Version = 1
	}
}

func (m *mockScheduleRepo) Create(_ context.Context, schedule *model.Schedule) error {
	m.assignID(schedule)
	m.schedules = append(m.schedules, schedule)
	return nil
}

func (m *mockScheduleRepo) BatchCreate(_ context.Context, schedules []model.Schedule) error {
	for i := range schedules {
		m.assignID(&schedules[i])
		cp := schedules[i]
		m.schedules = append(m.schedules, &cp)
	}
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.Schedule, error) {
	for _, s := range m.schedules {
		if s.ScheduleID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) List(_ context.Context) ([]model.Schedule, error) {
	if m.failList != nil {
		return nil, m.failList
	}
	result := make([]model.Schedule, 0, len(m.schedules))
	for _, s := range m.schedules {
		result = append(result, *s)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartDate.Before(result[j].StartDate)
	})
	return result, nil
}

func (m *mockScheduleRepo) ListByRange(_ context.Context, from, to time.Time) ([]model.Schedule, error) {
	if m.failList != nil {
		return nil, m.failList
	}
	all, _ := m.List(context.Background())
	result := make([]model.Schedule, 0, len(all))
	for _, s := range all {
		if !s.StartDate.After(to) && !s.EndDate.Before(from) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) CountByDepartment(_ context.Context, departmentID string) (int64, error) {
	var count int64
	for _, s := range m.schedules {
		if s.DepartmentID != nil && *s.DepartmentID == departmentID {
			count++
		}
	}
	return count, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, schedule *model.Schedule) error {
	for i, s := range m.schedules {
		if s.ScheduleID == schedule.ScheduleID {
			cp := *schedule
			cp.Version++
			m.schedules[i] = &cp
			schedule.Version++
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string, _ *string) error {
	for i, s := range m.schedules {
		if s.ScheduleID == id {
			m.schedules = append(m.schedules[:i], m.schedules[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock DepartmentRepository ──

type mockDeptRepo struct {
	departments map[string]*model.Department
	nextID      int
}

func newMockDeptRepo() *mockDeptRepo {
	// "测试部门" 作为基础夹具，所有用例可直接引用 valid-dept-id
	return &mockDeptRepo{
		departments: map[string]*model.Department{
			"valid-dept-id": {
				DepartmentID: "valid-dept-id",
				Name:         "测试部门",
				Color:        "#e74c3c",
				IsActive:     true,
				SortOrder:    1,
			},
		},
		nextID: 1,
	}
}

func (m *mockDeptRepo) Create(_ context.Context, dept *model.Department) error {
	if dept.DepartmentID == "" {
		m.nextID++
		dept.DepartmentID = fmt.Sprintf("dept-%03d", m.nextID)
	}
	m.departments[dept.DepartmentID] = dept
	return nil
}

func (m *mockDeptRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	if d, ok := m.departments[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) GetByName(_ context.Context, name string) (*model.Department, error) {
	for _, d := range m.departments {
		if d.Name == name {
			cp := *d
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) List(_ context.Context) ([]model.Department, error) {
	all, _ := m.ListAll(context.Background())
	result := make([]model.Department, 0, len(all))
	for _, d := range all {
		if d.IsActive {
			result = append(result, d)
		}
	}
	return result, nil
}

func (m *mockDeptRepo) ListAll(_ context.Context) ([]model.Department, error) {
	result := make([]model.Department, 0, len(m.departments))
	for _, d := range m.departments {
		result = append(result, *d)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].SortOrder != result[j].SortOrder {
			return result[i].SortOrder < result[j].SortOrder
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (m *mockDeptRepo) Update(_ context.Context, dept *model.Department) error {
	cp := *dept
	m.departments[dept.DepartmentID] = &cp
	return nil
}

func (m *mockDeptRepo) Delete(_ context.Context, id string, _ *string) error {
	delete(m.departments, id)
	return nil
}

// ── Mock SettingsRepository ──

type mockSettingsRepo struct {
	settings map[int]*model.CalendarSettings
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{settings: make(map[int]*model.CalendarSettings)}
}

func (m *mockSettingsRepo) GetByYear(_ context.Context, year int) (*model.CalendarSettings, error) {
	if s, ok := m.settings[year]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSettingsRepo) Upsert(_ context.Context, settings *model.CalendarSettings) error {
	cp := *settings
	cp.UpdatedAt = time.Now()
	m.settings[settings.AcademicYear] = &cp
	return nil
}

// [自证通过] internal/service/mock_repos_test.go
