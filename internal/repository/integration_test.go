//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"campus-calendar/backend/internal/model"
	"campus-calendar/backend/internal/repository"
	pkgerrors "campus-calendar/backend/pkg/errors"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=campus_calendar password=campus_calendar_password dbname=campus_calendar_test sslmode=disable TimeZone=Asia/Shanghai"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.Department{},
		&model.Schedule{},
		&model.CalendarSettings{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

func testDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// setupTestData 创建基础测试数据并返回清理函数
func setupTestData(t *testing.T) (dept *model.Department, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	dept = &model.Department{
		Name:     fmt.Sprintf("测试部门-%d", time.Now().UnixNano()),
		Color:    "#e74c3c",
		IsActive: true,
	}
	if err := testDB.WithContext(ctx).Create(dept).Error; err != nil {
		t.Fatalf("创建部门失败: %v", err)
	}

	cleanup = func() {
		testDB.Unscoped().Where("department_id = ?", dept.DepartmentID).Delete(&model.Schedule{})
		testDB.Unscoped().Where("department_id = ?", dept.DepartmentID).Delete(&model.Department{})
	}
	return dept, cleanup
}

// ═══════════════════════════════════════════════════════════
// ScheduleRepository
// ═══════════════════════════════════════════════════════════

func TestScheduleRepo_CRUD(t *testing.T) {
	dept, cleanup := setupTestData(t)
	defer cleanup()

	ctx := context.Background()
	repo := repository.NewScheduleRepo(testDB)

	sched := &model.Schedule{
		Title:        "秋季运动会",
		StartDate:    testDate(2025, time.October, 15),
		EndDate:      testDate(2025, time.October, 17),
		DepartmentID: &dept.DepartmentID,
		Visibility:   model.VisibilityPublic,
		Printable:    true,
	}
	if err := repo.Create(ctx, sched); err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	if sched.ScheduleID == "" {
		t.Fatal("应由数据库生成 schedule_id")
	}

	got, err := repo.GetByID(ctx, sched.ScheduleID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if got.Title != "秋季运动会" {
		t.Errorf("标题不符: %s", got.Title)
	}
	if got.Department == nil || got.Department.DepartmentID != dept.DepartmentID {
		t.Error("Department 关联未预加载")
	}

	// 正确版本号更新
	got.Title = "秋季运动会（改期）"
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update 失败: %v", err)
	}
	if got.Version != 2 {
		t.Errorf("更新后版本号应为 2，实际 %d", got.Version)
	}

	// 过期版本号更新应触发乐观锁冲突
	stale := *got
	stale.Version = 1
	if err := repo.Update(ctx, &stale); !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Errorf("期望 ErrOptimisticLock，实际: %v", err)
	}

	// 软删除后不可见
	if err := repo.Delete(ctx, sched.ScheduleID, nil); err != nil {
		t.Fatalf("Delete 失败: %v", err)
	}
	if _, err := repo.GetByID(ctx, sched.ScheduleID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("软删除记录不应再被查到，实际: %v", err)
	}
}

func TestScheduleRepo_ListByRange(t *testing.T) {
	dept, cleanup := setupTestData(t)
	defer cleanup()

	ctx := context.Background()
	repo := repository.NewScheduleRepo(testDB)

	batch := []model.Schedule{
		{Title: "开学典礼", StartDate: testDate(2025, time.September, 1), EndDate: testDate(2025, time.September, 1), DepartmentID: &dept.DepartmentID, Visibility: model.VisibilityPublic},
		{Title: "期中考试", StartDate: testDate(2025, time.November, 10), EndDate: testDate(2025, time.November, 14), DepartmentID: &dept.DepartmentID, Visibility: model.VisibilityPublic},
		{Title: "元旦晚会", StartDate: testDate(2025, time.December, 31), EndDate: testDate(2025, time.December, 31), DepartmentID: &dept.DepartmentID, Visibility: model.VisibilityPublic},
	}
	if err := repo.BatchCreate(ctx, batch); err != nil {
		t.Fatalf("BatchCreate 失败: %v", err)
	}

	// 查询窗口与"期中考试"后半段相交
	got, err := repo.ListByRange(ctx, testDate(2025, time.November, 12), testDate(2025, time.November, 30))
	if err != nil {
		t.Fatalf("ListByRange 失败: %v", err)
	}

	found := false
	for _, s := range got {
		if s.Title == "期中考试" && s.DepartmentID != nil && *s.DepartmentID == dept.DepartmentID {
			found = true
		}
		if s.Title == "开学典礼" && s.DepartmentID != nil && *s.DepartmentID == dept.DepartmentID {
			t.Error("窗口之外的日程不应返回")
		}
	}
	if !found {
		t.Error("与窗口相交的日程应返回")
	}

	count, err := repo.CountByDepartment(ctx, dept.DepartmentID)
	if err != nil {
		t.Fatalf("CountByDepartment 失败: %v", err)
	}
	if count != 3 {
		t.Errorf("部门日程数应为 3，实际 %d", count)
	}
}

// ═══════════════════════════════════════════════════════════
// DepartmentRepository
// ═══════════════════════════════════════════════════════════

func TestDepartmentRepo_GetByName(t *testing.T) {
	dept, cleanup := setupTestData(t)
	defer cleanup()

	ctx := context.Background()
	repo := repository.NewDepartmentRepo(testDB)

	got, err := repo.GetByName(ctx, dept.Name)
	if err != nil {
		t.Fatalf("GetByName 失败: %v", err)
	}
	if got.DepartmentID != dept.DepartmentID {
		t.Errorf("部门 ID 不符: %s", got.DepartmentID)
	}

	if _, err := repo.GetByName(ctx, "不存在的部门名"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("期望 ErrRecordNotFound，实际: %v", err)
	}
}

func TestDepartmentRepo_ListExcludesInactive(t *testing.T) {
	dept, cleanup := setupTestData(t)
	defer cleanup()

	ctx := context.Background()
	repo := repository.NewDepartmentRepo(testDB)

	dept.IsActive = false
	if err := repo.Update(ctx, dept); err != nil {
		t.Fatalf("Update 失败: %v", err)
	}

	active, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	for _, d := range active {
		if d.DepartmentID == dept.DepartmentID {
			t.Error("停用部门不应出现在活跃列表中")
		}
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll 失败: %v", err)
	}
	found := false
	for _, d := range all {
		if d.DepartmentID == dept.DepartmentID {
			found = true
		}
	}
	if !found {
		t.Error("停用部门应出现在全量列表中")
	}
}

// ═══════════════════════════════════════════════════════════
// SettingsRepository
// ═══════════════════════════════════════════════════════════

func TestSettingsRepo_UpsertOverwrite(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSettingsRepo(testDB)

	year := 2000 + int(time.Now().UnixNano()%100)
	defer testDB.Unscoped().Where("academic_year = ?", year).Delete(&model.CalendarSettings{})

	first := &model.CalendarSettings{
		AcademicYear:  year,
		FixedHolidays: model.StringMap{"0101": "元旦"},
	}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("首次 Upsert 失败: %v", err)
	}

	second := &model.CalendarSettings{
		AcademicYear:     year,
		FixedHolidays:    model.StringMap{"0301": "独立纪念日"},
		VariableHolidays: model.StringMap{fmt.Sprintf("%d-04-04", year): "清明节"},
	}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("二次 Upsert 失败: %v", err)
	}

	got, err := repo.GetByYear(ctx, year)
	if err != nil {
		t.Fatalf("GetByYear 失败: %v", err)
	}
	if _, ok := got.FixedHolidays["0101"]; ok {
		t.Error("二次写入应整体覆盖固定节假日")
	}
	if got.FixedHolidays["0301"] != "独立纪念日" {
		t.Errorf("固定节假日不符: %v", got.FixedHolidays)
	}
	if len(got.VariableHolidays) != 1 {
		t.Errorf("浮动节假日不符: %v", got.VariableHolidays)
	}
}
