package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"campus-calendar/backend/internal/dto"
	"campus-calendar/backend/internal/model"
	"campus-calendar/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestDepartmentService() (DepartmentService, *mockDeptRepo, *mockScheduleRepo) {
	deptRepo := newMockDeptRepo()
	schedRepo := newMockScheduleRepo()
	repo := &repository.Repository{
		Schedule:   schedRepo,
		Department: deptRepo,
		Settings:   newMockSettingsRepo(),
	}
	logger := zap.NewNop()
	calendarSvc := NewCalendarService(testConfig(), repo, nil, logger)
	svc := NewDepartmentService(repo, calendarSvc, logger)
	return svc, deptRepo, schedRepo
}

// ── Create 测试 ──

func TestDepartmentService_Create_Success(t *testing.T) {
	svc, _, _ := setupTestDepartmentService()

	resp, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{
		Name:      "学生会",
		Color:     "#2ecc71",
		SortOrder: 5,
	}, caller())
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.ID == "" {
		t.Error("应分配部门 ID")
	}
	if resp.Color != "#2ecc71" {
		t.Errorf("颜色应保留请求值，实际 %s", resp.Color)
	}
	if !resp.IsActive {
		t.Error("新建部门缺省应为启用状态")
	}
}

func TestDepartmentService_Create_DefaultColor(t *testing.T) {
	svc, _, _ := setupTestDepartmentService()

	resp, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{
		Name: "宣传部",
	}, caller())
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Color != model.DefaultDepartmentColor {
		t.Errorf("未指定颜色时应回落到缺省色 %s，实际 %s", model.DefaultDepartmentColor, resp.Color)
	}
}

func TestDepartmentService_Create_DuplicateName(t *testing.T) {
	svc, _, _ := setupTestDepartmentService()

	// 夹具中已存在"测试部门"
	_, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{
		Name: "测试部门",
	}, caller())
	if !errors.Is(err, ErrDepartmentNameExists) {
		t.Errorf("期望 ErrDepartmentNameExists，实际: %v", err)
	}
}

// ── GetByID / List 测试 ──

func TestDepartmentService_GetByID_NotFound(t *testing.T) {
	svc, _, _ := setupTestDepartmentService()

	_, err := svc.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, ErrDepartmentNotFound) {
		t.Errorf("期望 ErrDepartmentNotFound，实际: %v", err)
	}
}

func TestDepartmentService_List_FiltersInactive(t *testing.T) {
	svc, deptRepo, _ := setupTestDepartmentService()

	deptRepo.departments["retired-dept"] = &model.Department{
		DepartmentID: "retired-dept",
		Name:         "已撤销部门",
		Color:        "#999999",
		IsActive:     false,
		SortOrder:    9,
	}

	active, err := svc.List(context.Background(), &dto.DepartmentListRequest{})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("缺省仅返回启用部门，期望 1 个，实际 %d 个", len(active))
	}

	all, err := svc.List(context.Background(), &dto.DepartmentListRequest{IncludeInactive: true})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("include_inactive 应返回全部部门，期望 2 个，实际 %d 个", len(all))
	}
	if all[0].SortOrder > all[1].SortOrder {
		t.Error("部门列表应按 sort_order 升序")
	}
}

// ── Update 测试 ──

func TestDepartmentService_Update_Success(t *testing.T) {
	svc, _, _ := setupTestDepartmentService()

	newName := "测试部门（改）"
	newColor := "#8e44ad"
	inactive := false
	resp, err := svc.Update(context.Background(), "valid-dept-id", &dto.UpdateDepartmentRequest{
		Name:     &newName,
		Color:    &newColor,
		IsActive: &inactive,
	}, caller())
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if resp.Name != newName || resp.Color != newColor {
		t.Errorf("更新结果不符: name=%s color=%s", resp.Name, resp.Color)
	}
	if resp.IsActive {
		t.Error("停用标记未生效")
	}
}

func TestDepartmentService_Update_DuplicateName(t *testing.T) {
	svc, _, _ := setupTestDepartmentService()

	created, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{Name: "文体部"}, caller())
	if err != nil {
		t.Fatalf("前置创建失败: %v", err)
	}

	conflict := "测试部门"
	_, err = svc.Update(context.Background(), created.ID, &dto.UpdateDepartmentRequest{Name: &conflict}, caller())
	if !errors.Is(err, ErrDepartmentNameExists) {
		t.Errorf("改名撞车应返回 ErrDepartmentNameExists，实际: %v", err)
	}
}

func TestDepartmentService_Update_NotFound(t *testing.T) {
	svc, _, _ := setupTestDepartmentService()

	name := "任意"
	_, err := svc.Update(context.Background(), "nonexistent", &dto.UpdateDepartmentRequest{Name: &name}, caller())
	if !errors.Is(err, ErrDepartmentNotFound) {
		t.Errorf("期望 ErrDepartmentNotFound，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestDepartmentService_Delete_InUse(t *testing.T) {
	svc, _, schedRepo := setupTestDepartmentService()

	deptID := "valid-dept-id"
	schedRepo.Create(context.Background(), &model.Schedule{
		Title:        "部门例会",
		DepartmentID: &deptID,
	})

	err := svc.Delete(context.Background(), deptID, caller())
	if !errors.Is(err, ErrDepartmentInUse) {
		t.Errorf("仍被日程引用时应返回 ErrDepartmentInUse，实际: %v", err)
	}
}

func TestDepartmentService_Delete_Success(t *testing.T) {
	svc, deptRepo, _ := setupTestDepartmentService()

	if err := svc.Delete(context.Background(), "valid-dept-id", caller()); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, ok := deptRepo.departments["valid-dept-id"]; ok {
		t.Error("部门应已从存储中移除")
	}
}
