package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"campus-calendar/backend/internal/dto"
	"campus-calendar/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestSettingsService() (SettingsService, *mockSettingsRepo) {
	settingsRepo := newMockSettingsRepo()
	repo := &repository.Repository{
		Schedule:   newMockScheduleRepo(),
		Department: newMockDeptRepo(),
		Settings:   settingsRepo,
	}
	logger := zap.NewNop()
	calendarSvc := NewCalendarService(testConfig(), repo, nil, logger)
	svc := NewSettingsService(repo, calendarSvc, logger)
	return svc, settingsRepo
}

// ── GetByYear 测试 ──

func TestSettingsService_GetByYear_Missing(t *testing.T) {
	svc, _ := setupTestSettingsService()

	resp, err := svc.GetByYear(context.Background(), 2025)
	if err != nil {
		t.Fatalf("未配置学年不应报错: %v", err)
	}
	if resp.AcademicYear != 2025 {
		t.Errorf("学年应回显为 2025，实际 %d", resp.AcademicYear)
	}
	if resp.FixedHolidays == nil || len(resp.FixedHolidays) != 0 {
		t.Error("未配置学年应返回空的固定节假日集合")
	}
	if resp.VariableHolidays == nil || len(resp.VariableHolidays) != 0 {
		t.Error("未配置学年应返回空的浮动节假日集合")
	}
}

// ── Update 测试 ──

func TestSettingsService_Update_Roundtrip(t *testing.T) {
	svc, _ := setupTestSettingsService()

	req := &dto.UpdateSettingsRequest{
		FixedHolidays:    map[string]string{"0101": "元旦", "1001": "国庆节"},
		VariableHolidays: map[string]string{"2025-04-04": "清明节"},
	}
	if _, err := svc.Update(context.Background(), 2025, req, caller()); err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}

	resp, err := svc.GetByYear(context.Background(), 2025)
	if err != nil {
		t.Fatalf("回读失败: %v", err)
	}
	if resp.FixedHolidays["1001"] != "国庆节" {
		t.Errorf("固定节假日未写入: %v", resp.FixedHolidays)
	}
	if resp.VariableHolidays["2025-04-04"] != "清明节" {
		t.Errorf("浮动节假日未写入: %v", resp.VariableHolidays)
	}
	if resp.UpdatedAt == "" {
		t.Error("写入后应带更新时间")
	}
}

func TestSettingsService_Update_InvalidFixedKey(t *testing.T) {
	svc, settingsRepo := setupTestSettingsService()

	cases := []string{"131", "1301", "0100", "abcd"}
	for _, key := range cases {
		_, err := svc.Update(context.Background(), 2025, &dto.UpdateSettingsRequest{
			FixedHolidays:    map[string]string{key: "非法"},
			VariableHolidays: map[string]string{},
		}, caller())
		if !errors.Is(err, ErrInvalidHolidayKey) {
			t.Errorf("键 %q 应被拒绝，实际: %v", key, err)
		}
	}
	if len(settingsRepo.settings) != 0 {
		t.Error("校验失败不应落库")
	}
}

func TestSettingsService_Update_InvalidVariableKey(t *testing.T) {
	svc, _ := setupTestSettingsService()

	_, err := svc.Update(context.Background(), 2025, &dto.UpdateSettingsRequest{
		FixedHolidays:    map[string]string{},
		VariableHolidays: map[string]string{"2025/04/04": "清明节"},
	}, caller())
	if !errors.Is(err, ErrInvalidHolidayKey) {
		t.Errorf("非 YYYY-MM-DD 浮动键应被拒绝，实际: %v", err)
	}
}

func TestSettingsService_Update_Overwrite(t *testing.T) {
	svc, _ := setupTestSettingsService()

	first := &dto.UpdateSettingsRequest{
		FixedHolidays:    map[string]string{"0101": "元旦"},
		VariableHolidays: map[string]string{},
	}
	if _, err := svc.Update(context.Background(), 2025, first, caller()); err != nil {
		t.Fatalf("首次写入失败: %v", err)
	}

	second := &dto.UpdateSettingsRequest{
		FixedHolidays:    map[string]string{"0301": "独立纪念日"},
		VariableHolidays: map[string]string{},
	}
	if _, err := svc.Update(context.Background(), 2025, second, caller()); err != nil {
		t.Fatalf("二次写入失败: %v", err)
	}

	resp, _ := svc.GetByYear(context.Background(), 2025)
	if _, ok := resp.FixedHolidays["0101"]; ok {
		t.Error("二次写入应整体覆盖，旧键不应残留")
	}
	if resp.FixedHolidays["0301"] != "独立纪念日" {
		t.Errorf("覆盖后的键缺失: %v", resp.FixedHolidays)
	}
}
