package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"study-scheduler/internal/dto"
	"study-scheduler/internal/model"
	"study-scheduler/internal/service"
	"study-scheduler/pkg/response"
)

// StudyPlanHandler 学习计划 HTTP 处理器
type StudyPlanHandler struct {
	planSvc service.StudyPlanService
}

// NewStudyPlanHandler 创建 StudyPlanHandler
func NewStudyPlanHandler(planSvc service.StudyPlanService) *StudyPlanHandler {
	return &StudyPlanHandler{planSvc: planSvc}
}

// Generate 根据请求体中的作业列表生成学习计划（不落盘）
// POST /api/v1/study-plan/generate
func (h *StudyPlanHandler) Generate(c *gin.Context) {
	var req dto.GenerateStudyPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	// 已有事件仅作为排期参考传给生成器
	existing := make([]model.CalendarEvent, 0, len(req.ExistingEvents))
	for _, e := range req.ExistingEvents {
		event := model.CalendarEvent{Title: e.Title}
		if t, err := time.Parse(time.RFC3339, e.Start); err == nil {
			event.StartDatetime = t
		}
		if t, err := time.Parse(time.RFC3339, e.End); err == nil {
			event.EndDatetime = t
		}
		existing = append(existing, event)
	}

	result, err := h.planSvc.GeneratePlan(c.Request.Context(), req.Assignments, existing)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
