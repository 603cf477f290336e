package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"study-scheduler/internal/model"
	"study-scheduler/internal/service"
	"study-scheduler/pkg/response"
)

// SemesterHandler 学期 HTTP 处理器
type SemesterHandler struct {
	semesterSvc service.SemesterService
}

// NewSemesterHandler 创建 SemesterHandler
func NewSemesterHandler(semesterSvc service.SemesterService) *SemesterHandler {
	return &SemesterHandler{semesterSvc: semesterSvc}
}

type createSemesterRequest struct {
	Name      string `json:"name" binding:"required,max=64"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	IsActive  bool   `json:"isActive"`
}

// CreateSemester 创建学期
// POST /api/v1/semesters
func (h *SemesterHandler) CreateSemester(c *gin.Context) {
	var req createSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		response.BadRequest(c, 16001, "开始日期格式应为 YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		response.BadRequest(c, 16001, "结束日期格式应为 YYYY-MM-DD")
		return
	}

	semester, err := h.semesterSvc.CreateSemester(c.Request.Context(), &model.Semester{
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
		IsActive:  req.IsActive,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidSemesterDate) {
			response.BadRequest(c, 16002, "学期结束日期必须晚于开始日期")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, semester)
}

// GetActiveSemester 查询当前活动学期
// GET /api/v1/semesters/active
func (h *SemesterHandler) GetActiveSemester(c *gin.Context) {
	semester, err := h.semesterSvc.GetActiveSemester(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrSemesterNotFound) {
			response.NotFound(c, 16003, "当前没有活动学期")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, semester)
}

// ListSemesters 查询学期列表
// GET /api/v1/semesters
func (h *SemesterHandler) ListSemesters(c *gin.Context) {
	semesters, err := h.semesterSvc.ListSemesters(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, semesters)
}
