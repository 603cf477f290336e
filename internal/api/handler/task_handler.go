package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"study-scheduler/internal/dto"
	"study-scheduler/internal/service"
	"study-scheduler/pkg/response"
)

// TaskHandler 任务 HTTP 处理器
type TaskHandler struct {
	taskSvc service.TaskService
}

// NewTaskHandler 创建 TaskHandler
func NewTaskHandler(taskSvc service.TaskService) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc}
}

// CreateTask 创建任务
// POST /api/v1/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	task, err := h.taskSvc.CreateTask(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, task)
}

// ListTasks 查询任务列表
// GET /api/v1/tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	tasks, err := h.taskSvc.ListTasks(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, tasks)
}

// GetTask 查询单个任务
// GET /api/v1/tasks/:id
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, 10001, "任务 ID 不合法")
		return
	}

	task, err := h.taskSvc.GetTask(c.Request.Context(), userID, taskID)
	if err != nil {
		respondCalendarError(c, err)
		return
	}
	response.OK(c, task)
}

// UpdateTask 更新任务
// PATCH /api/v1/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, 10001, "任务 ID 不合法")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	task, err := h.taskSvc.UpdateTask(c.Request.Context(), userID, taskID, &req)
	if err != nil {
		respondCalendarError(c, err)
		return
	}
	response.OK(c, task)
}

// DeleteTask 删除任务
// DELETE /api/v1/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, 10001, "任务 ID 不合法")
		return
	}

	if err := h.taskSvc.DeleteTask(c.Request.Context(), userID, taskID); err != nil {
		respondCalendarError(c, err)
		return
	}
	response.OK(c, nil)
}
