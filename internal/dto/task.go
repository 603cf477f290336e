package dto

import "time"

// CreateTaskRequest 创建任务请求
type CreateTaskRequest struct {
	TaskName    string     `json:"taskName" binding:"required,max=255"`
	CourseName  string     `json:"courseName"`
	DueDate     *time.Time `json:"dueDate"`
	Colour      string     `json:"colour"`
	Description string     `json:"description"`
}

// UpdateTaskRequest 更新任务请求，nil 字段不变
type UpdateTaskRequest struct {
	TaskName    *string    `json:"taskName"`
	CourseName  *string    `json:"courseName"`
	DueDate     *time.Time `json:"dueDate"`
	Colour      *string    `json:"colour"`
	Description *string    `json:"description"`
}
