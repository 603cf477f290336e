package dto

import "study-scheduler/internal/model"

// GenerateStudyPlanRequest 生成学习计划请求
type GenerateStudyPlanRequest struct {
	Assignments    []model.AssignmentItem `json:"assignments" binding:"required"`
	ExistingEvents []ExistingEvent        `json:"existingEvents"`
}

// ExistingEvent 生成计划时参考的已有日程
type ExistingEvent struct {
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// GenerateStudyPlanResponse 生成学习计划响应
//
// Source 标识计划来源："openai" 或 "fallback"。
type GenerateStudyPlanResponse struct {
	StudySessions []model.StudySession `json:"studySessions"`
	Source        string               `json:"source"`
}

// ScheduleStudyPlanResponse 学习计划写入日历的结果
type ScheduleStudyPlanResponse struct {
	Created int    `json:"created"`
	Failed  int    `json:"failed"`
	Source  string `json:"source"`
}
