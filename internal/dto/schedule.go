package dto

import "study-scheduler/internal/model"

// ImportScheduleRequest 导入课表请求
//
// HTML 为课表网格的原始 HTML；StartDate/EndDate 可覆盖当前学期边界（YYYY-MM-DD）。
type ImportScheduleRequest struct {
	HTML      string `json:"html" binding:"required"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// ImportScheduleResponse 导入课表结果汇总
//
// Occurrences 为按循环规则展开后学期内的上课总次数。
type ImportScheduleResponse struct {
	Created     int                     `json:"created"`
	Skipped     int                     `json:"skipped"`
	Occurrences int                     `json:"occurrences"`
	Classes     []model.ClassOccurrence `json:"classes"`
}

// ImportAssignmentsRequest 导入作业/考试请求
//
// Filenames 为课程资料文件名列表，课程代码从文件名中识别。
type ImportAssignmentsRequest struct {
	Filenames []string `json:"filenames" binding:"required,min=1"`
}

// ImportSummary 批量导入结果汇总
type ImportSummary struct {
	EventsCreated int      `json:"eventsCreated"`
	TasksCreated  int      `json:"tasksCreated"`
	Failed        int      `json:"failed"`
	Courses       []string `json:"courses"`
}

// ClearSummary 清理操作结果汇总
type ClearSummary struct {
	EventsDeleted int `json:"eventsDeleted"`
	TasksDeleted  int `json:"tasksDeleted"`
	Failed        int `json:"failed"`
}
