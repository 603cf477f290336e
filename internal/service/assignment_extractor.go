package service

import (
	"regexp"
	"strings"
	"time"

	"study-scheduler/internal/model"
)

// courseCodeRegex 课程代码，如 "CSC 225" / "MATH 200"
var courseCodeRegex = regexp.MustCompile(`(CSC \d+|SENG \d+|MATH \d+|SPAN \d+)`)

// assignmentKeywords 作业/考试关键词，标题或描述命中任一即视为作业类事件
var assignmentKeywords = []string{"assignment", "exam", "quiz", "project", "midterm", "final"}

// unknownCourse 无法识别课程代码时的兜底课程名
const unknownCourse = "Unknown Course"

// AssignmentSource 按课程提供作业/考试条目的来源
//
// 生产实现读取课程资料文档；测试中可注入固定数据。
type AssignmentSource interface {
	AssignmentsForCourse(course string) []model.AssignmentItem
}

// ExtractCourseCode 从文本中提取课程代码，识别不出时返回 "Unknown Course"
func ExtractCourseCode(text string) string {
	if match := courseCodeRegex.FindString(text); match != "" {
		return match
	}
	return unknownCourse
}

// containsAssignmentKeyword 判断小写文本是否命中作业/考试关键词
func containsAssignmentKeyword(lower string) bool {
	for _, kw := range assignmentKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// classifyAssignmentType 按关键词优先级判定条目类型
//
// exam/final 优先于 midterm，依次是 project、quiz，默认 assignment。
func classifyAssignmentType(lowerTitle string) string {
	switch {
	case strings.Contains(lowerTitle, "exam") || strings.Contains(lowerTitle, "final"):
		return model.AssignmentTypeFinal
	case strings.Contains(lowerTitle, "midterm"):
		return model.AssignmentTypeMidterm
	case strings.Contains(lowerTitle, "project"):
		return model.AssignmentTypeProject
	case strings.Contains(lowerTitle, "quiz"):
		return model.AssignmentTypeQuiz
	default:
		return model.AssignmentTypeAssignment
	}
}

// ExtractAssignmentsFromEvents 从已有日历事件反向提取作业/考试条目
//
// 标题或描述命中关键词的事件提取课程代码、分类、截止时间（取事件开始时刻），
// 标题去掉 "COURSE - " 前缀后作为条目标题。
func ExtractAssignmentsFromEvents(events []model.CalendarEvent) []model.AssignmentItem {
	var items []model.AssignmentItem
	for _, event := range events {
		lower := strings.ToLower(event.Title) + " " + strings.ToLower(event.Description)
		if !containsAssignmentKeyword(lower) {
			continue
		}
		course := ExtractCourseCode(event.Title)
		items = append(items, model.AssignmentItem{
			Title:       strings.Replace(event.Title, course+" - ", "", 1),
			Course:      course,
			DueDate:     event.StartDatetime,
			Type:        classifyAssignmentType(lower),
			Description: event.Description,
		})
	}
	return items
}

// courseOutlineSource 内置的课程大纲数据来源
//
// TODO: 接入真实课程大纲 PDF 解析后替换为文档驱动的实现
type courseOutlineSource struct{}

// NewCourseOutlineSource 构造内置课程大纲来源
func NewCourseOutlineSource() AssignmentSource {
	return courseOutlineSource{}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func (courseOutlineSource) AssignmentsForCourse(course string) []model.AssignmentItem {
	item := func(title string, due time.Time, typ, desc string) model.AssignmentItem {
		return model.AssignmentItem{Title: title, Course: course, DueDate: due, Type: typ, Description: desc}
	}

	switch {
	case strings.Contains(course, "CSC 225"):
		return []model.AssignmentItem{
			item("Assignment 1", date(2025, time.September, 20), model.AssignmentTypeAssignment, "Discrete Math Problems"),
			item("Assignment 2", date(2025, time.October, 15), model.AssignmentTypeAssignment, "Algorithm Analysis"),
			item("Midterm Exam", date(2025, time.October, 25), model.AssignmentTypeMidterm, "In-class midterm"),
			item("Final Exam", date(2025, time.December, 10), model.AssignmentTypeFinal, "Comprehensive final exam"),
		}
	case strings.Contains(course, "SENG 265"):
		return []model.AssignmentItem{
			item("Assignment 1", date(2025, time.September, 25), model.AssignmentTypeAssignment, "C Programming Basics"),
			item("Assignment 2", date(2025, time.October, 20), model.AssignmentTypeAssignment, "Data Structures"),
			item("Midterm Exam", date(2025, time.November, 5), model.AssignmentTypeMidterm, "Programming concepts"),
			item("Final Project", date(2025, time.December, 1), model.AssignmentTypeProject, "Complete software project"),
			item("Final Exam", date(2025, time.December, 15), model.AssignmentTypeFinal, "Comprehensive exam"),
		}
	case strings.Contains(course, "SENG 321"):
		return []model.AssignmentItem{
			item("Assignment 1", date(2025, time.September, 30), model.AssignmentTypeAssignment, "Requirements Analysis"),
			item("Midterm Exam", date(2025, time.November, 8), model.AssignmentTypeMidterm, "Software Engineering Principles"),
			item("Team Project", date(2025, time.November, 25), model.AssignmentTypeProject, "Group software project"),
			item("Final Exam", date(2025, time.December, 12), model.AssignmentTypeFinal, "Comprehensive final"),
		}
	case strings.Contains(course, "MATH 200"):
		return []model.AssignmentItem{
			item("Assignment 1", date(2025, time.September, 18), model.AssignmentTypeAssignment, "Calculus Problems Set 1"),
			item("Assignment 2", date(2025, time.October, 10), model.AssignmentTypeAssignment, "Integration Techniques"),
			item("Midterm Exam", date(2025, time.October, 28), model.AssignmentTypeMidterm, "Differentiation and Integration"),
			item("Assignment 3", date(2025, time.November, 15), model.AssignmentTypeAssignment, "Series and Sequences"),
			item("Final Exam", date(2025, time.December, 8), model.AssignmentTypeFinal, "Comprehensive calculus exam"),
		}
	case strings.Contains(course, "SPAN 100"):
		return []model.AssignmentItem{
			item("Quiz 1", date(2025, time.September, 22), model.AssignmentTypeQuiz, "Vocabulary and Grammar"),
			item("Assignment 1", date(2025, time.October, 5), model.AssignmentTypeAssignment, "Essay in Spanish"),
			item("Midterm Exam", date(2025, time.November, 12), model.AssignmentTypeMidterm, "Oral and Written Exam"),
			item("Final Project", date(2025, time.December, 20), model.AssignmentTypeProject, "Cultural presentation"),
			item("Final Exam", date(2025, time.December, 18), model.AssignmentTypeFinal, "Comprehensive language exam"),
		}
	default:
		return nil
	}
}
