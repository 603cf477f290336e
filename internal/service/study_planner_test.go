package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"study-scheduler/internal/model"
)

// ════════════════════════════════════════════════════════════
// 兜底计划测试
// ════════════════════════════════════════════════════════════

func TestFallbackStudyPlan_Assignment(t *testing.T) {
	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

	// 截止 20 天后的作业：3 次工作时段
	far := model.AssignmentItem{
		Title: "Assignment 1", Course: "CSC 225",
		DueDate: now.AddDate(0, 0, 20), Type: model.AssignmentTypeAssignment,
		Description: "Discrete Math Problems",
	}
	sessions := FallbackStudyPlan(now, []model.AssignmentItem{far})
	if len(sessions) != 3 {
		t.Fatalf("20 天作业期望 3 次时段, 实际 %d 次", len(sessions))
	}
	for i, s := range sessions {
		if s.Type != model.SessionTypeWork {
			t.Errorf("时段 %d 类型期望 work_session, 实际 %q", i, s.Type)
		}
		if s.Title != "Work Session: Assignment 1" {
			t.Errorf("时段 %d 标题不符: %q", i, s.Title)
		}
		if s.Duration != 2 {
			t.Errorf("工作时段时长期望 2 小时, 实际 %g", s.Duration)
		}
		if !strings.Contains(s.Description, "Discrete Math Problems") {
			t.Errorf("描述应包含作业说明: %q", s.Description)
		}
		if s.RelatedAssignment != "Assignment 1" {
			t.Errorf("关联作业不符: %q", s.RelatedAssignment)
		}
	}
	// 下午 2 点与 4 点交替
	if sessions[0].Date.Hour() != 14 || sessions[1].Date.Hour() != 16 {
		t.Errorf("时段时间应在 14/16 点交替, 实际 %d/%d",
			sessions[0].Date.Hour(), sessions[1].Date.Hour())
	}

	// 截止 7 天后的作业：2 次
	near := far
	near.DueDate = now.AddDate(0, 0, 7)
	if got := FallbackStudyPlan(now, []model.AssignmentItem{near}); len(got) != 2 {
		t.Errorf("7 天作业期望 2 次时段, 实际 %d 次", len(got))
	}
}

func TestFallbackStudyPlan_Exam(t *testing.T) {
	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

	// 30 天后的期末：5 次，末次为复习
	exam := model.AssignmentItem{
		Title: "Final Exam", Course: "MATH 200",
		DueDate: now.AddDate(0, 0, 30), Type: model.AssignmentTypeFinal,
	}
	sessions := FallbackStudyPlan(now, []model.AssignmentItem{exam})
	if len(sessions) != 5 {
		t.Fatalf("30 天期末期望 5 次时段, 实际 %d 次", len(sessions))
	}
	for i, s := range sessions[:4] {
		if s.Type != model.SessionTypeStudy {
			t.Errorf("时段 %d 类型期望 study_session, 实际 %q", i, s.Type)
		}
		if s.Title != "Study Session: Final Exam" || s.Duration != 2 {
			t.Errorf("时段 %d 不符: %q %g 小时", i, s.Title, s.Duration)
		}
	}
	review := sessions[4]
	if review.Type != model.SessionTypeReview {
		t.Errorf("末次时段类型期望 review_session, 实际 %q", review.Type)
	}
	if review.Title != "Final Review: Final Exam" || review.Duration != 3 {
		t.Errorf("复习时段不符: %q %g 小时", review.Title, review.Duration)
	}

	// 10 天后的期中：最少 3 次
	midterm := exam
	midterm.Type = model.AssignmentTypeMidterm
	midterm.DueDate = now.AddDate(0, 0, 10)
	if got := FallbackStudyPlan(now, []model.AssignmentItem{midterm}); len(got) != 3 {
		t.Errorf("10 天期中期望 3 次时段, 实际 %d 次", len(got))
	}

	// "exam" 类型与期中/期末同等排期
	quizExam := model.AssignmentItem{
		Title: "Lab Exam", Course: "SENG 265",
		DueDate: now.AddDate(0, 0, 30), Type: model.AssignmentTypeExam,
	}
	sessions = FallbackStudyPlan(now, []model.AssignmentItem{quizExam})
	if len(sessions) != 5 {
		t.Fatalf("30 天 exam 期望 5 次时段, 实际 %d 次", len(sessions))
	}
	if last := sessions[4]; last.Type != model.SessionTypeReview || last.Duration != 3 {
		t.Errorf("exam 末次时段应为 3 小时复习, 实际 %q %g 小时", last.Type, last.Duration)
	}
}

func TestFallbackStudyPlan_Totality(t *testing.T) {
	now := time.Now()

	// 已过期条目忽略，quiz 不单独排期，空输入返回空
	inputs := [][]model.AssignmentItem{
		nil,
		{},
		{{Title: "Old", DueDate: now.AddDate(0, 0, -1), Type: model.AssignmentTypeAssignment}},
		{{Title: "Quiz 1", DueDate: now.AddDate(0, 0, 5), Type: model.AssignmentTypeQuiz}},
	}
	for i, input := range inputs {
		if got := FallbackStudyPlan(now, input); len(got) != 0 {
			t.Errorf("输入 %d 期望空计划, 实际 %d 条", i, len(got))
		}
	}

	// 未来作业必定产出非空计划
	future := []model.AssignmentItem{
		{Title: "A1", Course: "SENG 265", DueDate: now.AddDate(0, 0, 10), Type: model.AssignmentTypeAssignment},
		{Title: "Final", Course: "SENG 265", DueDate: now.AddDate(0, 0, 40), Type: model.AssignmentTypeFinal},
	}
	if got := FallbackStudyPlan(now, future); len(got) == 0 {
		t.Error("未来作业的兜底计划不应为空")
	}
}

// ════════════════════════════════════════════════════════════
// 响应解析测试
// ════════════════════════════════════════════════════════════

func TestParsePlannerContent(t *testing.T) {
	raw := `[{"title":"Work Session: A1","course":"CSC 225","type":"work_session","duration":2,"date":"2025-10-10T14:00:00Z","description":"start early","relatedAssignment":"A1"}]`

	// 裸 JSON 与代码围栏均可解析
	for _, content := range []string{raw, "```json\n" + raw + "\n```", "```\n" + raw + "\n```"} {
		sessions, err := parsePlannerContent(content)
		if err != nil {
			t.Errorf("解析失败: %v", err)
			continue
		}
		if len(sessions) != 1 || sessions[0].Title != "Work Session: A1" {
			t.Errorf("解析结果不符: %+v", sessions)
		}
	}

	// 非数组、缺字段、非 JSON 均判为响应不合法
	bad := []string{
		`{"title":"not an array"}`,
		`[{"course":"CSC 225"}]`,
		`sure, here is your plan`,
	}
	for _, content := range bad {
		if _, err := parsePlannerContent(content); !errors.Is(err, ErrPlannerBadResponse) {
			t.Errorf("内容 %q 应判为响应不合法, 实际 %v", content, err)
		}
	}
}

// ════════════════════════════════════════════════════════════
// 计划服务编排测试
// ════════════════════════════════════════════════════════════

func TestStudyPlanService_FallbackOnPlannerFailure(t *testing.T) {
	svc := NewStudyPlanService(&fakePlanner{err: errors.New("上游超时")}, zap.NewNop())

	assignments := []model.AssignmentItem{
		{Title: "A1", Course: "CSC 225", DueDate: time.Now().AddDate(0, 0, 10), Type: model.AssignmentTypeAssignment},
	}
	resp, err := svc.GeneratePlan(context.Background(), assignments, nil)
	if err != nil {
		t.Fatalf("GeneratePlan 不应返回错误: %v", err)
	}
	if resp.Source != PlanSourceFallback {
		t.Errorf("来源期望 fallback, 实际 %q", resp.Source)
	}
	if len(resp.StudySessions) == 0 {
		t.Error("兜底计划不应为空")
	}
}

func TestStudyPlanService_UsesPlannerResult(t *testing.T) {
	planned := []model.StudySession{
		{Title: "Work Session: A1", Type: model.SessionTypeWork, Duration: 2, Date: time.Now().AddDate(0, 0, 3)},
	}
	svc := NewStudyPlanService(&fakePlanner{sessions: planned}, zap.NewNop())

	assignments := []model.AssignmentItem{
		{Title: "A1", Course: "CSC 225", DueDate: time.Now().AddDate(0, 0, 10), Type: model.AssignmentTypeAssignment},
	}
	resp, err := svc.GeneratePlan(context.Background(), assignments, nil)
	if err != nil {
		t.Fatalf("GeneratePlan 失败: %v", err)
	}
	if resp.Source != PlanSourceOpenAI {
		t.Errorf("来源期望 openai, 实际 %q", resp.Source)
	}
	if len(resp.StudySessions) != 1 || resp.StudySessions[0].Title != "Work Session: A1" {
		t.Errorf("应透传生成器结果: %+v", resp.StudySessions)
	}
}

func TestStudyPlanService_FiltersAndSorts(t *testing.T) {
	captured := &capturingPlanner{}
	svc := NewStudyPlanService(captured, zap.NewNop())

	now := time.Now()
	assignments := []model.AssignmentItem{
		{Title: "Later", DueDate: now.AddDate(0, 0, 20), Type: model.AssignmentTypeAssignment},
		{Title: "Past", DueDate: now.AddDate(0, 0, -2), Type: model.AssignmentTypeAssignment},
		{Title: "Sooner", DueDate: now.AddDate(0, 0, 5), Type: model.AssignmentTypeAssignment},
	}
	if _, err := svc.GeneratePlan(context.Background(), assignments, nil); err != nil {
		t.Fatalf("GeneratePlan 失败: %v", err)
	}

	if len(captured.got) != 2 {
		t.Fatalf("已过期条目应被过滤, 实际传入 %d 条", len(captured.got))
	}
	if captured.got[0].Title != "Sooner" || captured.got[1].Title != "Later" {
		t.Errorf("条目应按截止时间升序: %+v", captured.got)
	}
}

// capturingPlanner 记录传入的作业列表
type capturingPlanner struct {
	got []model.AssignmentItem
}

func (p *capturingPlanner) GeneratePlan(_ context.Context, assignments []model.AssignmentItem, _ []model.CalendarEvent) ([]model.StudySession, error) {
	p.got = assignments
	return []model.StudySession{{Title: "x", Duration: 1, Date: time.Now()}}, nil
}
