package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"study-scheduler/internal/dto"
	"study-scheduler/internal/model"
)

// 学习计划来源标识
const (
	PlanSourceOpenAI   = "openai"
	PlanSourceFallback = "fallback"
)

// StudyPlanService 学习计划生成服务接口
type StudyPlanService interface {
	GeneratePlan(ctx context.Context, assignments []model.AssignmentItem, existing []model.CalendarEvent) (*dto.GenerateStudyPlanResponse, error)
}

type studyPlanService struct {
	planner StudyPlanner
	logger  *zap.Logger
}

// NewStudyPlanService 构造学习计划服务
func NewStudyPlanService(planner StudyPlanner, logger *zap.Logger) StudyPlanService {
	return &studyPlanService{planner: planner, logger: logger}
}

// GeneratePlan 为未到期的作业/考试生成学习计划
//
// 优先委托外部生成器；未配置或任一环节失败时立即切换确定性兜底计划，
// 不重试。整个方法对任何输入都不返回错误。
func (s *studyPlanService) GeneratePlan(ctx context.Context, assignments []model.AssignmentItem, existing []model.CalendarEvent) (*dto.GenerateStudyPlanResponse, error) {
	now := time.Now()

	upcoming := make([]model.AssignmentItem, 0, len(assignments))
	for _, a := range assignments {
		if a.DueDate.After(now) {
			upcoming = append(upcoming, a)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate.Before(upcoming[j].DueDate)
	})

	if len(upcoming) == 0 {
		return &dto.GenerateStudyPlanResponse{
			StudySessions: []model.StudySession{},
			Source:        PlanSourceFallback,
		}, nil
	}

	sessions, err := s.planner.GeneratePlan(ctx, upcoming, existing)
	if err != nil {
		s.logger.Warn("外部计划生成失败，切换兜底计划", zap.Error(err))
		return &dto.GenerateStudyPlanResponse{
			StudySessions: FallbackStudyPlan(now, upcoming),
			Source:        PlanSourceFallback,
		}, nil
	}

	return &dto.GenerateStudyPlanResponse{
		StudySessions: sessions,
		Source:        PlanSourceOpenAI,
	}, nil
}
