package service

import (
	"go.uber.org/zap"

	"study-scheduler/config"
	"study-scheduler/internal/repository"
	"study-scheduler/pkg/jwt"
	"study-scheduler/pkg/redis"
)

// Service 聚合所有业务服务
type Service struct {
	Auth      AuthService
	Calendar  CalendarService
	Task      TaskService
	Semester  SemesterService
	StudyPlan StudyPlanService
	Import    ImportService
	Export    ExportService
}

// NewService 构造业务层
func NewService(
	repo *repository.Repository,
	cfg *config.Config,
	jwtMgr *jwt.Manager,
	cache *redis.Client,
	logger *zap.Logger,
) *Service {
	planner := NewOpenAIPlanner(&cfg.Planner, logger)
	studyPlan := NewStudyPlanService(planner, logger)

	return &Service{
		Auth:      NewAuthService(repo, jwtMgr, cache, logger),
		Calendar:  NewCalendarService(repo, logger),
		Task:      NewTaskService(repo, logger),
		Semester:  NewSemesterService(repo, logger),
		StudyPlan: studyPlan,
		Import:    NewImportService(repo, studyPlan, NewCourseOutlineSource(), &cfg.Calendar, logger),
		Export:    NewExportService(repo, logger),
	}
}
