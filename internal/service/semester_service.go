package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"study-scheduler/internal/model"
	"study-scheduler/internal/repository"
)

// 错误定义
var (
	ErrSemesterNotFound    = errors.New("学期不存在")
	ErrInvalidSemesterDate = errors.New("学期结束日期必须晚于开始日期")
)

// SemesterService 学期服务接口
type SemesterService interface {
	CreateSemester(ctx context.Context, semester *model.Semester) (*model.Semester, error)
	GetActiveSemester(ctx context.Context) (*model.Semester, error)
	ListSemesters(ctx context.Context) ([]model.Semester, error)
}

type semesterService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSemesterService 构造学期服务
func NewSemesterService(repo *repository.Repository, logger *zap.Logger) SemesterService {
	return &semesterService{repo: repo, logger: logger}
}

func (s *semesterService) CreateSemester(ctx context.Context, semester *model.Semester) (*model.Semester, error) {
	if !semester.EndDate.After(semester.StartDate) {
		return nil, ErrInvalidSemesterDate
	}
	if err := s.repo.Semester.Create(ctx, semester); err != nil {
		return nil, err
	}
	s.logger.Info("学期已创建", zap.String("name", semester.Name))
	return semester, nil
}

func (s *semesterService) GetActiveSemester(ctx context.Context) (*model.Semester, error) {
	semester, err := s.repo.Semester.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		return nil, err
	}
	return semester, nil
}

func (s *semesterService) ListSemesters(ctx context.Context) ([]model.Semester, error) {
	return s.repo.Semester.List(ctx)
}
