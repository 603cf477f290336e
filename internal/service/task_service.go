package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"study-scheduler/internal/dto"
	"study-scheduler/internal/model"
	"study-scheduler/internal/repository"
)

// TaskService 任务服务接口
type TaskService interface {
	CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*model.Task, error)
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*model.Task, error)
	ListTasks(ctx context.Context, userID uuid.UUID) ([]model.Task, error)
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*model.Task, error)
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
}

type taskService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTaskService 构造任务服务
func NewTaskService(repo *repository.Repository, logger *zap.Logger) TaskService {
	return &taskService{repo: repo, logger: logger}
}

func (s *taskService) CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*model.Task, error) {
	task := &model.Task{
		UserID:      userID,
		TaskName:    req.TaskName,
		CourseName:  req.CourseName,
		DueDate:     req.DueDate,
		Colour:      req.Colour,
		Description: req.Description,
	}
	if err := s.repo.Task.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*model.Task, error) {
	task, err := s.repo.Task.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if task.UserID != userID {
		return nil, ErrTaskForbidden
	}
	return task, nil
}

func (s *taskService) ListTasks(ctx context.Context, userID uuid.UUID) ([]model.Task, error) {
	return s.repo.Task.ListByUser(ctx, userID)
}

func (s *taskService) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*model.Task, error) {
	task, err := s.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if req.TaskName != nil {
		task.TaskName = *req.TaskName
	}
	if req.CourseName != nil {
		task.CourseName = *req.CourseName
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Colour != nil {
		task.Colour = *req.Colour
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	task.UpdatedAt = time.Now()

	if err := s.repo.Task.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if _, err := s.GetTask(ctx, userID, taskID); err != nil {
		return err
	}
	return s.repo.Task.Delete(ctx, taskID)
}
