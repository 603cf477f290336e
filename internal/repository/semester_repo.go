package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"study-scheduler/internal/model"
)

// SemesterRepository 学期数据访问接口
type SemesterRepository interface {
	Create(ctx context.Context, semester *model.Semester) error
	GetByID(ctx context.Context, semesterID uuid.UUID) (*model.Semester, error)
	GetActive(ctx context.Context) (*model.Semester, error)
	List(ctx context.Context) ([]model.Semester, error)
}

type semesterRepository struct {
	db *gorm.DB
}

// NewSemesterRepository 构造学期仓储
func NewSemesterRepository(db *gorm.DB) SemesterRepository {
	return &semesterRepository{db: db}
}

func (r *semesterRepository) Create(ctx context.Context, semester *model.Semester) error {
	return r.db.WithContext(ctx).Create(semester).Error
}

func (r *semesterRepository) GetByID(ctx context.Context, semesterID uuid.UUID) (*model.Semester, error) {
	var semester model.Semester
	if err := r.db.WithContext(ctx).First(&semester, "semester_id = ?", semesterID).Error; err != nil {
		return nil, err
	}
	return &semester, nil
}

func (r *semesterRepository) GetActive(ctx context.Context) (*model.Semester, error) {
	var semester model.Semester
	if err := r.db.WithContext(ctx).First(&semester, "is_active = ?", true).Error; err != nil {
		return nil, err
	}
	return &semester, nil
}

func (r *semesterRepository) List(ctx context.Context) ([]model.Semester, error) {
	var semesters []model.Semester
	if err := r.db.WithContext(ctx).Order("start_date DESC").Find(&semesters).Error; err != nil {
		return nil, err
	}
	return semesters, nil
}
