package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"study-scheduler/internal/model"
)

func TestSemesterService(t *testing.T) {
	repo, _, _ := newTestRepo()
	svc := NewSemesterService(repo, zap.NewNop())
	ctx := context.Background()

	// 无活动学期
	if _, err := svc.GetActiveSemester(ctx); !errors.Is(err, ErrSemesterNotFound) {
		t.Errorf("期望 ErrSemesterNotFound, 实际 %v", err)
	}

	// 日期区间非法
	_, err := svc.CreateSemester(ctx, &model.Semester{
		Name:      "Bad Term",
		StartDate: time.Date(2025, 12, 3, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrInvalidSemesterDate) {
		t.Errorf("期望 ErrInvalidSemesterDate, 实际 %v", err)
	}

	created, err := svc.CreateSemester(ctx, &model.Semester{
		Name:      "Fall 2025",
		StartDate: time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 3, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	})
	if err != nil {
		t.Fatalf("CreateSemester 失败: %v", err)
	}

	active, err := svc.GetActiveSemester(ctx)
	if err != nil {
		t.Fatalf("GetActiveSemester 失败: %v", err)
	}
	if active.SemesterID != created.SemesterID {
		t.Errorf("活动学期不符: %v", active.SemesterID)
	}

	list, err := svc.ListSemesters(ctx)
	if err != nil || len(list) != 1 {
		t.Errorf("学期列表期望 1 条, 实际 %d (err=%v)", len(list), err)
	}
}
