package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"study-scheduler/internal/dto"
	"study-scheduler/internal/model"
)

func TestCalendarService_CreateEvent(t *testing.T) {
	repo, _, _ := newTestRepo()
	svc := NewCalendarService(repo, zap.NewNop())
	userID := uuid.New()

	start := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	event, err := svc.CreateEvent(context.Background(), userID, &dto.CreateEventRequest{
		Title:         "MATH 200",
		Location:      "HSD A240",
		StartDatetime: start,
		EndDatetime:   start.Add(80 * time.Minute),
	})
	if err != nil {
		t.Fatalf("CreateEvent 失败: %v", err)
	}
	if event.CalendarID == uuid.Nil {
		t.Error("事件应分配 ID")
	}
	if event.UserID != userID {
		t.Errorf("事件归属不符: %v", event.UserID)
	}

	// 结束不晚于开始
	_, err = svc.CreateEvent(context.Background(), userID, &dto.CreateEventRequest{
		Title:         "非法事件",
		StartDatetime: start,
		EndDatetime:   start,
	})
	if !errors.Is(err, ErrInvalidEventTime) {
		t.Errorf("期望 ErrInvalidEventTime, 实际 %v", err)
	}
}

func TestCalendarService_CreateEvent_TaskLink(t *testing.T) {
	repo, _, taskRepo := newTestRepo()
	svc := NewCalendarService(repo, zap.NewNop())
	userID := uuid.New()
	otherID := uuid.New()

	task := &model.Task{UserID: userID, TaskName: "Assignment 1"}
	taskRepo.Create(context.Background(), task)

	start := time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)
	taskID := task.TaskID.String()
	event, err := svc.CreateEvent(context.Background(), userID, &dto.CreateEventRequest{
		Title:         "CSC 225 - Assignment 1",
		StartDatetime: start,
		EndDatetime:   start.Add(time.Hour),
		TaskID:        &taskID,
	})
	if err != nil {
		t.Fatalf("CreateEvent 失败: %v", err)
	}
	if event.TaskID == nil || *event.TaskID != task.TaskID {
		t.Errorf("事件应关联任务 %v, 实际 %v", task.TaskID, event.TaskID)
	}

	// 他人任务不可关联
	_, err = svc.CreateEvent(context.Background(), otherID, &dto.CreateEventRequest{
		Title:         "越权关联",
		StartDatetime: start,
		EndDatetime:   start.Add(time.Hour),
		TaskID:        &taskID,
	})
	if !errors.Is(err, ErrTaskForbidden) {
		t.Errorf("期望 ErrTaskForbidden, 实际 %v", err)
	}

	// 不存在的任务
	missing := uuid.New().String()
	_, err = svc.CreateEvent(context.Background(), userID, &dto.CreateEventRequest{
		Title:         "关联缺失任务",
		StartDatetime: start,
		EndDatetime:   start.Add(time.Hour),
		TaskID:        &missing,
	})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("期望 ErrTaskNotFound, 实际 %v", err)
	}
}

func TestCalendarService_GetEvent_Ownership(t *testing.T) {
	repo, calendarRepo, _ := newTestRepo()
	svc := NewCalendarService(repo, zap.NewNop())
	ownerID := uuid.New()
	otherID := uuid.New()

	event := &model.CalendarEvent{
		UserID:        ownerID,
		Title:         "MATH 200",
		StartDatetime: time.Now(),
		EndDatetime:   time.Now().Add(time.Hour),
	}
	calendarRepo.Create(context.Background(), event)

	if _, err := svc.GetEvent(context.Background(), ownerID, event.CalendarID); err != nil {
		t.Errorf("属主读取失败: %v", err)
	}
	if _, err := svc.GetEvent(context.Background(), otherID, event.CalendarID); !errors.Is(err, ErrEventForbidden) {
		t.Errorf("期望 ErrEventForbidden, 实际 %v", err)
	}
	if _, err := svc.GetEvent(context.Background(), ownerID, uuid.New()); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("期望 ErrEventNotFound, 实际 %v", err)
	}
}

func TestCalendarService_ListEvents_Range(t *testing.T) {
	repo, calendarRepo, _ := newTestRepo()
	svc := NewCalendarService(repo, zap.NewNop())
	userID := uuid.New()

	for day := 1; day <= 3; day++ {
		start := time.Date(2025, 10, day, 9, 0, 0, 0, time.UTC)
		calendarRepo.Create(context.Background(), &model.CalendarEvent{
			UserID: userID, Title: "事件", StartDatetime: start, EndDatetime: start.Add(time.Hour),
		})
	}

	all, err := svc.ListEvents(context.Background(), userID, nil)
	if err != nil {
		t.Fatalf("ListEvents 失败: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("全量列表期望 3 条, 实际 %d", len(all))
	}

	from := time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC)
	ranged, err := svc.ListEvents(context.Background(), userID, &dto.ListEventsQuery{From: &from, To: &to})
	if err != nil {
		t.Fatalf("ListEvents 失败: %v", err)
	}
	if len(ranged) != 1 {
		t.Errorf("区间列表期望 1 条, 实际 %d", len(ranged))
	}
}

func TestCalendarService_UpdateEvent(t *testing.T) {
	repo, calendarRepo, _ := newTestRepo()
	svc := NewCalendarService(repo, zap.NewNop())
	userID := uuid.New()

	start := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	event := &model.CalendarEvent{
		UserID: userID, Title: "旧标题",
		StartDatetime: start, EndDatetime: start.Add(time.Hour),
	}
	calendarRepo.Create(context.Background(), event)

	newTitle := "新标题"
	updated, err := svc.UpdateEvent(context.Background(), userID, event.CalendarID, &dto.UpdateEventRequest{Title: &newTitle})
	if err != nil {
		t.Fatalf("UpdateEvent 失败: %v", err)
	}
	if updated.Title != newTitle {
		t.Errorf("标题未更新: %q", updated.Title)
	}
	if !updated.StartDatetime.Equal(start) {
		t.Error("未指定字段不应变化")
	}

	// 更新后的时间区间仍需合法
	badEnd := start.Add(-time.Hour)
	if _, err := svc.UpdateEvent(context.Background(), userID, event.CalendarID, &dto.UpdateEventRequest{EndDatetime: &badEnd}); !errors.Is(err, ErrInvalidEventTime) {
		t.Errorf("期望 ErrInvalidEventTime, 实际 %v", err)
	}
}

func TestCalendarService_DeleteEvent(t *testing.T) {
	repo, calendarRepo, _ := newTestRepo()
	svc := NewCalendarService(repo, zap.NewNop())
	ownerID := uuid.New()
	otherID := uuid.New()

	event := &model.CalendarEvent{
		UserID: ownerID, Title: "待删除",
		StartDatetime: time.Now(), EndDatetime: time.Now().Add(time.Hour),
	}
	calendarRepo.Create(context.Background(), event)

	if err := svc.DeleteEvent(context.Background(), otherID, event.CalendarID); !errors.Is(err, ErrEventForbidden) {
		t.Errorf("期望 ErrEventForbidden, 实际 %v", err)
	}
	if err := svc.DeleteEvent(context.Background(), ownerID, event.CalendarID); err != nil {
		t.Fatalf("DeleteEvent 失败: %v", err)
	}
	if _, err := svc.GetEvent(context.Background(), ownerID, event.CalendarID); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("删除后应为 ErrEventNotFound, 实际 %v", err)
	}
}
